package store

import (
	"context"
	"database/sql"

	"github.com/pointboard-app/pointboard/internal/domain"
)

// RankStore defines read access to the ranking list, a derived view over
// users ordered by point descending with creation time as the tiebreaker.
type RankStore interface {
	// FirstPage returns the top of the ranking list, at most limit entries.
	FirstPage(ctx context.Context, limit int) ([]domain.RankEntry, error)

	// PageAfter returns the page starting strictly after the given cursor,
	// at most limit entries. An empty slice means the list is exhausted.
	PageAfter(ctx context.Context, cursor domain.RankCursor, limit int) ([]domain.RankEntry, error)

	// WithTx returns a RankStore bound to the provided transaction.
	WithTx(tx *sql.Tx) RankStore
}
