package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/platform/logger"
	"github.com/pointboard-app/pointboard/internal/store"
)

// PostgresRankStore implements the store.RankStore interface as a read-only
// projection over the users table: point descending, older accounts first on
// ties. The (point, created_at) pair doubles as the pagination cursor.
type PostgresRankStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRankStore creates a new PostgreSQL implementation of the
// RankStore interface. If logger is nil, a default logger is used.
func NewPostgresRankStore(db store.DBTX, log *slog.Logger) *PostgresRankStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresRankStore{
		db:     db,
		logger: log.With(slog.String("component", "rank_store")),
	}
}

// Ensure PostgresRankStore implements store.RankStore.
var _ store.RankStore = (*PostgresRankStore)(nil)

// WithTx implements store.RankStore.WithTx.
func (s *PostgresRankStore) WithTx(tx *sql.Tx) store.RankStore {
	return &PostgresRankStore{
		db:     tx,
		logger: s.logger,
	}
}

// FirstPage implements store.RankStore.FirstPage.
func (s *PostgresRankStore) FirstPage(ctx context.Context, limit int) ([]domain.RankEntry, error) {
	query := `
		SELECT id, nickname, image_url, point, created_at
		FROM users
		ORDER BY point DESC, created_at ASC
		LIMIT $1
	`
	return s.queryEntries(ctx, query, limit)
}

// PageAfter implements store.RankStore.PageAfter. Row-value comparison keeps
// the anchored page strictly after the cursor without skipping tied entries.
func (s *PostgresRankStore) PageAfter(
	ctx context.Context,
	cursor domain.RankCursor,
	limit int,
) ([]domain.RankEntry, error) {
	query := `
		SELECT id, nickname, image_url, point, created_at
		FROM users
		WHERE point < $1 OR (point = $1 AND created_at > $2)
		ORDER BY point DESC, created_at ASC
		LIMIT $3
	`
	return s.queryEntries(ctx, query, cursor.Point, cursor.Date, limit)
}

func (s *PostgresRankStore) queryEntries(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.RankEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query ranking entries",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var entries []domain.RankEntry
	for rows.Next() {
		var entry domain.RankEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.Nickname,
			&entry.ImageURL,
			&entry.Point,
			&entry.Date,
		); err != nil {
			log.Error("failed to scan ranking row",
				slog.String("error", err.Error()))
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning ranking rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if entries == nil {
		entries = []domain.RankEntry{}
	}
	return entries, nil
}
