package mocks

import (
	"context"
	"database/sql"

	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/store"
)

// MockRankStore implements store.RankStore for testing
type MockRankStore struct {
	// Function fields for customizable behavior
	FirstPageFn func(ctx context.Context, limit int) ([]domain.RankEntry, error)
	PageAfterFn func(ctx context.Context, cursor domain.RankCursor, limit int) ([]domain.RankEntry, error)

	// Data for default implementation: the full ranking, already ordered
	Entries []domain.RankEntry
	Err     error

	// Call tracking for verification
	FirstPageCalls int
	PageAfterCalls []domain.RankCursor
}

// FirstPage implements the RankStore interface
func (m *MockRankStore) FirstPage(ctx context.Context, limit int) ([]domain.RankEntry, error) {
	m.FirstPageCalls++

	if m.FirstPageFn != nil {
		return m.FirstPageFn(ctx, limit)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	if len(m.Entries) > limit {
		return m.Entries[:limit], nil
	}
	return m.Entries, nil
}

// PageAfter implements the RankStore interface
func (m *MockRankStore) PageAfter(
	ctx context.Context,
	cursor domain.RankCursor,
	limit int,
) ([]domain.RankEntry, error) {
	m.PageAfterCalls = append(m.PageAfterCalls, cursor)

	if m.PageAfterFn != nil {
		return m.PageAfterFn(ctx, cursor, limit)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	var page []domain.RankEntry
	for _, e := range m.Entries {
		if e.Point < cursor.Point || (e.Point == cursor.Point && e.Date.After(cursor.Date)) {
			page = append(page, e)
			if len(page) == limit {
				break
			}
		}
	}
	return page, nil
}

// WithTx implements the RankStore interface for transaction support
func (m *MockRankStore) WithTx(tx *sql.Tx) store.RankStore {
	return m
}
