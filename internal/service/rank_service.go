package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/store"
)

// DefaultRankPageSize is the number of entries per ranking page.
const DefaultRankPageSize = 20

// RankCache is the optional read cache for the first ranking page.
// Implementations must treat every failure as a miss.
type RankCache interface {
	GetFirstPage(ctx context.Context) (*domain.RankPage, bool)
	SetFirstPage(ctx context.Context, page *domain.RankPage)
}

// RankService serves the paginated ranking list.
type RankService interface {
	// GetRankList returns one page of the ranking list. The requester must
	// be an existing user, else domain.ErrUnauthorized. The cursor selects
	// the page: first-page sentinel, end-of-list sentinel (which yields an
	// empty Complete page), or a (point, date) anchor.
	GetRankList(ctx context.Context, userID uuid.UUID, cursor domain.RankCursor) (*domain.RankPage, error)
}

// RankServiceImpl implements the RankService interface.
type RankServiceImpl struct {
	rankStore store.RankStore
	userStore store.UserStore
	cache     RankCache // may be nil when caching is disabled
	db        *sql.DB
	pageSize  int
	logger    *slog.Logger
}

// NewRankService creates a new RankService. cache may be nil to disable the
// first-page cache.
func NewRankService(
	rankStore store.RankStore,
	userStore store.UserStore,
	cache RankCache,
	db *sql.DB,
	logger *slog.Logger,
) RankService {
	return &RankServiceImpl{
		rankStore: rankStore,
		userStore: userStore,
		cache:     cache,
		db:        db,
		pageSize:  DefaultRankPageSize,
		logger:    logger.With("component", "rank_service"),
	}
}

// GetRankList returns one page of the ranking list. The whole read runs
// inside a transaction so the requester check and the page query see one
// snapshot.
func (s *RankServiceImpl) GetRankList(
	ctx context.Context,
	userID uuid.UUID,
	cursor domain.RankCursor,
) (*domain.RankPage, error) {
	if err := cursor.Validate(); err != nil {
		s.logger.Debug("rejected malformed ranking cursor",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	var page *domain.RankPage

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.userStore.WithTx(tx).GetByID(ctx, userID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return fmt.Errorf("%w: unknown requester", domain.ErrUnauthorized)
			}
			return err
		}

		switch {
		case cursor.IsComplete():
			// End-of-list request: same page shape, no entries.
			page = &domain.RankPage{Entries: []domain.RankEntry{}, Complete: true}
			return nil

		case cursor.IsFirstPage():
			if s.cache != nil {
				if cached, ok := s.cache.GetFirstPage(ctx); ok {
					page = cached
					return nil
				}
			}

			entries, err := s.rankStore.WithTx(tx).FirstPage(ctx, s.pageSize)
			if err != nil {
				return err
			}
			page = s.buildPage(entries)

			if s.cache != nil {
				s.cache.SetFirstPage(ctx, page)
			}
			return nil

		default:
			entries, err := s.rankStore.WithTx(tx).PageAfter(ctx, cursor, s.pageSize)
			if err != nil {
				return err
			}
			page = s.buildPage(entries)
			return nil
		}
	})

	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.logger.Debug("ranking requested by unknown user",
				"user_id", userID)
		} else {
			s.logger.Error("failed to retrieve ranking page",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	return page, nil
}

// buildPage wraps raw entries into a RankPage, deriving the next cursor.
// A short page means the list is exhausted.
func (s *RankServiceImpl) buildPage(entries []domain.RankEntry) *domain.RankPage {
	page := &domain.RankPage{Entries: entries}
	if len(entries) < s.pageSize {
		page.Complete = true
		return page
	}

	if next, ok := page.NextCursor(); ok {
		page.Next = &next
	}
	return page
}
