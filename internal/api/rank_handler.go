package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pointboard-app/pointboard/internal/api/shared"
	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/service"
)

// RankHandler handles the ranking list endpoint.
type RankHandler struct {
	rankService service.RankService
	logger      *slog.Logger
}

// NewRankHandler creates a new RankHandler with the given dependencies.
func NewRankHandler(rankService service.RankService, logger *slog.Logger) *RankHandler {
	return &RankHandler{
		rankService: rankService,
		logger:      logger.With(slog.String("component", "rank_handler")),
	}
}

// GetRankList handles GET /ranks. The cursor arrives in the point and date
// query parameters: point=0 requests the first page, point=-1 acknowledges
// the end of the list, and any other point pairs with date to anchor the
// next page.
func (h *RankHandler) GetRankList(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	cursor, err := parseRankCursor(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.rankService.GetRankList(r.Context(), userID, cursor)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RankListResponse{
		Entries:  page.Entries,
		Next:     page.Next,
		Complete: page.Complete,
	})
}

// parseRankCursor reads the (point, date) pagination cursor from the query
// string. A missing point means the first page; date is only consulted when
// point anchors a page.
func parseRankCursor(r *http.Request) (domain.RankCursor, error) {
	cursor := domain.RankCursor{Point: domain.CursorFirstPage}

	if raw := r.URL.Query().Get("point"); raw != "" {
		point, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.RankCursor{}, domain.NewValidationError(
				"point", "must be an integer", domain.ErrInvalidCursor)
		}
		cursor.Point = point
	}

	if cursor.IsFirstPage() || cursor.IsComplete() {
		return cursor, nil
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		return domain.RankCursor{}, domain.NewValidationError(
			"date", "is required with a point anchor", domain.ErrInvalidCursor)
	}
	date, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return domain.RankCursor{}, domain.NewValidationError(
			"date", "must be an RFC 3339 timestamp", domain.ErrInvalidCursor)
	}
	cursor.Date = date

	return cursor, nil
}
