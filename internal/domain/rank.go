package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ranking cursor sentinels, carried in the "point" query parameter.
const (
	// CursorFirstPage requests the first page of the ranking list.
	CursorFirstPage int64 = 0

	// CursorComplete signals that the previous page was the last one and no
	// further entries exist.
	CursorComplete int64 = -1
)

// RankEntry is a read-only projection of a user onto the ranking list.
// Entries are ordered by point descending; ties rank the older account first.
type RankEntry struct {
	UserID   uuid.UUID `json:"user_id"`
	Nickname string    `json:"nickname"`
	ImageURL string    `json:"image_url"`
	Point    int64     `json:"point"`
	Date     time.Time `json:"date"`
}

// RankCursor is the (point, date) pair identifying the last entry of a page.
// The next page starts strictly after it.
type RankCursor struct {
	Point int64     `json:"point"`
	Date  time.Time `json:"date"`
}

// IsFirstPage reports whether the cursor requests the first ranking page.
func (c RankCursor) IsFirstPage() bool {
	return c.Point == CursorFirstPage
}

// IsComplete reports whether the cursor is the end-of-list sentinel.
func (c RankCursor) IsComplete() bool {
	return c.Point == CursorComplete
}

// Validate rejects cursors that are neither a sentinel nor a usable anchor.
func (c RankCursor) Validate() error {
	if c.IsFirstPage() || c.IsComplete() {
		return nil
	}
	if c.Point < 0 {
		return NewValidationError("point", "must be a positive point value or a sentinel", ErrInvalidCursor)
	}
	if c.Date.IsZero() {
		return NewValidationError("date", "is required with a point anchor", ErrInvalidCursor)
	}
	return nil
}

// RankPage is one page of the ranking list. Next is nil on the final page,
// and Complete is set when no further entries exist. The end-of-list request
// (CursorComplete) yields an empty, Complete page rather than a distinct
// response shape.
type RankPage struct {
	Entries  []RankEntry `json:"entries"`
	Next     *RankCursor `json:"next,omitempty"`
	Complete bool        `json:"complete"`
}

// NextCursor derives the pagination anchor from the page's last entry.
// Returns false when the page is empty.
func (p *RankPage) NextCursor() (RankCursor, bool) {
	if len(p.Entries) == 0 {
		return RankCursor{}, false
	}
	last := p.Entries[len(p.Entries)-1]
	return RankCursor{Point: last.Point, Date: last.Date}, true
}
