package models

import "time"

// JournalEntry is a timestamped record referencing one event type. Its tags
// are a subset of the referenced type's tags; the type reference is
// immutable after creation.
type JournalEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EventTypeID string    `json:"event_type_id"`
	Description *string   `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// SortOrder directs search results by creation time.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// SearchFilter narrows a journal-entry search. Zero values mean "no
// constraint". Tags requires entries to carry all listed tags. Before and
// After are inclusive bounds on CreatedAt.
type SearchFilter struct {
	EventTypeID string
	Tags        []string
	Before      *time.Time
	After       *time.Time
	Sort        *SortOrder
	Offset      *uint32
	Limit       *uint32
}
