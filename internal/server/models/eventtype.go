package models

// EventType is a user-defined category of journal entries carrying the tag
// vocabulary its entries may draw from. Tags keep insertion order for
// display; validation treats them as a set.
//
// Invariant: for every journal entry referencing this type, the entry tags
// are a subset of Tags. Enforced at entry write time and at retag time.
type EventType struct {
	ID     string   `json:"id"`
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
}
