package eventtypes

import (
	"context"

	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
)

// Repository stores event types. All operations are scoped to the owning
// user; an id of another user behaves exactly like a missing id.
//
// The locking methods (LockForUpdate, ValidateForEntry) only make sense on
// a repository bound to a transaction; the row lock they take lives until
// that transaction ends.
type Repository interface {
	FindByID(ctx context.Context, userID, id string) (*models.EventType, error)
	FindByUserID(ctx context.Context, userID string) ([]*models.EventType, error)
	Insert(ctx context.Context, userID, name string, tags []string) (string, error)

	// LockForUpdate takes an exclusive row lock on the event type and
	// reports whether the row exists. Serializes retag/delete against
	// concurrent entry writes validating against the same row.
	LockForUpdate(ctx context.Context, userID, id string) (bool, error)

	// UsedTagsNotIn returns the distinct tags carried by journal entries of
	// this event type that are absent from the proposed tag set.
	UsedTagsNotIn(ctx context.Context, userID, id string, tags []string) ([]string, error)

	UpdateNameAndTags(ctx context.Context, userID, id, name string, tags []string) (bool, error)
	Delete(ctx context.Context, userID, id string) (bool, error)

	// ValidateForEntry locks the event-type row and reports whether it
	// exists, is owned by userID, and permits all of tags. The generic
	// result deliberately does not distinguish a wrong id from a
	// disallowed tag.
	ValidateForEntry(ctx context.Context, userID, id string, tags []string) (bool, error)
}
