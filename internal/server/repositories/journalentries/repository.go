package journalentries

import (
	"context"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
)

// Repository stores journal entries, scoped to the owning user.
//
// Insert and Update do not validate the tag-subset invariant themselves;
// the service composes them with the event-type lock inside one
// transaction. FindEventTypeIDForUpdate is transactional by nature and
// must run on a tx-bound repository.
type Repository interface {
	FindByID(ctx context.Context, userID, id string) (*models.JournalEntry, error)
	Find(ctx context.Context, userID string, filter *models.SearchFilter) ([]*models.JournalEntry, error)

	// Insert stores a new entry. A nil createdAt defaults to the current
	// server time.
	Insert(ctx context.Context, userID, eventTypeID string, description *string, tags []string, createdAt *time.Time) (string, error)

	Update(ctx context.Context, userID, id string, description *string, tags []string) (bool, error)
	Delete(ctx context.Context, userID, id string) (bool, error)

	// FindEventTypeIDForUpdate locks the entry row and returns its event
	// type reference. Missing rows yield common.ErrorNotFound.
	FindEventTypeIDForUpdate(ctx context.Context, userID, id string) (string, error)

	// ExistsForEventType reports whether any entry references the event type.
	ExistsForEventType(ctx context.Context, userID, eventTypeID string) (bool, error)
}
