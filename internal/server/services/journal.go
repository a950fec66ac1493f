package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/dbx"
	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
	"github.com/dmitrijs2005/journalkeeper/internal/server/repositories/repomanager"
)

// JournalService provides event-type and journal-entry operations, all
// scoped to the calling user. The tag-subset invariant (entry tags never
// exceed the event type's tag set) is enforced by composing row locks and
// checks into single transactions via dbx.WithTx, so a concurrent retag
// and entry write can never interleave into an inconsistent committed
// state.
type JournalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewJournalService constructs a JournalService.
func NewJournalService(db *sql.DB, m repomanager.RepositoryManager) *JournalService {
	return &JournalService{db: db, repomanager: m}
}

// --- event types ---

func (s *JournalService) FindAllEventTypes(ctx context.Context, userID string) ([]*models.EventType, error) {
	return s.repomanager.EventTypes(s.db).FindByUserID(ctx, userID)
}

func (s *JournalService) FindEventTypeByID(ctx context.Context, userID, id string) (*models.EventType, error) {
	return s.repomanager.EventTypes(s.db).FindByID(ctx, userID, id)
}

// CreateEventType inserts a new event type. Duplicate names are allowed.
func (s *JournalService) CreateEventType(ctx context.Context, userID, name string, tags []string) (string, error) {
	if err := validateNameAndTags(name, tags); err != nil {
		return "", err
	}
	return s.repomanager.EventTypes(s.db).Insert(ctx, userID, name, tags)
}

// UpdateEventType renames and retags an event type. The removed tags must
// not be used by any journal entry of this type; otherwise the update is
// rejected with TagsStillUsedError listing the offenders. The check and
// the write run in one transaction under an exclusive lock on the
// event-type row, so no entry can sneak in a tag that is simultaneously
// being dropped.
func (s *JournalService) UpdateEventType(ctx context.Context, userID, id, name string, tags []string) error {
	if err := validateNameAndTags(name, tags); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.EventTypes(tx)

		found, err := repo.LockForUpdate(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("error locking event type: %w", err)
		}
		if !found {
			return common.ErrorNotFound
		}

		used, err := repo.UsedTagsNotIn(ctx, userID, id, tags)
		if err != nil {
			return fmt.Errorf("error checking used tags: %w", err)
		}
		if len(used) > 0 {
			return &common.TagsStillUsedError{Tags: used}
		}

		updated, err := repo.UpdateNameAndTags(ctx, userID, id, name, tags)
		if err != nil {
			return fmt.Errorf("error updating event type: %w", err)
		}
		if !updated {
			return common.ErrorNotFound
		}
		return nil
	})
}

// DeleteEventType removes an event type. Deletion is blocked while journal
// entries still reference the type, keeping references resolvable.
func (s *JournalService) DeleteEventType(ctx context.Context, userID, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.EventTypes(tx)

		found, err := repo.LockForUpdate(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("error locking event type: %w", err)
		}
		if !found {
			return common.ErrorNotFound
		}

		referenced, err := s.repomanager.JournalEntries(tx).ExistsForEventType(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("error checking references: %w", err)
		}
		if referenced {
			return common.ErrEventTypeInUse
		}

		deleted, err := repo.Delete(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("error deleting event type: %w", err)
		}
		if !deleted {
			return common.ErrorNotFound
		}
		return nil
	})
}

// --- journal entries ---

func (s *JournalService) FindJournalEntryByID(ctx context.Context, userID, id string) (*models.JournalEntry, error) {
	return s.repomanager.JournalEntries(s.db).FindByID(ctx, userID, id)
}

// FindJournalEntries returns entries matching the filter. A filter with
// both time bounds set and after > before is rejected before querying.
func (s *JournalService) FindJournalEntries(ctx context.Context, userID string, filter *models.SearchFilter) ([]*models.JournalEntry, error) {
	if filter == nil {
		filter = &models.SearchFilter{}
	}
	if filter.After != nil && filter.Before != nil && filter.After.After(*filter.Before) {
		return nil, common.NewValidationError("after", "before")
	}
	return s.repomanager.JournalEntries(s.db).Find(ctx, userID, filter)
}

// CreateJournalEntry inserts an entry after proving, inside the same
// transaction, that the referenced event type exists, belongs to the user
// and permits every entry tag. The event-type row stays locked until
// commit, so a concurrent retag cannot shrink the tag set between the
// check and the insert.
func (s *JournalService) CreateJournalEntry(ctx context.Context, userID, eventTypeID string, description *string, tags []string, createdAt *time.Time) (string, error) {
	if err := validateTags(tags); err != nil {
		return "", err
	}

	var id string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ok, err := s.repomanager.EventTypes(tx).ValidateForEntry(ctx, userID, eventTypeID, tags)
		if err != nil {
			return fmt.Errorf("error validating event type: %w", err)
		}
		if !ok {
			return common.ErrEventTypeValidation
		}

		id, err = s.repomanager.JournalEntries(tx).Insert(ctx, userID, eventTypeID, description, tags, createdAt)
		if err != nil {
			return fmt.Errorf("error inserting journal entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateJournalEntry replaces an entry's description and tags. The event
// type reference is immutable; the new tags are revalidated against the
// type's current tag set under the same lock discipline as creation.
func (s *JournalService) UpdateJournalEntry(ctx context.Context, userID, id string, description *string, tags []string) error {
	if err := validateTags(tags); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		entries := s.repomanager.JournalEntries(tx)

		eventTypeID, err := entries.FindEventTypeIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}

		ok, err := s.repomanager.EventTypes(tx).ValidateForEntry(ctx, userID, eventTypeID, tags)
		if err != nil {
			return fmt.Errorf("error validating event type: %w", err)
		}
		if !ok {
			return common.ErrEventTypeValidation
		}

		updated, err := entries.Update(ctx, userID, id, description, tags)
		if err != nil {
			return fmt.Errorf("error updating journal entry: %w", err)
		}
		if !updated {
			return common.ErrorNotFound
		}
		return nil
	})
}

func (s *JournalService) DeleteJournalEntry(ctx context.Context, userID, id string) error {
	deleted, err := s.repomanager.JournalEntries(s.db).Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("error deleting journal entry: %w", err)
	}
	if !deleted {
		return common.ErrorNotFound
	}
	return nil
}

// --- validation helpers ---

func validateNameAndTags(name string, tags []string) error {
	var fields []string
	if strings.TrimSpace(name) == "" {
		fields = append(fields, "name")
	}
	if err := validateTags(tags); err != nil {
		fields = append(fields, "tags")
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields...)
	}
	return nil
}

func validateTags(tags []string) error {
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return common.NewValidationError("tags")
		}
	}
	return nil
}
