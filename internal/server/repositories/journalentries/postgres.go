// Package journalentries provides the PostgreSQL-backed repository for
// journal entries, including the filtered search query assembly.
package journalentries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/dbx"
	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
	"github.com/lib/pq"
)

// PostgresRepository implements journal-entry storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// tagsOrEmpty guards tag bindings: the tags column is NOT NULL, and a nil
// slice through pq.Array would bind as SQL NULL instead of '{}'.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func (r *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*models.JournalEntry, error) {
	query :=
		`SELECT id, user_id, event_type_id, description, tags, created_at FROM journal_entry
		 WHERE id = $1 AND user_id = $2
		 `

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// Find returns entries matching the filter. The query is assembled
// incrementally; every value is bound, never interpolated, except the sort
// direction which is restricted to the two SortOrder constants.
func (r *PostgresRepository) Find(ctx context.Context, userID string, filter *models.SearchFilter) ([]*models.JournalEntry, error) {
	var query strings.Builder
	query.WriteString(`SELECT id, user_id, event_type_id, description, tags, created_at FROM journal_entry WHERE user_id = $1`)
	args := []any{userID}

	appendCond := func(clause string, val any) {
		args = append(args, val)
		fmt.Fprintf(&query, clause, len(args))
	}

	if filter.EventTypeID != "" {
		appendCond(" AND event_type_id = $%d", filter.EventTypeID)
	}
	if len(filter.Tags) > 0 {
		appendCond(" AND tags @> $%d::text[]", pq.Array(filter.Tags))
	}
	if filter.Before != nil {
		appendCond(" AND created_at <= $%d", *filter.Before)
	}
	if filter.After != nil {
		appendCond(" AND created_at >= $%d", *filter.After)
	}
	if filter.Sort != nil {
		switch *filter.Sort {
		case models.SortAsc, models.SortDesc:
			query.WriteString(" ORDER BY created_at " + string(*filter.Sort))
		default:
			return nil, common.NewValidationError("sort")
		}
	}
	if filter.Offset != nil {
		appendCond(" OFFSET $%d", *filter.Offset)
	}
	if filter.Limit != nil {
		appendCond(" LIMIT $%d", *filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, userID, eventTypeID string, description *string, tags []string, createdAt *time.Time) (string, error) {
	if createdAt == nil {
		now := time.Now().UTC()
		createdAt = &now
	}

	query :=
		`INSERT INTO journal_entry (user_id, event_type_id, description, tags, created_at)
		 VALUES ($1, $2, $3, $4::text[], $5)
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query,
		userID, eventTypeID, description, pq.Array(tagsOrEmpty(tags)), *createdAt).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, description *string, tags []string) (bool, error) {
	query :=
		`UPDATE journal_entry SET description = $1, tags = $2::text[]
		 WHERE id = $3 AND user_id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, description, pq.Array(tagsOrEmpty(tags)), id, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	query :=
		`DELETE FROM journal_entry
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) FindEventTypeIDForUpdate(ctx context.Context, userID, id string) (string, error) {
	query :=
		`SELECT event_type_id FROM journal_entry
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE
		 `

	var eventTypeID string
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&eventTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return eventTypeID, nil
}

func (r *PostgresRepository) ExistsForEventType(ctx context.Context, userID, eventTypeID string) (bool, error) {
	query :=
		`SELECT EXISTS(SELECT 1 FROM journal_entry WHERE user_id = $1 AND event_type_id = $2)
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, eventTypeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	var description sql.NullString
	if err := row.Scan(&entry.ID, &entry.UserID, &entry.EventTypeID,
		&description, pq.Array(&entry.Tags), &entry.CreatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		entry.Description = &description.String
	}
	return &entry, nil
}
