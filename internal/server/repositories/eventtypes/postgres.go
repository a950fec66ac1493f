// Package eventtypes provides the PostgreSQL-backed repository for event
// types, including the row-locking primitives the tag-consistency
// transactions are built from.
package eventtypes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/dbx"
	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
	"github.com/lib/pq"
)

// PostgresRepository implements event-type storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// tagsOrEmpty guards tag bindings: the tags columns are NOT NULL, and a
// nil slice through pq.Array would bind as SQL NULL instead of '{}'.
// NULL also poisons the != ALL comparison in UsedTagsNotIn.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func (r *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*models.EventType, error) {
	query :=
		`SELECT id, user_id, name, tags FROM event_type
		 WHERE id = $1 AND user_id = $2
		 `

	et := &models.EventType{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&et.ID, &et.UserID, &et.Name, pq.Array(&et.Tags))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return et, nil
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) ([]*models.EventType, error) {
	query :=
		`SELECT id, user_id, name, tags FROM event_type
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.EventType
	for rows.Next() {
		var item models.EventType
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, pq.Array(&item.Tags)); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, userID, name string, tags []string) (string, error) {
	query :=
		`INSERT INTO event_type (user_id, name, tags)
		 VALUES ($1, $2, $3::text[])
		 RETURNING id
		 `

	var id string
	if err := r.db.QueryRowContext(ctx, query, userID, name, pq.Array(tagsOrEmpty(tags))).Scan(&id); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) LockForUpdate(ctx context.Context, userID, id string) (bool, error) {
	query :=
		`SELECT id FROM event_type
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE
		 `

	var lockedID string
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *PostgresRepository) UsedTagsNotIn(ctx context.Context, userID, id string, tags []string) ([]string, error) {
	query :=
		`SELECT array(SELECT tag_row
		              FROM (SELECT DISTINCT unnest(tags) AS tag_row
		                    FROM journal_entry
		                    WHERE user_id = $1 AND event_type_id = $2) AS entry_tags
		              WHERE entry_tags.tag_row != ALL ($3::text[]))
		 `

	var used []string
	if err := r.db.QueryRowContext(ctx, query, userID, id, pq.Array(tagsOrEmpty(tags))).Scan(pq.Array(&used)); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return used, nil
}

func (r *PostgresRepository) UpdateNameAndTags(ctx context.Context, userID, id, name string, tags []string) (bool, error) {
	query :=
		`UPDATE event_type SET name = $1, tags = $2::text[]
		 WHERE id = $3 AND user_id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, name, pq.Array(tagsOrEmpty(tags)), id, userID)
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
		`DELETE FROM event_type
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

func (r *PostgresRepository) ValidateForEntry(ctx context.Context, userID, id string, tags []string) (bool, error) {
	query :=
		`SELECT id FROM event_type
		 WHERE id = $1 AND user_id = $2
		 `
	args := []any{id, userID}

	if len(tags) > 0 {
		query += ` AND $3::text[] <@ tags
		 `
		args = append(args, pq.Array(tags))
	}

	query += ` FOR UPDATE
		 `

	var validID string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&validID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}
