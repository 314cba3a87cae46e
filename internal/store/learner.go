package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gradusapp/gradus/internal/learner"
	"github.com/gradusapp/gradus/internal/sequencer"
)

// LearnerRepo persists learner models as validated JSON documents. It
// implements the engine's Repository contract.
type LearnerRepo struct {
	db *sql.DB
}

// Load fetches a learner model by ID. A missing record is a
// *sequencer.NotFoundError, not a database error.
func (r *LearnerRepo) Load(ctx context.Context, learnerID string) (*learner.Model, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM learner_model WHERE id = ?`, learnerID,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &sequencer.NotFoundError{Resource: "learner", ID: learnerID}
	}
	if err != nil {
		return nil, fmt.Errorf("query learner model: %w", err)
	}

	var m learner.Model
	if err := json.Unmarshal([]byte(doc), &m); err != nil {
		return nil, fmt.Errorf("decode learner document %s: %w", learnerID, err)
	}
	return &m, nil
}

// Save upserts a learner model. The document is validated against the
// learner schema before it is written.
func (r *LearnerRepo) Save(ctx context.Context, m *learner.Model) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode learner document: %w", err)
	}

	if err := validateLearnerDocument(doc); err != nil {
		return fmt.Errorf("learner document %s: %w", m.ID, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO learner_model (id, document, created_ts, updated_ts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			updated_ts = excluded.updated_ts`,
		m.ID, string(doc), m.CreatedAt.Unix(), m.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save learner model: %w", err)
	}
	return nil
}

// List returns all stored learner models, ordered by creation time.
func (r *LearnerRepo) List(ctx context.Context) ([]*learner.Model, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT document FROM learner_model ORDER BY created_ts ASC`)
	if err != nil {
		return nil, fmt.Errorf("query learner models: %w", err)
	}
	defer rows.Close()

	var list []*learner.Model
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan learner document: %w", err)
		}
		var m learner.Model
		if err := json.Unmarshal([]byte(doc), &m); err != nil {
			return nil, fmt.Errorf("decode learner document: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete removes a learner model. Deleting an absent learner is a
// *sequencer.NotFoundError.
func (r *LearnerRepo) Delete(ctx context.Context, learnerID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM learner_model WHERE id = ?`, learnerID)
	if err != nil {
		return fmt.Errorf("delete learner model: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return &sequencer.NotFoundError{Resource: "learner", ID: learnerID}
	}
	return nil
}
