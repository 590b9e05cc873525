package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bwillard/chorewheel/internal/cadence"
	"github.com/bwillard/chorewheel/internal/model"
)

type ChoreStore struct {
	db *sql.DB
}

func NewChoreStore(db *sql.DB) *ChoreStore {
	return &ChoreStore{db: db}
}

const choreCols = `id, name, description, cadence, due_date, assigned_to, completed_date, created_at, updated_at`

func scanChore(scanner interface{ Scan(...any) error }) (*model.Chore, error) {
	var c model.Chore
	var assignedTo sql.NullInt64
	var completedDate sql.NullTime

	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.Cadence, &c.DueDate,
		&assignedTo, &completedDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if assignedTo.Valid {
		c.AssignedTo = &assignedTo.Int64
	}
	if completedDate.Valid {
		c.CompletedDate = &completedDate.Time
	}
	return &c, nil
}

func (s *ChoreStore) Create(name, description string, cad cadence.Cadence, dueDate time.Time, assignedTo *int64) (*model.Chore, error) {
	var aTo sql.NullInt64
	if assignedTo != nil {
		aTo = sql.NullInt64{Int64: *assignedTo, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO chores (name, description, cadence, due_date, assigned_to) VALUES (?, ?, ?, ?, ?)`,
		name, description, string(cad), dueDate.UTC(), aTo,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chore: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChoreStore) GetByID(id int64) (*model.Chore, error) {
	row := s.db.QueryRow(`SELECT `+choreCols+` FROM chores WHERE id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	return c, nil
}

func (s *ChoreStore) List() ([]model.Chore, error) {
	rows, err := s.db.Query(`SELECT ` + choreCols + ` FROM chores ORDER BY due_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

// Update rewrites the editable fields of a chore. Completion state
// (completed_date, history) is untouched.
func (s *ChoreStore) Update(id int64, name, description string, cad cadence.Cadence, dueDate time.Time) (*model.Chore, error) {
	_, err := s.db.Exec(
		`UPDATE chores SET name = ?, description = ?, cadence = ?, due_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, description, string(cad), dueDate.UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChoreStore) SetAssignee(id int64, assignedTo *int64) (*model.Chore, error) {
	var aTo sql.NullInt64
	if assignedTo != nil {
		aTo = sql.NullInt64{Int64: *assignedTo, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE chores SET assigned_to = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		aTo, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set assignee: %w", err)
	}
	return s.GetByID(id)
}

// Complete records a completion in a single transaction: it appends a history
// row, stamps completed_date, advances due_date from the cadence stored on the
// chore at this moment, and clears the assignment. SQLite serializes writers,
// so concurrent completes each land their own history row and the last due date
// recompute wins against a consistent prior state.
//
// Returns (nil, nil) if the chore does not exist.
func (s *ChoreStore) Complete(id int64, completedBy int64, now time.Time) (*model.Chore, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var cad cadence.Cadence
	err = tx.QueryRow(`SELECT cadence FROM chores WHERE id = ?`, id).Scan(&cad)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cadence: %w", err)
	}

	now = now.UTC()
	nextDue := cadence.NextDueDate(now, cad)

	if _, err := tx.Exec(
		`INSERT INTO chore_completions (chore_id, completed_by, completed_at) VALUES (?, ?, ?)`,
		id, completedBy, now,
	); err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}

	if _, err := tx.Exec(
		`UPDATE chores SET completed_date = ?, due_date = ?, assigned_to = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		now, nextDue, id,
	); err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a chore and, via FK cascade, its completion history.
func (s *ChoreStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM chores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chore: %w", err)
	}
	return nil
}

const completionCols = `id, chore_id, completed_by, completed_at`

func scanCompletion(scanner interface{ Scan(...any) error }) (*model.ChoreCompletion, error) {
	var c model.ChoreCompletion
	var completedBy sql.NullInt64

	err := scanner.Scan(&c.ID, &c.ChoreID, &completedBy, &c.CompletedAt)
	if err != nil {
		return nil, err
	}

	if completedBy.Valid {
		c.CompletedBy = &completedBy.Int64
	}
	return &c, nil
}

// ListCompletions returns a chore's history newest-first. Storage order is
// append-only; the sort here is presentation only.
func (s *ChoreStore) ListCompletions(choreID int64) ([]model.ChoreCompletion, error) {
	rows, err := s.db.Query(
		`SELECT `+completionCols+` FROM chore_completions WHERE chore_id = ? ORDER BY completed_at DESC, id DESC`,
		choreID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var completions []model.ChoreCompletion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}
