package model

import (
	"time"

	"github.com/bwillard/chorewheel/internal/cadence"
)

type Chore struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Cadence       cadence.Cadence `json:"cadence"`
	DueDate       time.Time       `json:"due_date"`
	AssignedTo    *int64          `json:"assigned_to"`
	CompletedDate *time.Time      `json:"completed_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ChoreCompletion is one entry in a chore's append-only completion history.
// CompletedBy is null only when the completing member was later deleted.
type ChoreCompletion struct {
	ID          int64     `json:"id"`
	ChoreID     int64     `json:"chore_id"`
	CompletedBy *int64    `json:"completed_by"`
	CompletedAt time.Time `json:"completed_at"`
}
