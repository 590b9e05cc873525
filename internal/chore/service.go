// Package chore owns the chore lifecycle: creation, partial edits,
// claim/unclaim, completion, and deletion. All validation happens here;
// the store layer is trusted to persist whatever it is handed.
package chore

import (
	"strings"
	"time"

	"github.com/bwillard/chorewheel/internal/cadence"
	"github.com/bwillard/chorewheel/internal/model"
	"github.com/bwillard/chorewheel/internal/store"
)

type Service struct {
	chores  *store.ChoreStore
	members *store.MemberStore

	// now is swappable in tests
	now func() time.Time
}

func NewService(chores *store.ChoreStore, members *store.MemberStore) *Service {
	return &Service{
		chores:  chores,
		members: members,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name        string
	Description string
	Cadence     string
	DueDate     string
	AssignedTo  *int64
}

// EditInput carries a partial update: nil fields are left untouched.
type EditInput struct {
	Name        *string
	Description *string
	Cadence     *string
	DueDate     *string
}

// dueDateFormats are accepted for due date input, tried in order.
var dueDateFormats = []string{"2006-01-02", time.RFC3339}

func parseDueDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dueDateFormats {
		var t time.Time
		if t, err = time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func (s *Service) Create(in CreateInput) (*model.Chore, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("name", "name is required")
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, validationErr("description", "description is required")
	}

	cad, err := cadence.Parse(in.Cadence)
	if err != nil {
		return nil, validationErr("cadence", "%v", err)
	}

	dueDate, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, validationErr("due_date", "a valid due date is required")
	}

	if in.AssignedTo != nil {
		if err := s.requireMember(*in.AssignedTo, "assigned_to"); err != nil {
			return nil, err
		}
	}

	chore, err := s.chores.Create(name, description, cad, dueDate, in.AssignedTo)
	if err != nil {
		return nil, storageErr("create chore", err)
	}
	return chore, nil
}

// Edit applies a partial update all-or-nothing: every supplied field is
// validated before any of them is written, so a bad field never leaves the
// chore half-updated.
func (s *Service) Edit(id int64, in EditInput) (*model.Chore, error) {
	existing, err := s.chores.GetByID(id)
	if err != nil {
		return nil, storageErr("get chore", err)
	}
	if existing == nil {
		return nil, &NotFoundError{Kind: "chore", ID: id}
	}

	name := existing.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validationErr("name", "name cannot be empty")
		}
	}

	description := existing.Description
	if in.Description != nil {
		description = strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, validationErr("description", "description cannot be empty")
		}
	}

	cad := existing.Cadence
	if in.Cadence != nil {
		cad, err = cadence.Parse(*in.Cadence)
		if err != nil {
			return nil, validationErr("cadence", "%v", err)
		}
	}

	dueDate := existing.DueDate
	if in.DueDate != nil {
		dueDate, err = parseDueDate(*in.DueDate)
		if err != nil {
			return nil, validationErr("due_date", "invalid due date")
		}
	}

	chore, err := s.chores.Update(id, name, description, cad, dueDate)
	if err != nil {
		return nil, storageErr("update chore", err)
	}
	return chore, nil
}

// Assign claims the chore for a member, or unclaims it when memberID is nil.
// Assigning to the current holder, or unclaiming an unclaimed chore, is a no-op.
func (s *Service) Assign(id int64, memberID *int64) (*model.Chore, error) {
	existing, err := s.chores.GetByID(id)
	if err != nil {
		return nil, storageErr("get chore", err)
	}
	if existing == nil {
		return nil, &NotFoundError{Kind: "chore", ID: id}
	}

	if memberID != nil {
		if err := s.requireMember(*memberID, "member_id"); err != nil {
			return nil, err
		}
	}

	if sameAssignee(existing.AssignedTo, memberID) {
		return existing, nil
	}

	chore, err := s.chores.SetAssignee(id, memberID)
	if err != nil {
		return nil, storageErr("set assignee", err)
	}
	return chore, nil
}

func sameAssignee(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Complete records a completion: it stamps the completion date, appends a
// history entry, advances the due date from the cadence in effect right now,
// and returns the chore to unclaimed. Completing twice is deliberately not
// idempotent, so a missed day can be entered after the fact.
func (s *Service) Complete(id int64, completedBy *int64) (*model.Chore, error) {
	if completedBy == nil {
		return nil, validationErr("completed_by", "member is required to complete a chore")
	}
	if err := s.requireMember(*completedBy, "completed_by"); err != nil {
		return nil, err
	}

	chore, err := s.chores.Complete(id, *completedBy, s.now())
	if err != nil {
		return nil, storageErr("complete chore", err)
	}
	if chore == nil {
		return nil, &NotFoundError{Kind: "chore", ID: id}
	}
	return chore, nil
}

// Delete permanently removes a chore and its history.
func (s *Service) Delete(id int64) error {
	existing, err := s.chores.GetByID(id)
	if err != nil {
		return storageErr("get chore", err)
	}
	if existing == nil {
		return &NotFoundError{Kind: "chore", ID: id}
	}
	if err := s.chores.Delete(id); err != nil {
		return storageErr("delete chore", err)
	}
	return nil
}

// History returns a chore's completion history newest-first.
func (s *Service) History(id int64) ([]model.ChoreCompletion, error) {
	existing, err := s.chores.GetByID(id)
	if err != nil {
		return nil, storageErr("get chore", err)
	}
	if existing == nil {
		return nil, &NotFoundError{Kind: "chore", ID: id}
	}
	completions, err := s.chores.ListCompletions(id)
	if err != nil {
		return nil, storageErr("list completions", err)
	}
	return completions, nil
}

// List returns all chores as viewer-relative projections in display order.
func (s *Service) List(viewerID *int64) ([]View, error) {
	chores, err := s.chores.List()
	if err != nil {
		return nil, storageErr("list chores", err)
	}

	today := s.now()
	views := make([]View, 0, len(chores))
	for _, c := range chores {
		views = append(views, buildView(c, viewerID, today))
	}
	sortViews(views)
	return views, nil
}

func (s *Service) CreateMember(name string) (*model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("name", "name is required")
	}
	member, err := s.members.Create(name)
	if err != nil {
		return nil, storageErr("create member", err)
	}
	return member, nil
}

func (s *Service) ListMembers() ([]model.Member, error) {
	members, err := s.members.List()
	if err != nil {
		return nil, storageErr("list members", err)
	}
	return members, nil
}

// DeleteMember removes a member. Their claimed chores return to unclaimed and
// their history entries lose the member reference; history rows are kept.
func (s *Service) DeleteMember(id int64) error {
	existing, err := s.members.GetByID(id)
	if err != nil {
		return storageErr("get member", err)
	}
	if existing == nil {
		return &NotFoundError{Kind: "member", ID: id}
	}
	if err := s.members.Delete(id); err != nil {
		return storageErr("delete member", err)
	}
	return nil
}

// requireMember rejects member ids that do not resolve to an existing member.
func (s *Service) requireMember(id int64, field string) error {
	member, err := s.members.GetByID(id)
	if err != nil {
		return storageErr("get member", err)
	}
	if member == nil {
		return validationErr(field, "member %d not found", id)
	}
	return nil
}
