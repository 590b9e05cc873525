package chore

import (
	"testing"
	"time"

	"github.com/bwillard/chorewheel/internal/model"
)

func ptr(id int64) *int64 { return &id }

func TestBuildViewDueClassification(t *testing.T) {
	today := time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		due     time.Time
		active  bool
		overdue bool
	}{
		{"due yesterday", time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), true, true},
		{"due today", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), true, false},
		{"due today later hour", time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC), true, false},
		{"due tomorrow", time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := buildView(model.Chore{DueDate: tt.due}, nil, today)
			if v.Active != tt.active {
				t.Errorf("Active = %v, want %v", v.Active, tt.active)
			}
			if v.Overdue != tt.overdue {
				t.Errorf("Overdue = %v, want %v", v.Overdue, tt.overdue)
			}
		})
	}
}

func TestBuildViewAssignedToViewer(t *testing.T) {
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	c := model.Chore{DueDate: today, AssignedTo: ptr(7)}

	if v := buildView(c, ptr(7), today); !v.AssignedToViewer {
		t.Error("expected AssignedToViewer for matching viewer")
	}
	if v := buildView(c, ptr(8), today); v.AssignedToViewer {
		t.Error("expected not AssignedToViewer for other viewer")
	}
	if v := buildView(c, nil, today); v.AssignedToViewer {
		t.Error("expected not AssignedToViewer without a viewer")
	}
}

func TestSortViewsTieBreak(t *testing.T) {
	today := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	viewer := ptr(1)

	mine := buildView(model.Chore{ID: 10, DueDate: due, AssignedTo: ptr(1)}, viewer, today)
	unclaimed := buildView(model.Chore{ID: 11, DueDate: due}, viewer, today)
	other := buildView(model.Chore{ID: 12, DueDate: due, AssignedTo: ptr(2)}, viewer, today)

	views := []View{other, unclaimed, mine}
	sortViews(views)

	want := []int64{10, 11, 12}
	for i, id := range want {
		if views[i].ID != id {
			t.Errorf("views[%d].ID = %d, want %d", i, views[i].ID, id)
		}
	}
}

func TestSortViewsDueDateBeforeAffinity(t *testing.T) {
	today := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	viewer := ptr(1)

	// An earlier due date always wins, even against the viewer's own chore.
	mineLater := buildView(model.Chore{
		ID: 1, DueDate: time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), AssignedTo: ptr(1),
	}, viewer, today)
	othersSooner := buildView(model.Chore{
		ID: 2, DueDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), AssignedTo: ptr(2),
	}, viewer, today)

	views := []View{mineLater, othersSooner}
	sortViews(views)

	if views[0].ID != 2 || views[1].ID != 1 {
		t.Errorf("got order [%d %d], want [2 1]", views[0].ID, views[1].ID)
	}
}

func TestSortViewsDateOnlyComparison(t *testing.T) {
	today := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	viewer := ptr(1)

	// Same calendar date at different hours is a tie; affinity decides.
	other := buildView(model.Chore{
		ID: 1, DueDate: time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC), AssignedTo: ptr(2),
	}, viewer, today)
	mine := buildView(model.Chore{
		ID: 2, DueDate: time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC), AssignedTo: ptr(1),
	}, viewer, today)

	views := []View{other, mine}
	sortViews(views)

	if views[0].ID != 2 {
		t.Errorf("expected viewer's chore first despite later hour, got ID %d", views[0].ID)
	}
}
