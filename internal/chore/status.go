package chore

import (
	"sort"
	"time"

	"github.com/bwillard/chorewheel/internal/model"
)

// View is a read-only projection of a chore relative to a viewer.
// Nothing here is persisted.
type View struct {
	model.Chore
	Active           bool `json:"active"`
	Overdue          bool `json:"overdue"`
	AssignedToViewer bool `json:"assigned_to_viewer"`
}

// dateKey reduces a timestamp to its UTC calendar date. All due-date
// comparisons are date-only; time of day never matters.
func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func buildView(c model.Chore, viewerID *int64, today time.Time) View {
	due := dateKey(c.DueDate)
	now := dateKey(today)

	return View{
		Chore:            c,
		Active:           due <= now,
		Overdue:          due < now,
		AssignedToViewer: viewerID != nil && c.AssignedTo != nil && *c.AssignedTo == *viewerID,
	}
}

// affinityRank orders chores due on the same date: the viewer's own chores
// first, then unclaimed ones, then everyone else's.
func affinityRank(v View) int {
	switch {
	case v.AssignedToViewer:
		return 0
	case v.AssignedTo == nil:
		return 1
	default:
		return 2
	}
}

// sortViews orders by due date ascending, breaking ties by assignment
// affinity. The sort is stable so equal chores keep their stored order.
func sortViews(views []View) {
	sort.SliceStable(views, func(i, j int) bool {
		di, dj := dateKey(views[i].DueDate), dateKey(views[j].DueDate)
		if di != dj {
			return di < dj
		}
		return affinityRank(views[i]) < affinityRank(views[j])
	})
}
