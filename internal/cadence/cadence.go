package cadence

import (
	"fmt"
	"strings"
	"time"
)

// Cadence is a fixed recurrence interval for a chore.
type Cadence string

const (
	Daily     Cadence = "daily"
	Weekly    Cadence = "weekly"
	Biweekly  Cadence = "biweekly"
	Monthly   Cadence = "monthly"
	Quarterly Cadence = "quarterly"
	Annually  Cadence = "annually"
)

// dayCounts maps each cadence to the number of calendar days between
// a completion and the next due date.
var dayCounts = map[Cadence]int{
	Daily:     1,
	Weekly:    7,
	Biweekly:  14,
	Monthly:   30,
	Quarterly: 90,
	Annually:  365,
}

// Values returns all cadences in interval order.
func Values() []Cadence {
	return []Cadence{Daily, Weekly, Biweekly, Monthly, Quarterly, Annually}
}

// Parse converts a string into a Cadence. Matching is case-insensitive
// and ignores surrounding whitespace.
func Parse(s string) (Cadence, error) {
	c := Cadence(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := dayCounts[c]; !ok {
		var names []string
		for _, v := range Values() {
			names = append(names, string(v))
		}
		return "", fmt.Errorf("unknown cadence %q (must be one of: %s)", s, strings.Join(names, ", "))
	}
	return c, nil
}

// Valid reports whether s names a known cadence.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Days returns the day count for a cadence. Unknown cadences return 0;
// callers validate with Parse before storing one.
func (c Cadence) Days() int {
	return dayCounts[c]
}

// NextDueDate returns the due date that follows a completion at the given
// time: the completion date plus the cadence's day count. Addition is by
// calendar days, so month ends, leap days, and DST transitions advance
// the date rather than a fixed number of hours.
func NextDueDate(completedAt time.Time, c Cadence) time.Time {
	return completedAt.AddDate(0, 0, c.Days())
}

// Describe returns a human-readable label for the cadence.
func (c Cadence) Describe() string {
	switch c {
	case Daily:
		return "Repeats daily"
	case Weekly:
		return "Repeats weekly"
	case Biweekly:
		return "Repeats every 2 weeks"
	case Monthly:
		return "Repeats monthly"
	case Quarterly:
		return "Repeats quarterly"
	case Annually:
		return "Repeats annually"
	}
	return ""
}
