package model

import "time"

// Status is the derived lifecycle state of a GameJam. It is never
// stored: it is recomputed from the record's dates on every read.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// StatusAt classifies the jam relative to now: upcoming before the
// start date, completed after the end date, ongoing in between
// (boundaries inclusive).
func (j GameJam) StatusAt(now time.Time) Status {
	switch {
	case now.Before(j.StartDate):
		return StatusUpcoming
	case now.After(j.EndDate):
		return StatusCompleted
	default:
		return StatusOngoing
	}
}

// FilterByStatus returns the jams that have the given status. The same
// now is used for every record, so a batch is classified consistently
// even across a status boundary.
func FilterByStatus(jams []GameJam, status Status, now time.Time) []GameJam {
	filtered := []GameJam{}
	for _, j := range jams {
		if j.StatusAt(now) == status {
			filtered = append(filtered, j)
		}
	}
	return filtered
}

// GroupByStatus splits the jams into the three lifecycle buckets,
// preserving dataset order within each bucket.
func GroupByStatus(jams []GameJam, now time.Time) map[Status][]GameJam {
	groups := map[Status][]GameJam{
		StatusUpcoming:  {},
		StatusOngoing:   {},
		StatusCompleted: {},
	}
	for _, j := range jams {
		s := j.StatusAt(now)
		groups[s] = append(groups[s], j)
	}
	return groups
}
