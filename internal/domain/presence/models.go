package presence

import "time"

// Record is one presence interval: a person's entry tap on a given day and,
// once the matching exit tap arrives, the exit time and validity. The exit
// fields stay nil while the interval is open.
type Record struct {
	ID         int64      `json:"id"`
	PersonName string     `json:"personName"`
	Day        time.Time  `json:"-"`
	EnteredAt  time.Time  `json:"enteredAt"`
	EntryValid bool       `json:"entryValid"`
	ExitedAt   *time.Time `json:"exitedAt,omitempty"`
	ExitValid  *bool      `json:"exitValid,omitempty"`
	Date       string     `json:"date"`
	EntryTime  string     `json:"entryTime"`
	ExitTime   string     `json:"exitTime,omitempty"`
}

// Open reports whether the interval still waits for its exit tap.
func (r Record) Open() bool {
	return r.ExitedAt == nil
}

// Display fills the formatted date and time fields returned by listings.
func (r Record) Display() Record {
	r.Date = r.Day.Format("02/01/2006")
	r.EntryTime = r.EnteredAt.Format("15:04:05")
	if r.ExitedAt != nil {
		r.ExitTime = r.ExitedAt.Format("15:04:05")
	}
	return r
}

// TapKind tells a caller which side of the interval a tap resolved to.
type TapKind string

const (
	TapEntry TapKind = "entry"
	TapExit  TapKind = "exit"
)
