package access

import "time"

// Record is one access tap at the door reader. Records are immutable once
// written; they leave the ledger only through a bulk archival purge.
type Record struct {
	ID         int64     `json:"id"`
	PersonName string    `json:"personName"`
	BadgeID    string    `json:"badgeId"`
	Granted    bool      `json:"granted"`
	OccurredOn time.Time `json:"-"`
	OccurredAt time.Time `json:"occurredAt"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
}

// Display fills the formatted date and time fields the listing endpoints
// return. Dates render as dd/mm/yyyy.
func (r Record) Display() Record {
	r.Date = r.OccurredOn.Format("02/01/2006")
	r.Time = r.OccurredAt.Format("15:04:05")
	return r
}
