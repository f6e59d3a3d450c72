package archive

import (
	"fmt"
	"time"
)

// Kind names one of the two logical ledgers a report belongs to.
type Kind string

const (
	KindAccess   Kind = "access"
	KindPresence Kind = "presence"
)

// Report is one previously archived ledger file and the route it is served
// under.
type Report struct {
	FileName string `json:"fileName"`
	Route    string `json:"route"`
}

// Snapshot is the full contents of a ledger at archival time, already
// flattened to display rows. Oldest and Newest bound the covered period and
// determine the report file name.
type Snapshot struct {
	Title   string
	Columns []string
	Rows    [][]string
	Oldest  time.Time
	Newest  time.Time
}

// FileName derives the deterministic report name from the snapshot bounds.
func FileName(kind Kind, oldest, newest time.Time) string {
	return fmt.Sprintf("%s_%s_to_%s.pdf", kind, oldest.Format("2006-01-02"), newest.Format("2006-01-02"))
}

// RouteFor returns the retrieval route a report file is exposed under.
func RouteFor(kind Kind, fileName string) string {
	return fmt.Sprintf("/reports/archive/%s/%s", kind, fileName)
}
