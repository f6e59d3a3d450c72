package access

import "errors"

// ErrNoRecords signals a read against an empty ledger, not a storage failure.
var ErrNoRecords = errors.New("access ledger has no records")
