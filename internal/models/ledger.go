package models

// ActionKey identifies one ledger counter.
type ActionKey struct {
	Email  string
	Action int
}

// LedgerEntry is a cumulative count of how often a user picked an action.
type LedgerEntry struct {
	Email  string `json:"email"`
	Action int    `json:"action"`
	Count  int    `json:"count"`
}

// ActionTotal is the count for one action summed across all users.
type ActionTotal struct {
	Action int `json:"action"`
	Count  int `json:"count"`
}

// Report is the read-only usage summary derived from the ledger and directory.
type Report struct {
	Entries    []LedgerEntry `json:"entries"`
	Totals     []ActionTotal `json:"totals"`
	TotalUsers int           `json:"total_users"`
}
