package contract

// ReminderAction is one line of the run report: what happened to one
// COI during a reminder pass.
type ReminderAction struct {
	COIID           string   `json:"coi_id"`
	SubcontractorID string   `json:"subcontractor_id"`
	Tier            string   `json:"tier"`
	EmailsSent      []string `json:"emails_sent,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// ReminderRunReport summarizes one reminder pass. Errors on individual
// records do not abort the run; they show up as actions with an Error.
type ReminderRunReport struct {
	StartedAt  string           `json:"started_at"`
	FinishedAt string           `json:"finished_at"`
	Scanned    int              `json:"scanned"`
	Actions    []ReminderAction `json:"actions"`
	Errors     int              `json:"errors"`
}
