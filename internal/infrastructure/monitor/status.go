package monitor

import "time"

type Status struct {
	PostgreSQL     bool      `json:"postgresql"`
	Redis          bool      `json:"redis"`
	Journal        bool      `json:"journal"`
	JournalBacklog int       `json:"journalBacklog"`
	LastCheck      time.Time `json:"lastCheck"`
}

// Healthy reports whether every dependency answered the last probe.
func (s Status) Healthy() bool {
	return s.PostgreSQL && s.Redis && s.Journal
}
