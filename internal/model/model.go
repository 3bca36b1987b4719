package model

import "time"

const Version = "1.0"

// Run records one rules-generation pass: where the metadata came from,
// where the output went, and every rule that was emitted.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Version   string    `json:"version,omitempty"`

	MessagesPath string `json:"messages_path"`
	BugRankPath  string `json:"bugrank_path"`
	OutputPath   string `json:"output_path"`
	Encoding     string `json:"encoding"`
	NameSuffix   string `json:"name_suffix,omitempty"`

	Rules []Rule `json:"rules"`
}

// Rule is one emitted <rule> element. Priority is empty when the bug
// pattern had no bugrank entry.
type Rule struct {
	Key         string `json:"key"`
	Priority    string `json:"priority,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
