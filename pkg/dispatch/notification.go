package dispatch

import "context"

// Template is a resolved message template.
type Template struct {
	Type        string `json:"type" yaml:"type"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Subject     string `json:"subject" yaml:"subject"`
	Body        string `json:"body" yaml:"body"`
	Footer      string `json:"footer" yaml:"footer"`
	Locale      string `json:"locale" yaml:"locale"`
	ContentType string `json:"content_type" yaml:"content_type"`
}

// Notification is a channel-specific message produced by an Assembler.
// The dispatch handler only reads it.
type Notification struct {
	Template Template
	SendFrom string
	SendTo   string
	Subject  string
	Body     string
	Footer   string
}

// Assembler builds a Notification for an event.
//
// A nil Notification with a nil error means no notification applies to the
// event; this is not a failure. Errors are reserved for real assembly faults.
type Assembler interface {
	Assemble(ctx context.Context, ev Event, ph Placeholders) (*Notification, error)
}

// AssemblerFunc adapts an ordinary function to the Assembler interface.
type AssemblerFunc func(ctx context.Context, ev Event, ph Placeholders) (*Notification, error)

// Assemble calls f.
func (f AssemblerFunc) Assemble(ctx context.Context, ev Event, ph Placeholders) (*Notification, error) {
	return f(ctx, ev, ph)
}
