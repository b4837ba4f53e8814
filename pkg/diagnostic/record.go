package diagnostic

import (
	"fmt"
	"time"
)

// ResultStatus is the outcome reported by a diagnostic record.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "SUCCESS"
	StatusFailed  ResultStatus = "FAILED"
)

// DetailLevel tells consumers who the record is meant for.
type DetailLevel string

const (
	DetailApplication    DetailLevel = "APPLICATION"
	DetailInternalSystem DetailLevel = "INTERNAL_SYSTEM"
)

// Record describes a single decision taken by a component.
type Record struct {
	ID            string            `json:"id"`
	Component     string            `json:"component"`
	Action        string            `json:"action"`
	Inputs        map[string]string `json:"inputs,omitempty"`
	ResultStatus  ResultStatus      `json:"result_status"`
	ResultMessage string            `json:"result_message,omitempty"`
	DetailLevel   DetailLevel       `json:"detail_level"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Validate checks the fields every sink relies on.
func (r Record) Validate() error {
	if r.Component == "" {
		return fmt.Errorf("%w: component is required", ErrInvalidRecord)
	}
	if r.Action == "" {
		return fmt.Errorf("%w: action is required", ErrInvalidRecord)
	}
	return nil
}
