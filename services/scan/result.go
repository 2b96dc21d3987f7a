// Package scan validates a scanned unit and registers it in a box.
//
// A scan runs the box guard, the input schema check, the local duplicate
// check, the global duplicate check and the reference match, in that order,
// and is committed only when all of them pass. Business rejections are
// reported through Result, never as a Go error.
package scan

import (
	"dispatch-tracker/models"
	"dispatch-tracker/repositories"
	"dispatch-tracker/types"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeError   Outcome = "error"
)

// Reason is the machine readable cause of a rejection.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonBoxNotFound     Reason = "box_not_found"
	ReasonBoxNotOpen      Reason = "box_not_open"
	ReasonBoxFull         Reason = "box_full"
	ReasonInvalidInput    Reason = "invalid_input"
	ReasonLocalDuplicate  Reason = "local_duplicate"
	ReasonGlobalDuplicate Reason = "global_duplicate"
	ReasonUnverified      Reason = "reference_not_found"
	ReasonStorage         Reason = "storage_error"
)

type Request struct {
	BoxID      types.SnowflakeID `json:"box_id"`
	OperatorID uint              `json:"-"`
	Series     map[string]string `json:"series"`
}

type Result struct {
	Outcome      Outcome                   `json:"outcome"`
	Reason       Reason                    `json:"reason,omitempty"`
	Message      string                    `json:"message"`
	MatchedField string                    `json:"matched_field,omitempty"`
	Material     string                    `json:"material,omitempty"`
	Equipment    *models.Equipment         `json:"equipment,omitempty"`
	Conflict     *repositories.SeriesOwner `json:"conflict,omitempty"`
	Tried        []Candidate               `json:"tried,omitempty"`
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

func reject(reason Reason, message string) Result {
	return Result{Outcome: OutcomeError, Reason: reason, Message: message}
}
