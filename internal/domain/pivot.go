package domain

import (
	"time"

	"github.com/google/uuid"
)

// PivotTriggerConsensus tags pivot log entries committed after the group
// agreed to swap an activity.
const PivotTriggerConsensus = "user_consensus"

// PivotLog is an append-only audit record of a committed pivot.
// PreviousActivityID references the activity that was rewritten in place;
// NewActivityID is set only when the replacement got its own identity
// (the in-place rewrite path leaves it nil).
type PivotLog struct {
	ID                 uuid.UUID  `json:"id"`
	TripID             uuid.UUID  `json:"tripId"`
	PreviousActivityID *uuid.UUID `json:"previousActivityId,omitempty"`
	NewActivityID      *uuid.UUID `json:"newActivityId,omitempty"`
	Reason             string     `json:"reason,omitempty"`
	TriggeredBy        string     `json:"triggeredBy"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// PivotContext is the situational input a caller supplies when requesting a
// pivot proposal. It is forwarded to the generator when no pre-planned
// shadow option exists.
type PivotContext struct {
	Location        string  `json:"location"`
	Time            string  `json:"time"`
	BudgetRemaining float64 `json:"budgetRemaining"`
	GroupMood       string  `json:"groupMood"`
}

// ProposedActivity is the replacement the pivot engine offers: either the
// user-visible fields of an existing shadow option, or a fresh suggestion
// from the generator. Confirming a pivot applies these fields to the
// original activity record.
type ProposedActivity struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Cost        float64 `json:"cost"`
	Duration    string  `json:"duration"`
}

// PivotProposal is the result of the Idle → Proposed transition. It has no
// persisted state: a proposal that is never confirmed simply expires with
// the response.
type PivotProposal struct {
	Proposal     string           `json:"proposal"`
	NewActivity  ProposedActivity `json:"newActivity"`
	IsPrePlanned bool             `json:"isPrePlanned"`
}
