package audit

import "time"

// Event is emitted from onboarding logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	RegistrationID string    `json:"registration_id"`
	Phone          string    `json:"phone"`
	Action         string    `json:"action"`
	FromStatus     string    `json:"from_status,omitempty"`
	ToStatus       string    `json:"to_status,omitempty"`
	Reason         string    `json:"reason,omitempty"`
}

// Actions recorded by the onboarding flow.
const (
	ActionStarted        = "registration_started"
	ActionTransition     = "status_transition"
	ActionDocumentStored = "document_stored"
	ActionBatchCompleted = "batch_completed"
	ActionCorrection     = "field_corrected"
	ActionFinalizeFailed = "finalize_failed"
	ActionAccepted       = "contract_accepted"
)
