package models

// EventType classifies an inbound chat event after gateway parsing.
type EventType string

const (
	// EventMedia is an image or document message carrying a media URL.
	EventMedia EventType = "media"
	// EventText is a plain text message.
	EventText EventType = "text"
	// EventAcceptance is an explicit acceptance signal carrying an origin
	// marker (the acceptance webhook, or the chat keyword).
	EventAcceptance EventType = "acceptance"
)

// InboundEvent is what the state machine dispatches on. ExternalID, when the
// provider sends one, deduplicates webhook redeliveries.
type InboundEvent struct {
	Type       EventType
	Text       string
	MediaURL   string
	Origin     string
	ExternalID string
}
