package evolution

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pratico/internal/onboarding/models"
	"pratico/pkg/phone"
)

var (
	// ErrUnsupportedEvent marks envelope types the onboarding flow does not
	// consume (status updates, connection events).
	ErrUnsupportedEvent = errors.New("unsupported webhook event")
	// ErrGroupMessage marks group-chat traffic, which is always ignored.
	ErrGroupMessage = errors.New("group message")
)

// envelope is the messages.upsert payload shape. Evolution has moved fields
// between data.key and data.message across versions; both spots are read.
type envelope struct {
	Event   string `json:"event"`
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Data    struct {
		Key struct {
			RemoteJID string `json:"remoteJid"`
			ID        string `json:"id"`
		} `json:"key"`
		Message struct {
			RemoteJID    string `json:"remoteJid"`
			Conversation string `json:"conversation"`

			ExtendedTextMessage *struct {
				Text string `json:"text"`
			} `json:"extendedTextMessage"`
			ImageMessage    *mediaMessage `json:"imageMessage"`
			DocumentMessage *mediaMessage `json:"documentMessage"`
		} `json:"message"`
	} `json:"data"`
}

type mediaMessage struct {
	URL      string `json:"url"`
	MediaURL string `json:"mediaUrl"`
}

func (m *mediaMessage) resolve() string {
	if m == nil {
		return ""
	}
	if m.URL != "" {
		return m.URL
	}
	return m.MediaURL
}

// Parser implements the webhook boundary's envelope parsing.
type Parser struct{}

func NewParser() *Parser { return &Parser{} }

// Parse extracts the phone and a normalized inbound event from a raw
// webhook body. Non-message events and group chats return errors the
// handler acknowledges without processing.
func (p *Parser) Parse(body []byte) (string, models.InboundEvent, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", models.InboundEvent{}, fmt.Errorf("decode webhook envelope: %w", err)
	}
	if env.Event != "messages.upsert" {
		return "", models.InboundEvent{}, fmt.Errorf("%w: %q", ErrUnsupportedEvent, env.Event)
	}

	jid := env.Data.Key.RemoteJID
	if jid == "" {
		jid = env.Data.Message.RemoteJID
	}
	if strings.Contains(jid, "@g.us") {
		return "", models.InboundEvent{}, ErrGroupMessage
	}
	number, err := phone.FromJID(jid)
	if err != nil {
		return "", models.InboundEvent{}, fmt.Errorf("parse sender jid %q: %w", jid, err)
	}

	event := models.InboundEvent{ExternalID: externalID(env)}
	if url := env.Data.Message.ImageMessage.resolve(); url != "" {
		event.Type = models.EventMedia
		event.MediaURL = url
		return number, event, nil
	}
	if url := env.Data.Message.DocumentMessage.resolve(); url != "" {
		event.Type = models.EventMedia
		event.MediaURL = url
		return number, event, nil
	}
	if env.Data.Message.ImageMessage != nil || env.Data.Message.DocumentMessage != nil {
		// Media without a resolvable URL still reaches the state machine so
		// it can re-prompt the sender.
		event.Type = models.EventMedia
		return number, event, nil
	}

	event.Type = models.EventText
	event.Text = env.Data.Message.Conversation
	if event.Text == "" && env.Data.Message.ExtendedTextMessage != nil {
		event.Text = env.Data.Message.ExtendedTextMessage.Text
	}
	return number, event, nil
}

func externalID(env envelope) string {
	if env.ID != "" {
		return env.ID
	}
	if env.EventID != "" {
		return env.EventID
	}
	return env.Data.Key.ID
}
