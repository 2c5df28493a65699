package evolution

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pratico/internal/onboarding/models"
	"pratico/internal/platform/config"
)

func TestSendText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(config.EvolutionConfig{
		BaseURL:  server.URL,
		APIKey:   "key-1",
		Instance: "pratico-wpp",
	})
	err := client.SendText(context.Background(), "+5511999999999", "olá")
	require.NoError(t, err)
	assert.Equal(t, "/message/sendText/pratico-wpp", gotPath)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "+5511999999999", gotBody["number"])
	assert.Equal(t, "olá", gotBody["text"])
}

func TestSendTextErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.EvolutionConfig{BaseURL: server.URL, Instance: "x"})
	err := client.SendText(context.Background(), "+5511999999999", "olá")
	assert.ErrorContains(t, err, "502")
}

func TestParseTextMessage(t *testing.T) {
	body := []byte(`{
		"event": "messages.upsert",
		"data": {
			"key": {"remoteJid": "5511999999999@s.whatsapp.net", "id": "evt-9"},
			"message": {"conversation": "CONFIRMAR"}
		}
	}`)

	phone, event, err := NewParser().Parse(body)
	require.NoError(t, err)
	assert.Equal(t, "+5511999999999", phone)
	assert.Equal(t, models.EventText, event.Type)
	assert.Equal(t, "CONFIRMAR", event.Text)
	assert.Equal(t, "evt-9", event.ExternalID)
}

func TestParseExtendedText(t *testing.T) {
	body := []byte(`{
		"event": "messages.upsert",
		"data": {
			"key": {"remoteJid": "5511999999999@s.whatsapp.net"},
			"message": {"extendedTextMessage": {"text": "NOME: Maria"}}
		}
	}`)

	_, event, err := NewParser().Parse(body)
	require.NoError(t, err)
	assert.Equal(t, "NOME: Maria", event.Text)
}

func TestParseImageMessage(t *testing.T) {
	body := []byte(`{
		"event": "messages.upsert",
		"data": {
			"key": {"remoteJid": "5511999999999@s.whatsapp.net"},
			"message": {"imageMessage": {"mediaUrl": "https://media/doc.jpg"}}
		}
	}`)

	_, event, err := NewParser().Parse(body)
	require.NoError(t, err)
	assert.Equal(t, models.EventMedia, event.Type)
	assert.Equal(t, "https://media/doc.jpg", event.MediaURL)
}

func TestParseMediaWithoutURLStillMediaEvent(t *testing.T) {
	body := []byte(`{
		"event": "messages.upsert",
		"data": {
			"key": {"remoteJid": "5511999999999@s.whatsapp.net"},
			"message": {"documentMessage": {}}
		}
	}`)

	_, event, err := NewParser().Parse(body)
	require.NoError(t, err)
	assert.Equal(t, models.EventMedia, event.Type)
	assert.Empty(t, event.MediaURL)
}

func TestParseRejectsGroupAndOtherEvents(t *testing.T) {
	_, _, err := NewParser().Parse([]byte(`{
		"event": "messages.upsert",
		"data": {"key": {"remoteJid": "123-456@g.us"}, "message": {"conversation": "oi"}}
	}`))
	assert.ErrorIs(t, err, ErrGroupMessage)

	_, _, err = NewParser().Parse([]byte(`{"event": "messages.update", "data": {}}`))
	assert.ErrorIs(t, err, ErrUnsupportedEvent)

	_, _, err = NewParser().Parse([]byte(`not json`))
	assert.Error(t, err)
}
