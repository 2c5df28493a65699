package docai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pratico/internal/onboarding/ports"
	"pratico/internal/platform/config"
)

func TestSniffFileType(t *testing.T) {
	assert.Equal(t, "pdf", SniffFileType([]byte("%PDF-1.7 rest")))
	assert.Equal(t, "jpg", SniffFileType([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Equal(t, "png", SniffFileType([]byte{0x89, 'P', 'N', 'G', 0x0D}))
	assert.Equal(t, "unknown", SniffFileType([]byte("plain text")))
	assert.Equal(t, "unknown", SniffFileType(nil))
}

func TestClassifyText(t *testing.T) {
	assert.Equal(t, ports.DocTypeIdentity, ClassifyText("república federativa... carteira de identidade"))
	assert.Equal(t, ports.DocTypeIdentity, ClassifyText("CNH válida até 2030"))
	assert.Equal(t, ports.DocTypeLicense, ClassifyText("Conselho Regional CRECI 12345"))
	assert.Equal(t, ports.DocTypeProofAddress, ClassifyText("Conta de luz - vencimento"))
	assert.Equal(t, ports.DocTypeUnknown, ClassifyText("nada reconhecível"))
}

func TestExtractDocumentUsesServiceType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/extract", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"document_type": "identity",
			"fields":        map[string]string{"nome": "Maria Silva"},
		})
	}))
	defer server.Close()

	ex := NewExtractor(config.ServiceConfig{BaseURL: server.URL, Token: "tok"})
	got, err := ex.ExtractDocument(context.Background(), []byte("%PDF raw"))
	require.NoError(t, err)
	assert.Equal(t, ports.DocTypeIdentity, got.DocumentType)
	assert.Equal(t, "Maria Silva", got.Fields["nome"])
}

func TestExtractDocumentFallsBackToKeywords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"document_type": "unknown",
			"raw_text":      "CRECI 12345 corretor de imóveis",
		})
	}))
	defer server.Close()

	ex := NewExtractor(config.ServiceConfig{BaseURL: server.URL})
	got, err := ex.ExtractDocument(context.Background(), []byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, ports.DocTypeLicense, got.DocumentType)
	assert.NotNil(t, got.Fields)
}

func TestExtractDocumentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ex := NewExtractor(config.ServiceConfig{BaseURL: server.URL})
	_, err := ex.ExtractDocument(context.Background(), []byte("raw"))
	assert.ErrorContains(t, err, "500")
}
