// Package docai calls the document extraction service and classifies its
// output for the onboarding flow.
package docai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pratico/internal/onboarding/ports"
	"pratico/internal/platform/config"
)

type Extractor struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewExtractor(cfg config.ServiceConfig) *Extractor {
	return &Extractor{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type extractRequest struct {
	ContentBase64 string `json:"content_base64"`
	FileType      string `json:"file_type"`
}

type extractResponse struct {
	DocumentType string            `json:"document_type"`
	Fields       map[string]string `json:"fields"`
	RawText      string            `json:"raw_text"`
}

// ExtractDocument sends raw bytes for extraction. When the service cannot
// classify the document but returns raw text, a keyword pass decides the
// type locally so a readable document is never wasted.
func (e *Extractor) ExtractDocument(ctx context.Context, raw []byte) (ports.Extraction, error) {
	payload, err := json.Marshal(extractRequest{
		ContentBase64: base64.StdEncoding.EncodeToString(raw),
		FileType:      SniffFileType(raw),
	})
	if err != nil {
		return ports.Extraction{}, fmt.Errorf("marshal extract request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/extract", bytes.NewReader(payload))
	if err != nil {
		return ports.Extraction{}, fmt.Errorf("build extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return ports.Extraction{}, fmt.Errorf("call extraction service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ports.Extraction{}, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.Extraction{}, fmt.Errorf("decode extraction response: %w", err)
	}

	docType := ports.DocumentType(out.DocumentType)
	if docType == "" || docType == ports.DocTypeUnknown {
		docType = ClassifyText(out.RawText)
	}
	fields := out.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	return ports.Extraction{DocumentType: docType, Fields: fields}, nil
}

// keyword sets keyed by document type, mirroring what the upstream OCR
// pipeline matched on.
var classifyKeywords = []struct {
	docType  ports.DocumentType
	keywords []string
}{
	{ports.DocTypeIdentity, []string{"REGISTRO GERAL", "CARTEIRA DE IDENTIDADE", "IDENTIDADE", "CARTEIRA NACIONAL DE HABILITAÇÃO", "CNH", "HABILITAÇÃO"}},
	{ports.DocTypeLicense, []string{"CRECI", "CORRETOR", "IMÓVEIS"}},
	{ports.DocTypeProofAddress, []string{"CONTA DE LUZ", "CONTA DE ÁGUA", "TELEFONE", "ENERGIA"}},
}

// ClassifyText assigns a document type from raw extracted text.
func ClassifyText(text string) ports.DocumentType {
	upper := strings.ToUpper(text)
	for _, entry := range classifyKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(upper, kw) {
				return entry.docType
			}
		}
	}
	return ports.DocTypeUnknown
}

// SniffFileType detects the container format from magic numbers.
func SniffFileType(raw []byte) string {
	switch {
	case len(raw) >= 4 && bytes.Equal(raw[:4], []byte("%PDF")):
		return "pdf"
	case len(raw) >= 3 && bytes.Equal(raw[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpg"
	case len(raw) >= 4 && bytes.Equal(raw[:4], []byte{0x89, 'P', 'N', 'G'}):
		return "png"
	}
	return "unknown"
}
