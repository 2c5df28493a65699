package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pratico/internal/onboarding/models"
	"pratico/internal/onboarding/service"
	dErrors "pratico/pkg/domain-errors"
)

type fakeService struct {
	startReg  *models.Registration
	startErr  error
	acceptErr error
	view      service.StatusView
	viewErr   error
}

func (f *fakeService) Start(_ context.Context, _ string) (*models.Registration, error) {
	return f.startReg, f.startErr
}

func (f *fakeService) Accept(_ context.Context, _, _ string) (*models.Registration, error) {
	if f.acceptErr != nil {
		return nil, f.acceptErr
	}
	return &models.Registration{Status: models.StatusActive}, nil
}

func (f *fakeService) Status(_ context.Context, _ string) (service.StatusView, error) {
	return f.view, f.viewErr
}

type fakeQueue struct {
	phones []string
	events []models.InboundEvent
}

func (q *fakeQueue) Enqueue(phone string, event models.InboundEvent) {
	q.phones = append(q.phones, phone)
	q.events = append(q.events, event)
}

type fakeParser struct {
	phone string
	event models.InboundEvent
	err   error
}

func (p *fakeParser) Parse(_ []byte) (string, models.InboundEvent, error) {
	return p.phone, p.event, p.err
}

type fakeDeduper struct {
	first bool
	err   error
}

func (d *fakeDeduper) FirstSeen(_ context.Context, _ string) (bool, error) {
	return d.first, d.err
}

func testTime() time.Time {
	return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
}

func newRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleStart(t *testing.T) {
	reg := models.NewRegistration("+5511999999999", testTime())
	svc := &fakeService{startReg: reg}
	h := New(svc, &fakeQueue{}, &fakeParser{}, nil, "", slog.Default())
	r := newRouter(h)

	rec := doJSON(t, r, http.MethodPost, "/corretor/iniciar", map[string]string{"phone": "+5511999999999"}, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, reg.ID, resp["id"])
	assert.Equal(t, "aguardando_doc1", resp["status"])
}

func TestHandleStartBadPhone(t *testing.T) {
	svc := &fakeService{startErr: dErrors.New(dErrors.CodeBadRequest, "invalid phone number")}
	h := New(svc, &fakeQueue{}, &fakeParser{}, nil, "", slog.Default())

	rec := doJSON(t, newRouter(h), http.MethodPost, "/corretor/iniciar", map[string]string{"phone": "nope"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad_request")
}

func TestWebhookRequiresToken(t *testing.T) {
	h := New(&fakeService{}, &fakeQueue{}, &fakeParser{}, nil, "s3cret", slog.Default())
	r := newRouter(h)

	rec := doJSON(t, r, http.MethodPost, "/webhooks/whatsapp", map[string]string{}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/webhooks/whatsapp", map[string]string{},
		map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/webhooks/whatsapp", map[string]string{},
		map[string]string{"Authorization": "Bearer s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/webhooks/whatsapp", map[string]string{},
		map[string]string{"X-Webhook-Token": "s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookEnqueuesParsedEvent(t *testing.T) {
	queue := &fakeQueue{}
	parser := &fakeParser{
		phone: "+5511999999999",
		event: models.InboundEvent{Type: models.EventText, Text: "oi"},
	}
	h := New(&fakeService{}, queue, parser, nil, "", slog.Default())

	rec := doJSON(t, newRouter(h), http.MethodPost, "/webhooks/whatsapp", map[string]string{"any": "thing"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, queue.events, 1)
	assert.Equal(t, "+5511999999999", queue.phones[0])
	assert.Equal(t, "oi", queue.events[0].Text)
}

func TestWebhookAcksMalformedPayload(t *testing.T) {
	queue := &fakeQueue{}
	parser := &fakeParser{err: errors.New("not an envelope")}
	h := New(&fakeService{}, queue, parser, nil, "", slog.Default())

	rec := doJSON(t, newRouter(h), http.MethodPost, "/webhooks/whatsapp", "garbage", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
	assert.Empty(t, queue.events)
}

func TestWebhookDeduplicates(t *testing.T) {
	queue := &fakeQueue{}
	parser := &fakeParser{
		phone: "+5511999999999",
		event: models.InboundEvent{Type: models.EventText, Text: "oi", ExternalID: "evt-1"},
	}
	h := New(&fakeService{}, queue, parser, &fakeDeduper{first: false}, "", slog.Default())

	rec := doJSON(t, newRouter(h), http.MethodPost, "/webhooks/whatsapp", map[string]string{}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"duplicate":true`)
	assert.Empty(t, queue.events)
}

func TestWebhookProcessesWhenDedupDown(t *testing.T) {
	queue := &fakeQueue{}
	parser := &fakeParser{
		phone: "+5511999999999",
		event: models.InboundEvent{Type: models.EventText, Text: "oi", ExternalID: "evt-1"},
	}
	h := New(&fakeService{}, queue, parser, &fakeDeduper{err: errors.New("redis down")}, "", slog.Default())

	rec := doJSON(t, newRouter(h), http.MethodPost, "/webhooks/whatsapp", map[string]string{}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, queue.events, 1)
}

func TestHandleAcceptance(t *testing.T) {
	h := New(&fakeService{}, &fakeQueue{}, &fakeParser{}, nil, "", slog.Default())

	rec := doJSON(t, newRouter(h), http.MethodPost, "/corretor/webhook/aceite",
		map[string]string{"registration_id": "abc12345", "origin": "203.0.113.7"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ativo")
}

func TestHandleAcceptanceNotFound(t *testing.T) {
	svc := &fakeService{acceptErr: dErrors.New(dErrors.CodeNotFound, "registration not found")}
	h := New(svc, &fakeQueue{}, &fakeParser{}, nil, "", slog.Default())

	rec := doJSON(t, newRouter(h), http.MethodPost, "/corretor/webhook/aceite",
		map[string]string{"registration_id": "missing"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStatus(t *testing.T) {
	svc := &fakeService{view: service.StatusView{
		ID:       "abc12345",
		Status:   "aguardando_correcoes",
		Progress: 40,
		Pending:  []string{"nome"},
	}}
	h := New(svc, &fakeQueue{}, &fakeParser{}, nil, "", slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/corretor/status/abc12345", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aguardando_correcoes")
}
