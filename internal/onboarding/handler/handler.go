package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pratico/internal/onboarding/models"
	"pratico/internal/onboarding/service"
	"pratico/internal/platform/middleware"
	dErrors "pratico/pkg/domain-errors"
	"pratico/pkg/platform/httputil"
	"pratico/pkg/secrets"
)

// Service is the onboarding surface the handler needs.
type Service interface {
	Start(ctx context.Context, phone string) (*models.Registration, error)
	Accept(ctx context.Context, registrationID, origin string) (*models.Registration, error)
	Status(ctx context.Context, registrationID string) (service.StatusView, error)
}

// Queue accepts inbound events for background processing.
type Queue interface {
	Enqueue(phone string, event models.InboundEvent)
}

// WebhookParser turns a provider payload into a normalized phone + event.
type WebhookParser interface {
	Parse(body []byte) (phone string, event models.InboundEvent, err error)
}

// Deduper reports whether an external event id is seen for the first time.
type Deduper interface {
	FirstSeen(ctx context.Context, externalID string) (bool, error)
}

// Handler exposes the onboarding HTTP boundary: the start endpoint, the
// chat webhook, the acceptance webhook and the status query.
type Handler struct {
	service Service
	queue   Queue
	parser  WebhookParser
	deduper Deduper
	logger  *slog.Logger

	// secretHash is the bcrypt hash of the webhook token. An empty hash
	// with secretConfigured set rejects every webhook: a token that could
	// not be hashed must not leave the endpoint open.
	secretHash       string
	secretConfigured bool
}

func New(svc Service, queue Queue, parser WebhookParser, deduper Deduper, webhookSecret string, logger *slog.Logger) *Handler {
	h := &Handler{
		service: svc,
		queue:   queue,
		parser:  parser,
		deduper: deduper,
		logger:  logger,
	}
	if webhookSecret != "" {
		h.secretConfigured = true
		hash, err := secrets.Hash(webhookSecret)
		if err != nil {
			logger.Error("failed to hash webhook token, all webhooks will be rejected",
				"error", err.Error(),
			)
		} else {
			h.secretHash = hash
		}
	}
	return h
}

// Register mounts the onboarding routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/corretor/iniciar", h.handleStart)
	r.Post("/corretor/webhook/aceite", h.handleAcceptance)
	r.Get("/corretor/status/{id}", h.handleStatus)
	r.Post("/webhooks/whatsapp", h.handleWebhook)
}

type startRequest struct {
	Phone string `json:"phone"`
}

type startResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	reg, err := h.service.Start(ctx, req.Phone)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeBadRequest) || dErrors.HasCode(err, dErrors.CodeConflict) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to start registration",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to start registration"))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, startResponse{
		ID:     reg.ID,
		Status: string(reg.Status),
	})
}

type acceptanceRequest struct {
	RegistrationID string `json:"registration_id"`
	Origin         string `json:"origin"`
}

func (h *Handler) handleAcceptance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req acceptanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	reg, err := h.service.Accept(ctx, req.RegistrationID, req.Origin)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) || dErrors.HasCode(err, dErrors.CodeConflict) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to apply acceptance",
			"request_id", requestID,
			"registration_id", req.RegistrationID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to apply acceptance"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"status": string(reg.Status),
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// handleWebhook is the tolerant boundary: after authentication, every
// payload acks 200. Malformed envelopes, group chats and duplicates are
// logged and classified internally, never surfaced as errors to the
// provider, which would only trigger redelivery storms.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if !h.authorized(r) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid webhook token"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		h.ack(w, "unreadable")
		return
	}
	phone, event, err := h.parser.Parse(body)
	if err != nil {
		h.logger.WarnContext(ctx, "ignoring unparseable webhook payload",
			"request_id", requestID,
			"error", err.Error(),
		)
		h.ack(w, "ignored")
		return
	}

	if event.ExternalID != "" && h.deduper != nil {
		first, err := h.deduper.FirstSeen(ctx, event.ExternalID)
		if err != nil {
			// Dedup store down: prefer processing a duplicate over dropping
			// a real event.
			h.logger.WarnContext(ctx, "event dedup unavailable, processing anyway",
				"request_id", requestID,
				"error", err.Error(),
			)
		} else if !first {
			httputil.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "duplicate": true})
			return
		}
	}

	h.queue.Enqueue(phone, event)
	h.ack(w, "")
}

func (h *Handler) authorized(r *http.Request) bool {
	if !h.secretConfigured {
		return true
	}
	if h.secretHash == "" {
		return false
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		if secrets.Verify(token, h.secretHash) == nil {
			return true
		}
	}
	return secrets.Verify(r.Header.Get("X-Webhook-Token"), h.secretHash) == nil
}

func (h *Handler) ack(w http.ResponseWriter, note string) {
	body := map[string]any{"ok": true}
	if note != "" {
		body[note] = true
	}
	httputil.WriteJSON(w, http.StatusOK, body)
}
