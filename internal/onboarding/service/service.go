package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pratico/internal/audit"
	"pratico/internal/onboarding/locks"
	"pratico/internal/onboarding/metrics"
	"pratico/internal/onboarding/models"
	"pratico/internal/onboarding/ports"
	"pratico/internal/onboarding/store"
	dErrors "pratico/pkg/domain-errors"
	"pratico/pkg/phone"
	"pratico/pkg/platform/sentinel"
)

// AuditPublisher records lifecycle events. Emitting never blocks the flow.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service is the onboarding state machine. Every mutation runs under the
// registration's lock and goes through the transition table; the status
// column stays the single source of truth for what happens next.
type Service struct {
	store     store.Store
	locker    locks.Locker
	messenger ports.Messenger
	fetcher   ports.MediaFetcher
	extractor ports.DocumentExtractor
	validator ports.LicenseValidator
	payments  ports.PaymentProvisioner
	contracts ports.ContractRenderer
	scheduler ports.BatchScheduler

	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.audit = publisher }
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Deps bundles the collaborator ports so New keeps a readable signature.
type Deps struct {
	Store     store.Store
	Locker    locks.Locker
	Messenger ports.Messenger
	Fetcher   ports.MediaFetcher
	Extractor ports.DocumentExtractor
	Validator ports.LicenseValidator
	Payments  ports.PaymentProvisioner
	Contracts ports.ContractRenderer
	Scheduler ports.BatchScheduler
}

func New(deps Deps, opts ...Option) *Service {
	s := &Service{
		store:     deps.Store,
		locker:    deps.Locker,
		messenger: deps.Messenger,
		fetcher:   deps.Fetcher,
		extractor: deps.Extractor,
		validator: deps.Validator,
		payments:  deps.Payments,
		contracts: deps.Contracts,
		scheduler: deps.Scheduler,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates a registration in the initial state and sends the first
// document prompt. A phone that already has a non-terminal registration is a
// conflict; the caller decides whether to surface or re-prompt.
func (s *Service) Start(ctx context.Context, rawPhone string) (*models.Registration, error) {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid phone number")
	}

	reg := models.NewRegistration(normalized, s.now())
	if err := s.store.Create(ctx, reg); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "phone already has an active registration")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to create registration", err)
	}

	if s.metrics != nil {
		s.metrics.RegistrationsStarted.Inc()
	}
	s.emitAudit(ctx, audit.Event{
		RegistrationID: reg.ID,
		Phone:          reg.Phone,
		Action:         audit.ActionStarted,
		ToStatus:       string(reg.Status),
	})
	s.send(ctx, reg.Phone, msgWelcome)

	s.logger.InfoContext(ctx, "registration started",
		"registration_id", reg.ID,
		"phone", reg.Phone,
	)
	return reg, nil
}

// OnInboundEvent dispatches one chat event against the phone's active
// registration. An event type the current status does not accept is an
// out-of-band message: acknowledged, logged, no transition.
func (s *Service) OnInboundEvent(ctx context.Context, rawPhone string, event models.InboundEvent) error {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid phone number")
	}
	if s.metrics != nil {
		s.metrics.IncrementInboundEvent(string(event.Type))
	}

	reg, err := s.store.FindActiveByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.send(ctx, normalized, msgPleaseStart)
			return dErrors.New(dErrors.CodeNotFound, "no active registration for phone")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "failed to look up registration", err)
	}

	release, err := s.locker.Acquire(ctx, reg.ID)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailable, "failed to lock registration", err)
	}
	defer release()

	// Reload under the lock; a concurrent delivery may have advanced state.
	reg, err = s.store.Get(ctx, reg.ID)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "failed to reload registration", err)
	}
	if reg.Status.Terminal() {
		s.logger.InfoContext(ctx, "event for terminal registration ignored",
			"registration_id", reg.ID,
			"status", reg.Status,
		)
		return nil
	}
	reg.EventSeq++

	return s.dispatch(ctx, reg, event)
}

func (s *Service) dispatch(ctx context.Context, reg *models.Registration, event models.InboundEvent) error {
	switch reg.Status {
	case models.StatusAwaitingDoc1:
		return s.handleDocument(ctx, reg, event, models.DocIdentity, models.StatusAwaitingDoc2, msgPromptDoc2)
	case models.StatusAwaitingDoc2:
		return s.handleDocument(ctx, reg, event, models.DocLicense, models.StatusAwaitingAddressChoice, msgPromptAddressChoice)
	case models.StatusAwaitingDoc3:
		return s.handleDocument(ctx, reg, event, models.DocAddress, models.StatusAwaitingMaritalStatus, msgPromptMaritalStatus)
	case models.StatusAwaitingAddressChoice:
		return s.handleAddressChoice(ctx, reg, event)
	case models.StatusAwaitingAddressTyped:
		return s.handleAddressTyped(ctx, reg, event)
	case models.StatusAwaitingMaritalStatus:
		return s.handleMaritalStatus(ctx, reg, event)
	case models.StatusProcessing:
		return s.outOfBand(ctx, reg, event)
	case models.StatusAwaitingCorrections:
		return s.handleCorrections(ctx, reg, event)
	case models.StatusAwaitingEmail:
		return s.handleEmail(ctx, reg, event)
	case models.StatusAwaitingAcceptance:
		return s.handleAcceptanceMessage(ctx, reg, event)
	case models.StatusValidatingLicense, models.StatusCreatingPayment, models.StatusGeneratingContract:
		return s.outOfBand(ctx, reg, event)
	}
	return s.outOfBand(ctx, reg, event)
}

// outOfBand records the event sequence bump and nothing else. Intentional
// tolerance: a message the current status does not accept is not an error.
func (s *Service) outOfBand(ctx context.Context, reg *models.Registration, event models.InboundEvent) error {
	s.logger.InfoContext(ctx, "out-of-band event ignored",
		"registration_id", reg.ID,
		"status", reg.Status,
		"event_type", event.Type,
	)
	return s.save(ctx, reg)
}

// Accept applies the acceptance webhook. A registration that already
// accepted keeps its original timestamp; the duplicate delivery is a no-op.
func (s *Service) Accept(ctx context.Context, registrationID, origin string) (*models.Registration, error) {
	release, err := s.locker.Acquire(ctx, registrationID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "failed to lock registration", err)
	}
	defer release()

	reg, err := s.store.Get(ctx, registrationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registration not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load registration", err)
	}
	if reg.Accepted {
		return reg, nil
	}
	if reg.Status != models.StatusAwaitingAcceptance {
		return nil, dErrors.New(dErrors.CodeConflict, "registration is not awaiting acceptance")
	}
	return reg, s.accept(ctx, reg, origin)
}

func (s *Service) handleAcceptanceMessage(ctx context.Context, reg *models.Registration, event models.InboundEvent) error {
	switch {
	case event.Type == models.EventAcceptance:
		return s.accept(ctx, reg, event.Origin)
	case event.Type == models.EventText && strings.Contains(strings.ToUpper(event.Text), "ACEITO"):
		return s.accept(ctx, reg, "chat")
	}
	return s.outOfBand(ctx, reg, event)
}

func (s *Service) accept(ctx context.Context, reg *models.Registration, origin string) error {
	now := s.now()
	reg.Accepted = true
	reg.AcceptedAt = &now
	reg.AcceptanceOrigin = origin
	reg.ActiveSince = &now
	if err := s.transition(ctx, reg, models.StatusActive, "contract accepted"); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RegistrationsActivated.Inc()
	}
	s.emitAudit(ctx, audit.Event{
		RegistrationID: reg.ID,
		Phone:          reg.Phone,
		Action:         audit.ActionAccepted,
		Reason:         origin,
	})
	s.send(ctx, reg.Phone, msgActive)
	return nil
}

// StatusView is the read model returned by Status.
type StatusView struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Progress    int      `json:"progress"`
	Pending     []string `json:"pending_fields"`
	ContractURL string   `json:"contract_url,omitempty"`
}

func (s *Service) Status(ctx context.Context, registrationID string) (StatusView, error) {
	reg, err := s.store.Get(ctx, registrationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return StatusView{}, dErrors.New(dErrors.CodeNotFound, "registration not found")
		}
		return StatusView{}, dErrors.Wrap(dErrors.CodeInternal, "failed to load registration", err)
	}
	pending := make([]string, 0, len(reg.Pending))
	for _, f := range reg.Pending {
		pending = append(pending, string(f))
	}
	return StatusView{
		ID:          reg.ID,
		Status:      string(reg.Status),
		Progress:    reg.Progress(),
		Pending:     pending,
		ContractURL: reg.ContractURL,
	}, nil
}

// transition moves the registration along the lifecycle graph and persists
// it. Edges absent from the table are a conflict, never applied.
func (s *Service) transition(ctx context.Context, reg *models.Registration, to models.Status, reason string) error {
	from := reg.Status
	if !models.CanTransition(from, to) {
		return dErrors.New(dErrors.CodeConflict,
			"illegal status transition from "+string(from)+" to "+string(to))
	}
	reg.Status = to
	if err := s.save(ctx, reg); err != nil {
		reg.Status = from
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementTransition(string(from), string(to))
	}
	s.emitAudit(ctx, audit.Event{
		RegistrationID: reg.ID,
		Phone:          reg.Phone,
		Action:         audit.ActionTransition,
		FromStatus:     string(from),
		ToStatus:       string(to),
		Reason:         reason,
	})
	s.logger.InfoContext(ctx, "status transition",
		"registration_id", reg.ID,
		"from", from,
		"to", to,
	)
	return nil
}

func (s *Service) save(ctx context.Context, reg *models.Registration) error {
	reg.UpdatedAt = s.now()
	if err := s.store.Update(ctx, reg); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Wrap(dErrors.CodeConflict, "registration was modified concurrently", err)
		}
		return dErrors.Wrap(dErrors.CodeInternal, "failed to persist registration", err)
	}
	return nil
}

// send delivers a chat message fire-and-forget. Failures are logged, never
// propagated into the state machine.
func (s *Service) send(ctx context.Context, phoneNumber, text string) {
	if err := s.messenger.SendText(ctx, phoneNumber, text); err != nil {
		s.logger.ErrorContext(ctx, "failed to send message",
			"error", err,
			"phone", phoneNumber,
		)
		return
	}
	if s.metrics != nil {
		s.metrics.OutboundMessages.Inc()
	}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	s.audit.Emit(ctx, event)
}
