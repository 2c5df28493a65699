package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"pratico/internal/audit"
	"pratico/internal/onboarding/models"
)

var tracer = otel.Tracer("pratico/onboarding")

// handleEmail accepts the one email-shaped message the flow asks for, then
// runs the finalization chain. Anything else is treated as a correction
// retry: the registrant looped back without confirming.
func (s *Service) handleEmail(ctx context.Context, reg *models.Registration, event models.InboundEvent) error {
	if event.Type != models.EventText {
		return s.outOfBand(ctx, reg, event)
	}
	text := strings.TrimSpace(event.Text)
	if !looksLikeEmail(text) {
		if err := s.transition(ctx, reg, models.StatusAwaitingCorrections, "non-email text during email step"); err != nil {
			return err
		}
		return s.handleCorrections(ctx, reg, event)
	}
	reg.Profile.Email = text

	// Finalize only runs with the required fields in place; a gap sends the
	// registrant back to the correction loop instead.
	if missing := reg.ComputePending(); len(missing) > 0 {
		reg.Pending = missing
		if err := s.transition(ctx, reg, models.StatusAwaitingCorrections, "required fields missing at finalize"); err != nil {
			return err
		}
		s.send(ctx, reg.Phone, msgMissingAtFinalize(missing))
		return nil
	}

	if err := s.transition(ctx, reg, models.StatusValidatingLicense, "email captured"); err != nil {
		return err
	}
	return s.finalize(ctx, reg)
}

// finalize sequences license validation, payment provisioning and contract
// rendering. Each step commits before the next runs, so a later failure
// never regresses earlier progress. An unexpected error is caught, logged
// and reported to the registrant with the state left where it was.
func (s *Service) finalize(ctx context.Context, reg *models.Registration) error {
	ctx, span := tracer.Start(ctx, "onboarding.finalize")
	span.SetAttributes(attribute.String("registration.id", reg.ID))
	defer span.End()
	start := time.Now()

	if err := s.validateLicense(ctx, reg); err != nil {
		return s.finalizeFailed(ctx, reg, "license validation", err)
	}
	if reg.Status.Terminal() {
		return nil
	}
	if err := s.provisionPayment(ctx, reg); err != nil {
		return s.finalizeFailed(ctx, reg, "payment provisioning", err)
	}
	if reg.Status.Terminal() {
		return nil
	}
	if err := s.generateContract(ctx, reg); err != nil {
		return s.finalizeFailed(ctx, reg, "contract generation", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveFinalize(start)
	}
	return nil
}

func (s *Service) validateLicense(ctx context.Context, reg *models.Registration) error {
	check, err := s.validator.ValidateLicense(ctx, reg.Profile.LicenseNumber, reg.Profile.LicenseUF)
	if err != nil {
		return err
	}
	if !check.Valid {
		if err := s.transition(ctx, reg, models.StatusLicenseInvalid, check.Reason); err != nil {
			return err
		}
		s.send(ctx, reg.Phone, msgLicenseInvalid(check.Reason))
		return nil
	}
	reg.LicenseValidated = true
	return s.transition(ctx, reg, models.StatusCreatingPayment, "license valid")
}

func (s *Service) provisionPayment(ctx context.Context, reg *models.Registration) error {
	account, err := s.payments.ProvisionAccount(ctx,
		reg.Profile.Name, reg.Profile.NationalID, reg.Profile.Email, reg.Phone)
	if err != nil {
		return err
	}
	if !account.Success {
		if err := s.transition(ctx, reg, models.StatusPaymentError, account.Error); err != nil {
			return err
		}
		s.send(ctx, reg.Phone, msgPaymentError)
		return nil
	}
	reg.CustomerRef = account.CustomerRef
	reg.WalletRef = account.WalletRef
	return s.transition(ctx, reg, models.StatusGeneratingContract, "payment account created")
}

func (s *Service) generateContract(ctx context.Context, reg *models.Registration) error {
	rendered, err := s.contracts.RenderContract(ctx, reg.Profile)
	if err != nil {
		// Rendering degrades to a placeholder link rather than blocking the
		// partnership.
		s.logger.ErrorContext(ctx, "contract rendering failed, using placeholder",
			"error", err,
			"registration_id", reg.ID,
		)
		rendered.SigningURL = ""
	}
	reg.ContractGenerated = true
	reg.ContractURL = rendered.SigningURL
	if err := s.transition(ctx, reg, models.StatusAwaitingAcceptance, "contract rendered"); err != nil {
		return err
	}
	s.send(ctx, reg.Phone, msgAcceptance(reg.ContractURL))
	return nil
}

// finalizeFailed is the defensive boundary: log, notify, leave the
// registration at its last committed state.
func (s *Service) finalizeFailed(ctx context.Context, reg *models.Registration, step string, err error) error {
	s.logger.ErrorContext(ctx, "finalization step failed",
		"error", err,
		"step", step,
		"registration_id", reg.ID,
		"status", reg.Status,
	)
	s.emitAudit(ctx, audit.Event{
		RegistrationID: reg.ID,
		Phone:          reg.Phone,
		Action:         audit.ActionFinalizeFailed,
		FromStatus:     string(reg.Status),
		Reason:         step,
	})
	s.send(ctx, reg.Phone, msgGenericFailure)
	return nil
}
