package service

import (
	"context"
	"fmt"
	"strings"

	"pratico/internal/audit"
	"pratico/internal/onboarding/models"
)

// handleDocument stores a media reference into the slot the current status
// collects and advances to the next step. A media event without a resolvable
// reference re-prompts and stays: the registrant retries by resending.
func (s *Service) handleDocument(ctx context.Context, reg *models.Registration, event models.InboundEvent, slot models.DocSlot, next models.Status, prompt string) error {
	if event.Type != models.EventMedia {
		return s.outOfBand(ctx, reg, event)
	}
	if strings.TrimSpace(event.MediaURL) == "" {
		s.logger.WarnContext(ctx, "media event without resolvable reference",
			"registration_id", reg.ID,
			"status", reg.Status,
		)
		s.send(ctx, reg.Phone, msgMediaUnresolved)
		return s.save(ctx, reg)
	}

	now := s.now()
	reg.Documents[slot] = models.DocumentRef{URL: event.MediaURL, ReceivedAt: now}
	reg.LastDocumentAt = &now
	if err := s.transition(ctx, reg, next, "document received"); err != nil {
		return err
	}
	s.emitAudit(ctx, audit.Event{
		RegistrationID: reg.ID,
		Phone:          reg.Phone,
		Action:         audit.ActionDocumentStored,
		Reason:         fmt.Sprintf("slot %d", slot),
	})
	s.send(ctx, reg.Phone, prompt)
	return nil
}

// handleAddressChoice accepts "1" (type the address) or "2" (send a proof
// document); any other text re-prompts without transitioning.
func (s *Service) handleAddressChoice(ctx context.Context, reg *models.Registration, event models.InboundEvent) error {
	if event.Type != models.EventText {
		return s.outOfBand(ctx, reg, event)
	}
	switch strings.TrimSpace(event.Text) {
	case "1":
		if err := s.transition(ctx, reg, models.StatusAwaitingAddressTyped, "chose to type address"); err != nil {
			return err
		}
		s.send(ctx, reg.Phone, msgPromptAddressTyped)
	case "2":
		if err := s.transition(ctx, reg, models.StatusAwaitingDoc3, "chose address document"); err != nil {
			return err
		}
		s.send(ctx, reg.Phone, msgPromptDoc3)
	default:
		s.send(ctx, reg.Phone, msgAddressChoiceRetry)
		return s.save(ctx, reg)
	}
	return nil
}

func (s *Service) handleAddressTyped(ctx context.Context, reg *models.Registration, event models.InboundEvent) error {
	if event.Type != models.EventText {
		return s.outOfBand(ctx, reg, event)
	}
	address := strings.TrimSpace(event.Text)
	if address == "" {
		s.send(ctx, reg.Phone, msgPromptAddressTyped)
		return s.save(ctx, reg)
	}
	reg.Profile.Address = address
	reg.Profile.AddressSource = models.AddressTyped
	if err := s.transition(ctx, reg, models.StatusAwaitingMaritalStatus, "address typed"); err != nil {
		return err
	}
	s.send(ctx, reg.Phone, msgPromptMaritalStatus)
	return nil
}

// handleMaritalStatus stores the free-text answer verbatim and enters
// processing, arming the batch timer.
func (s *Service) handleMaritalStatus(ctx context.Context, reg *models.Registration, event models.InboundEvent) error {
	if event.Type != models.EventText {
		return s.outOfBand(ctx, reg, event)
	}
	status := strings.TrimSpace(event.Text)
	if status == "" {
		s.send(ctx, reg.Phone, msgPromptMaritalStatus)
		return s.save(ctx, reg)
	}
	reg.Profile.MaritalStatus = status
	if err := s.transition(ctx, reg, models.StatusProcessing, "collection complete"); err != nil {
		return err
	}
	s.scheduler.Schedule(reg.ID)
	s.send(ctx, reg.Phone, msgProcessing)
	return nil
}
