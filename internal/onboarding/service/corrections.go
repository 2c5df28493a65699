package service

import (
	"context"
	"strings"

	"pratico/internal/audit"
	"pratico/internal/onboarding/models"
)

// fieldAliases maps the labels registrants type to profile fields. Lookup is
// case-insensitive and accent-tolerant for the common variants.
var fieldAliases = map[string]models.Field{
	"NOME":               models.FieldName,
	"NAME":               models.FieldName,
	"CPF":                models.FieldNationalID,
	"NASCIMENTO":         models.FieldBirthDate,
	"DATA DE NASCIMENTO": models.FieldBirthDate,
	"CRECI":              models.FieldLicense,
	"ENDERECO":           models.FieldAddress,
	"ENDEREÇO":           models.FieldAddress,
	"ESTADO CIVIL":       models.FieldMaritalStatus,
}

// handleCorrections parses free text while the registration sits in the
// correction loop: CONFIRMAR advances (or re-lists what is still pending),
// CAMPO: valor updates one field, anything else gets the format help.
func (s *Service) handleCorrections(ctx context.Context, reg *models.Registration, event models.InboundEvent) error {
	if event.Type != models.EventText {
		return s.outOfBand(ctx, reg, event)
	}
	text := strings.TrimSpace(event.Text)

	if strings.Contains(strings.ToUpper(text), "CONFIRM") {
		return s.handleConfirm(ctx, reg)
	}

	// Email-shaped text is ambiguous with a correction here; the email is
	// only accepted in the dedicated step after confirmation.
	if looksLikeEmail(text) {
		s.send(ctx, reg.Phone, msgEmailRejectedHere)
		return s.save(ctx, reg)
	}

	label, value, found := strings.Cut(text, ":")
	if !found {
		s.send(ctx, reg.Phone, msgCorrectionHelp)
		return s.save(ctx, reg)
	}
	label = strings.ToUpper(strings.TrimSpace(label))
	value = strings.TrimSpace(value)

	if label == "EMAIL" || label == "E-MAIL" {
		s.send(ctx, reg.Phone, msgEmailRejectedHere)
		return s.save(ctx, reg)
	}

	field, ok := fieldAliases[label]
	if !ok {
		s.send(ctx, reg.Phone, msgUnknownField(label))
		return s.save(ctx, reg)
	}
	if value == "" {
		s.send(ctx, reg.Phone, msgCorrectionHelp)
		return s.save(ctx, reg)
	}

	s.applyCorrection(reg, field, value)
	reg.RemovePending(field)
	if err := s.save(ctx, reg); err != nil {
		return err
	}
	s.emitAudit(ctx, audit.Event{
		RegistrationID: reg.ID,
		Phone:          reg.Phone,
		Action:         audit.ActionCorrection,
		Reason:         string(field),
	})
	s.send(ctx, reg.Phone, msgFieldConfirmed(field, value))
	return nil
}

func (s *Service) handleConfirm(ctx context.Context, reg *models.Registration) error {
	if len(reg.Pending) > 0 {
		s.send(ctx, reg.Phone, msgStillPending(reg.Pending))
		return s.save(ctx, reg)
	}
	if err := s.transition(ctx, reg, models.StatusAwaitingEmail, "corrections confirmed"); err != nil {
		return err
	}
	s.send(ctx, reg.Phone, msgEmailPrompt)
	return nil
}

func (s *Service) applyCorrection(reg *models.Registration, field models.Field, value string) {
	switch field {
	case models.FieldName:
		reg.Profile.Name = value
	case models.FieldNationalID:
		reg.Profile.NationalID = value
	case models.FieldBirthDate:
		reg.Profile.BirthDate = value
	case models.FieldLicense:
		number, uf := splitLicense(value)
		reg.Profile.LicenseNumber = number
		if uf != "" {
			reg.Profile.LicenseUF = uf
		}
	case models.FieldAddress:
		reg.Profile.Address = value
		reg.Profile.AddressSource = models.AddressTyped
	case models.FieldMaritalStatus:
		reg.Profile.MaritalStatus = value
	}
}

// looksLikeEmail is the loose shape check used across the flow: an @ and a
// dot with no embedded whitespace.
func looksLikeEmail(text string) bool {
	if strings.ContainsAny(text, " \t\n") {
		return false
	}
	at := strings.Index(text, "@")
	if at <= 0 || at == len(text)-1 {
		return false
	}
	return strings.Contains(text[at:], ".")
}
