package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pratico/internal/audit"
	"pratico/internal/onboarding/models"
	"pratico/internal/onboarding/ports"
)

// RunBatch processes every document collected by a registration: fetch,
// extract, merge, then route to the correction loop or the email step. The
// scheduler fires it once per registration after the collection timeout;
// a registration that already left processing makes the run a no-op.
//
// Whatever goes wrong inside, the registrant gets a message. A silent stall
// in processing is the one failure mode this flow must never have.
func (s *Service) RunBatch(ctx context.Context, registrationID string) {
	start := time.Now()
	release, err := s.locker.Acquire(ctx, registrationID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to lock registration for batch",
			"error", err,
			"registration_id", registrationID,
		)
		return
	}
	defer release()

	reg, err := s.store.Get(ctx, registrationID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load registration for batch",
			"error", err,
			"registration_id", registrationID,
		)
		return
	}
	if reg.Status != models.StatusProcessing {
		s.logger.InfoContext(ctx, "batch skipped, registration left processing",
			"registration_id", reg.ID,
			"status", reg.Status,
		)
		if s.metrics != nil {
			s.metrics.IncrementBatchRun("skipped")
		}
		return
	}

	if err := s.runBatch(ctx, reg); err != nil {
		s.logger.ErrorContext(ctx, "batch processing failed",
			"error", err,
			"registration_id", reg.ID,
		)
		if s.metrics != nil {
			s.metrics.IncrementBatchRun("error")
		}
		s.send(ctx, reg.Phone, msgGenericFailure)
		return
	}
	if s.metrics != nil {
		s.metrics.IncrementBatchRun("ok")
		s.metrics.ObserveBatch(start)
	}
}

func (s *Service) runBatch(ctx context.Context, reg *models.Registration) error {
	extractions := s.extractAll(ctx, reg)
	s.mergeExtractions(reg, extractions)

	reg.Pending = reg.ComputePending()
	s.emitAudit(ctx, audit.Event{
		RegistrationID: reg.ID,
		Phone:          reg.Phone,
		Action:         audit.ActionBatchCompleted,
		Reason:         fmt.Sprintf("%d pending fields", len(reg.Pending)),
	})

	if len(reg.Pending) == 0 {
		if err := s.transition(ctx, reg, models.StatusAwaitingEmail, "extraction complete"); err != nil {
			return err
		}
		s.send(ctx, reg.Phone, msgEmailPrompt)
		return nil
	}
	if err := s.transition(ctx, reg, models.StatusAwaitingCorrections, "extraction left pending fields"); err != nil {
		return err
	}
	s.send(ctx, reg.Phone, msgReview(reg.Profile, reg.Pending))
	return nil
}

// extractAll fetches and extracts every stored document concurrently. A
// failure on one document logs and leaves that document's fields
// unrecovered; the rest of the batch proceeds.
func (s *Service) extractAll(ctx context.Context, reg *models.Registration) map[models.DocSlot]ports.Extraction {
	slots := make([]models.DocSlot, 0, len(reg.Documents))
	for slot := range reg.Documents {
		if slot == models.DocAddress && reg.Profile.AddressSource == models.AddressTyped {
			// Typed address wins; the proof document is not extracted.
			continue
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	results := make(map[models.DocSlot]ports.Extraction, len(slots))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, slot := range slots {
		doc := reg.Documents[slot]
		g.Go(func() error {
			raw, err := s.fetcher.FetchBytes(gctx, doc.URL)
			if err != nil {
				s.logger.WarnContext(gctx, "failed to fetch document, fields unrecovered",
					"error", err,
					"registration_id", reg.ID,
					"slot", int(slot),
				)
				return nil
			}
			extraction, err := s.extractor.ExtractDocument(gctx, raw)
			if err != nil {
				s.logger.WarnContext(gctx, "failed to extract document, fields unrecovered",
					"error", err,
					"registration_id", reg.ID,
					"slot", int(slot),
				)
				return nil
			}
			mu.Lock()
			results[slot] = extraction
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// mergeExtractions folds extraction results into the profile in slot order,
// first-non-empty-wins per field. Re-running the merge on the same inputs is
// deterministic.
func (s *Service) mergeExtractions(reg *models.Registration, extractions map[models.DocSlot]ports.Extraction) {
	for _, slot := range []models.DocSlot{models.DocIdentity, models.DocLicense, models.DocAddress} {
		extraction, ok := extractions[slot]
		if !ok {
			continue
		}
		for key, value := range extraction.Fields {
			mergeField(&reg.Profile, key, value)
		}
	}
}

// mergeField maps an extractor field key onto the profile, keeping whatever
// value arrived first.
func mergeField(p *models.Profile, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	setIfEmpty := func(dst *string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = value
		}
	}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "nome", "name":
		setIfEmpty(&p.Name)
	case "cpf", "national_id":
		setIfEmpty(&p.NationalID)
	case "nascimento", "data_nascimento", "birth_date":
		setIfEmpty(&p.BirthDate)
	case "creci", "license_number":
		if strings.TrimSpace(p.LicenseNumber) == "" {
			number, uf := splitLicense(value)
			p.LicenseNumber = number
			if uf != "" && strings.TrimSpace(p.LicenseUF) == "" {
				p.LicenseUF = uf
			}
		}
	case "uf", "license_uf":
		setIfEmpty(&p.LicenseUF)
	case "endereco", "address":
		if strings.TrimSpace(p.Address) == "" {
			p.Address = value
			p.AddressSource = models.AddressExtracted
		}
	case "estado_civil", "marital_status":
		setIfEmpty(&p.MaritalStatus)
	}
}

// splitLicense breaks "12345/SP" into number and jurisdiction. A value
// without a slash is all number.
func splitLicense(value string) (number, uf string) {
	number, uf, found := strings.Cut(value, "/")
	number = strings.TrimSpace(number)
	if !found {
		return number, ""
	}
	return number, strings.ToUpper(strings.TrimSpace(uf))
}
