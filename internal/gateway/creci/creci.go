// Package creci validates broker license numbers against the regional
// council registry service.
package creci

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pratico/internal/onboarding/ports"
	"pratico/internal/platform/config"
)

// automatedUFs are the jurisdictions the registry service can check online.
// Everywhere else validation passes with a manual-verification note, the
// stance the council integrations have always taken.
var automatedUFs = map[string]bool{
	"SP": true,
	"RJ": true,
	"MG": true,
	"PR": true,
}

type Validator struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewValidator(cfg config.ServiceConfig) *Validator {
	return &Validator{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

type validateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

func (v *Validator) ValidateLicense(ctx context.Context, number, uf string) (ports.LicenseCheck, error) {
	number = strings.TrimSpace(number)
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if number == "" {
		return ports.LicenseCheck{Valid: false, Reason: "número do CRECI não informado"}, nil
	}
	if !automatedUFs[uf] {
		return ports.LicenseCheck{
			Valid:  true,
			Reason: fmt.Sprintf("validação automática indisponível para %q, requer verificação manual", uf),
		}, nil
	}

	endpoint := fmt.Sprintf("%s/validate/%s?numero=%s", v.baseURL, uf, url.QueryEscape(number))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.LicenseCheck{}, fmt.Errorf("build validation request: %w", err)
	}
	if v.token != "" {
		req.Header.Set("Authorization", "Bearer "+v.token)
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return ports.LicenseCheck{}, fmt.Errorf("call registry validator: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ports.LicenseCheck{}, fmt.Errorf("registry validator returned status %d", resp.StatusCode)
	}

	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.LicenseCheck{}, fmt.Errorf("decode validation response: %w", err)
	}
	return ports.LicenseCheck{Valid: out.Valid, Reason: out.Reason}, nil
}
