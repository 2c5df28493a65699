// Package asaas provisions the payment accounts used for commission splits.
package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pratico/internal/onboarding/ports"
	"pratico/internal/platform/config"
)

type Provisioner struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewProvisioner(cfg config.ServiceConfig) *Provisioner {
	return &Provisioner{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type customer struct {
	ID       string `json:"id"`
	WalletID string `json:"walletId"`
}

type customerList struct {
	Data []customer `json:"data"`
}

type createCustomerRequest struct {
	Name    string `json:"name"`
	CPFCnpj string `json:"cpfCnpj"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"mobilePhone,omitempty"`
}

type apiError struct {
	Errors []struct {
		Description string `json:"description"`
	} `json:"errors"`
}

// ProvisionAccount finds or creates the customer for a national id. The
// find-first order makes webhook retries and restarted finalizations land on
// the same account instead of minting duplicates.
func (p *Provisioner) ProvisionAccount(ctx context.Context, name, nationalID, email, phone string) (ports.PaymentAccount, error) {
	existing, err := p.findByNationalID(ctx, nationalID)
	if err != nil {
		return ports.PaymentAccount{}, err
	}
	if existing != nil {
		return ports.PaymentAccount{
			Success:     true,
			CustomerRef: existing.ID,
			WalletRef:   existing.WalletID,
		}, nil
	}
	return p.create(ctx, createCustomerRequest{
		Name:    name,
		CPFCnpj: nationalID,
		Email:   email,
		Phone:   phone,
	})
}

func (p *Provisioner) findByNationalID(ctx context.Context, nationalID string) (*customer, error) {
	endpoint := fmt.Sprintf("%s/customers?cpfCnpj=%s", p.baseURL, url.QueryEscape(nationalID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build customer lookup: %w", err)
	}
	p.setHeaders(req)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("look up customer: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("customer lookup returned status %d", resp.StatusCode)
	}

	var list customerList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode customer list: %w", err)
	}
	if len(list.Data) == 0 {
		return nil, nil
	}
	return &list.Data[0], nil
}

func (p *Provisioner) create(ctx context.Context, payload createCustomerRequest) (ports.PaymentAccount, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return ports.PaymentAccount{}, fmt.Errorf("marshal customer: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/customers", bytes.NewReader(body))
	if err != nil {
		return ports.PaymentAccount{}, fmt.Errorf("build customer create: %w", err)
	}
	p.setHeaders(req)

	resp, err := p.http.Do(req)
	if err != nil {
		return ports.PaymentAccount{}, fmt.Errorf("create customer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		var created customer
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return ports.PaymentAccount{}, fmt.Errorf("decode created customer: %w", err)
		}
		return ports.PaymentAccount{
			Success:     true,
			CustomerRef: created.ID,
			WalletRef:   created.WalletID,
		}, nil
	}

	// Business rejections (bad CPF, blocked account) come back as 4xx with a
	// description; those are a reported failure, not a transport error.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		reason := "provisioning rejected"
		if len(apiErr.Errors) > 0 && apiErr.Errors[0].Description != "" {
			reason = apiErr.Errors[0].Description
		}
		return ports.PaymentAccount{Success: false, Error: reason}, nil
	}
	return ports.PaymentAccount{}, fmt.Errorf("customer create returned status %d", resp.StatusCode)
}

func (p *Provisioner) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", p.token)
}
