package ports

import (
	"context"

	"pratico/internal/onboarding/models"
)

// Messenger sends chat messages to a phone number. Send failures are logged
// by callers, never propagated to the registrant-facing flow.
type Messenger interface {
	SendText(ctx context.Context, phone, text string) error
}

// MediaFetcher downloads raw document bytes from an opaque media URL with a
// bounded timeout.
type MediaFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Extraction is the classified result of a document extraction call.
type Extraction struct {
	DocumentType DocumentType
	Fields       map[string]string
}

// DocumentType is the extractor's classification of a document.
type DocumentType string

const (
	DocTypeIdentity     DocumentType = "identity"
	DocTypeLicense      DocumentType = "license"
	DocTypeProofAddress DocumentType = "proof_of_address"
	DocTypeUnknown      DocumentType = "unknown"
)

// DocumentExtractor classifies raw document bytes and returns a structured
// field map.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, raw []byte) (Extraction, error)
}

// LicenseCheck is the registry validator's verdict.
type LicenseCheck struct {
	Valid  bool
	Reason string
}

// LicenseValidator checks a broker license number against the jurisdiction's
// registry.
type LicenseValidator interface {
	ValidateLicense(ctx context.Context, number, uf string) (LicenseCheck, error)
}

// PaymentAccount is the provisioner's result. Error carries the provider's
// reported failure when Success is false.
type PaymentAccount struct {
	Success     bool
	CustomerRef string
	WalletRef   string
	Error       string
}

// PaymentProvisioner creates (or reuses) the payment account used for
// commission splits.
type PaymentProvisioner interface {
	ProvisionAccount(ctx context.Context, name, nationalID, email, phone string) (PaymentAccount, error)
}

// RenderedContract is the partnership agreement output.
type RenderedContract struct {
	Content    []byte
	SigningURL string
}

// ContractRenderer renders the partnership agreement from a finalized
// profile.
type ContractRenderer interface {
	RenderContract(ctx context.Context, profile models.Profile) (RenderedContract, error)
}

// BatchScheduler schedules the batch document processor for a registration
// after the collection timeout. Implementations check at fire time that the
// registration is still in processing.
type BatchScheduler interface {
	Schedule(registrationID string)
}
