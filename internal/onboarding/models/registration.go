package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocSlot identifies a collected raw document. Slots follow the guided flow:
// 1 identity (RG/CNH), 2 broker license (CRECI), 3 proof of address.
type DocSlot int

const (
	DocIdentity DocSlot = 1
	DocLicense  DocSlot = 2
	DocAddress  DocSlot = 3
)

// DocumentRef is an opaque media URL plus when it was received. Resending a
// document before batch processing overwrites the slot; there is no
// versioning.
type DocumentRef struct {
	URL        string    `json:"url"`
	ReceivedAt time.Time `json:"received_at"`
}

// AddressSource records whether the address was typed by the registrant or
// extracted from the proof-of-address document.
type AddressSource string

const (
	AddressTyped     AddressSource = "digitado"
	AddressExtracted AddressSource = "ocr"
)

// Field names a profile field as used in pending lists and correction
// commands. Values double as the user-facing labels.
type Field string

const (
	FieldName          Field = "nome"
	FieldNationalID    Field = "cpf"
	FieldBirthDate     Field = "nascimento"
	FieldLicense       Field = "creci"
	FieldAddress       Field = "endereco"
	FieldMaritalStatus Field = "estado_civil"
)

// RequiredFields is the fixed set that must be non-empty before finalize.
var RequiredFields = []Field{FieldName, FieldNationalID, FieldLicense, FieldAddress}

// Profile holds the extracted (or corrected) broker identity data. All
// fields stay optional until finalize.
type Profile struct {
	Name          string        `json:"name"`
	NationalID    string        `json:"national_id"`
	BirthDate     string        `json:"birth_date"`
	LicenseNumber string        `json:"license_number"`
	LicenseUF     string        `json:"license_uf"`
	Address       string        `json:"address"`
	AddressSource AddressSource `json:"address_source"`
	MaritalStatus string        `json:"marital_status"`
	Email         string        `json:"email"`
}

// FieldValue returns the profile value backing a pending-list field.
func (p Profile) FieldValue(f Field) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldNationalID:
		return p.NationalID
	case FieldBirthDate:
		return p.BirthDate
	case FieldLicense:
		return p.LicenseNumber
	case FieldAddress:
		return p.Address
	case FieldMaritalStatus:
		return p.MaritalStatus
	}
	return ""
}

// Registration is the single mutable row of the onboarding flow. Status is
// the source of truth for what happens next; Version backs optimistic
// concurrency in the store.
type Registration struct {
	ID    string
	Phone string

	Status Status

	Documents map[DocSlot]DocumentRef
	Profile   Profile
	Pending   []Field

	LicenseValidated bool
	CustomerRef      string
	WalletRef        string

	ContractGenerated bool
	ContractURL       string
	Accepted          bool
	AcceptedAt        *time.Time
	AcceptanceOrigin  string

	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastDocumentAt *time.Time
	ActiveSince    *time.Time

	// EventSeq counts the inbound events handled for this registration.
	// It is persisted with the row, so the history of a registration can
	// be ordered even when timestamps collide.
	EventSeq int64
	Version  int64
}

// NewRegistration creates a registration in the initial state for a
// normalized phone number. The id is short so it can be shared in chat.
func NewRegistration(normalizedPhone string, now time.Time) *Registration {
	return &Registration{
		ID:        ShortID(),
		Phone:     normalizedPhone,
		Status:    StatusAwaitingDoc1,
		Documents: make(map[DocSlot]DocumentRef),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ShortID derives the externally shareable 8-char registration id.
func ShortID() string {
	return uuid.NewString()[:8]
}

// ComputePending returns RequiredFields minus whichever are now non-empty.
// The result is ordered and deterministic for the same profile.
func (r *Registration) ComputePending() []Field {
	var pending []Field
	for _, f := range RequiredFields {
		if strings.TrimSpace(r.Profile.FieldValue(f)) == "" {
			pending = append(pending, f)
		}
	}
	return pending
}

// HasPending reports whether f is in the pending list.
func (r *Registration) HasPending(f Field) bool {
	for _, p := range r.Pending {
		if p == f {
			return true
		}
	}
	return false
}

// RemovePending drops f from the pending list if present.
func (r *Registration) RemovePending(f Field) {
	out := r.Pending[:0]
	for _, p := range r.Pending {
		if p != f {
			out = append(out, p)
		}
	}
	r.Pending = out
}

// Progress estimates completion: 40% documents, 30% license validation,
// 20% payment account, 10% accepted contract.
func (r *Registration) Progress() int {
	progress := 0
	progress += len(r.Documents) * 40 / 3
	if r.LicenseValidated {
		progress += 30
	}
	if r.WalletRef != "" || r.CustomerRef != "" {
		progress += 20
	}
	if r.Accepted {
		progress += 10
	}
	if progress > 100 {
		progress = 100
	}
	return progress
}
