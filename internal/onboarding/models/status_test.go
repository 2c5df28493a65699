package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("happy path edges", func(t *testing.T) {
		edges := [][2]Status{
			{StatusAwaitingDoc1, StatusAwaitingDoc2},
			{StatusAwaitingDoc2, StatusAwaitingAddressChoice},
			{StatusAwaitingAddressChoice, StatusAwaitingDoc3},
			{StatusAwaitingAddressChoice, StatusAwaitingAddressTyped},
			{StatusAwaitingDoc3, StatusAwaitingMaritalStatus},
			{StatusAwaitingAddressTyped, StatusAwaitingMaritalStatus},
			{StatusAwaitingMaritalStatus, StatusProcessing},
			{StatusProcessing, StatusAwaitingCorrections},
			{StatusProcessing, StatusAwaitingEmail},
			{StatusAwaitingCorrections, StatusAwaitingEmail},
			{StatusAwaitingEmail, StatusValidatingLicense},
			{StatusAwaitingEmail, StatusAwaitingCorrections},
			{StatusValidatingLicense, StatusLicenseInvalid},
			{StatusValidatingLicense, StatusCreatingPayment},
			{StatusCreatingPayment, StatusPaymentError},
			{StatusCreatingPayment, StatusGeneratingContract},
			{StatusGeneratingContract, StatusAwaitingAcceptance},
			{StatusAwaitingAcceptance, StatusActive},
		}
		for _, e := range edges {
			assert.True(t, CanTransition(e[0], e[1]), "%s -> %s", e[0], e[1])
		}
	})

	t.Run("no skipping predecessors", func(t *testing.T) {
		assert.False(t, CanTransition(StatusAwaitingDoc1, StatusProcessing))
		assert.False(t, CanTransition(StatusAwaitingDoc1, StatusActive))
		assert.False(t, CanTransition(StatusProcessing, StatusValidatingLicense))
		assert.False(t, CanTransition(StatusAwaitingCorrections, StatusAwaitingCorrections))
	})

	t.Run("terminal states have no exits", func(t *testing.T) {
		for _, terminal := range []Status{StatusActive, StatusLicenseInvalid, StatusPaymentError} {
			assert.True(t, terminal.Terminal())
			for _, next := range []Status{
				StatusAwaitingDoc1, StatusProcessing, StatusActive, StatusAwaitingAcceptance,
			} {
				assert.False(t, CanTransition(terminal, next), "%s -> %s", terminal, next)
			}
		}
	})
}

func TestComputePending(t *testing.T) {
	now := time.Now()
	reg := NewRegistration("+5511999999999", now)

	t.Run("empty profile requires everything", func(t *testing.T) {
		assert.Equal(t, []Field{FieldName, FieldNationalID, FieldLicense, FieldAddress}, reg.ComputePending())
	})

	t.Run("typed address satisfies address", func(t *testing.T) {
		reg.Profile.Address = "Rua A, 10"
		reg.Profile.AddressSource = AddressTyped
		assert.Equal(t, []Field{FieldName, FieldNationalID, FieldLicense}, reg.ComputePending())
	})

	t.Run("blank values still count as missing", func(t *testing.T) {
		reg.Profile.Name = "   "
		assert.Contains(t, reg.ComputePending(), FieldName)
	})

	t.Run("deterministic for same inputs", func(t *testing.T) {
		assert.Equal(t, reg.ComputePending(), reg.ComputePending())
	})
}

func TestRemovePending(t *testing.T) {
	reg := NewRegistration("+5511999999999", time.Now())
	reg.Pending = []Field{FieldName, FieldNationalID}

	reg.RemovePending(FieldName)
	assert.Equal(t, []Field{FieldNationalID}, reg.Pending)

	// removing an absent field is a no-op
	reg.RemovePending(FieldAddress)
	assert.Equal(t, []Field{FieldNationalID}, reg.Pending)
}

func TestProgress(t *testing.T) {
	reg := NewRegistration("+5511999999999", time.Now())
	assert.Equal(t, 0, reg.Progress())

	reg.Documents[DocIdentity] = DocumentRef{URL: "u1"}
	reg.Documents[DocLicense] = DocumentRef{URL: "u2"}
	reg.Documents[DocAddress] = DocumentRef{URL: "u3"}
	assert.Equal(t, 40, reg.Progress())

	reg.LicenseValidated = true
	reg.CustomerRef = "cus_1"
	reg.Accepted = true
	assert.Equal(t, 100, reg.Progress())
}
