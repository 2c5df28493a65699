package models

// Status is the closed enumeration of registration states. The wire strings
// keep the Portuguese values the row has always carried so existing tooling
// and dashboards keep working.
type Status string

const (
	StatusAwaitingDoc1          Status = "aguardando_doc1"
	StatusAwaitingDoc2          Status = "aguardando_doc2"
	StatusAwaitingAddressChoice Status = "aguardando_escolha_endereco"
	StatusAwaitingDoc3          Status = "aguardando_doc3"
	StatusAwaitingAddressTyped  Status = "aguardando_endereco_digitado"
	StatusAwaitingMaritalStatus Status = "aguardando_estado_civil"
	StatusProcessing            Status = "processando"
	StatusAwaitingCorrections   Status = "aguardando_correcoes"
	StatusAwaitingEmail         Status = "aguardando_email"
	StatusValidatingLicense     Status = "validando_creci"
	StatusLicenseInvalid        Status = "creci_invalido"
	StatusCreatingPayment       Status = "criando_conta_pagamento"
	StatusPaymentError          Status = "erro_conta_pagamento"
	StatusGeneratingContract    Status = "gerando_contrato"
	StatusAwaitingAcceptance    Status = "aguardando_aceite"
	StatusActive                Status = "ativo"
)

// transitions is the single authority on which status changes are legal.
// Anything not listed here is rejected, replacing the scattered string
// comparisons of earlier iterations of this flow.
var transitions = map[Status][]Status{
	StatusAwaitingDoc1:          {StatusAwaitingDoc2},
	StatusAwaitingDoc2:          {StatusAwaitingAddressChoice},
	StatusAwaitingAddressChoice: {StatusAwaitingDoc3, StatusAwaitingAddressTyped},
	StatusAwaitingDoc3:          {StatusAwaitingMaritalStatus},
	StatusAwaitingAddressTyped:  {StatusAwaitingMaritalStatus},
	StatusAwaitingMaritalStatus: {StatusProcessing},
	StatusProcessing:            {StatusAwaitingCorrections, StatusAwaitingEmail},
	StatusAwaitingCorrections:   {StatusAwaitingEmail},
	StatusAwaitingEmail:         {StatusValidatingLicense, StatusAwaitingCorrections},
	StatusValidatingLicense:     {StatusLicenseInvalid, StatusCreatingPayment},
	StatusCreatingPayment:       {StatusPaymentError, StatusGeneratingContract},
	StatusGeneratingContract:    {StatusAwaitingAcceptance},
	StatusAwaitingAcceptance:    {StatusActive},
}

// CanTransition reports whether the move from one status to the other is an
// edge of the lifecycle graph.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a registration in this status is immutable.
func (s Status) Terminal() bool {
	switch s {
	case StatusActive, StatusLicenseInvalid, StatusPaymentError:
		return true
	}
	return false
}

// Valid reports whether s belongs to the enumeration.
func (s Status) Valid() bool {
	if _, ok := transitions[s]; ok {
		return true
	}
	return s.Terminal()
}
