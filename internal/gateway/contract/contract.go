// Package contract renders the partnership agreement from a finalized
// profile.
package contract

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"pratico/internal/onboarding/models"
	"pratico/internal/onboarding/ports"
)

// Renderer produces the agreement HTML locally and points the signing link
// at the configured base URL. Rendering has no external dependency, so the
// finalization chain never stalls on it.
type Renderer struct {
	signingBaseURL string
	tmpl           *template.Template
	now            func() time.Time
}

func NewRenderer(signingBaseURL string) *Renderer {
	return &Renderer{
		signingBaseURL: signingBaseURL,
		tmpl:           template.Must(template.New("partnership").Parse(partnershipTemplate)),
		now:            time.Now,
	}
}

type templateData struct {
	Name    string
	CPF     string
	License string
	Email   string
	Address string
	Date    string
}

func (r *Renderer) RenderContract(ctx context.Context, profile models.Profile) (ports.RenderedContract, error) {
	license := profile.LicenseNumber
	if profile.LicenseUF != "" {
		license = profile.LicenseNumber + "/" + profile.LicenseUF
	}
	data := templateData{
		Name:    profile.Name,
		CPF:     profile.NationalID,
		License: license,
		Email:   profile.Email,
		Address: profile.Address,
		Date:    r.now().Format("02/01/2006"),
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return ports.RenderedContract{}, fmt.Errorf("render partnership contract: %w", err)
	}
	var signingURL string
	if r.signingBaseURL != "" {
		signingURL = fmt.Sprintf("%s/contratos/%s", r.signingBaseURL, profile.NationalID)
	}
	return ports.RenderedContract{
		Content:    buf.Bytes(),
		SigningURL: signingURL,
	}, nil
}

const partnershipTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Contrato de Parceria</title></head>
<body>
<h1>CONTRATO DE PARCERIA COMERCIAL</h1>
<p style="text-align: right;">São Paulo, {{.Date}}</p>

<h2>PARCEIRO</h2>
<p>
  <strong>{{.Name}}</strong><br>
  CPF: {{.CPF}}<br>
  CRECI: {{.License}}<br>
  E-mail: {{.Email}}<br>
  Endereço: {{.Address}}
</p>

<h2>CLÁUSULA 1 - DO OBJETO</h2>
<p>1.1. O presente contrato regula a indicação de clientes para serviços de
documentação imobiliária pelo PARCEIRO.</p>

<h2>CLÁUSULA 2 - DA REMUNERAÇÃO</h2>
<p>2.1. O PARCEIRO receberá comissão de 20% (vinte por cento) sobre o valor
líquido de cada serviço efetivado a partir de sua indicação.</p>
<p>2.2. A CONTRATADA fornecerá relatório mensal de indicações e comissões.</p>

<h2>CLÁUSULA 3 - DAS OBRIGAÇÕES DO PARCEIRO</h2>
<p>3.1. Manter seu registro no CRECI ativo e regular durante toda a vigência
deste contrato.</p>

<h2>CLÁUSULA 4 - DA VIGÊNCIA</h2>
<p>4.1. O presente contrato terá vigência de 12 (doze) meses, renovável por
igual período, podendo ser rescindido mediante aviso prévio de 30 dias.</p>
<p>4.2. Em caso de rescisão, as comissões de indicações já efetivadas serão
pagas normalmente.</p>

<p style="text-align: right;">São Paulo, {{.Date}}</p>
<p><strong>{{.Name}}</strong><br>CPF: {{.CPF}}<br>CRECI: {{.License}}</p>
</body>
</html>`
