package service

import (
	"fmt"
	"strings"

	"pratico/internal/onboarding/models"
)

// Chat copy sent to registrants. Kept in one place so the flow reads as a
// script.
const (
	msgWelcome = "Bem-vindo ao cadastro de parceiros! 🏠\n" +
		"Vamos precisar de alguns documentos.\n\n" +
		"1º documento: envie uma foto do seu RG ou CNH."

	msgPromptDoc2 = "Documento recebido! ✅\n\n" +
		"2º documento: envie uma foto da sua carteira do CRECI."

	msgPromptAddressChoice = "Documento recebido! ✅\n\n" +
		"Como prefere informar seu endereço?\n" +
		"1 - Digitar o endereço\n" +
		"2 - Enviar foto de um comprovante de endereço"

	msgPromptAddressTyped = "Certo! Digite seu endereço completo (rua, número, bairro, cidade e CEP)."

	msgPromptDoc3 = "Certo! Envie uma foto do comprovante de endereço (conta de luz, água ou telefone)."

	msgPromptMaritalStatus = "Recebido! ✅\n\n" +
		"Para finalizar a coleta: qual o seu estado civil?"

	msgProcessing = "Perfeito! Estamos processando seus documentos. " +
		"Em instantes te enviamos os dados extraídos para conferência. ⏳"

	msgAddressChoiceRetry = "Não entendi. Responda com:\n" +
		"1 - Digitar o endereço\n" +
		"2 - Enviar foto de um comprovante de endereço"

	msgMediaUnresolved = "Não consegui baixar o arquivo. 😕 Pode enviar a foto novamente?"

	msgPleaseStart = "Olá! Você ainda não tem um cadastro em andamento. " +
		"Para começar, fale com nosso time ou acesse o link de cadastro."

	msgEmailPrompt = "Dados confirmados! ✅\n\n" +
		"Agora informe o seu e-mail para contato."

	msgEmailRejectedHere = "Esse parece ser um e-mail. 😉 O e-mail será pedido no próximo passo.\n" +
		"Por enquanto, corrija um campo com CAMPO: valor ou envie CONFIRMAR."

	msgCorrectionHelp = "Para corrigir um dado, envie no formato CAMPO: valor.\n" +
		"Exemplo: NOME: Maria Silva\n" +
		"Campos: NOME, CPF, NASCIMENTO, CRECI, ENDERECO, ESTADO CIVIL.\n" +
		"Quando estiver tudo certo, envie CONFIRMAR."

	msgGenericFailure = "Tivemos um problema ao processar seus dados. 😕 " +
		"Nossa equipe já foi avisada. Tente novamente em alguns minutos."

	msgPaymentError = "Não conseguimos criar sua conta de pagamentos. 😕 " +
		"Nossa equipe vai entrar em contato para resolver."

	msgActive = "Parceria ativada! 🎉 Bem-vindo ao time. " +
		"Em breve você recebe os primeiros leads."
)

func msgLicenseInvalid(reason string) string {
	text := "Não conseguimos validar seu CRECI junto ao conselho."
	if reason != "" {
		text += " Motivo: " + reason + "."
	}
	return text + " Procure nosso time para regularizar."
}

func msgAcceptance(contractURL string) string {
	text := "Seu contrato de parceria está pronto! 📄\n" +
		"Comissão: 20% por transação | Vigência: 12 meses.\n"
	if contractURL != "" {
		text += "Leia aqui: " + contractURL + "\n"
	}
	return text + "Para aceitar, responda ACEITO."
}

func msgFieldConfirmed(field models.Field, value string) string {
	return fmt.Sprintf("Campo %s atualizado para: %s ✅", fieldLabel(field), value)
}

func msgUnknownField(name string) string {
	return fmt.Sprintf("Não reconheci o campo %q. 🤔\n"+
		"Campos válidos: NOME, CPF, NASCIMENTO, CRECI, ENDERECO, ESTADO CIVIL.", name)
}

// msgReview lists the extracted values plus whatever still needs correcting.
func msgReview(profile models.Profile, pending []models.Field) string {
	var b strings.Builder
	b.WriteString("Confira os dados extraídos dos seus documentos:\n\n")
	writeLine := func(label, value string) {
		if value == "" {
			value = "(não identificado)"
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", label, value))
	}
	writeLine("Nome", profile.Name)
	writeLine("CPF", profile.NationalID)
	writeLine("Nascimento", profile.BirthDate)
	writeLine("CRECI", profile.LicenseNumber)
	writeLine("Endereço", profile.Address)
	writeLine("Estado civil", profile.MaritalStatus)
	if len(pending) > 0 {
		b.WriteString("\nAinda faltam: " + fieldList(pending) + ".\n")
	}
	b.WriteString("\nPara corrigir, envie CAMPO: valor (ex.: NOME: Maria Silva).\n")
	b.WriteString("Quando estiver tudo certo, envie CONFIRMAR.")
	return b.String()
}

func msgStillPending(pending []models.Field) string {
	return "Ainda faltam os campos: " + fieldList(pending) + ".\n" +
		"Corrija com CAMPO: valor antes de confirmar."
}

func msgMissingAtFinalize(missing []models.Field) string {
	return "Antes de prosseguir precisamos completar: " + fieldList(missing) + ".\n" +
		"Corrija com CAMPO: valor e envie CONFIRMAR."
}

func fieldList(fields []models.Field) string {
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = fieldLabel(f)
	}
	return strings.Join(labels, ", ")
}

func fieldLabel(f models.Field) string {
	switch f {
	case models.FieldName:
		return "NOME"
	case models.FieldNationalID:
		return "CPF"
	case models.FieldBirthDate:
		return "NASCIMENTO"
	case models.FieldLicense:
		return "CRECI"
	case models.FieldAddress:
		return "ENDERECO"
	case models.FieldMaritalStatus:
		return "ESTADO CIVIL"
	}
	return strings.ToUpper(string(f))
}
