package inquiry

import (
	"fmt"
	"strings"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/mail"
)

const (
	operatorSubject  = "Nowe zapytanie biznesowe (inquiry.html)"
	submitterSubject = "Potwierdzenie otrzymania zapytania – KARLAB Software"
)

// operatorMessage carries every field plus the client IP and User-Agent.
func operatorMessage(operator string, inq *Inquiry) mail.Message {
	var b strings.Builder
	b.WriteString("Nowe zapytanie biznesowe:\n\n")
	fmt.Fprintf(&b, "Imię i nazwisko: %s\n", inq.Name)
	fmt.Fprintf(&b, "E-mail: %s\n", inq.Email)
	fmt.Fprintf(&b, "Firma: %s\n", inq.Company)
	fmt.Fprintf(&b, "Typ usługi: %s\n", inq.ServiceType)
	fmt.Fprintf(&b, "Budżet: %s\n", inq.BudgetRange)
	fmt.Fprintf(&b, "Termin: %s\n\n", inq.Timeline)
	fmt.Fprintf(&b, "Cel biznesowy:\n%s\n\n", inq.BusinessNeeds)
	fmt.Fprintf(&b, "Opis projektu:\n%s\n\n", inq.ProjectDescription)
	fmt.Fprintf(&b, "Dodatkowe informacje:\n%s\n\n", inq.AdditionalInfo)
	fmt.Fprintf(&b, "IP: %s | UA: %s\n", inq.ClientIP, inq.UserAgent)

	return mail.Message{
		To:      []string{operator},
		ReplyTo: inq.Email,
		Subject: operatorSubject,
		Body:    b.String(),
	}
}

// submitterMessage confirms receipt to the submitter.
func submitterMessage(inq *Inquiry) mail.Message {
	company := inq.Company
	if company == "" {
		company = "-"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cześć %s,\n\n", inq.Name)
	b.WriteString("Dziękujemy za przesłanie zapytania biznesowego!\n")
	b.WriteString("Odezwę się do Ciebie tak szybko, jak to możliwe.\n\n")
	b.WriteString("Twoje zgłoszenie:\n")
	fmt.Fprintf(&b, "- Usługa: %s\n", inq.ServiceType)
	fmt.Fprintf(&b, "- Budżet: %s\n", inq.BudgetRange)
	fmt.Fprintf(&b, "- Firma: %s\n\n", company)
	fmt.Fprintf(&b, "Opis projektu:\n%s\n\n", inq.ProjectDescription)
	b.WriteString("Pozdrawiam,\nKARLAB Software\n")

	return mail.Message{
		To:      []string{inq.Email},
		Subject: submitterSubject,
		Body:    b.String(),
	}
}
