package contact

import (
	"fmt"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/mail"
)

const (
	operatorSubject  = "Nowa wiadomość z formularza kontaktowego"
	submitterSubject = "Dziękujemy za kontakt!"
)

// operatorMessage is the notification sent to the site operator. Replies go
// straight to the visitor.
func operatorMessage(operator string, s Submission) mail.Message {
	return mail.Message{
		To:      []string{operator},
		ReplyTo: s.Email,
		Subject: operatorSubject,
		Body: fmt.Sprintf("Imię i nazwisko: %s\nE-mail: %s\n\nWiadomość:\n%s\n",
			s.Name, s.Email, s.Message),
	}
}

// submitterMessage is the acknowledgement sent back to the visitor.
func submitterMessage(s Submission) mail.Message {
	return mail.Message{
		To:      []string{s.Email},
		Subject: submitterSubject,
		Body: fmt.Sprintf("Cześć %s,\n\n"+
			"Dziękuję za wiadomość! Odezwę się tak szybko, jak to możliwe.\n\n"+
			"Twoja wiadomość:\n%s\n\n"+
			"Pozdrawiam,\nKARLAB Software\n",
			s.Name, s.Message),
	}
}
