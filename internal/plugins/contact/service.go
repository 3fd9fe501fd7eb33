package contact

import (
	"context"
	"log/slog"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/mail"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/metrics"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/sanitize"
)

// ContactService sends contact form mail.
type ContactService interface {
	// Submit sends the operator notification and the visitor
	// acknowledgement. Both are always attempted; failures are reported in
	// the Result and logged, never returned.
	Submit(ctx context.Context, s Submission) Result
}

type contactService struct {
	mailer   mail.Sender
	operator string
}

// NewContactService creates a service mailing notifications to operator.
func NewContactService(mailer mail.Sender, operator string) ContactService {
	return &contactService{mailer: mailer, operator: operator}
}

// Submit implements ContactService.
func (s *contactService) Submit(ctx context.Context, sub Submission) Result {
	sub = Submission{
		Name:    sanitize.Header(sub.Name),
		Email:   sanitize.Header(sub.Email),
		Message: sanitize.Text(sub.Message),
	}
	metrics.RecordContactSubmission()

	var res Result
	res.OperatorErr = s.send(ctx, "contact_operator_mail", operatorMessage(s.operator, sub))
	if sub.Email != "" {
		res.SubmitterErr = s.send(ctx, "contact_submitter_mail", submitterMessage(sub))
	} else {
		res.SubmitterErr = errNoSubmitterAddress
		metrics.RecordStep("contact_submitter_mail", res.SubmitterErr)
		slog.Warn("contact form without email, acknowledgement skipped")
	}

	slog.Info("contact form submitted",
		slog.String("name", sub.Name),
		slog.String("email", sub.Email),
		slog.Bool("operator_notified", res.OperatorErr == nil),
		slog.Bool("submitter_notified", res.SubmitterErr == nil),
	)
	return res
}

// send delivers one message and records its outcome.
func (s *contactService) send(ctx context.Context, step string, msg mail.Message) error {
	err := s.mailer.Send(ctx, msg)
	metrics.RecordStep(step, err)
	if err != nil {
		slog.Error("sending contact mail failed",
			slog.String("step", step),
			slog.String("subject", msg.Subject),
			slog.Any("error", err),
		)
	}
	return err
}
