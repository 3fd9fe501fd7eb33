package inquiry

import (
	"context"
	"log/slog"
	"strings"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/mail"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/metrics"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/sanitize"
)

// Validation messages shown next to the form.
const (
	ErrMissingName        = "Brak imienia i nazwiska."
	ErrInvalidEmail       = "Nieprawidłowy e-mail."
	ErrMissingNeeds       = "Brak celu biznesowego."
	ErrMissingServiceType = "Brak typu usługi."
	ErrMissingBudget      = "Brak zakresu budżetu."
	ErrMissingDescription = "Brak opisu projektu."
)

// InquiryService processes inquiry submissions.
type InquiryService interface {
	// Submit validates the input and, when valid, stores it and sends both
	// mails. Step failures are logged and reported in the Outcome.
	Submit(ctx context.Context, in Input) Outcome
}

type inquiryService struct {
	repo     InquiryRepository
	mailer   mail.Sender
	operator string
}

// NewInquiryService creates a new inquiry service mailing the operator.
func NewInquiryService(repo InquiryRepository, mailer mail.Sender, operator string) InquiryService {
	return &inquiryService{repo: repo, mailer: mailer, operator: operator}
}

// Normalize trims every field. Single-line fields also have their
// whitespace, line breaks included, collapsed.
func Normalize(in Input) Input {
	return Input{
		Name:               sanitize.Header(in.Name),
		Email:              sanitize.Header(in.Email),
		Company:            sanitize.Header(in.Company),
		BusinessNeeds:      sanitize.Text(in.BusinessNeeds),
		ServiceType:        sanitize.Header(in.ServiceType),
		BudgetRange:        sanitize.Header(in.BudgetRange),
		Timeline:           sanitize.Header(in.Timeline),
		ProjectDescription: sanitize.Text(in.ProjectDescription),
		AdditionalInfo:     sanitize.Text(in.AdditionalInfo),
		ClientIP:           strings.TrimSpace(in.ClientIP),
		UserAgent:          strings.TrimSpace(in.UserAgent),
	}
}

// Validate returns one message per missing or invalid required field, in
// form order. An empty result means the input is valid.
func Validate(in Input) []string {
	var errs []string
	if in.Name == "" {
		errs = append(errs, ErrMissingName)
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		errs = append(errs, ErrInvalidEmail)
	}
	if in.BusinessNeeds == "" {
		errs = append(errs, ErrMissingNeeds)
	}
	if in.ServiceType == "" {
		errs = append(errs, ErrMissingServiceType)
	}
	if in.BudgetRange == "" {
		errs = append(errs, ErrMissingBudget)
	}
	if in.ProjectDescription == "" {
		errs = append(errs, ErrMissingDescription)
	}
	return errs
}

// Submit implements InquiryService.
func (s *inquiryService) Submit(ctx context.Context, in Input) Outcome {
	in = Normalize(in)

	if errs := Validate(in); len(errs) > 0 {
		slog.Warn("inquiry validation failed",
			slog.Any("errors", errs),
			slog.String("client_ip", in.ClientIP),
		)
		metrics.RecordInquiry(false)
		return Outcome{Errors: errs}
	}
	metrics.RecordInquiry(true)

	inq := &Inquiry{
		Name:               in.Name,
		Email:              in.Email,
		Company:            in.Company,
		BusinessNeeds:      in.BusinessNeeds,
		ServiceType:        in.ServiceType,
		BudgetRange:        in.BudgetRange,
		Timeline:           in.Timeline,
		ProjectDescription: in.ProjectDescription,
		AdditionalInfo:     in.AdditionalInfo,
		ClientIP:           in.ClientIP,
		UserAgent:          in.UserAgent,
	}

	out := Outcome{Submitted: true}
	out.Stored = s.step("inquiry_store", func() error {
		return s.repo.Create(ctx, inq)
	})
	out.OperatorNotified = s.step("inquiry_operator_mail", func() error {
		return s.mailer.Send(ctx, operatorMessage(s.operator, inq))
	})
	out.SubmitterNotified = s.step("inquiry_submitter_mail", func() error {
		return s.mailer.Send(ctx, submitterMessage(inq))
	})

	slog.Info("new inquiry",
		slog.String("name", inq.Name),
		slog.String("email", inq.Email),
		slog.String("company", inq.Company),
		slog.String("service_type", inq.ServiceType),
		slog.String("budget_range", inq.BudgetRange),
		slog.Bool("stored", out.Stored.OK()),
		slog.Bool("operator_notified", out.OperatorNotified.OK()),
		slog.Bool("submitter_notified", out.SubmitterNotified.OK()),
	)
	return out
}

// step runs one best-effort side effect, logging and counting its result.
func (s *inquiryService) step(name string, fn func() error) StepResult {
	err := fn()
	metrics.RecordStep(name, err)
	if err != nil {
		slog.Error("inquiry step failed",
			slog.String("step", name),
			slog.Any("error", err),
		)
	}
	return StepResult{Attempted: true, Err: err}
}
