package inquiry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/database"
)

// InquiryRepository defines the data access contract for inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, inq *Inquiry) error
}

// inquiryRepository opens a short-lived connection per insert.
type inquiryRepository struct {
	factory *database.Factory
}

// NewInquiryRepository creates a repository backed by the factory.
func NewInquiryRepository(factory *database.Factory) InquiryRepository {
	return &inquiryRepository{factory: factory}
}

// Create inserts one inquiry row.
func (r *inquiryRepository) Create(ctx context.Context, inq *Inquiry) error {
	query := r.factory.Dialect().Rebind(`INSERT INTO inquiries
		(name, email, company, business_needs, service_type, budget_range, timeline,
		 project_description, additional_info, client_ip, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	return r.factory.WithConnection(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, query,
			inq.Name,
			inq.Email,
			nullString(inq.Company),
			inq.BusinessNeeds,
			inq.ServiceType,
			inq.BudgetRange,
			nullString(inq.Timeline),
			inq.ProjectDescription,
			nullString(inq.AdditionalInfo),
			inq.ClientIP,
			inq.UserAgent,
		)
		if err != nil {
			return fmt.Errorf("inserting inquiry: %w", err)
		}
		return nil
	})
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
