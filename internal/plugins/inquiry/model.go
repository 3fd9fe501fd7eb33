// Package inquiry handles the business inquiry form. A valid inquiry is
// stored and mailed to the operator and the submitter; every one of those
// side effects is best-effort and reported separately.
package inquiry

// Inquiry is one row of the inquiries table. Rows are never updated.
type Inquiry struct {
	Name               string
	Email              string
	Company            string
	BusinessNeeds      string
	ServiceType        string
	BudgetRange        string
	Timeline           string
	ProjectDescription string
	AdditionalInfo     string
	ClientIP           string
	UserAgent          string
}

// Input is the form as posted plus request metadata.
type Input struct {
	Name               string
	Email              string
	Company            string
	BusinessNeeds      string
	ServiceType        string
	BudgetRange        string
	Timeline           string
	ProjectDescription string
	AdditionalInfo     string

	ClientIP  string
	UserAgent string
}

// Values returns the form fields keyed by their form names.
func (in Input) Values() map[string]string {
	return map[string]string{
		"name":                in.Name,
		"email":               in.Email,
		"company":             in.Company,
		"business_needs":      in.BusinessNeeds,
		"service_type":        in.ServiceType,
		"budget_range":        in.BudgetRange,
		"timeline":            in.Timeline,
		"project_description": in.ProjectDescription,
		"additional_info":     in.AdditionalInfo,
	}
}

// StepResult is the outcome of one best-effort side effect.
type StepResult struct {
	Attempted bool
	Err       error
}

// OK reports whether the step ran and succeeded.
func (r StepResult) OK() bool {
	return r.Attempted && r.Err == nil
}

// Outcome is the result of a submission. Submitted is true once validation
// passed, whatever happened to the individual steps.
type Outcome struct {
	Submitted bool
	Errors    []string

	Stored            StepResult
	OperatorNotified  StepResult
	SubmitterNotified StepResult
}
