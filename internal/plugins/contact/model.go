// Package contact handles the contact form: it mails the message to the
// operator and an acknowledgement to the visitor. Nothing is stored.
package contact

import "errors"

// errNoSubmitterAddress marks an acknowledgement skipped for lack of an address.
var errNoSubmitterAddress = errors.New("no submitter email address")

// Submission is the contact form as posted. Fields are not validated.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Result reports each send attempt. A nil error means the mail was accepted
// by the SMTP server.
type Result struct {
	OperatorErr  error
	SubmitterErr error
}
