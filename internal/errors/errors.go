// internal/errors/errors.go
package appErrors

import "fmt"

// ValidationError is returned when a call log submission is rejected before
// anything reaches a backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// WriteError wraps a failed append on the active backend.
type WriteError struct {
	Backend string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write call log to %s backend: %v", e.Backend, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func NewWriteError(backend string, err error) error {
	return &WriteError{Backend: backend, Err: err}
}

// RemoteUnavailableError explains why a remote backend was skipped at startup.
type RemoteUnavailableError struct {
	Backend string
	Err     error
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("%s backend unavailable: %v", e.Backend, e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error { return e.Err }

func NewRemoteUnavailable(backend string, err error) error {
	return &RemoteUnavailableError{Backend: backend, Err: err}
}

// CampaignNotFoundError is returned for lookups of campaigns missing from the catalog.
type CampaignNotFoundError struct {
	Name string
}

func (e *CampaignNotFoundError) Error() string {
	return fmt.Sprintf("campaign %q not found", e.Name)
}

func NewCampaignNotFound(name string) error {
	return &CampaignNotFoundError{Name: name}
}

// CustomerNotFoundError is returned when a customer id is not in a campaign's list.
type CustomerNotFoundError struct {
	Campaign string
	ID       string
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer %q not found in campaign %q", e.ID, e.Campaign)
}

func NewCustomerNotFound(campaign, id string) error {
	return &CustomerNotFoundError{Campaign: campaign, ID: id}
}
