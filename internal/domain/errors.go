package domain

import "fmt"

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NewNotFound(entity string, id int32) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError signals a violation of the one-active-repair-per-bike rule.
// When the blocking event could be resolved its summary is embedded so the
// caller can surface it.
type ConflictError struct {
	Message         string
	BlockingEventID int32
	BlockingType    MaintenanceType
	BlockingStatus  MaintenanceStatus
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ValidationError signals a malformed or unacceptable request: missing
// required fields, unknown enum values, empty update payloads, backwards
// status transitions.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
