package errs

import (
	"errors"
	"fmt"
)

var (
	ErrParse            = errors.New("barcode cannot be parsed")
	ErrPolicyViolation  = errors.New("scan violates policy")
	ErrDuplicateSerial  = errors.New("serial number is already used")
	ErrQuantityConflict = errors.New("quantity conflicts with tracking")
	ErrValidation       = errors.New("document validation failed")
)

// ParseError is returned when a scanned code is unrecognized or ambiguous.
// Message is the operator-facing text.
type ParseError struct {
	Barcode string
	Message string
	Cause   error
}

func NewParseError(barcode string, message string) *ParseError {
	return &ParseError{
		Barcode: barcode,
		Message: message,
	}
}

func NewParseErrorWithCause(barcode string, message string, cause error) *ParseError {
	return &ParseError{
		Barcode: barcode,
		Message: message,
		Cause:   cause,
	}
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %q, %s (cause: %v)", ErrParse, e.Barcode, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %q, %s", ErrParse, e.Barcode, e.Message)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// PolicyViolationError is returned when a scan breaks a configured restriction.
type PolicyViolationError struct {
	Title   string
	Message string
}

func NewPolicyViolationError(title string, message string) *PolicyViolationError {
	return &PolicyViolationError{
		Title:   title,
		Message: message,
	}
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrPolicyViolation, e.Title, e.Message)
}

func (e *PolicyViolationError) Unwrap() error {
	return ErrPolicyViolation
}

// DuplicateSerialError is returned when a serial number is already done on
// another line of the same product.
type DuplicateSerialError struct {
	SerialName  string
	ProductName string
}

func NewDuplicateSerialError(serialName string, productName string) *DuplicateSerialError {
	return &DuplicateSerialError{
		SerialName:  serialName,
		ProductName: productName,
	}
}

func (e *DuplicateSerialError) Error() string {
	return fmt.Sprintf("%s: %s for %s", ErrDuplicateSerial, e.SerialName, e.ProductName)
}

func (e *DuplicateSerialError) Unwrap() error {
	return ErrDuplicateSerial
}

// QuantityConflictError reports a requested quantity that was clamped to Allowed.
type QuantityConflictError struct {
	ProductName string
	Requested   any
	Allowed     any
}

func NewQuantityConflictError(productName string, requested any, allowed any) *QuantityConflictError {
	return &QuantityConflictError{
		ProductName: productName,
		Requested:   requested,
		Allowed:     allowed,
	}
}

func (e *QuantityConflictError) Error() string {
	return fmt.Sprintf("%s: %v requested for %s, %v allowed", ErrQuantityConflict, e.Requested, e.ProductName, e.Allowed)
}

func (e *QuantityConflictError) Unwrap() error {
	return ErrQuantityConflict
}

// ValidationError is returned by document finalization.
type ValidationError struct {
	DocumentID string
	Reason     string
	Cause      error
}

func NewValidationError(documentID string, reason string) *ValidationError {
	return &ValidationError{
		DocumentID: documentID,
		Reason:     reason,
	}
}

func NewValidationErrorWithCause(documentID string, reason string, cause error) *ValidationError {
	return &ValidationError{
		DocumentID: documentID,
		Reason:     reason,
		Cause:      cause,
	}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: document %s, %s (cause: %v)", ErrValidation, e.DocumentID, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: document %s, %s", ErrValidation, e.DocumentID, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
