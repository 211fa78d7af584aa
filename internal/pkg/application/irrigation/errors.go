package irrigation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	r "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database/irrigation"
)

var ErrSensorNotFound = r.ErrSensorNotFound
var ErrSensorAlreadyExists = r.ErrSensorAlreadyExists
var ErrMotorNotFound = r.ErrMotorNotFound
var ErrMotorAlreadyExists = r.ErrMotorAlreadyExists
var ErrNoReadings = r.ErrReadingNotFound
var ErrModeCannotBeDeleted = r.ErrModeCannotBeDeleted
var ErrStore = r.ErrRepositoryError

var ErrManualControlNotAllowed = errors.New("Cannot manually control motor in AUTOMATIC mode. Switch to MANUAL mode first.")
var ErrBulkControlNotAllowed = errors.New("Bulk motor control only available in MANUAL mode")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// Map returns the field errors keyed by field name.
func (v *ValidationError) Map() map[string]string {
	m := make(map[string]string, len(v.Fields))
	for _, f := range v.Fields {
		m[f.Field] = f.Message
	}
	return m
}

func (v *ValidationError) add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
	sort.SliceStable(v.Fields, func(i, j int) bool { return v.Fields[i].Field < v.Fields[j].Field })
}

func (v *ValidationError) orNil() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func newValidationError(field, message string) error {
	v := &ValidationError{}
	v.add(field, message)
	return v
}

// PolicyError is returned when an operation is well formed but not allowed in the current mode.
type PolicyError struct {
	Err error
}

func (p *PolicyError) Error() string {
	return p.Err.Error()
}

func (p *PolicyError) Unwrap() error {
	return p.Err
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsPolicyError(err error) bool {
	var p *PolicyError
	return errors.As(err, &p)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrSensorNotFound) || errors.Is(err, ErrMotorNotFound) || errors.Is(err, ErrNoReadings)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrSensorAlreadyExists) || errors.Is(err, ErrMotorAlreadyExists)
}
