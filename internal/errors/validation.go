package errors

import (
	"fmt"
	"sort"
	"strings"
)

// MetaValidation is the metadata key holding the per-field problems of a
// validation failure
const MetaValidation = "validation_errors"

// ValidationError maps field paths to their problems
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// Error lists fields in sorted order so messages are stable
func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		names = append(names, field)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, field := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", field, strings.Join(v.Fields[field], ", "))
	}
	return b.String()
}

// ValidationBuilder collects field problems for configs, requests and
// reference tables. Build returns nil when nothing was recorded.
type ValidationBuilder struct {
	fields map[string][]string
}

func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

// Field records a problem with field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// Required records field as missing when value is blank
func (vb *ValidationBuilder) Required(field, value string) *ValidationBuilder {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
	return vb
}

// InRange records field when value falls outside [minValue, maxValue]
func (vb *ValidationBuilder) InRange(field string, value, minValue, maxValue int) *ValidationBuilder {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
	return vb
}

// OneOf records field when value is not one of allowed
func (vb *ValidationBuilder) OneOf(field, value string, allowed ...string) *ValidationBuilder {
	for _, a := range allowed {
		if value == a {
			return vb
		}
	}
	return vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
}

// Duplicate records an id that appears twice in a table
func (vb *ValidationBuilder) Duplicate(field, id string) *ValidationBuilder {
	return vb.Fieldf(field, "duplicate id %q", id)
}

// UnknownReference records a reference to an id missing from its table
func (vb *ValidationBuilder) UnknownReference(field, id string) *ValidationBuilder {
	return vb.Fieldf(field, "references unknown id %q", id)
}

// Build returns an InvalidArgument error carrying every recorded problem
func (vb *ValidationBuilder) Build() error {
	if len(vb.fields) == 0 {
		return nil
	}
	v := &ValidationError{Fields: vb.fields}
	return InvalidArgument(v.Error()).WithMeta(MetaValidation, v.Fields)
}
