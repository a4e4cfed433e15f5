// Package screener compiles client filter criteria into predicates and runs
// them against an immutable snapshot: filter, sort, paginate. It holds no
// state of its own; every call operates on the snapshot it is handed.
package screener

import (
	"fmt"
	"strconv"

	"github.com/guttosm/screenpulse/internal/domain/dto"
	"github.com/guttosm/screenpulse/internal/domain/models"
	"github.com/guttosm/screenpulse/internal/fields"
)

// ValidationError marks a client-caused query error: unknown field, operator
// not supported for the field's kind, malformed between pair, or a value that
// does not parse as a number. It is returned synchronously and never retried.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

// Predicate reports whether one company record matches a compiled filter list.
// A compiled predicate is reusable across any number of records.
type Predicate func(c *models.Company) bool

// Supported filter operators.
const (
	OpGT      = "gt"
	OpGTE     = "gte"
	OpLT      = "lt"
	OpLTE     = "lte"
	OpEQ      = "eq"
	OpBetween = "between"
)

// Compile turns a filter list into a single predicate. Filters combine with
// logical AND; an empty list matches every record.
//
// Null semantics: a record whose value is null/absent for a filtered field
// never matches, whatever the operator. Nulls are excluded, not coerced to
// zero, so they cannot spuriously satisfy lt/lte thresholds.
//
// Numeric eq compares IEEE doubles exactly, as the client contract observes;
// values that differ only by floating-point noise will not match.
func Compile(filters []dto.ScreenFilter) (Predicate, error) {
	checks := make([]Predicate, 0, len(filters))

	for _, f := range filters {
		d, ok := fields.Describe(f.Field)
		if !ok {
			return nil, &ValidationError{Field: f.Field, Msg: "unknown field"}
		}

		var check Predicate
		var err error
		switch d.Kind {
		case fields.KindText:
			check, err = compileText(d, f)
		default:
			check, err = compileNumeric(d, f)
		}
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	return func(c *models.Company) bool {
		for _, check := range checks {
			if !check(c) {
				return false
			}
		}
		return true
	}, nil
}

func compileText(d fields.Descriptor, f dto.ScreenFilter) (Predicate, error) {
	if f.Operator != OpEQ {
		return nil, &ValidationError{Field: f.Field, Msg: fmt.Sprintf("operator %q not supported for text fields", f.Operator)}
	}
	want, ok := f.Value.(string)
	if !ok {
		return nil, &ValidationError{Field: f.Field, Msg: "text filter requires a string value"}
	}
	return func(c *models.Company) bool {
		v := d.Text(c)
		return v != "" && v == want
	}, nil
}

func compileNumeric(d fields.Descriptor, f dto.ScreenFilter) (Predicate, error) {
	switch f.Operator {
	case OpBetween:
		lo, hi, err := betweenBounds(f)
		if err != nil {
			return nil, err
		}
		return func(c *models.Company) bool {
			v := d.Number(c)
			return v != nil && *v >= lo && *v <= hi
		}, nil

	case OpGT, OpGTE, OpLT, OpLTE, OpEQ:
		want, err := toNumber(f.Value)
		if err != nil {
			return nil, &ValidationError{Field: f.Field, Msg: err.Error()}
		}
		op := f.Operator
		return func(c *models.Company) bool {
			v := d.Number(c)
			if v == nil {
				return false
			}
			switch op {
			case OpGT:
				return *v > want
			case OpGTE:
				return *v >= want
			case OpLT:
				return *v < want
			case OpLTE:
				return *v <= want
			default: // OpEQ
				return *v == want
			}
		}, nil

	default:
		return nil, &ValidationError{Field: f.Field, Msg: fmt.Sprintf("unsupported operator %q", f.Operator)}
	}
}

// betweenBounds extracts and orders the pair for a between filter. The engine
// treats the pair as low/high regardless of the order supplied, tolerating
// malformed client input.
func betweenBounds(f dto.ScreenFilter) (lo, hi float64, err error) {
	pair, ok := f.Value.([]any)
	if !ok || len(pair) != 2 {
		return 0, 0, &ValidationError{Field: f.Field, Msg: "between requires exactly two values"}
	}
	a, err := toNumber(pair[0])
	if err != nil {
		return 0, 0, &ValidationError{Field: f.Field, Msg: err.Error()}
	}
	b, err := toNumber(pair[1])
	if err != nil {
		return 0, 0, &ValidationError{Field: f.Field, Msg: err.Error()}
	}
	if a > b {
		a, b = b, a
	}
	return a, b, nil
}

// toNumber coerces a decoded JSON value to float64. JSON numbers arrive as
// float64 already; numeric strings are accepted for client convenience.
func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("value %v is not a number", v)
	}
}
