// Package validate turns raw request envelopes into strongly-typed inputs
// by applying an operation descriptor's field schema.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
)

// Input is a validated, typed view of one request. It is constructed only
// when every schema check passed; converters may read fields without
// re-checking presence or type.
type Input struct {
	fields  map[string]any
	payload []byte
}

// String returns a string field. The schema guarantees presence and type.
func (in *Input) String(name string) string {
	v, _ := in.fields[name].(string)
	return v
}

// Number returns a numeric field as float64.
func (in *Input) Number(name string) float64 {
	v, _ := in.fields[name].(float64)
	return v
}

// Int returns an integer field.
func (in *Input) Int(name string) int {
	v, _ := in.fields[name].(int)
	return v
}

// Bool returns a boolean field.
func (in *Input) Bool(name string) bool {
	v, _ := in.fields[name].(bool)
	return v
}

// Has reports whether an optional field was supplied (or defaulted).
func (in *Input) Has(name string) bool {
	_, ok := in.fields[name]
	return ok
}

// Payload returns the raw byte payload of a file-bearing operation.
func (in *Input) Payload() []byte {
	return in.payload
}

// Apply checks req against the descriptor's schema and produces a typed
// Input. Fields are checked in declaration order and the first failing check
// short-circuits: the result is a single *errors.Error naming that field.
// maxPayload is the configured ceiling for byte payloads; a payload exactly
// at the ceiling is accepted.
func Apply(desc domain.Descriptor, req domain.Request, maxPayload int64) (*Input, *apperrors.Error) {
	if desc.AcceptsPayload {
		if len(req.Payload) == 0 {
			return nil, apperrors.InvalidInput("file", "file payload is required")
		}
		if int64(len(req.Payload)) > maxPayload {
			return nil, apperrors.PayloadTooLarge(
				fmt.Sprintf("payload of %d bytes exceeds the %d byte limit", len(req.Payload), maxPayload))
		}
	}

	fields := make(map[string]any, len(desc.Fields))
	for _, spec := range desc.Fields {
		raw, present := req.Fields[spec.Name]
		if !present || raw == nil {
			if spec.Required {
				return nil, apperrors.InvalidInput(spec.Name, "field is required")
			}
			if spec.Default != nil {
				fields[spec.Name] = spec.Default
			}
			continue
		}

		value, err := coerce(spec, raw)
		if err != nil {
			return nil, err
		}
		fields[spec.Name] = value
	}

	return &Input{fields: fields, payload: req.Payload}, nil
}

func coerce(spec domain.FieldSpec, raw any) (any, *apperrors.Error) {
	switch spec.Kind {
	case domain.KindString:
		return coerceString(spec, raw)
	case domain.KindEnum:
		return coerceEnum(spec, raw)
	case domain.KindNumber:
		return coerceNumber(spec, raw)
	case domain.KindInt:
		return coerceInt(spec, raw)
	case domain.KindBool:
		return coerceBool(spec, raw)
	default:
		return nil, apperrors.Internal(fmt.Sprintf("unknown field kind %q for field %q", spec.Kind, spec.Name), nil)
	}
}

func coerceString(spec domain.FieldSpec, raw any) (any, *apperrors.Error) {
	s, ok := raw.(string)
	if !ok {
		return nil, apperrors.InvalidInput(spec.Name, "must be a string")
	}
	if spec.Required && s == "" {
		return nil, apperrors.InvalidInput(spec.Name, "must not be empty")
	}
	if spec.MaxLen > 0 && len(s) > spec.MaxLen {
		return nil, apperrors.InvalidInput(spec.Name,
			fmt.Sprintf("must be at most %d bytes, got %d", spec.MaxLen, len(s)))
	}
	return s, nil
}

func coerceEnum(spec domain.FieldSpec, raw any) (any, *apperrors.Error) {
	s, ok := raw.(string)
	if !ok {
		return nil, apperrors.InvalidInput(spec.Name, "must be a string")
	}
	for _, allowed := range spec.Enum {
		if s == allowed || (spec.FoldCase && strings.EqualFold(s, allowed)) {
			// Normalize to the declared casing.
			return allowed, nil
		}
	}
	return nil, apperrors.InvalidInput(spec.Name,
		fmt.Sprintf("must be one of [%s]", strings.Join(spec.Enum, ", ")))
}

func coerceNumber(spec domain.FieldSpec, raw any) (any, *apperrors.Error) {
	f, err := toFloat(raw)
	if err != nil {
		return nil, apperrors.InvalidInput(spec.Name, "must be a number")
	}
	if bad := checkRange(spec, f); bad != nil {
		return nil, bad
	}
	return f, nil
}

func coerceInt(spec domain.FieldSpec, raw any) (any, *apperrors.Error) {
	f, err := toFloat(raw)
	if err != nil {
		return nil, apperrors.InvalidInput(spec.Name, "must be an integer")
	}
	// Reject lossy coercion: 3.5 is not an integer.
	if f != math.Trunc(f) {
		return nil, apperrors.InvalidInput(spec.Name, "must be a whole number")
	}
	if bad := checkRange(spec, f); bad != nil {
		return nil, bad
	}
	return int(f), nil
}

func coerceBool(spec domain.FieldSpec, raw any) (any, *apperrors.Error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, apperrors.InvalidInput(spec.Name, "must be a boolean")
		}
		return b, nil
	default:
		return nil, apperrors.InvalidInput(spec.Name, "must be a boolean")
	}
}

func checkRange(spec domain.FieldSpec, f float64) *apperrors.Error {
	if spec.Min != nil && f < *spec.Min {
		return apperrors.InvalidInput(spec.Name,
			fmt.Sprintf("must be at least %s", formatBound(*spec.Min)))
	}
	if spec.Max != nil && f > *spec.Max {
		return apperrors.InvalidInput(spec.Name,
			fmt.Sprintf("must be at most %s", formatBound(*spec.Max)))
	}
	return nil
}

// toFloat accepts the numeric shapes JSON decoding and form parsing produce.
func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
