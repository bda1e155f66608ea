package converters

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

var numberSystems = map[string]int{
	"binary":      2,
	"octal":       8,
	"decimal":     10,
	"hexadecimal": 16,
}

type NumberSystemResult struct {
	OriginalNumber  string `json:"original_number"`
	OriginalSystem  string `json:"original_system"`
	ConvertedNumber string `json:"converted_number"`
	ConvertedSystem string `json:"converted_system"`
	DecimalValue    int64  `json:"decimal_value"`
}

// NumberSystem converts digits between binary, octal, decimal, and
// hexadecimal. Hexadecimal output is uppercase.
func NumberSystem(_ context.Context, in *validate.Input) (any, error) {
	number := strings.TrimSpace(in.String("number"))
	fromSystem := in.String("from_system")
	toSystem := in.String("to_system")

	value, err := strconv.ParseInt(number, numberSystems[fromSystem], 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, apperrors.UnsupportedFormat(fmt.Sprintf("number %q does not fit in 64 bits", number))
		}
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("%q is not a valid %s number", number, fromSystem))
	}

	converted := strconv.FormatInt(value, numberSystems[toSystem])
	if toSystem == "hexadecimal" {
		converted = strings.ToUpper(converted)
	}

	return NumberSystemResult{
		OriginalNumber:  number,
		OriginalSystem:  fromSystem,
		ConvertedNumber: converted,
		ConvertedSystem: toSystem,
		DecimalValue:    value,
	}, nil
}

type ColorCodeResult struct {
	Hex  string `json:"hex"`
	RGB  string `json:"rgb"`
	HSL  string `json:"hsl"`
	CMYK string `json:"cmyk"`

	RGBValues  map[string]int `json:"rgb_values"`
	HSLValues  map[string]int `json:"hsl_values"`
	CMYKValues map[string]int `json:"cmyk_values"`
}

// ColorCode parses a color given as "#RRGGBB" or "r,g,b" and renders it in
// hex, rgb, hsl, and cmyk.
func ColorCode(_ context.Context, in *validate.Input) (any, error) {
	value := strings.TrimSpace(in.String("value"))

	var r, g, b int
	var err *apperrors.Error
	switch in.String("from_format") {
	case "hex":
		r, g, b, err = parseHexColor(value)
	case "rgb":
		r, g, b, err = parseRGBColor(value)
	}
	if err != nil {
		return nil, err
	}

	h, s, l := rgbToHSL(r, g, b)
	c, m, y, k := rgbToCMYK(r, g, b)

	return ColorCodeResult{
		Hex:        fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB:        fmt.Sprintf("rgb(%d, %d, %d)", r, g, b),
		HSL:        fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, s, l),
		CMYK:       fmt.Sprintf("cmyk(%d%%, %d%%, %d%%, %d%%)", c, m, y, k),
		RGBValues:  map[string]int{"r": r, "g": g, "b": b},
		HSLValues:  map[string]int{"h": h, "s": s, "l": l},
		CMYKValues: map[string]int{"c": c, "m": m, "y": y, "k": k},
	}, nil
}

func parseHexColor(value string) (r, g, b int, err *apperrors.Error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) != 6 {
		return 0, 0, 0, apperrors.UnsupportedFormat("hex color must be 6 hex digits")
	}
	parsed, parseErr := strconv.ParseUint(hex, 16, 32)
	if parseErr != nil {
		return 0, 0, 0, apperrors.UnsupportedFormat(fmt.Sprintf("%q is not a valid hex color", value))
	}
	return int(parsed >> 16), int(parsed >> 8 & 0xFF), int(parsed & 0xFF), nil
}

func parseRGBColor(value string) (r, g, b int, err *apperrors.Error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return 0, 0, 0, apperrors.UnsupportedFormat(`rgb color must be "r,g,b"`)
	}
	components := make([]int, 3)
	for i, part := range parts {
		component, parseErr := strconv.Atoi(strings.TrimSpace(part))
		if parseErr != nil || component < 0 || component > 255 {
			return 0, 0, 0, apperrors.UnsupportedFormat("rgb components must be integers in [0, 255]")
		}
		components[i] = component
	}
	return components[0], components[1], components[2], nil
}

func rgbToHSL(r, g, b int) (h, s, l int) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	maxC := max(rf, gf, bf)
	minC := min(rf, gf, bf)
	lf := (maxC + minC) / 2

	var hf, sf float64
	if maxC != minC {
		d := maxC - minC
		if lf > 0.5 {
			sf = d / (2 - maxC - minC)
		} else {
			sf = d / (maxC + minC)
		}
		switch maxC {
		case rf:
			hf = (gf - bf) / d
			if gf < bf {
				hf += 6
			}
		case gf:
			hf = (bf-rf)/d + 2
		default:
			hf = (rf-gf)/d + 4
		}
		hf /= 6
	}

	return int(hf * 360), int(sf * 100), int(lf * 100)
}

func rgbToCMYK(r, g, b int) (c, m, y, k int) {
	if r == 0 && g == 0 && b == 0 {
		return 0, 0, 0, 100
	}

	cf := 1 - float64(r)/255
	mf := 1 - float64(g)/255
	yf := 1 - float64(b)/255
	kf := min(cf, mf, yf)

	c = int((cf - kf) / (1 - kf) * 100)
	m = int((mf - kf) / (1 - kf) * 100)
	y = int((yf - kf) / (1 - kf) * 100)
	return c, m, y, int(kf * 100)
}

type PercentageResult struct {
	Calculation string  `json:"calculation"`
	Result      float64 `json:"result"`
	Formula     string  `json:"formula"`
	Direction   string  `json:"direction,omitempty"`
}

// Percentage performs one of five percentage calculations. Which operands
// are read depends on the calculation type; unread fields are ignored.
func Percentage(_ context.Context, in *validate.Input) (any, error) {
	calculation := in.String("calculation")

	switch calculation {
	case "percentage_of":
		percentage := in.Number("percentage")
		total := in.Number("total")
		result := round2(percentage / 100 * total)
		return PercentageResult{
			Calculation: calculation,
			Result:      result,
			Formula:     fmt.Sprintf("%s%% of %s = %s", trimFloat(percentage), trimFloat(total), trimFloat(result)),
		}, nil

	case "what_percent":
		value := in.Number("value")
		total := in.Number("total")
		if total == 0 {
			return nil, apperrors.InvalidInput("total", "must not be zero")
		}
		result := round2(value / total * 100)
		return PercentageResult{
			Calculation: calculation,
			Result:      result,
			Formula:     fmt.Sprintf("%s is %s%% of %s", trimFloat(value), trimFloat(result), trimFloat(total)),
		}, nil

	case "increase":
		value := in.Number("value")
		percentage := in.Number("percentage")
		result := round2(value * (1 + percentage/100))
		return PercentageResult{
			Calculation: calculation,
			Result:      result,
			Formula:     fmt.Sprintf("%s + %s%% = %s", trimFloat(value), trimFloat(percentage), trimFloat(result)),
		}, nil

	case "decrease":
		value := in.Number("value")
		percentage := in.Number("percentage")
		result := round2(value * (1 - percentage/100))
		return PercentageResult{
			Calculation: calculation,
			Result:      result,
			Formula:     fmt.Sprintf("%s - %s%% = %s", trimFloat(value), trimFloat(percentage), trimFloat(result)),
		}, nil

	case "change":
		oldValue := in.Number("old_value")
		newValue := in.Number("new_value")
		if oldValue == 0 {
			return nil, apperrors.InvalidInput("old_value", "must not be zero")
		}
		result := round2((newValue - oldValue) / oldValue * 100)
		direction := "increase"
		if result < 0 {
			direction = "decrease"
		}
		return PercentageResult{
			Calculation: "percentage_change",
			Result:      result,
			Formula:     fmt.Sprintf("change from %s to %s = %s%%", trimFloat(oldValue), trimFloat(newValue), trimFloat(result)),
			Direction:   direction,
		}, nil

	default:
		return nil, apperrors.Internal(fmt.Sprintf("unhandled calculation type %q", calculation), nil)
	}
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
