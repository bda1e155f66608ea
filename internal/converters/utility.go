package converters

import (
	"context"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

// unitFactors maps each unit to its factor relative to the category's base
// unit (meters, kilograms, square meters). Temperature is handled separately.
var unitFactors = map[string]map[string]float64{
	"length": {
		"meter":      1,
		"kilometer":  1000,
		"centimeter": 0.01,
		"millimeter": 0.001,
		"mile":       1609.34,
		"yard":       0.9144,
		"foot":       0.3048,
		"inch":       0.0254,
	},
	"weight": {
		"kilogram":  1,
		"gram":      0.001,
		"milligram": 0.000001,
		"pound":     0.453592,
		"ounce":     0.0283495,
		"ton":       1000,
	},
	"area": {
		"square_meter":      1,
		"square_kilometer":  1000000,
		"square_centimeter": 0.0001,
		"square_foot":       0.092903,
		"square_mile":       2589988,
		"acre":              4046.86,
		"hectare":           10000,
	},
}

var temperatureUnits = map[string]bool{
	"celsius":    true,
	"fahrenheit": true,
	"kelvin":     true,
}

type UnitConvertResult struct {
	OriginalValue  float64 `json:"original_value"`
	OriginalUnit   string  `json:"original_unit"`
	ConvertedValue float64 `json:"converted_value"`
	ConvertedUnit  string  `json:"converted_unit"`
	Category       string  `json:"category"`
}

// UnitConvert converts a value between units of one category through the
// category's base unit. Unit membership within the chosen category is a
// cross-field rule, checked here.
func UnitConvert(_ context.Context, in *validate.Input) (any, error) {
	value := in.Number("value")
	category := in.String("category")
	fromUnit := in.String("from_unit")
	toUnit := in.String("to_unit")

	var result float64
	if category == "temperature" {
		if !temperatureUnits[fromUnit] || !temperatureUnits[toUnit] {
			return nil, apperrors.UnsupportedFormat(
				fmt.Sprintf("unknown temperature unit %q or %q", fromUnit, toUnit))
		}
		result = convertTemperature(value, fromUnit, toUnit)
	} else {
		factors := unitFactors[category]
		fromFactor, fromOK := factors[fromUnit]
		toFactor, toOK := factors[toUnit]
		if !fromOK || !toOK {
			return nil, apperrors.UnsupportedFormat(
				fmt.Sprintf("unknown %s unit %q or %q", category, fromUnit, toUnit))
		}
		result = value * fromFactor / toFactor
	}

	return UnitConvertResult{
		OriginalValue:  value,
		OriginalUnit:   fromUnit,
		ConvertedValue: round6(result),
		ConvertedUnit:  toUnit,
		Category:       category,
	}, nil
}

func convertTemperature(value float64, fromUnit, toUnit string) float64 {
	var celsius float64
	switch fromUnit {
	case "fahrenheit":
		celsius = (value - 32) * 5 / 9
	case "kelvin":
		celsius = value - 273.15
	default:
		celsius = value
	}

	switch toUnit {
	case "fahrenheit":
		return celsius*9/5 + 32
	case "kelvin":
		return celsius + 273.15
	default:
		return celsius
	}
}

type TimezoneConvertResult struct {
	SourceDatetime      string `json:"source_datetime"`
	TargetDatetime      string `json:"target_datetime"`
	SourceTimezone      string `json:"source_timezone"`
	TargetTimezone      string `json:"target_timezone"`
	TimeDifferenceHours int    `json:"time_difference_hours"`
}

// TimezoneConvert moves a wall-clock time between IANA timezones. The date
// defaults to today when absent.
func (s *Set) TimezoneConvert(_ context.Context, in *validate.Input) (any, error) {
	fromTZ := in.String("from_tz")
	toTZ := in.String("to_tz")

	source, err := time.LoadLocation(fromTZ)
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("unknown timezone %q", fromTZ))
	}
	target, err := time.LoadLocation(toTZ)
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("unknown timezone %q", toTZ))
	}

	clockTime, err := time.Parse("15:04", in.String("time"))
	if err != nil {
		return nil, apperrors.UnsupportedFormat(`time must be in "HH:MM" format`)
	}

	date := s.clock.Now().In(source)
	if in.Has("date") {
		date, err = time.Parse("2006-01-02", in.String("date"))
		if err != nil {
			return nil, apperrors.UnsupportedFormat(`date must be in "YYYY-MM-DD" format`)
		}
	}

	sourceTime := time.Date(date.Year(), date.Month(), date.Day(),
		clockTime.Hour(), clockTime.Minute(), 0, 0, source)
	targetTime := sourceTime.In(target)

	return TimezoneConvertResult{
		SourceDatetime:      sourceTime.Format("2006-01-02 15:04 MST"),
		TargetDatetime:      targetTime.Format("2006-01-02 15:04 MST"),
		SourceTimezone:      fromTZ,
		TargetTimezone:      toTZ,
		TimeDifferenceHours: ((targetTime.Hour() - sourceTime.Hour()) + 24) % 24,
	}, nil
}

type QRGenerateResult struct {
	QRCodeImage string `json:"qr_code_image"`
	Data        string `json:"data"`
	Size        int    `json:"size"`
	WidthPixels int    `json:"width_pixels"`
}

// QRGenerate renders text or a URL as a PNG QR code. The size field scales
// the output image: pixel width is size * 32.
func QRGenerate(_ context.Context, in *validate.Input) (any, error) {
	data := in.String("data")
	size := in.Int("size")

	widthPixels := size * 32
	png, err := qrcode.Encode(data, qrcode.Low, widthPixels)
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("cannot encode data as QR code: %v", err))
	}

	return QRGenerateResult{
		QRCodeImage: dataURI("image/png", png),
		Data:        data,
		Size:        size,
		WidthPixels: widthPixels,
	}, nil
}
