package registry

import (
	"github.com/yuggu7665-beep/converter-tools/internal/converters"
	"github.com/yuggu7665-beep/converter-tools/internal/domain"
)

// maxTextBytes bounds structured-text fields (CSV, JSON, YAML documents).
const maxTextBytes = 1 << 20 // 1 MiB

// Entries is the hand-authored operation table. Everything the service can
// convert is declared here; the registry constructor rejects duplicates and
// missing converters at startup.
func Entries(set *converters.Set) []Entry {
	return []Entry{
		// ai-data
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryAIData,
				Name:     "csv-to-jsonl",
				Summary:  "Convert CSV to JSONL for fine-tuning datasets",
				Fields: []domain.FieldSpec{
					{Name: "csv_content", Kind: domain.KindString, Required: true, MaxLen: maxTextBytes},
				},
				Outputs: []domain.OutputField{
					{Name: "jsonl_content", Kind: domain.KindString},
					{Name: "line_count", Kind: domain.KindInt},
				},
			},
			Handler: converters.CSVToJSONL,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryAIData,
				Name:     "json-to-csv",
				Summary:  "Convert a JSON array of objects to CSV",
				Fields: []domain.FieldSpec{
					{Name: "json_content", Kind: domain.KindString, Required: true, MaxLen: maxTextBytes},
				},
				Outputs: []domain.OutputField{
					{Name: "csv_content", Kind: domain.KindString},
					{Name: "row_count", Kind: domain.KindInt},
				},
			},
			Handler: converters.JSONToCSV,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryAIData,
				Name:     "token-count",
				Summary:  "Estimate LLM token usage and cost for a text",
				Fields: []domain.FieldSpec{
					{Name: "text", Kind: domain.KindString, Required: true, MaxLen: maxTextBytes},
					{Name: "model", Kind: domain.KindEnum, Default: "gpt-4", FoldCase: true,
						Enum: []string{"gpt-4", "gpt-3.5-turbo", "claude", "gemini"}},
				},
				Outputs: []domain.OutputField{
					{Name: "characters", Kind: domain.KindInt},
					{Name: "words", Kind: domain.KindInt},
					{Name: "estimated_tokens", Kind: domain.KindInt},
					{Name: "model", Kind: domain.KindString},
					{Name: "estimated_cost_usd", Kind: domain.KindNumber},
				},
			},
			Handler: converters.TokenCount,
		},

		// media
		{
			Descriptor: domain.Descriptor{
				Category:       domain.CategoryMedia,
				Name:           "image-to-webp",
				Summary:        "Convert an image to WebP",
				AcceptsPayload: true,
				Fields: []domain.FieldSpec{
					{Name: "quality", Kind: domain.KindInt, Default: 85, Min: domain.Bound(1), Max: domain.Bound(100)},
				},
				Outputs: []domain.OutputField{
					{Name: "webp_image", Kind: domain.KindString},
					{Name: "original_size_bytes", Kind: domain.KindInt},
					{Name: "converted_size_bytes", Kind: domain.KindInt},
				},
			},
			Handler: converters.ImageToWebP,
		},
		{
			Descriptor: domain.Descriptor{
				Category:       domain.CategoryMedia,
				Name:           "image-compress",
				Summary:        "Compress an image towards a target size",
				AcceptsPayload: true,
				Fields: []domain.FieldSpec{
					{Name: "max_size_kb", Kind: domain.KindInt, Default: 500, Min: domain.Bound(1)},
					{Name: "quality", Kind: domain.KindInt, Default: 85, Min: domain.Bound(1), Max: domain.Bound(100)},
				},
				Outputs: []domain.OutputField{
					{Name: "compressed_image", Kind: domain.KindString},
					{Name: "format", Kind: domain.KindString},
					{Name: "original_size_bytes", Kind: domain.KindInt},
					{Name: "compressed_size_bytes", Kind: domain.KindInt},
					{Name: "compression_ratio_percent", Kind: domain.KindNumber},
					{Name: "final_quality", Kind: domain.KindInt},
				},
			},
			Handler: converters.ImageCompress,
		},
		{
			Descriptor: domain.Descriptor{
				Category:       domain.CategoryMedia,
				Name:           "pdf-to-text",
				Summary:        "Extract plain text from a PDF",
				AcceptsPayload: true,
				Outputs: []domain.OutputField{
					{Name: "total_pages", Kind: domain.KindInt},
					{Name: "text", Kind: domain.KindString},
					{Name: "character_count", Kind: domain.KindInt},
					{Name: "word_count", Kind: domain.KindInt},
				},
			},
			Handler: converters.PDFToText,
		},

		// finance
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryFinance,
				Name:     "currency-convert",
				Summary:  "Convert between fiat currencies at the live rate",
				Fields: []domain.FieldSpec{
					{Name: "amount", Kind: domain.KindNumber, Required: true, Min: domain.Bound(0)},
					{Name: "from_currency", Kind: domain.KindString, Required: true, MaxLen: 3},
					{Name: "to_currency", Kind: domain.KindString, Required: true, MaxLen: 3},
				},
				Outputs: []domain.OutputField{
					{Name: "from_currency", Kind: domain.KindString},
					{Name: "to_currency", Kind: domain.KindString},
					{Name: "amount", Kind: domain.KindNumber},
					{Name: "converted_amount", Kind: domain.KindNumber},
					{Name: "exchange_rate", Kind: domain.KindNumber},
					{Name: "timestamp", Kind: domain.KindString},
				},
			},
			Handler: set.CurrencyConvert,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryFinance,
				Name:     "crypto-price",
				Summary:  "Look up the live price of a cryptocurrency",
				Fields: []domain.FieldSpec{
					{Name: "symbol", Kind: domain.KindEnum, Required: true, FoldCase: true,
						Enum: converters.CryptoSymbols()},
					{Name: "vs_currency", Kind: domain.KindString, Default: "usd", MaxLen: 8},
				},
				Outputs: []domain.OutputField{
					{Name: "cryptocurrency", Kind: domain.KindString},
					{Name: "currency", Kind: domain.KindString},
					{Name: "price", Kind: domain.KindNumber},
					{Name: "timestamp", Kind: domain.KindString},
				},
			},
			Handler: set.CryptoPrice,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryFinance,
				Name:     "tax-calculate",
				Summary:  "Calculate a GST/VAT/sales-tax breakdown",
				Fields: []domain.FieldSpec{
					{Name: "amount", Kind: domain.KindNumber, Required: true, Min: domain.Bound(0)},
					{Name: "tax_rate", Kind: domain.KindNumber, Required: true, Min: domain.Bound(0), Max: domain.Bound(100)},
					{Name: "tax_included", Kind: domain.KindBool, Default: false},
				},
				Outputs: []domain.OutputField{
					{Name: "base_amount", Kind: domain.KindNumber},
					{Name: "tax_rate_percent", Kind: domain.KindNumber},
					{Name: "tax_amount", Kind: domain.KindNumber},
					{Name: "total_amount", Kind: domain.KindNumber},
					{Name: "tax_included", Kind: domain.KindBool},
				},
			},
			Handler: converters.TaxCalculate,
		},

		// developer
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryDeveloper,
				Name:     "json-to-yaml",
				Summary:  "Convert JSON to YAML",
				Fields: []domain.FieldSpec{
					{Name: "json_content", Kind: domain.KindString, Required: true, MaxLen: maxTextBytes},
				},
				Outputs: []domain.OutputField{
					{Name: "yaml_content", Kind: domain.KindString},
				},
			},
			Handler: converters.JSONToYAML,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryDeveloper,
				Name:     "yaml-to-json",
				Summary:  "Convert YAML to JSON",
				Fields: []domain.FieldSpec{
					{Name: "yaml_content", Kind: domain.KindString, Required: true, MaxLen: maxTextBytes},
					{Name: "pretty", Kind: domain.KindBool, Default: true},
				},
				Outputs: []domain.OutputField{
					{Name: "json_content", Kind: domain.KindString},
				},
			},
			Handler: converters.YAMLToJSON,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryDeveloper,
				Name:     "base64-encode",
				Summary:  "Encode text as base64",
				Fields: []domain.FieldSpec{
					{Name: "text", Kind: domain.KindString, Required: true, MaxLen: maxTextBytes},
				},
				Outputs: []domain.OutputField{
					{Name: "encoded", Kind: domain.KindString},
				},
			},
			Handler: converters.Base64Encode,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryDeveloper,
				Name:     "base64-decode",
				Summary:  "Decode base64 back to text",
				Fields: []domain.FieldSpec{
					{Name: "encoded", Kind: domain.KindString, Required: true, MaxLen: maxTextBytes},
				},
				Outputs: []domain.OutputField{
					{Name: "text", Kind: domain.KindString},
				},
			},
			Handler: converters.Base64Decode,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryDeveloper,
				Name:     "jwt-decode",
				Summary:  "Decode a JWT, optionally verifying an HMAC signature",
				Fields: []domain.FieldSpec{
					{Name: "token", Kind: domain.KindString, Required: true, MaxLen: maxTextBytes},
					{Name: "verify", Kind: domain.KindBool, Default: false},
					{Name: "secret", Kind: domain.KindString},
				},
				Outputs: []domain.OutputField{
					{Name: "header", Kind: domain.KindString},
					{Name: "claims", Kind: domain.KindString},
					{Name: "signature", Kind: domain.KindString},
					{Name: "algorithm", Kind: domain.KindString},
					{Name: "verified", Kind: domain.KindBool},
				},
			},
			Handler: converters.JWTDecode,
		},

		// utility
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryUtility,
				Name:     "unit-convert",
				Summary:  "Convert a value between units of one category",
				Fields: []domain.FieldSpec{
					{Name: "value", Kind: domain.KindNumber, Required: true},
					{Name: "category", Kind: domain.KindEnum, Required: true, FoldCase: true,
						Enum: []string{"length", "weight", "temperature", "area"}},
					{Name: "from_unit", Kind: domain.KindString, Required: true, MaxLen: 32},
					{Name: "to_unit", Kind: domain.KindString, Required: true, MaxLen: 32},
				},
				Outputs: []domain.OutputField{
					{Name: "original_value", Kind: domain.KindNumber},
					{Name: "original_unit", Kind: domain.KindString},
					{Name: "converted_value", Kind: domain.KindNumber},
					{Name: "converted_unit", Kind: domain.KindString},
					{Name: "category", Kind: domain.KindString},
				},
			},
			Handler: converters.UnitConvert,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryUtility,
				Name:     "timezone-convert",
				Summary:  "Move a wall-clock time between IANA timezones",
				Fields: []domain.FieldSpec{
					{Name: "time", Kind: domain.KindString, Required: true, MaxLen: 5},
					{Name: "from_tz", Kind: domain.KindString, Required: true, MaxLen: 64},
					{Name: "to_tz", Kind: domain.KindString, Required: true, MaxLen: 64},
					{Name: "date", Kind: domain.KindString, MaxLen: 10},
				},
				Outputs: []domain.OutputField{
					{Name: "source_datetime", Kind: domain.KindString},
					{Name: "target_datetime", Kind: domain.KindString},
					{Name: "source_timezone", Kind: domain.KindString},
					{Name: "target_timezone", Kind: domain.KindString},
					{Name: "time_difference_hours", Kind: domain.KindInt},
				},
			},
			Handler: set.TimezoneConvert,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryUtility,
				Name:     "qr-generate",
				Summary:  "Render text or a URL as a PNG QR code",
				Fields: []domain.FieldSpec{
					{Name: "data", Kind: domain.KindString, Required: true, MaxLen: 4096},
					{Name: "size", Kind: domain.KindInt, Default: 10, Min: domain.Bound(1), Max: domain.Bound(40)},
				},
				Outputs: []domain.OutputField{
					{Name: "qr_code_image", Kind: domain.KindString},
					{Name: "data", Kind: domain.KindString},
					{Name: "size", Kind: domain.KindInt},
					{Name: "width_pixels", Kind: domain.KindInt},
				},
			},
			Handler: converters.QRGenerate,
		},

		// education
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryEducation,
				Name:     "number-system",
				Summary:  "Convert digits between number systems",
				Fields: []domain.FieldSpec{
					{Name: "number", Kind: domain.KindString, Required: true, MaxLen: 64},
					{Name: "from_system", Kind: domain.KindEnum, Required: true, FoldCase: true,
						Enum: []string{"binary", "octal", "decimal", "hexadecimal"}},
					{Name: "to_system", Kind: domain.KindEnum, Required: true, FoldCase: true,
						Enum: []string{"binary", "octal", "decimal", "hexadecimal"}},
				},
				Outputs: []domain.OutputField{
					{Name: "original_number", Kind: domain.KindString},
					{Name: "original_system", Kind: domain.KindString},
					{Name: "converted_number", Kind: domain.KindString},
					{Name: "converted_system", Kind: domain.KindString},
					{Name: "decimal_value", Kind: domain.KindInt},
				},
			},
			Handler: converters.NumberSystem,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryEducation,
				Name:     "color-code",
				Summary:  "Convert a color between hex, rgb, hsl, and cmyk",
				Fields: []domain.FieldSpec{
					{Name: "value", Kind: domain.KindString, Required: true, MaxLen: 32},
					{Name: "from_format", Kind: domain.KindEnum, Required: true, FoldCase: true,
						Enum: []string{"hex", "rgb"}},
				},
				Outputs: []domain.OutputField{
					{Name: "hex", Kind: domain.KindString},
					{Name: "rgb", Kind: domain.KindString},
					{Name: "hsl", Kind: domain.KindString},
					{Name: "cmyk", Kind: domain.KindString},
				},
			},
			Handler: converters.ColorCode,
		},
		{
			Descriptor: domain.Descriptor{
				Category: domain.CategoryEducation,
				Name:     "percentage",
				Summary:  "Percentage calculations",
				Fields: []domain.FieldSpec{
					{Name: "calculation", Kind: domain.KindEnum, Required: true, FoldCase: true,
						Enum: []string{"percentage_of", "what_percent", "increase", "decrease", "change"}},
					{Name: "percentage", Kind: domain.KindNumber, Default: float64(0)},
					{Name: "total", Kind: domain.KindNumber, Default: float64(0)},
					{Name: "value", Kind: domain.KindNumber, Default: float64(0)},
					{Name: "old_value", Kind: domain.KindNumber, Default: float64(0)},
					{Name: "new_value", Kind: domain.KindNumber, Default: float64(0)},
				},
				Outputs: []domain.OutputField{
					{Name: "calculation", Kind: domain.KindString},
					{Name: "result", Kind: domain.KindNumber},
					{Name: "formula", Kind: domain.KindString},
				},
			},
			Handler: converters.Percentage,
		},
	}
}
