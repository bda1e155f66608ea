package converters

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

// charsPerToken is the rough English approximation used for estimation;
// exact counts would need a model-specific tokenizer.
const charsPerToken = 4

// costPer1KTokens holds example USD rates per model.
var costPer1KTokens = map[string]float64{
	"gpt-4":         0.03,
	"gpt-3.5-turbo": 0.002,
	"claude":        0.024,
	"gemini":        0.00025,
}

type CSVToJSONLResult struct {
	JSONLContent string `json:"jsonl_content"`
	LineCount    int    `json:"line_count"`
}

// CSVToJSONL converts CSV with a header row into one JSON object per line.
func CSVToJSONL(_ context.Context, in *validate.Input) (any, error) {
	reader := csv.NewReader(strings.NewReader(in.String("csv_content")))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("invalid CSV: %v", err))
	}
	if len(records) < 2 {
		return nil, apperrors.UnsupportedFormat("CSV has no data rows")
	}

	header := records[0]
	lines := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, column := range header {
			row[column] = record[i]
		}
		encoded, err := json.Marshal(row)
		if err != nil {
			return nil, apperrors.Internal("failed to encode JSONL row", err)
		}
		lines = append(lines, string(encoded))
	}

	return CSVToJSONLResult{
		JSONLContent: strings.Join(lines, "\n"),
		LineCount:    len(lines),
	}, nil
}

type JSONToCSVResult struct {
	CSVContent string `json:"csv_content"`
	RowCount   int    `json:"row_count"`
}

// JSONToCSV converts a JSON object or array of objects into CSV. The header
// is the sorted union of all keys.
func JSONToCSV(_ context.Context, in *validate.Input) (any, error) {
	var decoded any
	if err := json.Unmarshal([]byte(in.String("json_content")), &decoded); err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("invalid JSON: %v", err))
	}

	var rows []map[string]any
	switch v := decoded.(type) {
	case map[string]any:
		rows = []map[string]any{v}
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				rows = append(rows, obj)
			}
		}
	default:
		return nil, apperrors.UnsupportedFormat("JSON must be an object or an array of objects")
	}
	if len(rows) == 0 {
		return nil, apperrors.UnsupportedFormat("no objects found in JSON")
	}

	keySet := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			keySet[key] = struct{}{}
		}
	}
	header := make([]string, 0, len(keySet))
	for key := range keySet {
		header = append(header, key)
	}
	sort.Strings(header)

	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return nil, apperrors.Internal("failed to write CSV header", err)
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, key := range header {
			record[i] = stringifyCell(row[key])
		}
		if err := writer.Write(record); err != nil {
			return nil, apperrors.Internal("failed to write CSV row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, apperrors.Internal("failed to flush CSV", err)
	}

	return JSONToCSVResult{
		CSVContent: buf.String(),
		RowCount:   len(rows),
	}, nil
}

func stringifyCell(v any) string {
	switch cell := v.(type) {
	case nil:
		return ""
	case string:
		return cell
	default:
		encoded, err := json.Marshal(cell)
		if err != nil {
			return fmt.Sprint(cell)
		}
		return string(encoded)
	}
}

type TokenCountResult struct {
	Characters       int     `json:"characters"`
	Words            int     `json:"words"`
	EstimatedTokens  int     `json:"estimated_tokens"`
	Model            string  `json:"model"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
}

// TokenCount estimates token usage and cost for a text prompt.
func TokenCount(_ context.Context, in *validate.Input) (any, error) {
	text := in.String("text")
	model := in.String("model")

	chars := len(text)
	tokens := chars / charsPerToken
	cost := float64(tokens) / 1000 * costPer1KTokens[model]

	return TokenCountResult{
		Characters:       chars,
		Words:            len(strings.Fields(text)),
		EstimatedTokens:  tokens,
		Model:            model,
		EstimatedCostUSD: round6(cost),
	}, nil
}
