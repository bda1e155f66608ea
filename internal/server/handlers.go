package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
)

// handleConvert runs one conversion. The request body is either a JSON
// object of fields or, for file-bearing operations, a multipart form with a
// "file" part and the remaining fields as form values.
func (s *Server) handleConvert(c echo.Context) error {
	req, err := s.parseRequest(c)
	if err != nil {
		return err
	}

	resp, dispatchErr := s.dispatcher.Dispatch(c.Request().Context(), *req)
	if dispatchErr != nil {
		// The errors middleware writes the failure envelope.
		return dispatchErr
	}

	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to write conversion response: %w", err)
	}
	return nil
}

func (s *Server) parseRequest(c echo.Context) (*domain.Request, error) {
	req := &domain.Request{
		Category:  domain.Category(c.Param("category")),
		Operation: c.Param("operation"),
		Fields:    map[string]any{},
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(contentType, echo.MIMEMultipartForm):
		if err := parseMultipart(c, req); err != nil {
			return nil, err
		}
	case contentType == "" && c.Request().ContentLength == 0:
		// Operations without inputs may omit the body entirely.
	default:
		if err := parseJSONBody(c, req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func parseJSONBody(c echo.Context, req *domain.Request) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.UseNumber()

	if err := decoder.Decode(&req.Fields); err != nil {
		return apperrors.InvalidInput("body", fmt.Sprintf("request body is not a JSON object: %v", err))
	}
	return nil
}

func parseMultipart(c echo.Context, req *domain.Request) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.InvalidInput("body", fmt.Sprintf("malformed multipart form: %v", err))
	}

	for name, values := range form.Value {
		if len(values) > 0 {
			req.Fields[name] = values[0]
		}
	}

	files := form.File["file"]
	if len(files) == 0 {
		return nil
	}

	file, err := files[0].Open()
	if err != nil {
		return apperrors.InvalidInput("file", fmt.Sprintf("cannot open uploaded file: %v", err))
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return apperrors.InvalidInput("file", fmt.Sprintf("cannot read uploaded file: %v", err))
	}
	req.Payload = payload

	return nil
}

// operationInfo is the wire shape of one entry in the operations listing.
type operationInfo struct {
	Category    string               `json:"category"`
	Operation   string               `json:"operation"`
	Summary     string               `json:"summary"`
	AcceptsFile bool                 `json:"accepts_file"`
	Fields      []fieldInfo          `json:"fields"`
	Outputs     []domain.OutputField `json:"outputs"`
}

type fieldInfo struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Default  any      `json:"default,omitempty"`
	Enum     []string `json:"enum,omitempty"`
}

// handleListOperations publishes the full operation catalog in registration
// order, derived from the same descriptors the validator enforces.
func (s *Server) handleListOperations(c echo.Context) error {
	descriptors := s.registry.Descriptors()

	operations := make([]operationInfo, 0, len(descriptors))
	for _, desc := range descriptors {
		fields := make([]fieldInfo, 0, len(desc.Fields))
		for _, spec := range desc.Fields {
			fields = append(fields, fieldInfo{
				Name:     spec.Name,
				Kind:     string(spec.Kind),
				Required: spec.Required,
				Default:  spec.Default,
				Enum:     spec.Enum,
			})
		}
		operations = append(operations, operationInfo{
			Category:    string(desc.Category),
			Operation:   desc.Name,
			Summary:     desc.Summary,
			AcceptsFile: desc.AcceptsPayload,
			Fields:      fields,
			Outputs:     desc.Outputs,
		})
	}

	response := map[string]any{
		"ok":   true,
		"data": map[string]any{"operations": operations, "count": len(operations)},
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write operations response: %w", err)
	}
	return nil
}
