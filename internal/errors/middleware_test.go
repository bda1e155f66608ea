package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMiddleware(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert/developer/json-to-yaml", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Middleware()(handler)(c)
	require.NoError(t, err)
	return rec
}

func TestMiddleware_NoError(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_StructuredError(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return InvalidInput("quality", "must be at most 100")
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error_kind":"invalid_input","message":"must be at most 100","field":"quality"}`, rec.Body.String())
}

func TestMiddleware_PlainErrorBecomesInternal(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return assert.AnError
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error_kind":"internal","message":"internal server error"}`, rec.Body.String())
}

func TestMiddleware_EchoHTTPErrorTranslated(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large")
	})

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error_kind":"payload_too_large"`)
}

func TestWrapHTTPError_StatusMapping(t *testing.T) {
	cases := map[int]Kind{
		http.StatusBadRequest:            KindInvalidInput,
		http.StatusNotFound:              KindNotFound,
		http.StatusRequestEntityTooLarge: KindPayloadTooLarge,
		http.StatusUnprocessableEntity:   KindUnsupportedFormat,
		http.StatusBadGateway:            KindUpstreamUnavailable,
		http.StatusServiceUnavailable:    KindUpstreamUnavailable,
		http.StatusTeapot:                KindInternal,
	}

	for code, want := range cases {
		got := WrapHTTPError(echo.NewHTTPError(code, "x"))
		assert.Equal(t, want, got.Kind, "status %d", code)
	}
}
