package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
	"github.com/yuggu7665-beep/converter-tools/internal/registry"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

func newDispatcher(t *testing.T, entries []registry.Entry) *Dispatcher {
	t.Helper()
	reg, err := registry.New(entries)
	require.NoError(t, err)
	return New(reg, 1<<20)
}

func echoEntry(handler registry.Handler) registry.Entry {
	return registry.Entry{
		Descriptor: domain.Descriptor{
			Category: domain.CategoryUtility,
			Name:     "echo",
			Summary:  "test operation",
			Fields: []domain.FieldSpec{
				{Name: "text", Kind: domain.KindString, Required: true},
			},
			Outputs: []domain.OutputField{{Name: "text", Kind: domain.KindString}},
		},
		Handler: handler,
	}
}

func TestDispatchSuccessEnvelope(t *testing.T) {
	d := newDispatcher(t, []registry.Entry{echoEntry(
		func(_ context.Context, in *validate.Input) (any, error) {
			return map[string]string{"text": in.String("text")}, nil
		},
	)})

	resp, err := d.Dispatch(context.Background(), domain.Request{
		Category:  domain.CategoryUtility,
		Operation: "echo",
		Fields:    map[string]any{"text": "hello"},
	})

	require.Nil(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, map[string]string{"text": "hello"}, resp.Data)
}

func TestDispatchUnknownOperationIsNotFound(t *testing.T) {
	d := newDispatcher(t, []registry.Entry{echoEntry(
		func(_ context.Context, _ *validate.Input) (any, error) { return nil, nil },
	)})

	resp, err := d.Dispatch(context.Background(), domain.Request{
		Category:  "utility",
		Operation: "nonexistent",
	})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, apperrors.KindNotFound, err.Kind)
}

func TestDispatchUnknownCategoryIsNotFound(t *testing.T) {
	d := newDispatcher(t, []registry.Entry{echoEntry(
		func(_ context.Context, _ *validate.Input) (any, error) { return nil, nil },
	)})

	// Unknown operation wins over missing fields: the request carries no
	// "text" but the failure must be not_found, not invalid_input.
	resp, err := d.Dispatch(context.Background(), domain.Request{
		Category:  "gibberish",
		Operation: "echo",
	})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, apperrors.KindNotFound, err.Kind)
}

func TestDispatchNormalizesCategoryAndOperationCase(t *testing.T) {
	d := newDispatcher(t, []registry.Entry{echoEntry(
		func(_ context.Context, in *validate.Input) (any, error) {
			return in.String("text"), nil
		},
	)})

	resp, err := d.Dispatch(context.Background(), domain.Request{
		Category:  "Utility",
		Operation: " ECHO ",
		Fields:    map[string]any{"text": "hi"},
	})

	require.Nil(t, err)
	assert.True(t, resp.OK)
}

func TestDispatchValidationFailureCarriesField(t *testing.T) {
	d := newDispatcher(t, []registry.Entry{echoEntry(
		func(_ context.Context, _ *validate.Input) (any, error) {
			t.Fatal("converter must not run on validation failure")
			return nil, nil
		},
	)})

	resp, err := d.Dispatch(context.Background(), domain.Request{
		Category:  domain.CategoryUtility,
		Operation: "echo",
		Fields:    map[string]any{},
	})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, err.Kind)
	assert.Equal(t, "text", err.Field)
}

func TestDispatchPropagatesConverterError(t *testing.T) {
	want := apperrors.UnsupportedFormat("cannot parse")
	d := newDispatcher(t, []registry.Entry{echoEntry(
		func(_ context.Context, _ *validate.Input) (any, error) {
			return nil, want
		},
	)})

	resp, err := d.Dispatch(context.Background(), domain.Request{
		Category:  domain.CategoryUtility,
		Operation: "echo",
		Fields:    map[string]any{"text": "x"},
	})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, err.Kind)
	assert.Equal(t, "cannot parse", err.Message)
}

func TestDispatchWrapsUnstructuredError(t *testing.T) {
	d := newDispatcher(t, []registry.Entry{echoEntry(
		func(_ context.Context, _ *validate.Input) (any, error) {
			return nil, errors.New("boom")
		},
	)})

	resp, err := d.Dispatch(context.Background(), domain.Request{
		Category:  domain.CategoryUtility,
		Operation: "echo",
		Fields:    map[string]any{"text": "x"},
	})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, apperrors.KindInternal, err.Kind)
}

func TestDispatchRecoversConverterPanic(t *testing.T) {
	d := newDispatcher(t, []registry.Entry{echoEntry(
		func(_ context.Context, _ *validate.Input) (any, error) {
			panic("unexpected")
		},
	)})

	resp, err := d.Dispatch(context.Background(), domain.Request{
		Category:  domain.CategoryUtility,
		Operation: "echo",
		Fields:    map[string]any{"text": "x"},
	})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, apperrors.KindInternal, err.Kind)
	assert.Contains(t, err.Message, "panicked")
}
