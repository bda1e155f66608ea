package converters

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"
)

func TestJSONToYAML(t *testing.T) {
	in := input(t, map[string]any{"json_content": `{"name":"alice","age":30}`})

	result, err := JSONToYAML(context.Background(), in)

	require.NoError(t, err)
	yaml := result.(JSONToYAMLResult)
	assert.Contains(t, yaml.YAMLContent, "name: alice")
	assert.Contains(t, yaml.YAMLContent, "age: 30")
}

func TestJSONToYAMLRejectsInvalidJSON(t *testing.T) {
	in := input(t, map[string]any{"json_content": `{oops`})

	_, err := JSONToYAML(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}

func TestYAMLToJSONPretty(t *testing.T) {
	in := input(t, map[string]any{
		"yaml_content": "name: alice\nage: 30\n",
		"pretty":       true,
	})

	result, err := YAMLToJSON(context.Background(), in)

	require.NoError(t, err)
	json := result.(YAMLToJSONResult)
	assert.Contains(t, json.JSONContent, "\n")
	assert.Contains(t, json.JSONContent, `"name": "alice"`)
}

func TestYAMLToJSONCompact(t *testing.T) {
	in := input(t, map[string]any{
		"yaml_content": "name: alice\n",
		"pretty":       false,
	})

	result, err := YAMLToJSON(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, `{"name":"alice"}`, result.(YAMLToJSONResult).JSONContent)
}

func TestYAMLToJSONRejectsInvalidYAML(t *testing.T) {
	in := input(t, map[string]any{
		"yaml_content": "key: [unclosed",
		"pretty":       false,
	})

	_, err := YAMLToJSON(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}

func TestJSONYAMLRoundTrip(t *testing.T) {
	original := `{"list":[1,2,3],"nested":{"key":"value"}}`

	yamlResult, err := JSONToYAML(context.Background(), input(t, map[string]any{"json_content": original}))
	require.NoError(t, err)

	jsonResult, err := YAMLToJSON(context.Background(), input(t, map[string]any{
		"yaml_content": yamlResult.(JSONToYAMLResult).YAMLContent,
		"pretty":       false,
	}))
	require.NoError(t, err)

	assert.JSONEq(t, original, jsonResult.(YAMLToJSONResult).JSONContent)
}

func TestBase64RoundTrip(t *testing.T) {
	encoded, err := Base64Encode(context.Background(), input(t, map[string]any{"text": "héllo wörld"}))
	require.NoError(t, err)

	decoded, err := Base64Decode(context.Background(), input(t, map[string]any{
		"encoded": encoded.(Base64EncodeResult).Encoded,
	}))
	require.NoError(t, err)

	assert.Equal(t, "héllo wörld", decoded.(Base64DecodeResult).Text)
}

func TestBase64DecodeRejectsInvalidInput(t *testing.T) {
	_, err := Base64Decode(context.Background(), input(t, map[string]any{"encoded": "!!! not base64 !!!"}))

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}

func TestBase64DecodeRejectsNonUTF8(t *testing.T) {
	// Valid base64 of the bytes 0xFF 0xFE, which are not valid UTF-8.
	_, err := Base64Decode(context.Background(), input(t, map[string]any{"encoded": "//4="}))

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "12345",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTDecodeWithoutVerification(t *testing.T) {
	in := input(t, map[string]any{
		"token":  signedToken(t, "topsecret"),
		"verify": false,
		"secret": "",
	})

	result, err := JWTDecode(context.Background(), in)

	require.NoError(t, err)
	decoded := result.(JWTDecodeResult)
	assert.Equal(t, "HS256", decoded.Algorithm)
	assert.Equal(t, "12345", decoded.Claims["sub"])
	assert.NotEmpty(t, decoded.Signature)
	assert.False(t, decoded.Verified)
}

func TestJWTDecodeWithVerification(t *testing.T) {
	in := input(t, map[string]any{
		"token":  signedToken(t, "topsecret"),
		"verify": true,
		"secret": "topsecret",
	})

	result, err := JWTDecode(context.Background(), in)

	require.NoError(t, err)
	assert.True(t, result.(JWTDecodeResult).Verified)
}

func TestJWTDecodeWrongSecret(t *testing.T) {
	in := input(t, map[string]any{
		"token":  signedToken(t, "topsecret"),
		"verify": true,
		"secret": "wrong",
	})

	_, err := JWTDecode(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}

func TestJWTDecodeVerifyRequiresSecret(t *testing.T) {
	in := input(t, map[string]any{
		"token":  signedToken(t, "topsecret"),
		"verify": true,
		"secret": "",
	})

	_, err := JWTDecode(context.Background(), in)

	require.Error(t, err)
	structuredErr := apperrors.AsStructuredError(err)
	assert.Equal(t, apperrors.KindInvalidInput, structuredErr.Kind)
	assert.Equal(t, "secret", structuredErr.Field)
}

func TestJWTDecodeMalformedToken(t *testing.T) {
	in := input(t, map[string]any{
		"token":  "not.a.jwt",
		"verify": false,
		"secret": "",
	})

	_, err := JWTDecode(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}
