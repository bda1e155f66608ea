package converters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"gopkg.in/yaml.v3"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

type JSONToYAMLResult struct {
	YAMLContent string `json:"yaml_content"`
}

// JSONToYAML re-renders a JSON document as YAML.
func JSONToYAML(_ context.Context, in *validate.Input) (any, error) {
	var data any
	if err := json.Unmarshal([]byte(in.String("json_content")), &data); err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("invalid JSON: %v", err))
	}

	encoded, err := yaml.Marshal(data)
	if err != nil {
		return nil, apperrors.Internal("failed to encode YAML", err)
	}

	return JSONToYAMLResult{YAMLContent: string(encoded)}, nil
}

type YAMLToJSONResult struct {
	JSONContent string `json:"json_content"`
}

// YAMLToJSON re-renders a YAML document as JSON, pretty-printed by default.
func YAMLToJSON(_ context.Context, in *validate.Input) (any, error) {
	var data any
	if err := yaml.Unmarshal([]byte(in.String("yaml_content")), &data); err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("invalid YAML: %v", err))
	}

	var encoded []byte
	var err error
	if in.Bool("pretty") {
		encoded, err = json.MarshalIndent(data, "", "  ")
	} else {
		encoded, err = json.Marshal(data)
	}
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("YAML document cannot be represented as JSON: %v", err))
	}

	return YAMLToJSONResult{JSONContent: string(encoded)}, nil
}

type Base64EncodeResult struct {
	Encoded string `json:"encoded"`
}

// Base64Encode encodes text as standard base64.
func Base64Encode(_ context.Context, in *validate.Input) (any, error) {
	return Base64EncodeResult{
		Encoded: base64.StdEncoding.EncodeToString([]byte(in.String("text"))),
	}, nil
}

type Base64DecodeResult struct {
	Text string `json:"text"`
}

// Base64Decode decodes standard base64 back to text. Together with
// Base64Encode this forms an exact round trip for valid UTF-8 input.
func Base64Decode(_ context.Context, in *validate.Input) (any, error) {
	decoded, err := base64.StdEncoding.DecodeString(in.String("encoded"))
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("invalid base64: %v", err))
	}
	if !utf8.Valid(decoded) {
		return nil, apperrors.UnsupportedFormat("decoded payload is not valid UTF-8 text")
	}

	return Base64DecodeResult{Text: string(decoded)}, nil
}

type JWTDecodeResult struct {
	Header    map[string]any `json:"header"`
	Claims    map[string]any `json:"claims"`
	Signature string         `json:"signature"`
	Algorithm string         `json:"algorithm"`
	Verified  bool           `json:"verified"`
}

// JWTDecode decodes a JWT, optionally verifying an HMAC signature. The
// secret is required only when verify is true, a cross-field rule.
func JWTDecode(_ context.Context, in *validate.Input) (any, error) {
	tokenString := in.String("token")
	verify := in.Bool("verify")

	claims := jwt.MapClaims{}
	var token *jwt.Token
	var err error

	if verify {
		secret := in.String("secret")
		if secret == "" {
			return nil, apperrors.InvalidInput("secret", "secret is required when verify is true")
		}
		token, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	} else {
		parser := jwt.NewParser()
		token, _, err = parser.ParseUnverified(tokenString, claims)
	}
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("invalid JWT: %v", err))
	}

	algorithm := "unknown"
	if alg, ok := token.Header["alg"].(string); ok {
		algorithm = alg
	}

	signature := ""
	if parts := strings.Split(tokenString, "."); len(parts) == 3 {
		signature = parts[2]
	}

	return JWTDecodeResult{
		Header:    token.Header,
		Claims:    claims,
		Signature: signature,
		Algorithm: algorithm,
		Verified:  verify,
	}, nil
}
