// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	apperrors "github.com/mealwise/core/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPAssertions provides HTTP response assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the response status code
func (ha *HTTPAssertions) StatusCode(rec *httptest.ResponseRecorder, expectedCode int, msgAndArgs ...any) {
	assert.Equal(ha.t, expectedCode, rec.Code, msgAndArgs...)
}

// JSONResponse asserts the response is JSON and decodes it into target
func (ha *HTTPAssertions) JSONResponse(rec *httptest.ResponseRecorder, target any, msgAndArgs ...any) {
	assert.Contains(ha.t, rec.Header().Get("Content-Type"), "application/json", msgAndArgs...)
	require.NoError(ha.t, json.Unmarshal(rec.Body.Bytes(), target), msgAndArgs...)
}

// ErrorCode asserts the response carries an error envelope with code
func (ha *HTTPAssertions) ErrorCode(rec *httptest.ResponseRecorder, code apperrors.ErrorCode, msgAndArgs ...any) {
	var resp apperrors.ErrorResponse
	ha.JSONResponse(rec, &resp, msgAndArgs...)
	assert.Equal(ha.t, code, resp.Error.Code, msgAndArgs...)
}

// SecurityHeaders asserts the standard security headers are set
func (ha *HTTPAssertions) SecurityHeaders(rec *httptest.ResponseRecorder, msgAndArgs ...any) {
	expected := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range expected {
		assert.Equal(ha.t, value, rec.Header().Get(header), msgAndArgs...)
	}
}
