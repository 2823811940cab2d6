package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRequestID(t *testing.T) {
	t.Run("from header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Request-ID", "req-42")
		assert.Equal(t, "req-42", ExtractRequestID(r))
	})

	t.Run("from context when header is absent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r = r.WithContext(WithRequestID(r.Context(), "ctx-7"))
		assert.Equal(t, "ctx-7", ExtractRequestID(r))
	})

	t.Run("empty when neither is set", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		assert.Equal(t, "", ExtractRequestID(r))
	})
}
