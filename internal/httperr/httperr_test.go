package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessCodeUnwraps(t *testing.T) {
	err := fmt.Errorf("update: %w", ErrBusiness("client_not_found"))

	code, ok := BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, "client_not_found", code)
	assert.True(t, IsBusiness(err, "client_not_found"))

	_, ok = BusinessCode(errors.New("boom"))
	assert.False(t, ok)
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not found", err: ErrBusiness("client_not_found"), status: http.StatusNotFound, code: "client_not_found"},
		{name: "other business", err: ErrBusiness("no_fields_to_update"), status: http.StatusBadRequest, code: "no_fields_to_update"},
		{name: "store failure", err: errors.New("connection refused"), status: http.StatusInternalServerError, code: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err, "fallback")

			assert.Equal(t, tt.status, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Message, "connection refused", "store errors are not leaked")
		})
	}
}
