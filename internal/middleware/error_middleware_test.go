package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aosora/coursehub/internal/app/models/dto"
	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

func handle(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{
			name:       "invalid argument",
			err:        apperrors.NewInvalidArgumentError("duplicate ids in request"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeInvalidArgument,
		},
		{
			name:       "validation failure",
			err:        apperrors.ErrValidationFailed,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidationFailed,
		},
		{
			name:       "not found",
			err:        apperrors.NewNotFoundError("courses not found", []string{"x"}),
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:       "no catalog data",
			err:        apperrors.ErrNoCourseData,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrorCodeSourceNoData,
		},
		{
			name:       "unclassified error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrorCodeInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handle(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestHandleAPIErrorNotFoundCarriesMissingKeys(t *testing.T) {
	err := apperrors.NewNotFoundError("courses not found", []string{"a", "b"})

	status, body := handle(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, body.Error)

	details, ok := body.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, details["missing"])
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	_, body := handle(t, errors.New("pq: relation does not exist"))
	require.NotNil(t, body.Error)
	assert.NotContains(t, body.Error.Message, "relation")
}
