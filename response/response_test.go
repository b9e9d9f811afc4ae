package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrent/errors"
)

func render(t *testing.T, err error) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestStatusFor(t *testing.T) {
	cases := map[errors.ErrorCode]int{
		errors.ErrCodeValidation:        http.StatusBadRequest,
		errors.ErrCodeInvalidToken:      http.StatusUnauthorized,
		errors.ErrCodeForbidden:         http.StatusForbidden,
		errors.ErrCodeNotFound:          http.StatusNotFound,
		errors.ErrCodeConflict:          http.StatusConflict,
		errors.ErrCodeUserExists:        http.StatusConflict,
		errors.ErrCodeUnavailable:       http.StatusUnprocessableEntity,
		errors.ErrCodeInvalidTransition: http.StatusUnprocessableEntity,
		errors.ErrCodeInvalidState:      http.StatusUnprocessableEntity,
		errors.ErrCodeDBError:           http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, StatusFor(code), code)
	}
}

func TestFromErrorKeepsDomainDetails(t *testing.T) {
	status, body := render(t, errors.Conflict("room already rented for overlapping months").WithDetail("bookingId", 7))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body.Error)
	assert.Equal(t, "room already rented for overlapping months", body.Mess)
	assert.EqualValues(t, 7, body.Details["bookingId"])

	status, body = render(t, errors.Validation("endMonth", "endMonth must be after startMonth"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "endMonth", body.Field)
}

func TestFromErrorHidesInternalFailures(t *testing.T) {
	status, body := render(t, errors.DBError(fmt.Errorf("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Mess)
	assert.Equal(t, "DB_ERROR", body.Error)

	status, body = render(t, fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, body.Error)
}
