package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Mala_Admin/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{pkg.ErrInvalidCredentials, http.StatusUnauthorized},
		{pkg.ErrTokenRevoked, http.StatusUnauthorized},
		{pkg.ErrTokenExpired, http.StatusUnauthorized},
		{fmt.Errorf("load donation: %w", pkg.ErrNotFound), http.StatusNotFound},
		{pkg.ErrInvalidTransition, http.StatusBadRequest},
		{pkg.NewValidationError("page", "must be an integer >= 1"), http.StatusBadRequest},
		{fmt.Errorf("%w: %q", pkg.ErrUnsupportedMediaType, ".exe"), http.StatusBadRequest},
		{&pkg.StorageError{Op: "put", Key: "k", Err: errors.New("disk full")}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
		writeError(c, pkg.DiscardLogger(), tc.err)
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
		assert.Contains(t, rec.Body.String(), `"msg"`)
	}
}

type bindProbe struct {
	Phone   string `json:"phone" binding:"required,phone10"`
	Aadhaar string `json:"aadhaar" binding:"omitempty,aadhaar"`
	Caste   string `json:"caste" binding:"omitempty,letters"`
	DOB     string `json:"dob" binding:"omitempty,dmydate"`
}

func TestCustomValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())

	cases := map[string]string{
		`{"phone":"98765"}`:                         "phone: must be 10 digits",
		`{"phone":"9876543210","aadhaar":"12"}`:     "aadhaar: must be 12 digits",
		`{"phone":"9876543210","caste":"M4la"}`:     "caste: may contain letters and spaces only",
		`{"phone":"9876543210","dob":"1990-01-31"}`: "dob: must be in dd-mm-yyyy format",
		`{}`:                                        "phone: is required",
	}
	for body, want := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var probe bindProbe
		err := c.ShouldBindJSON(&probe)
		require.Error(t, err, body)
		assert.EqualError(t, bindError(err), want, body)
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{"phone":"9876543210","aadhaar":"123412341234","caste":"Mala Madiga","dob":"31-01-1990"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	var probe bindProbe
	assert.NoError(t, c.ShouldBindJSON(&probe))
}
