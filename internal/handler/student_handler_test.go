package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amezav/registro-academico-api/internal/service"
	"github.com/amezav/registro-academico-api/pkg/response"
)

func TestStudentHandlerUpdateRejectsNonNumericID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStudentHandler(service.NewStudentService(nil, nil, nil, nil))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]string{"carrera": "Industrial"})
	req, _ := http.NewRequest(http.MethodPatch, "/users/abc", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Update(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestStudentHandlerCreateRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStudentHandler(service.NewStudentService(nil, nil, nil, nil))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentHandlerDeleteRejectsNonNumericID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStudentHandler(service.NewStudentService(nil, nil, nil, nil))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/users/-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "-1"}}

	handler.Delete(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
