package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad-backend/internal/config"
	"launchpad-backend/internal/services"
)

func newTestRouter(t *testing.T) (*gin.Engine, *TokenHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fees, err := services.NewFeeService(&config.FeeConfig{
		BaseFeeWei:        "5000000000000000000",
		DisableMintFeeWei: "5000000000000000000",
	})
	require.NoError(t, err)

	handler := NewTokenHandler(nil, fees, nil, nil, logrus.New())

	r := gin.New()
	r.POST("/api/token/create", handler.CreateTokenHandler)
	r.GET("/api/token/fee-quote", handler.FeeQuoteHandler)
	r.POST("/api/token/validate-logo", handler.ValidateLogoHandler)
	r.GET("/api/token/submissions/:id", handler.GetSubmissionHandler)
	return r, handler
}

func logoForm(t *testing.T, width, height int) (*bytes.Buffer, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var imgBuf bytes.Buffer
	require.NoError(t, png.Encode(&imgBuf, img))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestFeeQuoteHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/token/fee-quote?disable_minting=true", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Quote   struct {
			BaseFeeWei  string `json:"base_fee_wei"`
			ExtraFeeWei string `json:"extra_fee_wei"`
			TotalWei    string `json:"total_wei"`
		} `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "10000000000000000000", resp.Quote.TotalWei)
}

func TestFeeQuoteHandlerRejectsBadFlag(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/token/fee-quote?disable_minting=banana", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateLogoHandlerAccepts(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := logoForm(t, 512, 512)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/token/validate-logo", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["valid"])
	assert.Equal(t, "image/png", resp["content_type"])
}

func TestValidateLogoHandlerRejectsDimensions(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := logoForm(t, 600, 400)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/token/validate-logo", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["valid"])
	assert.Contains(t, resp["error"], "512x512")
}

func TestValidateLogoHandlerRequiresFile(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/token/validate-logo", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSubmissionWithoutStore(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/token/submissions/some-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestCreateTokenHandlerRejectsWrongDecimals(t *testing.T) {
	r, _ := newTestRouter(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("name", "My Token"))
	require.NoError(t, writer.WriteField("decimals", "9"))
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/token/create", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "decimals")
}
