package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"auraweb/internal/models"
	"auraweb/internal/repository"
	"auraweb/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentService struct {
	link      *services.PaymentLink
	createErr error
	callback  *models.Submission
	cbErr     error
	verify    *models.Submission
	verifyErr error

	callbackCalls int
}

func (f *fakePaymentService) CreatePayment(submissionID string) (*services.PaymentLink, error) {
	return f.link, f.createErr
}

func (f *fakePaymentService) HandleCallback(txRef string) (*models.Submission, error) {
	f.callbackCalls++
	return f.callback, f.cbErr
}

func (f *fakePaymentService) VerifyStatus(txRef string) (*models.Submission, error) {
	return f.verify, f.verifyErr
}

func paymentRouter(service services.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewPaymentHandler(service)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/submissions/:id/create_payment", handler.CreatePayment)
	api.GET("/payments/callback", handler.Callback)
	api.POST("/payments/callback", handler.Callback)
	api.GET("/payments/verify", handler.Verify)
	return router
}

func TestCreatePaymentEndpoint(t *testing.T) {
	service := &fakePaymentService{
		link: &services.PaymentLink{
			CheckoutURL: "https://checkout.chapa.co/abc",
			TxRef:       "auraweb-sub-1-deadbeef",
			Amount:      5000,
			Currency:    "ETB",
		},
	}
	router := paymentRouter(service)

	req := httptest.NewRequest("POST", "/api/submissions/sub-1/create_payment", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var link services.PaymentLink
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
	assert.Equal(t, "ETB", link.Currency)
	assert.Equal(t, 5000, link.Amount)
}

func TestCreatePaymentEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "already paid", err: services.ErrAlreadyPaid, wantStatus: http.StatusBadRequest},
		{name: "unknown submission", err: fmt.Errorf("submission sub-9: %w", repository.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "gateway down", err: fmt.Errorf("%w: provider unreachable", services.ErrGateway), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := paymentRouter(&fakePaymentService{createErr: tt.err})
			req := httptest.NewRequest("POST", "/api/submissions/sub-1/create_payment", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCallbackEndpoint(t *testing.T) {
	service := &fakePaymentService{callback: &models.Submission{ID: "sub-1"}}
	router := paymentRouter(service)

	req := httptest.NewRequest("GET", "/api/payments/callback?tx_ref=auraweb-sub-1-deadbeef", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "verified")
}

func TestCallbackEndpointJSONBody(t *testing.T) {
	service := &fakePaymentService{callback: &models.Submission{ID: "sub-1"}}
	router := paymentRouter(service)

	body, _ := json.Marshal(map[string]string{"tx_ref": "auraweb-sub-1-deadbeef"})
	req := httptest.NewRequest("POST", "/api/payments/callback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, service.callbackCalls)
}

func TestCallbackEndpointMissingTxRef(t *testing.T) {
	service := &fakePaymentService{}
	router := paymentRouter(service)

	req := httptest.NewRequest("POST", "/api/payments/callback", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, service.callbackCalls)
}

func TestCallbackEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown tx_ref", err: fmt.Errorf("tx_ref x: %w", repository.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "verification failed", err: services.ErrVerificationFailed, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := paymentRouter(&fakePaymentService{cbErr: tt.err})
			req := httptest.NewRequest("GET", "/api/payments/callback?tx_ref=x", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestVerifyEndpoint(t *testing.T) {
	service := &fakePaymentService{verify: &models.Submission{
		ID:            "sub-1",
		BusinessName:  "Cafe X",
		PackageID:     "business",
		PaymentStatus: string(models.PaymentPending),
	}}
	router := paymentRouter(service)

	req := httptest.NewRequest("GET", "/api/payments/verify?tx_ref=auraweb-sub-1-deadbeef", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp["paymentStatus"])
	assert.Equal(t, "Cafe X", resp["businessName"])
	assert.Equal(t, "business", resp["packageId"])
}

func TestVerifyEndpointMissingAndUnknown(t *testing.T) {
	router := paymentRouter(&fakePaymentService{verifyErr: fmt.Errorf("tx_ref x: %w", repository.ErrNotFound)})

	req := httptest.NewRequest("GET", "/api/payments/verify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest("GET", "/api/payments/verify?tx_ref=x", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
