package chapa

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txRefPattern = regexp.MustCompile(`^auraweb-sub-1-[0-9a-f]{8}$`)

func TestNewTxRef(t *testing.T) {
	ref := NewTxRef("sub-1")
	assert.Regexp(t, txRefPattern, ref)

	// suffix must differ between calls
	assert.NotEqual(t, ref, NewTxRef("sub-1"))
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		business  string
		wantFirst string
		wantLast  string
	}{
		{name: "two words", business: "Cafe X", wantFirst: "Cafe", wantLast: "X"},
		{name: "single word keeps fallback last name", business: "Cafe", wantFirst: "Cafe", wantLast: "AuraWeb"},
		{name: "empty name uses fallbacks", business: "", wantFirst: "Customer", wantLast: "AuraWeb"},
		{name: "many words takes first and last", business: "The Best Cafe In Town", wantFirst: "The", wantLast: "Town"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.business)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func testIntent() PaymentIntent {
	return PaymentIntent{
		SubmissionID: "sub-1",
		BusinessName: "Cafe X",
		Phone:        "0911234567",
		PackageID:    "business",
		Amount:       5000,
	}
}

func TestInitializePaymentSuccess(t *testing.T) {
	var received InitializeRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer test-secret", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","data":{"checkout_url":"https://checkout.chapa.co/abc"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-secret", "https://example.com/callback", "https://example.com/return")
	result := client.InitializePayment(testIntent())

	require.True(t, result.Success, "unexpected error: %s", result.Error)
	assert.Equal(t, "https://checkout.chapa.co/abc", result.CheckoutURL)
	assert.Regexp(t, txRefPattern, result.TxRef)

	assert.Equal(t, "5000", received.Amount)
	assert.Equal(t, "ETB", received.Currency)
	assert.Equal(t, FallbackEmail, received.Email, "blank email must use the fallback")
	assert.Equal(t, "Cafe", received.FirstName)
	assert.Equal(t, "X", received.LastName)
	assert.Equal(t, result.TxRef, received.TxRef)
	assert.Equal(t, "https://example.com/return?tx_ref="+result.TxRef, received.ReturnURL)
	assert.Equal(t, "sub-1", received.Meta["submission_id"])
}

func TestInitializePaymentProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"failed","message":"Invalid currency"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-secret", "", "")
	result := client.InitializePayment(testIntent())

	assert.False(t, result.Success)
	assert.Equal(t, "Invalid currency", result.Error)
}

func TestInitializePaymentNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-secret", "", "")
	result := client.InitializePayment(testIntent())

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestInitializePaymentMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-secret", "", "")
	result := client.InitializePayment(testIntent())

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestVerifyPaymentVerified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/transaction/verify/auraweb-sub-1-deadbeef", r.URL.Path)
		assert.Equal(t, "Bearer test-secret", r.Header.Get("Authorization"))

		w.Write([]byte(`{"status":"success","data":{"status":"success","amount":5000,"currency":"ETB","tx_ref":"auraweb-sub-1-deadbeef"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-secret", "", "")
	result := client.VerifyPayment("auraweb-sub-1-deadbeef")

	require.True(t, result.Success)
	assert.True(t, result.Verified)
	require.NotNil(t, result.Data)
	assert.Equal(t, 5000.0, result.Data.Amount)
}

func TestVerifyPaymentDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"status":"failed","tx_ref":"auraweb-sub-1-deadbeef"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-secret", "", "")
	result := client.VerifyPayment("auraweb-sub-1-deadbeef")

	assert.True(t, result.Success)
	assert.False(t, result.Verified, "only an explicit success status may verify")
}

func TestVerifyPaymentProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"failed","message":"Transaction not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-secret", "", "")
	result := client.VerifyPayment("auraweb-unknown-00000000")

	assert.False(t, result.Success)
	assert.False(t, result.Verified)
	assert.Equal(t, "Transaction not found", result.Error)
}

func TestVerifyPaymentNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-secret", "", "")
	result := client.VerifyPayment("auraweb-sub-1-deadbeef")

	assert.False(t, result.Success)
	assert.False(t, result.Verified)
	assert.NotEmpty(t, result.Error)
}
