package chapa

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the Chapa payment API (https://developer.chapa.co/).
// Every call returns a result struct instead of an error: a provider failure,
// a network failure and a malformed response all fold into the same shape so
// callers treat "gateway unreachable" the same as "payment declined".
type Client struct {
	BaseURL     string
	SecretKey   string
	CallbackURL string
	ReturnURL   string
	HTTPClient  *http.Client
}

// PaymentIntent carries the submission fields the gateway needs.
type PaymentIntent struct {
	SubmissionID string
	BusinessName string
	Email        string
	Phone        string
	PackageID    string
	Amount       int
}

type Customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

type InitializeRequest struct {
	Amount        string                 `json:"amount"`
	Currency      string                 `json:"currency"`
	Email         string                 `json:"email"`
	FirstName     string                 `json:"first_name"`
	LastName      string                 `json:"last_name"`
	PhoneNumber   string                 `json:"phone_number"`
	TxRef         string                 `json:"tx_ref"`
	CallbackURL   string                 `json:"callback_url"`
	ReturnURL     string                 `json:"return_url"`
	Customization Customization          `json:"customization"`
	Meta          map[string]interface{} `json:"meta"`
}

// TransactionData is the verification payload Chapa reports for a tx_ref.
type TransactionData struct {
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	TxRef     string  `json:"tx_ref"`
	Reference string  `json:"reference"`
}

type InitResult struct {
	Success     bool
	CheckoutURL string
	TxRef       string
	Error       string
}

type VerifyResult struct {
	Success  bool
	Verified bool
	Data     *TransactionData
	Error    string
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

const (
	// Currency is the agency's single operating currency.
	Currency = "ETB"
	// FallbackEmail is used when a submission has no email on file; Chapa
	// rejects payloads without one.
	FallbackEmail = "customer@auraweb.com"

	txRefPrefix = "auraweb"
)

func NewClient(baseURL, secretKey, callbackURL, returnURL string) *Client {
	return &Client{
		BaseURL:     baseURL,
		SecretKey:   secretKey,
		CallbackURL: callbackURL,
		ReturnURL:   returnURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewTxRef builds a transaction reference of the form
// auraweb-<submission-id>-<8 hex chars>.
func NewTxRef(submissionID string) string {
	u := uuid.New()
	return fmt.Sprintf("%s-%s-%s", txRefPrefix, submissionID, hex.EncodeToString(u[:])[:8])
}

// splitName turns a business name into the first/last name pair Chapa wants.
func splitName(businessName string) (string, string) {
	parts := strings.Fields(businessName)
	first, last := "Customer", "AuraWeb"
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		last = parts[len(parts)-1]
	}
	return first, last
}

// InitializePayment creates a hosted checkout session for a deposit.
func (c *Client) InitializePayment(intent PaymentIntent) InitResult {
	txRef := NewTxRef(intent.SubmissionID)

	email := intent.Email
	if email == "" {
		email = FallbackEmail
	}
	firstName, lastName := splitName(intent.BusinessName)

	requestData := InitializeRequest{
		Amount:      strconv.Itoa(intent.Amount),
		Currency:    Currency,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: intent.Phone,
		TxRef:       txRef,
		CallbackURL: c.CallbackURL,
		ReturnURL:   fmt.Sprintf("%s?tx_ref=%s", c.ReturnURL, txRef),
		Customization: Customization{
			Title:       "AuraWeb Payment",
			Description: fmt.Sprintf("Website development deposit for %s", intent.BusinessName),
			Logo:        "https://auraweb-6.onrender.com/static/logo.png",
		},
		Meta: map[string]interface{}{
			"submission_id": intent.SubmissionID,
			"package":       intent.PackageID,
			"business_name": intent.BusinessName,
		},
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return InitResult{Success: false, Error: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	url := fmt.Sprintf("%s/transaction/initialize", c.BaseURL)
	resp, err := c.post(url, jsonData)
	if err != nil {
		return InitResult{Success: false, Error: err.Error()}
	}

	if resp.Status != "success" {
		msg := resp.Message
		if msg == "" {
			msg = "Payment initialization failed"
		}
		return InitResult{Success: false, Error: msg}
	}

	var data struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.CheckoutURL == "" {
		return InitResult{Success: false, Error: "malformed initialization response"}
	}

	return InitResult{Success: true, CheckoutURL: data.CheckoutURL, TxRef: txRef}
}

// VerifyPayment checks a transaction's final status with Chapa. Verified is
// true only when the provider explicitly reports the transaction successful.
func (c *Client) VerifyPayment(txRef string) VerifyResult {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.BaseURL, txRef)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return VerifyResult{Success: false, Verified: false, Error: err.Error()}
	}
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return VerifyResult{Success: false, Verified: false, Error: err.Error()}
	}

	if resp.Status != "success" {
		msg := resp.Message
		if msg == "" {
			msg = "Verification failed"
		}
		return VerifyResult{Success: false, Verified: false, Error: msg}
	}

	var data TransactionData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return VerifyResult{Success: false, Verified: false, Error: "malformed verification response"}
	}

	return VerifyResult{
		Success:  true,
		Verified: data.Status == "success",
		Data:     &data,
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
}

func (c *Client) post(url string, body []byte) (*apiResponse, error) {
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*apiResponse, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response apiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &response, nil
}
