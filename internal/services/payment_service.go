package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"auraweb/internal/models"
	"auraweb/internal/repository"
	"auraweb/pkg/chapa"
)

var (
	// ErrAlreadyPaid is returned when a payment link is requested for a
	// submission whose deposit has already been collected.
	ErrAlreadyPaid = errors.New("submission already paid")
	// ErrGateway wraps provider-side initialization failures.
	ErrGateway = errors.New("payment gateway error")
	// ErrVerificationFailed is returned when the provider does not confirm a
	// transaction as successful. State is left untouched.
	ErrVerificationFailed = errors.New("payment verification failed")
)

// PaymentGateway is the slice of the Chapa client the service needs.
type PaymentGateway interface {
	InitializePayment(intent chapa.PaymentIntent) chapa.InitResult
	VerifyPayment(txRef string) chapa.VerifyResult
}

// PaymentLink is the create-payment response payload.
type PaymentLink struct {
	CheckoutURL string `json:"checkout_url"`
	TxRef       string `json:"tx_ref"`
	Amount      int    `json:"amount"`
	Currency    string `json:"currency"`
}

type PaymentService interface {
	CreatePayment(submissionID string) (*PaymentLink, error)
	HandleCallback(txRef string) (*models.Submission, error)
	VerifyStatus(txRef string) (*models.Submission, error)
}

type paymentService struct {
	submissionRepo repository.SubmissionRepository
	gateway        PaymentGateway
	notifier       Notifier
}

func NewPaymentService(submissionRepo repository.SubmissionRepository, gateway PaymentGateway, notifier Notifier) PaymentService {
	return &paymentService{submissionRepo: submissionRepo, gateway: gateway, notifier: notifier}
}

// CreatePayment initializes a deposit checkout with the gateway and moves the
// submission to Payment Pending. Calling it again before the deposit is paid
// issues a fresh tx_ref that replaces the previous one.
func (s *paymentService) CreatePayment(submissionID string) (*PaymentLink, error) {
	submission, err := s.submissionRepo.GetByID(submissionID)
	if err != nil {
		return nil, err
	}

	if submission.PaymentStatus == string(models.PaymentPaid) {
		return nil, ErrAlreadyPaid
	}

	amount := models.DepositFor(submission.PackageID)

	result := s.gateway.InitializePayment(chapa.PaymentIntent{
		SubmissionID: submission.ID,
		BusinessName: submission.BusinessName,
		Email:        submission.Email,
		Phone:        submission.Phone,
		PackageID:    submission.PackageID,
		Amount:       amount,
	})
	if !result.Success {
		return nil, fmt.Errorf("%w: %s", ErrGateway, result.Error)
	}

	err = s.submissionRepo.UpdateFields(submission.ID, map[string]interface{}{
		"payment_tx_ref": result.TxRef,
		"payment_amount": float64(amount),
		"status":         string(models.StatusPaymentPending),
	})
	if err != nil {
		return nil, err
	}

	// Email delivery must never block payment initialization
	if err := s.notifier.SendPaymentRequest(submission, result.CheckoutURL, amount); err != nil && !errors.Is(err, ErrNoRecipient) {
		log.Printf("Warning: payment request email failed for %s: %v", submission.ID, err)
	}

	return &PaymentLink{
		CheckoutURL: result.CheckoutURL,
		TxRef:       result.TxRef,
		Amount:      amount,
		Currency:    chapa.Currency,
	}, nil
}

// HandleCallback processes a webhook delivery for a tx_ref. The paid
// transition is a conditional update, so re-deliveries are safe.
func (s *paymentService) HandleCallback(txRef string) (*models.Submission, error) {
	if _, err := s.submissionRepo.GetByTxRef(txRef); err != nil {
		return nil, err
	}

	result := s.gateway.VerifyPayment(txRef)
	if !result.Success || !result.Verified {
		if result.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrVerificationFailed, result.Error)
		}
		return nil, ErrVerificationFailed
	}

	transitioned, err := s.submissionRepo.MarkPaid(txRef, time.Now())
	if err != nil {
		return nil, err
	}
	if !transitioned {
		log.Printf("Callback for %s replayed after paid transition; no-op", txRef)
	}

	return s.submissionRepo.GetByTxRef(txRef)
}

// VerifyStatus is the customer poll. Read-only for every payment status.
func (s *paymentService) VerifyStatus(txRef string) (*models.Submission, error) {
	return s.submissionRepo.GetByTxRef(txRef)
}
