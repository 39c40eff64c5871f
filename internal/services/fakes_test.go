package services

import (
	"errors"
	"path/filepath"
	"testing"

	"auraweb/internal/models"
	"auraweb/internal/repository"
	"auraweb/pkg/chapa"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRepo(t *testing.T) repository.SubmissionRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Submission{}, &models.PortfolioItem{}))
	return repository.NewSubmissionRepository(db)
}

type fakeNotifier struct {
	confirmations   int
	alerts          int
	paymentRequests int
	failSends       bool
}

func (f *fakeNotifier) SendCustomerConfirmation(submission *models.Submission) error {
	if submission.Email == "" {
		return ErrNoRecipient
	}
	f.confirmations++
	if f.failSends {
		return errors.New("smtp down")
	}
	return nil
}

func (f *fakeNotifier) SendAdminAlert(submission *models.Submission) error {
	f.alerts++
	if f.failSends {
		return errors.New("smtp down")
	}
	return nil
}

func (f *fakeNotifier) SendPaymentRequest(submission *models.Submission, checkoutURL string, amount int) error {
	if submission.Email == "" {
		return ErrNoRecipient
	}
	f.paymentRequests++
	if f.failSends {
		return errors.New("smtp down")
	}
	return nil
}

type fakeGateway struct {
	initResult   chapa.InitResult
	verifyResult chapa.VerifyResult
	initCalls    int
	verifyCalls  int
	lastIntent   chapa.PaymentIntent
}

func (f *fakeGateway) InitializePayment(intent chapa.PaymentIntent) chapa.InitResult {
	f.initCalls++
	f.lastIntent = intent
	result := f.initResult
	if result.Success && result.TxRef == "" {
		result.TxRef = chapa.NewTxRef(intent.SubmissionID)
	}
	return result
}

func (f *fakeGateway) VerifyPayment(txRef string) chapa.VerifyResult {
	f.verifyCalls++
	return f.verifyResult
}

func intakeFixture() *IntakeRequest {
	return &IntakeRequest{
		ID:           "sub-1",
		PackageID:    "business",
		BusinessName: "Cafe X",
		BusinessType: "Restaurant",
		Phone:        "0911234567",
		Address:      "Addis Ababa",
		Services:     []string{"Delivery"},
		SocialLinks:  map[string]string{"instagram": "https://instagram.com/cafex"},
		Language:     "Amharic",
		PrimaryColor: "#667eea",
		ThemeStyle:   "modern",
	}
}
