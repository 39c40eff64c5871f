package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringList is stored as a JSON-encoded text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// StringMap is stored as a JSON-encoded text column.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		m = StringMap{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string map: %w", err)
	}
	return string(data), nil
}

func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = StringMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for StringMap", value)
	}
}

// Submission is a customer website request. JSON field names are the public
// API names; gorm columns keep the snake_case storage names.
type Submission struct {
	ID          string    `json:"id" gorm:"primaryKey;size:50"`
	SubmittedAt time.Time `json:"submittedAt" gorm:"column:submitted_at;not null"`
	Status      string    `json:"status" gorm:"size:50;default:'Submitted'"`

	PackageID      string `json:"packageId" gorm:"column:package_id;size:50;not null"`
	BusinessName   string `json:"businessName" gorm:"column:business_name;size:255;not null"`
	BusinessType   string `json:"businessType" gorm:"column:business_type;size:100"`
	Phone          string `json:"phone" gorm:"size:50;not null"`
	Email          string `json:"email"`
	Address        string `json:"address" gorm:"size:255"`
	GoogleMapsLink string `json:"googleMapsLink" gorm:"column:google_maps_link"`

	AboutUs      string     `json:"aboutUs" gorm:"column:about_us;type:text"`
	Services     StringList `json:"services" gorm:"type:text"`
	WorkingHours string     `json:"workingHours" gorm:"column:working_hours;size:255"`
	SocialLinks  StringMap  `json:"socialLinks" gorm:"column:social_links;type:text"`

	Language     string `json:"language" gorm:"size:50"`
	PrimaryColor string `json:"primaryColor" gorm:"column:primary_color;size:50"`
	ThemeStyle   string `json:"themeStyle" gorm:"column:theme_style;size:50"`
	SpecialNotes string `json:"specialNotes" gorm:"column:special_notes;type:text"`

	LogoURL   string     `json:"logoUrl" gorm:"column:logo_url"`
	ImageURLs StringList `json:"imageUrls" gorm:"column:image_urls;type:text"`

	// Payment tracking
	PaymentStatus string     `json:"paymentStatus" gorm:"column:payment_status;size:20;default:'pending'"`
	PaymentTxRef  *string    `json:"paymentTxRef" gorm:"column:payment_tx_ref;size:100;uniqueIndex"`
	PaymentAmount *float64   `json:"paymentAmount" gorm:"column:payment_amount"`
	PaidAt        *time.Time `json:"paidAt" gorm:"column:paid_at"`
	DepositAmount int        `json:"depositAmount" gorm:"-"`

	// Admin tracking
	AdminNotes        string     `json:"adminNotes" gorm:"column:admin_notes;type:text"`
	AssignedTo        string     `json:"assignedTo" gorm:"column:assigned_to;size:100"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery" gorm:"column:estimated_delivery"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type SubmissionStatus string

const (
	StatusSubmitted       SubmissionStatus = "Submitted"
	StatusReviewed        SubmissionStatus = "Reviewed"
	StatusPaymentPending  SubmissionStatus = "Payment Pending"
	StatusPaymentReceived SubmissionStatus = "Payment Received"
	StatusInProgress      SubmissionStatus = "In Progress"
	StatusCompleted       SubmissionStatus = "Completed"
	StatusCancelled       SubmissionStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Package pricing in ETB. Unknown package ids fall back to the business tier
// price so a stale client never produces a zero invoice.
var PackagePrices = map[string]int{
	"starter":  7000,
	"business": 10000,
	"dynamic":  14999,
}

const DefaultPackagePrice = 10000

// DepositFor returns the 50% upfront deposit for a package.
func DepositFor(packageID string) int {
	fullPrice, ok := PackagePrices[packageID]
	if !ok {
		fullPrice = DefaultPackagePrice
	}
	return fullPrice / 2
}

// AfterFind keeps the computed deposit in sync with the package on every read.
func (s *Submission) AfterFind(tx *gorm.DB) error {
	s.DepositAmount = DepositFor(s.PackageID)
	return nil
}
