package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"auraweb/internal/models"
	"auraweb/internal/repository"

	"github.com/google/uuid"
)

// ErrValidation maps to a 400 at the API boundary.
var ErrValidation = errors.New("validation failed")

// IntakeRequest is the typed intake schema. Field names match the public
// API; the model keeps the storage names.
type IntakeRequest struct {
	ID             string            `json:"id"`
	PackageID      string            `json:"packageId"`
	BusinessName   string            `json:"businessName"`
	BusinessType   string            `json:"businessType"`
	Phone          string            `json:"phone"`
	Email          string            `json:"email"`
	Address        string            `json:"address"`
	GoogleMapsLink string            `json:"googleMapsLink"`
	AboutUs        string            `json:"aboutUs"`
	Services       []string          `json:"services"`
	WorkingHours   string            `json:"workingHours"`
	SocialLinks    map[string]string `json:"socialLinks"`
	Language       string            `json:"language"`
	PrimaryColor   string            `json:"primaryColor"`
	ThemeStyle     string            `json:"themeStyle"`
	SpecialNotes   string            `json:"specialNotes"`
	LogoURL        string            `json:"logoUrl"`
	ImageURLs      []string          `json:"imageUrls"`
}

func (r *IntakeRequest) Validate() error {
	required := map[string]string{
		"packageId":    r.PackageID,
		"businessName": r.BusinessName,
		"businessType": r.BusinessType,
		"phone":        r.Phone,
		"address":      r.Address,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%w: missing required field %s", ErrValidation, field)
		}
	}
	return nil
}

// AdminUpdateRequest carries the mutable admin-side fields. Nil pointers are
// left untouched.
type AdminUpdateRequest struct {
	Status            *string `json:"status"`
	AdminNotes        *string `json:"adminNotes"`
	AssignedTo        *string `json:"assignedTo"`
	EstimatedDelivery *string `json:"estimatedDelivery"` // YYYY-MM-DD
}

type SubmissionService interface {
	CreateSubmission(req *IntakeRequest) (*models.Submission, error)
	GetSubmission(id string) (*models.Submission, error)
	GetAllSubmissions() ([]models.Submission, error)
	UpdateSubmission(id string, req *AdminUpdateRequest) (*models.Submission, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	notifier       Notifier
}

func NewSubmissionService(submissionRepo repository.SubmissionRepository, notifier Notifier) SubmissionService {
	return &submissionService{submissionRepo: submissionRepo, notifier: notifier}
}

func (s *submissionService) CreateSubmission(req *IntakeRequest) (*models.Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	submission := &models.Submission{
		ID:             id,
		SubmittedAt:    time.Now(),
		Status:         string(models.StatusSubmitted),
		PackageID:      req.PackageID,
		BusinessName:   req.BusinessName,
		BusinessType:   req.BusinessType,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		GoogleMapsLink: req.GoogleMapsLink,
		AboutUs:        req.AboutUs,
		Services:       models.StringList(req.Services),
		WorkingHours:   req.WorkingHours,
		SocialLinks:    models.StringMap(req.SocialLinks),
		Language:       req.Language,
		PrimaryColor:   req.PrimaryColor,
		ThemeStyle:     req.ThemeStyle,
		SpecialNotes:   req.SpecialNotes,
		LogoURL:        req.LogoURL,
		ImageURLs:      models.StringList(req.ImageURLs),
		PaymentStatus:  string(models.PaymentPending),
	}
	submission.DepositAmount = models.DepositFor(submission.PackageID)

	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, err
	}

	// Email delivery must never block intake
	if err := s.notifier.SendCustomerConfirmation(submission); err != nil && !errors.Is(err, ErrNoRecipient) {
		log.Printf("Warning: customer confirmation email failed for %s: %v", submission.ID, err)
	}
	if err := s.notifier.SendAdminAlert(submission); err != nil {
		log.Printf("Warning: admin alert email failed for %s: %v", submission.ID, err)
	}

	return submission, nil
}

func (s *submissionService) GetSubmission(id string) (*models.Submission, error) {
	return s.submissionRepo.GetByID(id)
}

func (s *submissionService) GetAllSubmissions() ([]models.Submission, error) {
	return s.submissionRepo.GetAll()
}

func (s *submissionService) UpdateSubmission(id string, req *AdminUpdateRequest) (*models.Submission, error) {
	fields := make(map[string]interface{})

	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.AdminNotes != nil {
		fields["admin_notes"] = *req.AdminNotes
	}
	if req.AssignedTo != nil {
		fields["assigned_to"] = *req.AssignedTo
	}
	if req.EstimatedDelivery != nil {
		delivery, err := time.Parse("2006-01-02", *req.EstimatedDelivery)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid estimatedDelivery date", ErrValidation)
		}
		fields["estimated_delivery"] = delivery
	}

	if len(fields) > 0 {
		if err := s.submissionRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}

	return s.submissionRepo.GetByID(id)
}
