package repository

import (
	"errors"
	"fmt"
	"time"

	"auraweb/internal/models"

	"gorm.io/gorm"
)

// SubmissionStats feeds the admin dashboard.
type SubmissionStats struct {
	TotalSubmissions int64            `json:"total_submissions"`
	TodaySubmissions int64            `json:"today_submissions"`
	TotalRevenue     float64          `json:"total_revenue"`
	ByStatus         map[string]int64 `json:"by_status"`
	ByPackage        map[string]int64 `json:"by_package"`
}

type SubmissionRepository interface {
	Create(submission *models.Submission) error
	GetByID(id string) (*models.Submission, error)
	GetByTxRef(txRef string) (*models.Submission, error)
	Update(submission *models.Submission) error
	UpdateFields(id string, fields map[string]interface{}) error
	GetAll() ([]models.Submission, error)
	MarkPaid(txRef string, paidAt time.Time) (bool, error)
	Stats(now time.Time) (*SubmissionStats, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *models.Submission) error {
	var existing models.Submission
	err := r.db.Select("id").First(&existing, "id = ?", submission.ID).Error
	if err == nil {
		return fmt.Errorf("submission %s: %w", submission.ID, ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(submission).Error
}

func (r *submissionRepository) GetByID(id string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.First(&submission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) GetByTxRef(txRef string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.First(&submission, "payment_tx_ref = ?", txRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tx_ref %s: %w", txRef, ErrNotFound)
		}
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) Update(submission *models.Submission) error {
	return r.db.Save(submission).Error
}

// UpdateFields applies a partial update in a single statement so no
// intermediate state is ever visible.
func (r *submissionRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Submission{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *submissionRepository) GetAll() ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

// MarkPaid transitions a submission to paid exactly once. The WHERE clause on
// payment_status makes duplicate webhook deliveries no-ops.
func (r *submissionRepository) MarkPaid(txRef string, paidAt time.Time) (bool, error) {
	result := r.db.Model(&models.Submission{}).
		Where("payment_tx_ref = ? AND payment_status = ?", txRef, string(models.PaymentPending)).
		Updates(map[string]interface{}{
			"payment_status": string(models.PaymentPaid),
			"status":         string(models.StatusPaymentReceived),
			"paid_at":        paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *submissionRepository) Stats(now time.Time) (*SubmissionStats, error) {
	stats := &SubmissionStats{
		ByStatus:  make(map[string]int64),
		ByPackage: make(map[string]int64),
	}

	if err := r.db.Model(&models.Submission{}).Count(&stats.TotalSubmissions).Error; err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := r.db.Model(&models.Submission{}).
		Where("submitted_at >= ?", startOfDay).
		Count(&stats.TodaySubmissions).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's submissions: %w", err)
	}

	if err := r.db.Model(&models.Submission{}).
		Select("COALESCE(SUM(payment_amount), 0)").
		Where("payment_status = ?", string(models.PaymentPaid)).
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byStatus []bucket
	if err := r.db.Model(&models.Submission{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to group by status: %w", err)
	}
	for _, b := range byStatus {
		stats.ByStatus[b.Key] = b.Count
	}

	var byPackage []bucket
	if err := r.db.Model(&models.Submission{}).
		Select("package_id AS key, COUNT(*) AS count").
		Group("package_id").
		Scan(&byPackage).Error; err != nil {
		return nil, fmt.Errorf("failed to group by package: %w", err)
	}
	for _, b := range byPackage {
		stats.ByPackage[b.Key] = b.Count
	}

	return stats, nil
}
