package services

import (
	"errors"
	"fmt"
	"log"

	"auraweb/internal/models"
	"auraweb/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials maps to a 401 at the API boundary.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService interface {
	CreateUser(user *models.User, password string) error
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	EnsureAdminUser(username, password, email string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	return s.userRepo.Create(user)
}

func (s *userService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// EnsureAdminUser seeds the configured operator account on startup. A blank
// password skips seeding so production never gets a default credential.
func (s *userService) EnsureAdminUser(username, password, email string) error {
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin user seeding")
		return nil
	}

	_, err := s.userRepo.GetByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	admin := &models.User{
		Username: username,
		Email:    email,
		Role:     string(models.SuperAdmin),
		IsActive: true,
	}
	if err := s.CreateUser(admin, password); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Printf("Seeded admin user %s", username)
	return nil
}
