package services

import (
	"fmt"
	"time"

	"canteen/internal/models"
	"canteen/internal/redis"
	"canteen/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionStore is the token -> identity mapping backing login sessions.
// Implemented by the redis client.
type SessionStore interface {
	SetSession(token string, data *redis.SessionData, ttl time.Duration) error
	GetSession(token string) (*redis.SessionData, error)
	DeleteSession(token string) error
}

type UserService interface {
	Register(email, password, role, name, studentID string) (*models.User, error)
	Login(email, password string) (string, *models.User, error)
	Logout(token string) error
	Authenticate(token string) (*redis.SessionData, error)
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	DeleteUser(id uint) error
}

type userService struct {
	userRepo   repository.UserRepository
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewUserService(userRepo repository.UserRepository, sessions SessionStore, sessionTTL time.Duration) UserService {
	return &userService{userRepo: userRepo, sessions: sessions, sessionTTL: sessionTTL}
}

func (s *userService) Register(email, password, role, name, studentID string) (*models.User, error) {
	if email == "" || password == "" || name == "" {
		return nil, validationErrorf("email, password and name are required")
	}
	if !models.ValidRole(role) {
		return nil, validationErrorf("unknown role %q", role)
	}
	if role == string(models.RoleStudent) && studentID == "" {
		return nil, validationErrorf("student id is required for student accounts")
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Name:         name,
		StudentID:    studentID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues an opaque session token held in Redis.
func (s *userService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	session := &redis.SessionData{
		UserID:    user.ID,
		Role:      user.Role,
		Name:      user.Name,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SetSession(token, session, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	return token, user, nil
}

func (s *userService) Logout(token string) error {
	return s.sessions.DeleteSession(token)
}

// Authenticate resolves a bearer token to the identity it was issued for.
func (s *userService) Authenticate(token string) (*redis.SessionData, error) {
	session, err := s.sessions.GetSession(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return session, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "user")
	}
	return user, nil
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) DeleteUser(id uint) error {
	if _, err := s.userRepo.GetByID(id); err != nil {
		return asNotFound(err, "user")
	}
	return s.userRepo.Delete(id)
}
