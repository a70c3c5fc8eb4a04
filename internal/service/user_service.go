package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tphappenings/campus-events/internal/middleware"
	"github.com/tphappenings/campus-events/internal/models"
	"github.com/tphappenings/campus-events/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserUpdate is a partial update; nil fields are left untouched. A non-nil
// Password is re-hashed before storage.
type UserUpdate struct {
	Name        *string
	Email       *string
	Password    *string
	AdminNo     *string
	Course      *string
	YearOfStudy *int
}

type UserService interface {
	Signup(ctx context.Context, user *models.User, password string) error
	Login(ctx context.Context, email, password string, userType models.UserType) (*models.User, string, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id uint, update UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo      repository.UserRepository
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewUserService(repo repository.UserRepository, jwtSecret string, jwtTTL time.Duration) UserService {
	return &userService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
	}
}

func (s *userService) Signup(ctx context.Context, user *models.User, password string) error {
	if _, err := s.repo.FindByEmail(ctx, user.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	return s.repo.Create(ctx, user)
}

// Login verifies the credentials and returns the user plus a signed session
// token. The token is validated server-side on every protected request.
func (s *userService) Login(ctx context.Context, email, password string, userType models.UserType) (*models.User, string, error) {
	user, err := s.repo.FindByEmailAndType(ctx, email, userType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &middleware.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, update UserUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil && *update.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, *update.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *update.Email
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if update.AdminNo != nil {
		user.AdminNo = *update.AdminNo
	}
	if update.Course != nil {
		user.Course = *update.Course
	}
	if update.YearOfStudy != nil {
		user.YearOfStudy = *update.YearOfStudy
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
