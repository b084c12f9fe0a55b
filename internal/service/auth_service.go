package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/mailer"
	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/repository"
)

type SignupParams struct {
	FullName     string
	Email        string
	Password     string
	PhoneNumber  string
	Gender       string
	ProfileImage string
	Address1     string
	Address2     string
	City         string
	State        string
	Zip          string
	Country      string
}

type AuthService interface {
	Signup(ctx context.Context, params SignupParams) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*entity.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	session  repository.SessionStore
	mail     mailer.Mailer
	log      logger.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	session repository.SessionStore,
	mail mailer.Mailer,
	log logger.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		session:  session,
		mail:     mail,
		log:      log,
	}
}

// newRecordID mirrors the backend's convention of millisecond-timestamp ids.
func newRecordID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func (s *authService) Signup(ctx context.Context, params SignupParams) (*entity.User, error) {
	s.log.Infof("Signup requested for email %s", params.Email)

	if params.Email == "" || params.Password == "" || params.FullName == "" {
		return nil, fmt.Errorf("%w: full name, email and password are required", ErrValidationFailed)
	}

	existing, err := s.userRepo.List(ctx)
	if err != nil {
		s.log.Errorf("Signup: failed to list users for duplicate check: %v", err)
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}
	for _, u := range existing {
		if strings.EqualFold(u.Email, params.Email) {
			s.log.Warnf("Signup rejected: email %s already registered", params.Email)
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:             newRecordID(),
		FullName:       params.FullName,
		Email:          params.Email,
		Password:       string(hash),
		PhoneNumber:    params.PhoneNumber,
		Gender:         params.Gender,
		ProfileImage:   params.ProfileImage,
		IsActive:       true,
		Address1:       params.Address1,
		Address2:       params.Address2,
		City:           params.City,
		State:          params.State,
		Zip:            params.Zip,
		Country:        params.Country,
		PurchasedLines: []entity.PurchaseLine{},
	}
	user.Address = user.JoinAddress()

	saved, err := s.userRepo.Create(ctx, user)
	if err != nil {
		s.log.Errorf("Signup: failed to create user %s: %v", params.Email, err)
		return nil, err
	}

	if err := s.mail.SendWelcomeEmail(saved.Email, saved.FullName); err != nil {
		s.log.Warnf("Signup: welcome email to %s failed: %v", saved.Email, err)
	}

	s.log.Infof("User %s signed up successfully", saved.ID)
	return saved, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	s.log.Infof("Login requested for email %s", email)

	users, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Errorf("Login: failed to look up email %s: %v", email, err)
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: no account for email %s", repository.ErrNotFound, email)
	}

	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Warnf("Login: wrong password for email %s", email)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Warnf("Login: account %s is inactive", user.ID)
		return nil, ErrAccountInactive
	}

	if err := s.session.Save(ctx, &user); err != nil {
		s.log.Errorf("Login: failed to persist session snapshot for user %s: %v", user.ID, err)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.log.Infof("User %s logged in", user.ID)
	return &user, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		s.log.Errorf("Logout: failed to clear session snapshot: %v", err)
		return err
	}
	s.log.Info("Session cleared")
	return nil
}

func (s *authService) CurrentUser(ctx context.Context) (*entity.User, error) {
	return s.session.Load(ctx)
}
