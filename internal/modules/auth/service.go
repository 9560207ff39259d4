package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"homeservices/internal/domain"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/pkg/validator"
	"homeservices/internal/repository"
)

const maxVerifyAttempts = 5

// Service contains all business logic for authentication
type Service struct {
	users      UserRepository
	categories CategoryChecker
	tokens     TokenIssuer
	sender     CodeSender
	pepper     string
	codeTTL    time.Duration
	log        *zap.Logger
	now        func() time.Time
}

func NewService(users UserRepository, categories CategoryChecker, tokens TokenIssuer, sender CodeSender, pepper string, codeTTL time.Duration, log *zap.Logger) *Service {
	return &Service{
		users:      users,
		categories: categories,
		tokens:     tokens,
		sender:     sender,
		pepper:     pepper,
		codeTTL:    codeTTL,
		log:        logger.OrNop(log),
		now:        time.Now,
	}
}

// Register creates an unverified customer or provider and sends the first verification code.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: strings.TrimSpace(req.Phone),
		Role:  req.Role,
	}

	if req.Role == domain.RoleProvider {
		if req.HourlyRate <= 0 {
			return nil, fmt.Errorf("%w: providers need an hourly rate", domain.ErrValidation)
		}
		c, err := s.categories.GetActiveByName(ctx, req.Category)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: category %q is not active", domain.ErrValidation, req.Category)
			}
			return nil, err
		}
		user.Category = c.Name
		user.HourlyRate = req.HourlyRate
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	code, err := s.armCode(user)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	s.send(ctx, user.Email, code)
	return user, nil
}

// ResendCode replaces the pending code and resets the attempt counter.
func (s *Service) ResendCode(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	code, err := s.armCode(user)
	if err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.send(ctx, user.Email, code)
	return nil
}

// Verify checks the code. Each wrong guess counts; after five the code is burnt.
func (s *Service) Verify(ctx context.Context, email, code string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if user.IsVerified {
		return nil, ErrAlreadyVerified
	}
	if user.VerificationAttempts >= maxVerifyAttempts {
		return nil, ErrTooManyAttempts
	}
	if user.VerificationCodeHash == "" || user.VerificationExpires == nil || s.now().After(*user.VerificationExpires) {
		return nil, ErrInvalidCode
	}

	if subtle.ConstantTimeCompare([]byte(s.hashCode(code)), []byte(user.VerificationCodeHash)) != 1 {
		user.VerificationAttempts++
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		if user.VerificationAttempts >= maxVerifyAttempts {
			return nil, ErrTooManyAttempts
		}
		return nil, ErrInvalidCode
	}

	user.IsVerified = true
	user.VerificationCodeHash = ""
	user.VerificationExpires = nil
	user.VerificationAttempts = 0
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrEmailNotVerified
	}
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) armCode(user *domain.User) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	expires := s.now().Add(s.codeTTL)
	user.VerificationCodeHash = s.hashCode(code)
	user.VerificationExpires = &expires
	user.VerificationAttempts = 0
	return code, nil
}

func (s *Service) hashCode(code string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(code) + s.pepper))
	return hex.EncodeToString(sum[:])
}

func (s *Service) send(ctx context.Context, email, code string) {
	if s.sender == nil {
		return
	}
	if err := s.sender.SendVerificationCode(ctx, email, code); err != nil {
		s.log.Warn("verification code delivery failed", zap.String("email", email), zap.Error(err))
	}
}
