package userservice

import (
	"context"
	"strings"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/pkg/auth"
	"github.com/GlebRadaev/photoexpress/pkg/clock"
	"go.uber.org/zap"
)

const tokenTTL = 24 * time.Hour

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	AcceptPolicy(ctx context.Context, id int) (bool, error)
}

type Service struct {
	userRepo   Repo
	jwtService auth.JWTServiceInterface
	clock      clock.Clock
}

func New(repo Repo, jwtService auth.JWTServiceInterface, clk clock.Clock) *Service {
	return &Service{
		userRepo:   repo,
		jwtService: jwtService,
		clock:      clk,
	}
}

// Register creates the profile of a Telegram user or refreshes its name and
// phone when the user already exists.
func (s *Service) Register(ctx context.Context, telegramID int64, fullName, phone string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	phone = strings.TrimSpace(phone)
	switch {
	case telegramID <= 0:
		return nil, domain.NewValidationError("telegram_id", "must be positive")
	case fullName == "":
		return nil, domain.NewValidationError("full_name", "is required")
	case phone == "":
		return nil, domain.NewValidationError("phone_number", "is required")
	}

	user, err := s.userRepo.Upsert(ctx, &domain.User{
		TelegramID:  telegramID,
		FullName:    fullName,
		PhoneNumber: phone,
	})
	if err != nil {
		zap.L().Error("can't register user", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user registered", zap.Int64("telegram_id", telegramID), zap.Int("user_id", user.ID))
	return user, nil
}

func (s *Service) AcceptPolicy(ctx context.Context, userID int) error {
	ok, err := s.userRepo.AcceptPolicy(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("user", userID)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user", userID)
	}
	return user, nil
}

func (s *Service) GenerateToken(userID int) (string, error) {
	token, err := s.jwtService.GenerateJWT(userID, s.clock.Now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}
