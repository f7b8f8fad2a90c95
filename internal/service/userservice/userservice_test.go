package userservice

import (
	"context"
	"testing"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/pkg/auth"
	"github.com/GlebRadaev/photoexpress/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockRepo, *auth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)
	return New(repo, jwtService, clock.NewFake(now)), repo, jwtService
}

func TestRegister(t *testing.T) {
	service, repo, _ := NewMock(t)

	tests := []struct {
		name        string
		telegramID  int64
		fullName    string
		phone       string
		prepareMock func()
		expectedID  int
		expectedErr error
		validation  bool
	}{
		{
			name:       "New user",
			telegramID: 1001,
			fullName:   " Ivan Petrov ",
			phone:      "+79000000000",
			prepareMock: func() {
				repo.EXPECT().Upsert(gomock.Any(), &domain.User{TelegramID: 1001, FullName: "Ivan Petrov", PhoneNumber: "+79000000000"}).
					DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
						u.ID = 3
						return u, nil
					})
			},
			expectedID: 3,
		},
		{
			name:        "Missing name",
			telegramID:  1001,
			phone:       "+79000000000",
			prepareMock: func() {},
			validation:  true,
		},
		{
			name:        "Missing phone",
			telegramID:  1001,
			fullName:    "Ivan",
			prepareMock: func() {},
			validation:  true,
		},
		{
			name:        "Bad telegram id",
			fullName:    "Ivan",
			phone:       "+7900",
			prepareMock: func() {},
			validation:  true,
		},
		{
			name:       "Repo error",
			telegramID: 1001,
			fullName:   "Ivan",
			phone:      "+7900",
			prepareMock: func() {
				repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)
			},
			expectedErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			user, err := service.Register(context.Background(), tt.telegramID, tt.fullName, tt.phone)
			switch {
			case tt.validation:
				var vErr *domain.ValidationError
				assert.ErrorAs(t, err, &vErr)
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, user.ID)
			}
		})
	}
}

func TestAcceptPolicy(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().AcceptPolicy(gomock.Any(), 1).Return(true, nil)
	assert.NoError(t, service.AcceptPolicy(context.Background(), 1))

	repo.EXPECT().AcceptPolicy(gomock.Any(), 2).Return(false, nil)
	assert.ErrorIs(t, service.AcceptPolicy(context.Background(), 2), domain.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
	_, err := service.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.EXPECT().FindByID(gomock.Any(), 2).Return(&domain.User{ID: 2}, nil)
	user, err := service.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, user.ID)
}

func TestGenerateToken(t *testing.T) {
	service, _, jwtService := NewMock(t)

	jwtService.EXPECT().GenerateJWT(1, now.Add(tokenTTL)).Return("token", nil)
	token, err := service.GenerateToken(1)
	require.NoError(t, err)
	assert.Equal(t, "token", token)

	jwtService.EXPECT().GenerateJWT(1, gomock.Any()).Return("", assert.AnError)
	_, err = service.GenerateToken(1)
	assert.Error(t, err)
}
