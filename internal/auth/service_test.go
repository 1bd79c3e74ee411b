package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/billy/internal/auth"
	"github.com/MrJamesThe3rd/billy/internal/user"
)

func newService(t *testing.T) (*auth.Service, *auth.MockRepository, *auth.JWTManager) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)
	tokens := auth.NewJWTManager("test-secret", time.Hour)

	return auth.NewService(repo, tokens), repo, tokens
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name      string
		params    auth.RegisterParams
		setupMock func(m *auth.MockRepository)
		wantErr   error
		wantValid bool
	}{
		{
			name:   "Success",
			params: auth.RegisterParams{Email: "ana@example.com", DisplayName: "Ana", Password: "correct horse"},
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						u.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:      "InvalidEmail",
			params:    auth.RegisterParams{Email: "not-an-email", Password: "correct horse"},
			wantValid: true,
		},
		{
			name:    "WeakPassword",
			params:  auth.RegisterParams{Email: "ana@example.com", Password: "short"},
			wantErr: auth.ErrWeakPassword,
		},
		{
			name:   "EmailTaken",
			params: auth.RegisterParams{Email: "ana@example.com", Password: "correct horse"},
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(user.ErrEmailTaken)
			},
			wantErr: user.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, tokens := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := svc.Register(context.Background(), tt.params)

			if tt.wantValid {
				var verr *auth.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.params.Password, got.User.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.User.PasswordHash), []byte(tt.params.Password)))

			claims, err := tokens.Validate(got.Token)
			require.NoError(t, err)
			assert.Equal(t, got.User.ID.String(), claims.UserID)
		})
	}
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash)}
	dbErr := errors.New("db down")

	tests := []struct {
		name      string
		password  string
		setupMock func(m *auth.MockRepository)
		wantErr   error
	}{
		{
			name:     "Success",
			password: "correct horse",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			password: "battery staple",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(stored, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			password: "correct horse",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(nil, user.ErrNotFound)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "StoreError",
			password: "correct horse",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(nil, dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			got, err := svc.Login(context.Background(), "ana@example.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored, got.User)
			assert.NotEmpty(t, got.Token)
		})
	}
}
