package planning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billy/internal/planning"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()
	target := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	valid := planning.CreateParams{
		UserID:     userID,
		Name:       "Holidays",
		GoalValue:  decimal.NewFromInt(1500),
		SavedValue: decimal.NewFromInt(100),
		TargetDate: target,
	}

	tests := []struct {
		name      string
		params    func() planning.CreateParams
		setupMock func(m *planning.MockRepository)
		wantErr   bool
		wantValid bool
	}{
		{
			name:   "Success",
			params: func() planning.CreateParams { return valid },
			setupMock: func(m *planning.MockRepository) {
				m.EXPECT().
					CreatePlanning(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *planning.Planning) error {
						p.ID = uuid.New()
						p.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "MissingName",
			params: func() planning.CreateParams {
				p := valid
				p.Name = ""
				return p
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "ZeroGoal",
			params: func() planning.CreateParams {
				p := valid
				p.GoalValue = decimal.Zero
				return p
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "NegativeSaved",
			params: func() planning.CreateParams {
				p := valid
				p.SavedValue = decimal.NewFromInt(-1)
				return p
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "MissingTargetDate",
			params: func() planning.CreateParams {
				p := valid
				p.TargetDate = time.Time{}
				return p
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name:   "RepoError",
			params: func() planning.CreateParams { return valid },
			setupMock: func(m *planning.MockRepository) {
				m.EXPECT().CreatePlanning(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := planning.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := planning.NewService(repo).Create(context.Background(), tt.params())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				var verr *planning.ValidationError
				assert.Equal(t, tt.wantValid, errors.As(err, &verr))

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, "Holidays", got.Name)
			assert.Equal(t, target, got.TargetDate)
		})
	}
}

func TestService_GetOwnerScoped(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := planning.NewMockRepository(ctrl)
	repo.EXPECT().GetPlanning(gomock.Any(), id).Return(&planning.Planning{ID: id, UserID: owner}, nil).Times(2)

	svc := planning.NewService(repo)

	got, err := svc.Get(context.Background(), owner, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = svc.Get(context.Background(), uuid.New(), id)
	assert.ErrorIs(t, err, planning.ErrNotFound)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := planning.NewMockRepository(ctrl)
	svc := planning.NewService(repo)

	p := &planning.Planning{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Name:       "Car",
		GoalValue:  decimal.NewFromInt(8000),
		SavedValue: decimal.NewFromInt(2500),
		TargetDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	repo.EXPECT().UpdatePlanning(gomock.Any(), p).Return(nil)
	require.NoError(t, svc.Update(context.Background(), p))

	p.GoalValue = decimal.Zero
	var verr *planning.ValidationError
	assert.ErrorAs(t, svc.Update(context.Background(), p), &verr)
}

func TestService_Delete(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := planning.NewMockRepository(ctrl)

	gomock.InOrder(
		repo.EXPECT().GetPlanning(gomock.Any(), id).Return(&planning.Planning{ID: id, UserID: owner}, nil),
		repo.EXPECT().DeletePlanning(gomock.Any(), id).Return(nil),
	)

	assert.NoError(t, planning.NewService(repo).Delete(context.Background(), owner, id))
}

func TestService_List(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := planning.NewMockRepository(ctrl)
	repo.EXPECT().ListPlannings(gomock.Any(), userID).Return([]*planning.Planning{{ID: uuid.New()}}, nil)

	got, err := planning.NewService(repo).List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
