package bill_test

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

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

func intPtr(n int) *int { return &n }

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	type args struct {
		params bill.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *bill.MockRepository)
		wantErr   bool
		wantValid bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: bill.CreateParams{
					UserID:    userID,
					Name:      "Rent",
					Value:     decimal.NewFromInt(1000),
					CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				},
			},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().
					CreateBill(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *bill.Bill) error {
						b.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "MissingName",
			args: args{
				params: bill.CreateParams{UserID: userID, Value: decimal.NewFromInt(10)},
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "MissingUser",
			args: args{
				params: bill.CreateParams{Name: "Rent", Value: decimal.NewFromInt(10)},
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "NegativeValue",
			args: args{
				params: bill.CreateParams{UserID: userID, Name: "Refund", Value: decimal.NewFromInt(-5)},
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "ZeroInstallments",
			args: args{
				params: bill.CreateParams{UserID: userID, Name: "Phone", Value: decimal.NewFromInt(300), Installments: intPtr(0)},
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "RepoError",
			args: args{
				params: bill.CreateParams{UserID: userID, Name: "Rent", Value: decimal.NewFromInt(500)},
			},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().
					CreateBill(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := bill.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := bill.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				var verr *bill.ValidationError
				assert.Equal(t, tt.wantValid, errors.As(err, &verr))

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, userID, got.UserID)
		})
	}
}

func TestService_CreateDefaultsCreatedAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)
	repo.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(nil)

	before := time.Now().UTC()
	got, err := bill.NewService(repo).Create(context.Background(), bill.CreateParams{
		UserID: uuid.New(),
		Name:   "Gym",
		Value:  decimal.NewFromInt(35),
	})
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.Before(before))
	assert.Equal(t, bill.KindFixed, got.Kind())
}

func TestService_Get(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	tests := []struct {
		name      string
		userID    uuid.UUID
		setupMock func(m *bill.MockRepository)
		wantErr   error
	}{
		{
			name:   "Owner",
			userID: owner,
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, UserID: owner}, nil)
			},
		},
		{
			name:   "OtherUser",
			userID: uuid.New(),
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, UserID: owner}, nil)
			},
			wantErr: bill.ErrNotFound,
		},
		{
			name:   "Missing",
			userID: owner,
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), id).Return(nil, bill.ErrNotFound)
			},
			wantErr: bill.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bill.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := bill.NewService(repo).Get(context.Background(), tt.userID, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
		})
	}
}

func TestService_List(t *testing.T) {
	filter := bill.ListFilter{UserID: uuid.New()}

	tests := []struct {
		name      string
		setupMock func(m *bill.MockRepository)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "Success",
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().
					ListBills(gomock.Any(), filter).
					Return([]*bill.Bill{{ID: uuid.New()}, {ID: uuid.New()}}, nil)
			},
			wantLen: 2,
		},
		{
			name: "Error",
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().
					ListBills(gomock.Any(), filter).
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bill.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := bill.NewService(repo).List(context.Background(), filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)
	svc := bill.NewService(repo)

	b := &bill.Bill{ID: uuid.New(), UserID: uuid.New(), Name: "Rent", Value: decimal.NewFromInt(900)}
	repo.EXPECT().UpdateBill(gomock.Any(), b).Return(nil)
	require.NoError(t, svc.Update(context.Background(), b))

	invalid := &bill.Bill{ID: uuid.New(), UserID: uuid.New(), Value: decimal.NewFromInt(900)}
	err := svc.Update(context.Background(), invalid)

	var verr *bill.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestService_Delete(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	t.Run("Owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)

		gomock.InOrder(
			repo.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, UserID: owner}, nil),
			repo.EXPECT().DeleteBill(gomock.Any(), id).Return(nil),
		)

		assert.NoError(t, bill.NewService(repo).Delete(context.Background(), owner, id))
	})

	t.Run("OtherUser", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		repo.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, UserID: owner}, nil)

		err := bill.NewService(repo).Delete(context.Background(), uuid.New(), id)
		assert.ErrorIs(t, err, bill.ErrNotFound)
	})
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := bill.NewMockRepository(ctrl)
	itx := bill.NewMockImportTx(ctrl)
	svc := bill.NewService(repo)

	userID := uuid.New()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []bill.CreateParams{
		{
			UserID:       userID,
			Name:         "Coffee",
			Value:        decimal.RequireFromString("2.50"),
			Installments: intPtr(1),
			CreatedAt:    date,
		},
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().CreateBills(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, params)
	require.NoError(t, err)
	require.Len(t, result.Imported, 1)
	assert.Equal(t, bill.KindMonthlyMisc, result.Imported[0].Kind())
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := bill.NewMockRepository(ctrl)
	itx := bill.NewMockImportTx(ctrl)
	svc := bill.NewService(repo)

	userID := uuid.New()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []bill.CreateParams{
		{UserID: userID, Name: "Coffee", Value: decimal.RequireFromString("2.5"), Installments: intPtr(1), CreatedAt: date},
		{UserID: userID, Name: "Lunch", Value: decimal.RequireFromString("12"), Installments: intPtr(1), CreatedAt: date},
	}

	existing := &bill.Bill{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Coffee",
		Value:     decimal.RequireFromString("2.50"),
		CreatedAt: date.Add(9 * time.Hour),
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*bill.Bill{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Len(t, result.New, 1)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := bill.NewMockRepository(ctrl)
	svc := bill.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), uuid.New(), []bill.CreateParams{})
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := bill.NewMockRepository(ctrl)
	itx := bill.NewMockImportTx(ctrl)
	svc := bill.NewService(repo)

	userID := uuid.New()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []bill.CreateParams{
		{UserID: userID, Name: "Coffee", Value: decimal.NewFromInt(3), Installments: intPtr(1), CreatedAt: date},
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID).Return(itx, nil)
	itx.EXPECT().CreateBills(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	bills, err := svc.CreateBatch(context.Background(), userID, params)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "Coffee", bills[0].Name)
	assert.True(t, decimal.NewFromInt(3).Equal(bills[0].Value))
}

func TestCreateParams_Kind(t *testing.T) {
	assert.Equal(t, bill.KindFixed, bill.CreateParams{}.Kind())
	assert.Equal(t, bill.KindMonthlyMisc, bill.CreateParams{Installments: intPtr(1)}.Kind())
	assert.Equal(t, bill.KindInstallment, bill.CreateParams{Installments: intPtr(3)}.Kind())
}
