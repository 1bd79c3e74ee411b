package bill_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billy/internal/auth"
	"github.com/MrJamesThe3rd/billy/internal/bill"
	billhttp "github.com/MrJamesThe3rd/billy/internal/http/bill"
	"github.com/MrJamesThe3rd/billy/internal/summary"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	router *chi.Mux
	repo   *bill.MockRepository
	lister *summary.MockLister
	userID uuid.UUID
}

func newFixture(t *testing.T, authenticated bool) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:   bill.NewMockRepository(ctrl),
		lister: summary.NewMockLister(ctrl),
		userID: uuid.New(),
	}

	h := billhttp.NewHandler(
		bill.NewService(f.repo),
		summary.NewService(f.lister, summary.ClockFunc(func() time.Time { return now })),
	)

	f.router = chi.NewRouter()
	if authenticated {
		f.router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), f.userID)))
			})
		})
	}

	f.router.Route("/bills", h.Routes)

	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Summary(t *testing.T) {
	f := newFixture(t, true)

	installments := 6
	f.lister.EXPECT().
		List(gomock.Any(), bill.ListFilter{UserID: f.userID}).
		Return([]*bill.Bill{
			{Name: "Rent", Value: decimal.NewFromInt(1000), CreatedAt: now},
			{Name: "Phone", Value: decimal.NewFromInt(300), Installments: &installments, CreatedAt: now.AddDate(0, -2, 0)},
		}, nil)

	rec := f.do(http.MethodGet, "/bills/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, float64(2), got["active_bills_count"])
	assert.Equal(t, "1050.00", got["total_value"])
	assert.Equal(t, "1050.00", got["partial_value_next_month"])
	assert.Equal(t, "300.00", got["total_installment_value"])
	assert.Equal(t, "4200.00", got["total_bill_amount"])
	assert.Equal(t, "Rent", got["fixed_bills_names"])
	assert.Equal(t, "Phone", got["installment_bills_names"])
}

func TestHandler_SummaryErrors(t *testing.T) {
	t.Run("NotFoundIsZero", func(t *testing.T) {
		f := newFixture(t, true)
		f.lister.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, bill.ErrNotFound)

		rec := f.do(http.MethodGet, "/bills/summary", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_bill_amount":"0.00"`)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		f := newFixture(t, true)
		f.lister.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		rec := f.do(http.MethodGet, "/bills/summary", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		f := newFixture(t, false)

		rec := f.do(http.MethodGet, "/bills/summary", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *bill.MockRepository)
		wantStatus int
	}{
		{
			name: "Success",
			body: `{"name":"Phone","value":"300.00","installments":6}`,
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().CreateBill(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *bill.Bill) error {
						b.ID = uuid.New()
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Invalid",
			body:       `{"value":"10"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			if tt.setupMock != nil {
				tt.setupMock(f.repo)
			}

			rec := f.do(http.MethodPost, "/bills", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), `"kind":"installment"`)
				assert.Contains(t, rec.Body.String(), `"value":"300.00"`)
			}
		})
	}
}

func TestHandler_GetOtherUsersBill(t *testing.T) {
	f := newFixture(t, true)
	id := uuid.New()

	f.repo.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, UserID: uuid.New()}, nil)

	rec := f.do(http.MethodGet, "/bills/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ListRejectsUnknownKind(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(http.MethodGet, "/bills?kind=weekly", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateToFixed(t *testing.T) {
	f := newFixture(t, true)
	id := uuid.New()
	installments := 3

	f.repo.EXPECT().GetBill(gomock.Any(), id).
		Return(&bill.Bill{ID: id, UserID: f.userID, Name: "Gym", Value: decimal.NewFromInt(30), Installments: &installments}, nil)
	f.repo.EXPECT().UpdateBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *bill.Bill) error {
			assert.Nil(t, b.Installments)
			return nil
		})

	rec := f.do(http.MethodPatch, "/bills/"+id.String(), `{"fixed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"fixed"`)
}
