package bill

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/summary"
)

type billResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Value        string     `json:"value"`
	Description  string     `json:"description,omitempty"`
	Installments *int       `json:"installments,omitempty"`
	Kind         bill.Kind  `json:"kind"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func toResponse(b *bill.Bill) billResponse {
	return billResponse{
		ID:           b.ID,
		Name:         b.Name,
		Value:        b.Value.StringFixed(2),
		Description:  b.Description,
		Installments: b.Installments,
		Kind:         b.Kind(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toResponseList(bills []*bill.Bill) []billResponse {
	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toResponse(b)
	}

	return resp
}

// SummaryResponse carries money as fixed two-decimal strings.
type SummaryResponse struct {
	ActiveBillsCount           int    `json:"active_bills_count"`
	TotalBillAmount            string `json:"total_bill_amount"`
	TotalValue                 string `json:"total_value"`
	TotalFixedBillsValue       string `json:"total_fixed_bills_value"`
	TotalMonthlyMiscBillsValue string `json:"total_monthly_misc_bills_value"`
	TotalInstallmentValue      string `json:"total_installment_value"`
	PartialValueNextMonth      string `json:"partial_value_next_month"`
	PartialValue2MonthsLater   string `json:"partial_value_2_months_later"`
	PartialValue3MonthsLater   string `json:"partial_value_3_months_later"`
	FixedBillsNames            string `json:"fixed_bills_names"`
	MonthlyMiscBillsNames      string `json:"monthly_misc_bills_names"`
	InstallmentBillsNames      string `json:"installment_bills_names"`
}

// ToSummaryResponse is shared with the plan handler.
func ToSummaryResponse(s *summary.Summary) SummaryResponse {
	return SummaryResponse{
		ActiveBillsCount:           s.ActiveBillsCount,
		TotalBillAmount:            s.TotalBillAmount.StringFixed(2),
		TotalValue:                 s.TotalValue.StringFixed(2),
		TotalFixedBillsValue:       s.TotalFixedBillsValue.StringFixed(2),
		TotalMonthlyMiscBillsValue: s.TotalMonthlyMiscBillsValue.StringFixed(2),
		TotalInstallmentValue:      s.TotalInstallmentValue.StringFixed(2),
		PartialValueNextMonth:      s.PartialValueNextMonth.StringFixed(2),
		PartialValue2MonthsLater:   s.PartialValue2MonthsLater.StringFixed(2),
		PartialValue3MonthsLater:   s.PartialValue3MonthsLater.StringFixed(2),
		FixedBillsNames:            s.FixedBillsNames,
		MonthlyMiscBillsNames:      s.MonthlyMiscBillsNames,
		InstallmentBillsNames:      s.InstallmentBillsNames,
	}
}
