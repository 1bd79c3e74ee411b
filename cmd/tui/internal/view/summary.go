package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billy/internal/summary"
)

var (
	labelStyle = lipgloss.NewStyle().Width(30).Foreground(lipgloss.Color("245"))
	moneyStyle = lipgloss.NewStyle().Width(14).Align(lipgloss.Right).Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

type SummaryModel struct {
	CommonModel
	summaryService *summary.Service

	summary *summary.Summary
	loading bool
	err     error
}

func NewSummaryModel(userID uuid.UUID, summarySvc *summary.Service) SummaryModel {
	return SummaryModel{
		CommonModel:    CommonModel{UserID: userID},
		summaryService: summarySvc,
		loading:        true,
	}
}

func (m SummaryModel) Title() string     { return "Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.computeCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		m.loading = false
		m.summary, m.err = msg.summary, msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.computeCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Computing summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(RenderSummary(m.summary))
}

// RenderSummary lays the totals, the forward buckets and the name lists out
// side by side.
func RenderSummary(s *summary.Summary) string {
	totals := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		"This month",
		"",
		row("Active bills", strconv.Itoa(s.ActiveBillsCount)),
		row("Fixed", FormatMoney(s.TotalFixedBillsValue)),
		row("Monthly misc", FormatMoney(s.TotalMonthlyMiscBillsValue)),
		row("Installments", FormatMoney(s.TotalInstallmentValue)),
		row("Total", FormatMoney(s.TotalValue)),
		"",
		row("Total bill amount", FormatMoney(s.TotalBillAmount)),
	))

	ahead := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		"Installments ahead",
		"",
		row("Next month", FormatMoney(s.PartialValueNextMonth)),
		row("In 2 months", FormatMoney(s.PartialValue2MonthsLater)),
		row("In 3 months", FormatMoney(s.PartialValue3MonthsLater)),
	))

	names := boxStyle.Width(60).Render(strings.Join([]string{
		"Fixed: " + orDash(s.FixedBillsNames),
		"Monthly misc: " + orDash(s.MonthlyMiscBillsNames),
		"Installments: " + orDash(s.InstallmentBillsNames),
	}, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, totals, ahead),
		names,
	)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), moneyStyle.Render(value))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type summaryMsg struct {
	summary *summary.Summary
	err     error
}

func (m SummaryModel) computeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.summaryService.Compute(ctx, m.UserID)
		return summaryMsg{summary: s, err: err}
	}
}
