package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billy/internal/planning"
	"github.com/MrJamesThe3rd/billy/internal/summary"
)

type PlanningsModel struct {
	CommonModel
	planningService *planning.Service
	clock           summary.Clock

	table     table.Model
	plannings []*planning.Planning
	form      *huh.Form
	adding    bool
	loading   bool
	err       error
	status    string

	formName   string
	formGoal   string
	formSaved  string
	formTarget string
}

func NewPlanningsModel(userID uuid.UUID, planningSvc *planning.Service, clock summary.Clock) PlanningsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Goal", Width: 28},
			{Title: "Target", Width: 12},
			{Title: "Value", Width: 12},
			{Title: "Saved", Width: 12},
			{Title: "Per month", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return PlanningsModel{
		CommonModel:     CommonModel{UserID: userID},
		planningService: planningSvc,
		clock:           clock,
		table:           t,
		loading:         true,
	}
}

func (m PlanningsModel) Title() string { return "Plannings" }
func (m PlanningsModel) ShortHelp() string {
	if m.adding {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | x: delete | r: refresh"
}

func (m PlanningsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PlanningsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPlanningsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.plannings = msg.plannings
		m.refreshTable()
		return m, nil

	case planningSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}
		m.adding = false
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()
	}

	if m.adding {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterForm()
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PlanningsModel) enterForm() (tea.Model, tea.Cmd) {
	m.formName, m.formGoal, m.formSaved = "", "", "0"
	m.formTarget = FormatDate(m.clock.Now().AddDate(1, 0, 0))

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal").Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("goal cannot be empty")
					}
					return nil
				}),
			huh.NewInput().Title("Value").Value(&m.formGoal).
				Validate(func(s string) error {
					v, err := ParseMoney(s)
					if err == nil && v.IsZero() {
						return fmt.Errorf("value must be positive")
					}
					return err
				}),
			huh.NewInput().Title("Already saved").Value(&m.formSaved).
				Validate(func(s string) error {
					_, err := ParseMoney(s)
					return err
				}),
			huh.NewInput().Title("Target date").Placeholder("YYYY-MM-DD").Value(&m.formTarget).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.adding = true
	m.table.Blur()
	return m, m.form.Init()
}

func (m PlanningsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.adding = false
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m PlanningsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading plannings...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.adding && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			boxStyle.Width(48).Render("New Planning\n\n"+m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PlanningsModel) refreshTable() {
	now := m.clock.Now()

	rows := make([]table.Row, 0, len(m.plannings))
	for _, p := range m.plannings {
		rows = append(rows, table.Row{
			p.Name,
			FormatDate(p.TargetDate),
			FormatMoney(p.GoalValue),
			FormatMoney(p.SavedValue),
			FormatMoney(p.MonthlyDeposit(now)),
		})
	}
	m.table.SetRows(rows)
}

type loadPlanningsMsg struct {
	plannings []*planning.Planning
	err       error
}

type planningSavedMsg struct {
	status string
	err    error
}

func (m PlanningsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		plannings, err := m.planningService.List(ctx, m.UserID)
		return loadPlanningsMsg{plannings: plannings, err: err}
	}
}

func (m PlanningsModel) createCmd() tea.Cmd {
	goal, _ := ParseMoney(m.formGoal)
	saved, _ := ParseMoney(m.formSaved)
	target, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.formTarget))
	params := planning.CreateParams{
		UserID:     m.UserID,
		Name:       strings.TrimSpace(m.formName),
		GoalValue:  goal,
		SavedValue: saved,
		TargetDate: target,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.planningService.Create(ctx, params)
		if err != nil {
			return planningSavedMsg{err: err}
		}

		return planningSavedMsg{status: fmt.Sprintf("Added %s.", p.Name)}
	}
}

func (m PlanningsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.plannings) {
		return nil
	}

	p := m.plannings[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.planningService.Delete(ctx, m.UserID, p.ID); err != nil {
			return planningSavedMsg{err: err}
		}

		return planningSavedMsg{status: fmt.Sprintf("Deleted %s.", p.Name)}
	}
}
