package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

type billsState int

const (
	billsStateBrowse billsState = iota
	billsStateForm
	billsStateConfirmDelete
)

var kindFilters = []*bill.Kind{
	nil,
	new(bill.KindFixed),
	new(bill.KindMonthlyMisc),
	new(bill.KindInstallment),
}

type BillsModel struct {
	CommonModel
	billService *bill.Service

	state   billsState
	table   table.Model
	bills   []*bill.Bill
	form    *huh.Form
	editing *bill.Bill

	kindFilterIdx int
	loading       bool
	err           error
	status        string

	// Form bindings
	formName         string
	formValue        string
	formDesc         string
	formInstallments string
}

func NewBillsModel(userID uuid.UUID, billSvc *bill.Service) BillsModel {
	columns := []table.Column{
		{Title: "Created", Width: 12},
		{Title: "Kind", Width: 12},
		{Title: "Value", Width: 12},
		{Title: "Inst.", Width: 6},
		{Title: "Name", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return BillsModel{
		CommonModel: CommonModel{UserID: userID},
		billService: billSvc,
		table:       t,
		loading:     true,
	}
}

func (m BillsModel) Title() string { return "Bills" }
func (m BillsModel) ShortHelp() string {
	switch m.state {
	case billsStateForm:
		return "Navigate form | Esc: cancel"
	case billsStateConfirmDelete:
		return "y: delete | n: keep"
	}
	return "Esc: back | a: add | e: edit | x: delete | k: kind filter | r: refresh"
}

func (m BillsModel) Init() tea.Cmd {
	return m.loadBillsCmd()
}

func (m BillsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBillsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.bills = msg.bills
		m.refreshTable()
		return m, nil

	case billSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}
		m.state = billsStateBrowse
		m.form = nil
		m.editing = nil
		m.table.Focus()
		return m, m.loadBillsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case billsStateBrowse:
		return m.updateBrowse(msg)
	case billsStateForm:
		return m.updateForm(msg)
	case billsStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m BillsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadBillsCmd()
		case "a":
			return m.enterForm(nil)
		case "e":
			if b := m.selected(); b != nil {
				return m.enterForm(b)
			}
			return m, nil
		case "x":
			if m.selected() != nil {
				m.state = billsStateConfirmDelete
			}
			return m, nil
		case "k":
			m.kindFilterIdx = (m.kindFilterIdx + 1) % len(kindFilters)
			return m, m.loadBillsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BillsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		return m, m.deleteCmd(m.selected())
	case "n", "esc":
		m.state = billsStateBrowse
	}

	return m, nil
}

func (m BillsModel) selected() *bill.Bill {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.bills) {
		return nil
	}

	return m.bills[idx]
}

// enterForm opens the add form, or the edit form when b is not nil.
func (m BillsModel) enterForm(b *bill.Bill) (tea.Model, tea.Cmd) {
	m.editing = b
	m.formName, m.formValue, m.formDesc, m.formInstallments = "", "", "", ""

	if b != nil {
		m.formName = b.Name
		m.formValue = FormatMoney(b.Value)
		m.formDesc = b.Description
		if b.Installments != nil {
			m.formInstallments = strconv.Itoa(*b.Installments)
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("value").
				Title("Value").
				Placeholder("0.00").
				Value(&m.formValue).
				Validate(func(s string) error {
					_, err := ParseMoney(s)
					return err
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),

			huh.NewInput().
				Key("installments").
				Title("Installments").
				Description("Empty for a fixed bill, 1 for this month only").
				Value(&m.formInstallments).
				Validate(func(s string) error {
					_, err := parseInstallments(s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = billsStateForm
	m.table.Blur()
	return m, m.form.Init()
}

func (m BillsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = billsStateBrowse
			m.form = nil
			m.editing = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m BillsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bills...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	kindLabel := "All"
	if k := kindFilters[m.kindFilterIdx]; k != nil {
		kindLabel = string(*k)
	}

	header := fmt.Sprintf("Filter: [k] Kind: %s", activeStyle(kindLabel))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch {
	case m.state == billsStateForm && m.form != nil:
		title := "New Bill"
		if m.editing != nil {
			title = "Edit Bill"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)

	case m.state == billsStateConfirmDelete:
		if b := m.selected(); b != nil {
			content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
				Render(fmt.Sprintf("Delete %q? (y/n)", b.Label()))
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *BillsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.bills))
	for _, b := range m.bills {
		installments := "-"
		if b.Installments != nil {
			installments = strconv.Itoa(*b.Installments)
		}

		rows = append(rows, table.Row{
			FormatDate(b.CreatedAt),
			string(b.Kind()),
			FormatMoney(b.Value),
			installments,
			b.Label(),
		})
	}
	m.table.SetRows(rows)
}

// parseInstallments maps "" to a fixed bill.
func parseInstallments(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("installments must be a positive number")
	}

	return &n, nil
}

// Messages

type loadBillsMsg struct {
	bills []*bill.Bill
	err   error
}

func (m BillsModel) loadBillsCmd() tea.Cmd {
	filter := bill.ListFilter{UserID: m.UserID, Kind: kindFilters[m.kindFilterIdx]}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		bills, err := m.billService.List(ctx, filter)
		return loadBillsMsg{bills: bills, err: err}
	}
}

type billSavedMsg struct {
	status string
	err    error
}

func (m BillsModel) saveCmd() tea.Cmd {
	editing := m.editing
	name := strings.TrimSpace(m.formName)
	desc := strings.TrimSpace(m.formDesc)
	value, _ := ParseMoney(m.formValue)
	installments, _ := parseInstallments(m.formInstallments)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			b, err := m.billService.Create(ctx, bill.CreateParams{
				UserID:       m.UserID,
				Name:         name,
				Value:        value,
				Description:  desc,
				Installments: installments,
				CreatedAt:    time.Now(),
			})
			if err != nil {
				return billSavedMsg{err: err}
			}

			return billSavedMsg{status: fmt.Sprintf("Added %s.", b.Label())}
		}

		edited := *editing
		edited.Name = name
		edited.Value = value
		edited.Description = desc
		edited.Installments = installments

		if err := m.billService.Update(ctx, &edited); err != nil {
			return billSavedMsg{err: err}
		}

		return billSavedMsg{status: fmt.Sprintf("Saved %s.", edited.Label())}
	}
}

func (m BillsModel) deleteCmd(b *bill.Bill) tea.Cmd {
	if b == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.billService.Delete(ctx, m.UserID, b.ID); err != nil {
			return billSavedMsg{err: err}
		}

		return billSavedMsg{status: fmt.Sprintf("Deleted %s.", b.Label())}
	}
}
