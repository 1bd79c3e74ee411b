package view

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/importer"
	"github.com/MrJamesThe3rd/billy/internal/summary"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateBankSelect importState = iota
	importStateFilePick
	importStateLoading
	importStateReview
	importStateEdit
	importStateConflicts
	importStateResult
)

type editField int

const (
	editName editField = iota
	editInstallments
)

// candidate is a parsed debit the user can reshape before it is stored.
type candidate struct {
	params bill.CreateParams
	skip   bool
}

func (c candidate) asBill() *bill.Bill {
	return &bill.Bill{
		Name:         c.params.Name,
		Value:        c.params.Value,
		Description:  c.params.Description,
		Installments: c.params.Installments,
		CreatedAt:    c.params.CreatedAt,
	}
}

// learned reports whether the importer replaced the bank text with a known name.
func (c candidate) learned() bool {
	return c.params.Description != "" && c.params.Description != c.params.Name
}

type ImportModel struct {
	CommonModel
	importService *importer.Service
	clock         summary.Clock

	state        importState
	filePicker   filepicker.Model
	selectedBank importer.Bank
	bankOptions  []importer.Bank
	bankCursor   int

	candidates []candidate
	review     table.Model
	input      textinput.Model
	editing    editField

	newParams []bill.CreateParams
	conflicts []bill.Conflict
	keep      map[int]bool
	conflict  table.Model

	status string
	err    error
}

func NewImportModel(userID uuid.UUID, impSvc *importer.Service, clock summary.Clock) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	in := textinput.New()
	in.Width = 40

	if clock == nil {
		clock = summary.SystemClock{}
	}

	return ImportModel{
		CommonModel:   CommonModel{UserID: userID},
		importService: impSvc,
		clock:         clock,
		filePicker:    fp,
		bankOptions:   []importer.Bank{importer.BankCGD},
		review: newImportTable([]table.Column{
			{Title: "", Width: 3},
			{Title: "Date", Width: 11},
			{Title: "Month", Width: 10},
			{Title: "Kind", Width: 11},
			{Title: "Value", Width: 10},
			{Title: "Inst.", Width: 5},
			{Title: "This month", Width: 10},
			{Title: "Name", Width: 40},
		}),
		conflict: newImportTable([]table.Column{
			{Title: "", Width: 3},
			{Title: "Date", Width: 11},
			{Title: "Kind", Width: 11},
			{Title: "Value", Width: 10},
			{Title: "Incoming", Width: 32},
			{Title: "Already stored", Width: 32},
		}),
		input: in,
		keep:  make(map[int]bool),
	}
}

func newImportTable(columns []table.Column) table.Model {
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

	return t
}

func (m ImportModel) Title() string { return "Import Bank Statement" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateReview:
		return "Space: skip | +/-: installments | f: fixed | e: name | i: count | Enter: import | Esc: cancel"
	case importStateEdit:
		return "Enter: apply | Esc: cancel"
	case importStateConflicts:
		return "Space: keep | a: all | n: none | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateBankSelect:
			return m.updateBankSelect(msg)
		case importStateReview:
			return m.updateReview(msg)
		case importStateEdit:
			return m.updateEdit(msg)
		case importStateConflicts:
			return m.updateConflicts(msg)
		}

	case candidatesMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}

		if len(msg.params) == 0 {
			m.state = importStateResult
			m.status = "No debits found in this export."

			return m, nil
		}

		m.candidates = make([]candidate, len(msg.params))
		for i, p := range msg.params {
			m.candidates[i] = candidate{params: p}
		}

		m.state = importStateReview
		m.refreshReview()

		return m, nil

	case importResultMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}

		if len(msg.result.Conflicts) == 0 {
			m.state = importStateResult
			m.status = importedStatus(msg.result.Imported, m.clock.Now())

			return m, nil
		}

		m.newParams = msg.result.New
		m.conflicts = msg.result.Conflicts
		m.keep = make(map[int]bool)
		m.state = importStateConflicts
		m.refreshConflicts()

		return m, nil

	case confirmResultMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}

		m.state = importStateResult
		m.status = importedStatus(msg.bills, m.clock.Now())

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateLoading
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.candidatesCmd(path)
	}

	return m, cmd
}

func (m ImportModel) fail(err error) ImportModel {
	m.state = importStateResult
	m.err = err
	m.status = fmt.Sprintf("Error: %v", err)

	return m
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult, importStateReview, importStateConflicts:
		m.state = importStateBankSelect
		m.err = nil
		m.status = ""
		m.candidates = nil
		m.conflicts = nil
		m.newParams = nil

		return m, nil
	case importStateEdit:
		m.state = importStateReview
		m.input.Blur()

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateBankSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.bankCursor = max(m.bankCursor-1, 0)
	case tea.KeyDown:
		m.bankCursor = min(m.bankCursor+1, len(m.bankOptions)-1)
	case tea.KeyEnter:
		m.selectedBank = m.bankOptions[m.bankCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := m.review.Cursor()
	if idx < 0 || idx >= len(m.candidates) {
		return m, nil
	}

	c := &m.candidates[idx]

	switch msg.String() {
	case " ":
		c.skip = !c.skip
	case "+":
		c.params.Installments = stepInstallments(c.params.Installments, 1)
	case "-":
		c.params.Installments = stepInstallments(c.params.Installments, -1)
	case "f":
		c.params.Installments = toggleFixed(c.params.Installments)
	case "e":
		return m.startEdit(editName, c.params.Name)
	case "i":
		value := ""
		if c.params.Installments != nil {
			value = strconv.Itoa(*c.params.Installments)
		}

		return m.startEdit(editInstallments, value)
	case "enter":
		params := includedParams(m.candidates)
		if len(params) == 0 {
			m.status = "Every candidate is skipped."
			return m, nil
		}

		m.state = importStateLoading
		m.status = fmt.Sprintf("Importing %d bills...", len(params))

		return m, m.importCmd(params)
	default:
		var cmd tea.Cmd
		m.review, cmd = m.review.Update(msg)

		return m, cmd
	}

	m.status = ""
	m.refreshReview()

	return m, nil
}

func (m ImportModel) startEdit(field editField, value string) (tea.Model, tea.Cmd) {
	m.editing = field
	m.input.Prompt = "Name: "
	m.input.Placeholder = ""

	if field == editInstallments {
		m.input.Prompt = "Installments: "
		m.input.Placeholder = "empty = fixed, 1 = this month"
	}

	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	m.state = importStateEdit

	return m, textinput.Blink
}

func (m ImportModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	idx := m.review.Cursor()
	if idx < 0 || idx >= len(m.candidates) {
		m.state = importStateReview
		return m, nil
	}

	updated, err := applyEdit(m.candidates[idx], m.editing, m.input.Value())
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.candidates[idx] = updated
	m.status = ""
	m.state = importStateReview
	m.input.Blur()
	m.refreshReview()

	return m, nil
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.conflict.Cursor()
		m.keep[idx] = !m.keep[idx]
	case "a":
		for i := range m.conflicts {
			m.keep[i] = true
		}
	case "n":
		clear(m.keep)
	case "enter":
		m.state = importStateLoading
		m.status = "Saving..."

		return m, m.confirmCmd()
	default:
		var cmd tea.Cmd
		m.conflict, cmd = m.conflict.Update(msg)

		return m, cmd
	}

	m.refreshConflicts()

	return m, nil
}

func (m *ImportModel) refreshReview() {
	now := m.clock.Now()

	rows := make([]table.Row, len(m.candidates))
	for i, c := range m.candidates {
		rows[i] = candidateRow(c, now)
	}

	m.review.SetRows(rows)
}

func (m *ImportModel) refreshConflicts() {
	rows := make([]table.Row, len(m.conflicts))
	for i, c := range m.conflicts {
		rows[i] = conflictRow(c, m.keep[i])
	}

	m.conflict.SetRows(rows)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateBankSelect:
		return m.viewBankSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedBank, m.filePicker.View()),
		)
	case importStateLoading:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReview, importStateEdit:
		return m.viewReview()
	case importStateConflicts:
		return m.viewConflicts()
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewBankSelect() string {
	var sb strings.Builder
	sb.WriteString("Select Bank:\n\n")

	for i, bank := range m.bankOptions {
		cursor := " "
		if i == m.bankCursor {
			cursor = ">"
		}

		fmt.Fprintf(&sb, "%s %s\n", cursor, bank)
	}

	return lipgloss.NewStyle().Padding(2).Render(sb.String())
}

func (m ImportModel) viewReview() string {
	s := reviewTotals(m.candidates, m.clock.Now())

	header := fmt.Sprintf("%d candidates from %s | this month +%s | %s",
		len(m.candidates), m.selectedBank,
		activeStyle(FormatMoney(s.TotalValue)),
		kindBreakdown(m.candidates),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxStyle.Render(m.review.View()),
	)

	if m.state == importStateEdit {
		content += "\n\n" + m.input.View()
	}

	if m.status != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ImportModel) viewConflicts() string {
	header := fmt.Sprintf("%d candidates match stored bills. %d new ones will be saved with the ones you keep.",
		len(m.conflicts), len(m.newParams))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxStyle.Render(m.conflict.View()),
	))
}

func (m ImportModel) viewResult() string {
	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) + "\n\n(Esc to go back)",
	)
}

// monthTag names the calendar month of t, "current" for now's month.
func monthTag(t, now time.Time) string {
	t = t.In(now.Location())
	if t.Year() == now.Year() && t.Month() == now.Month() {
		return "current"
	}

	return t.Format("Jan 2006")
}

// stepInstallments moves a count by delta, never below one. A fixed bill
// stepped up becomes a one-off first.
func stepInstallments(n *int, delta int) *int {
	if n == nil {
		return new(1)
	}

	return new(max(*n+delta, 1))
}

func toggleFixed(n *int) *int {
	if n == nil {
		return new(1)
	}

	return nil
}

func applyEdit(c candidate, field editField, value string) (candidate, error) {
	switch field {
	case editName:
		name := strings.TrimSpace(value)
		if name == "" {
			return c, fmt.Errorf("name cannot be empty")
		}

		c.params.Name = name
	case editInstallments:
		n, err := parseInstallments(value)
		if err != nil {
			return c, err
		}

		c.params.Installments = n
	}

	return c, nil
}

func includedParams(cs []candidate) []bill.CreateParams {
	var params []bill.CreateParams

	for _, c := range cs {
		if !c.skip {
			params = append(params, c.params)
		}
	}

	return params
}

// reviewTotals is the summary the included candidates alone would produce.
func reviewTotals(cs []candidate, now time.Time) summary.Summary {
	var bills []*bill.Bill

	for _, c := range cs {
		if !c.skip {
			bills = append(bills, c.asBill())
		}
	}

	return summary.Compute(bills, now)
}

func kindBreakdown(cs []candidate) string {
	counts := map[bill.Kind]int{}

	for _, c := range cs {
		if !c.skip {
			counts[c.params.Kind()]++
		}
	}

	return fmt.Sprintf("%d misc, %d installment, %d fixed",
		counts[bill.KindMonthlyMisc], counts[bill.KindInstallment], counts[bill.KindFixed])
}

func candidateRow(c candidate, now time.Time) table.Row {
	mark := "[x]"
	if c.skip {
		mark = "[ ]"
	}

	installments := "-"
	if c.params.Installments != nil {
		installments = strconv.Itoa(*c.params.Installments)
	}

	name := c.params.Name
	if c.learned() {
		name += " (" + c.params.Description + ")"
	}

	return table.Row{
		mark,
		FormatDate(c.params.CreatedAt),
		monthTag(c.params.CreatedAt, now),
		string(c.params.Kind()),
		FormatMoney(c.params.Value),
		installments,
		FormatMoney(thisMonth(c, now)),
		name,
	}
}

// thisMonth is what c adds to the current month's total.
func thisMonth(c candidate, now time.Time) decimal.Decimal {
	return summary.Compute([]*bill.Bill{c.asBill()}, now).TotalValue
}

func conflictRow(c bill.Conflict, keep bool) table.Row {
	mark := "[ ]"
	if keep {
		mark = "[x]"
	}

	incoming := c.Incoming.Name
	if c.Incoming.Description != "" && c.Incoming.Description != c.Incoming.Name {
		incoming += " (learned)"
	}

	return table.Row{
		mark,
		FormatDate(c.Incoming.CreatedAt),
		string(c.Incoming.Kind()),
		FormatMoney(c.Incoming.Value),
		incoming,
		fmt.Sprintf("%s [%s]", c.Existing.Label(), c.Existing.Kind()),
	}
}

func importedStatus(bills []*bill.Bill, now time.Time) string {
	plans := 0

	for _, b := range bills {
		if b.Kind() == bill.KindInstallment {
			plans++
		}
	}

	return fmt.Sprintf("Imported %d bills (%d installment plans). This month +%s.",
		len(bills), plans, FormatMoney(summary.Compute(bills, now).TotalValue))
}

// Messages

type candidatesMsg struct {
	params []bill.CreateParams
	err    error
}

type importResultMsg struct {
	result *bill.ImportResult
	err    error
}

type confirmResultMsg struct {
	bills []*bill.Bill
	err   error
}

func (m ImportModel) candidatesCmd(path string) tea.Cmd {
	bank := m.selectedBank

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return candidatesMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		params, err := m.importService.Candidates(ctx, m.UserID, bank, f)

		return candidatesMsg{params: params, err: err}
	}
}

func (m ImportModel) importCmd(params []bill.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.importService.ImportCandidates(ctx, m.UserID, params)

		return importResultMsg{result: result, err: err}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	params := append([]bill.CreateParams(nil), m.newParams...)

	for i, c := range m.conflicts {
		if m.keep[i] {
			params = append(params, c.Incoming)
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		bills, err := m.importService.Confirm(ctx, m.UserID, params)

		return confirmResultMsg{bills: bills, err: err}
	}
}
