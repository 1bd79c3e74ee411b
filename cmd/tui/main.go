package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billy/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/billy/internal/auth"
	"github.com/MrJamesThe3rd/billy/internal/bill"
	billStore "github.com/MrJamesThe3rd/billy/internal/bill/store"
	"github.com/MrJamesThe3rd/billy/internal/config"
	"github.com/MrJamesThe3rd/billy/internal/database"
	"github.com/MrJamesThe3rd/billy/internal/importer"
	"github.com/MrJamesThe3rd/billy/internal/logging"
	"github.com/MrJamesThe3rd/billy/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/billy/internal/matching/store"
	"github.com/MrJamesThe3rd/billy/internal/planning"
	planningStore "github.com/MrJamesThe3rd/billy/internal/planning/store"
	"github.com/MrJamesThe3rd/billy/internal/summary"
	userStore "github.com/MrJamesThe3rd/billy/internal/user/store"
)

type model struct {
	userID          uuid.UUID
	userEmail       string
	billService     *bill.Service
	summaryService  *summary.Service
	planningService *planning.Service
	importService   *importer.Service
	clock           summary.Clock

	currentView View

	billsView     view.BillsModel
	summaryView   view.SummaryModel
	planningsView view.PlanningsModel
	importView    view.ImportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewBills     View = 1
	ViewSummary   View = 2
	ViewPlannings View = 3
	ViewImport    View = 4
)

func initialModel() (model, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return model{}, fmt.Errorf("loading config: %w", err)
	}

	logging.Setup(cfg.Log.Level)

	if cfg.TUI.UserEmail == "" {
		return model{}, errors.New("TUI_USER_EMAIL is required")
	}

	db, err := database.Open(context.Background(), cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		return model{}, fmt.Errorf("opening database: %w", err)
	}

	// The TUI never issues tokens; the manager only satisfies the service.
	authSvc := auth.NewService(userStore.New(db), auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, err := authSvc.Lookup(ctx, cfg.TUI.UserEmail)
	if err != nil {
		return model{}, fmt.Errorf("resolving user %s: %w", cfg.TUI.UserEmail, err)
	}

	clock := summary.SystemClock{Location: cfg.Location()}
	billSvc := bill.NewService(billStore.New(db))
	matchSvc := matching.NewService(matchingStore.New(db))

	return model{
		userID:          u.ID,
		userEmail:       u.Email,
		billService:     billSvc,
		summaryService:  summary.NewService(billSvc, clock),
		planningService: planning.NewService(planningStore.New(db)),
		importService:   importer.NewService(billSvc, matchSvc),
		clock:           clock,
		currentView:     ViewMenu,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewBills
				m.billsView = view.NewBillsModel(m.userID, m.billService)

				return m, m.billsView.Init()
			case "2":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.userID, m.summaryService)

				return m, m.summaryView.Init()
			case "3":
				m.currentView = ViewPlannings
				m.planningsView = view.NewPlanningsModel(m.userID, m.planningService, m.clock)

				return m, m.planningsView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.userID, m.importService, m.clock)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewBills:
		var newModel tea.Model
		newModel, cmd = m.billsView.Update(msg)
		m.billsView = newModel.(view.BillsModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewPlannings:
		var newModel tea.Model
		newModel, cmd = m.planningsView.Update(msg)
		m.planningsView = newModel.(view.PlanningsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Billy TUI (" + m.userEmail + ")\n\n" +
				"1. Bills\n" +
				"2. Summary\n" +
				"3. Plannings\n" +
				"4. Import Bank Statement\n\n" +
				"q. Quit",
		)
	case ViewBills:
		return m.billsView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewPlannings:
		return m.planningsView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	m, err := initialModel()
	if err != nil {
		slog.Error("failed to start TUI", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
