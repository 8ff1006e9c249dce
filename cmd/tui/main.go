package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/notas/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/notas/internal/app"
	"github.com/MrJamesThe3rd/notas/internal/config"
	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/logging"
)

type menuItem struct {
	key   string
	label string
	open  func(a *app.App) view.View
}

var menu = []menuItem{
	{"1", "Dashboard", func(a *app.App) view.View { return view.NewDashboardModel(a.Analytics) }},
	{"2", "Últimos lançamentos", func(a *app.App) view.View { return view.NewRecentModel(a.Invoices) }},
	{"3", "Nova nota", func(a *app.App) view.View { return view.NewEntryModel(a.Invoices, a.Entities, nil) }},
	{"4", "Cadastrar loja", func(a *app.App) view.View { return view.NewRegisterModel(a.Entities, entity.TypeStore) }},
	{"5", "Cadastrar fornecedor", func(a *app.App) view.View { return view.NewRegisterModel(a.Entities, entity.TypeSupplier) }},
	{"6", "Relatório", func(a *app.App) view.View { return view.NewReportModel(a.Invoices, a.Entities, a.Reports) }},
	{"7", "Importar XML", func(a *app.App) view.View { return view.NewImportModel(a.Importer, a.Invoices, a.Entities) }},
}

type model struct {
	app  *app.App
	name string

	current view.View
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			for _, item := range menu {
				if msg.String() == item.key {
					m.current = item.open(m.app)
					return m, m.current.Init()
				}
			}

			return m, nil
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	m.current = next.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.current != nil {
		return m.current.View()
	}

	s := lipgloss.NewStyle().Bold(true).Render(m.name) + "\n\n"
	for _, item := range menu {
		s += fmt.Sprintf("%s. %s\n", item.key, item.label)
	}

	s += "\nq. Sair"

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := logging.New(logFile, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up logging:", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Close()

	if _, err := a.NormalizeDates(context.Background()); err != nil {
		slog.Error("failed to start", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := tea.NewProgram(model{app: a, name: cfg.App.Name}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
