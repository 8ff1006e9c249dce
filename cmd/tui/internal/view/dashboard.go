package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/notas/internal/analytics"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
	"github.com/MrJamesThe3rd/notas/internal/money"
)

const topSuppliers = 10

type DashboardModel struct {
	svc *analytics.Service

	picker    TimeframePicker
	picking   bool
	filter    invoice.ListFilter
	label     string
	report    *analytics.Report
	months    table.Model
	suppliers table.Model

	loading bool
	err     error
}

func NewDashboardModel(svc *analytics.Service) DashboardModel {
	return DashboardModel{
		svc:    svc,
		picker: NewTimeframePicker(),
		label:  TimeframeAll.String(),
		months: newTable([]table.Column{
			{Title: "Mês", Width: 9},
			{Title: "Entradas", Width: 16},
			{Title: "Saídas", Width: 16},
		}, 8),
		suppliers: newTable([]table.Column{
			{Title: "Fornecedor", Width: 30},
			{Title: "Total", Width: 16},
		}, 8),
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: voltar | p: período | r: atualizar"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report
		m.refreshTables()

		return m, nil

	case TimeframeSelectedMsg:
		m.picking = false
		m.label = msg.Label
		m.filter.StartDate = msg.Start
		m.filter.EndDate = msg.End
		m.loading = true

		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.picking {
			if msg.Type == tea.KeyEsc && m.picker.IsSelecting() {
				m.picking = false
				return m, nil
			}

			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)

			return m, cmd
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "p":
			m.picking = true
			m.picker.Reset()

			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *DashboardModel) refreshTables() {
	if m.report == nil {
		m.months.SetRows(nil)
		m.suppliers.SetRows(nil)

		return
	}

	monthRows := make([]table.Row, 0, len(m.report.Monthly))
	for _, month := range m.report.Monthly.Months() {
		totals := m.report.Monthly[month]
		monthRows = append(monthRows, table.Row{
			month,
			money.FormatBRL(totals[invoice.KindInflow]),
			money.FormatBRL(totals[invoice.KindOutflow]),
		})
	}

	m.months.SetRows(monthRows)

	ranked := m.report.Suppliers.Ranked()
	if len(ranked) > topSuppliers {
		ranked = ranked[:topSuppliers]
	}

	supplierRows := make([]table.Row, 0, len(ranked))
	for _, s := range ranked {
		supplierRows = append(supplierRows, table.Row{s.Supplier, money.FormatBRL(s.Amount)})
	}

	m.suppliers.SetRows(supplierRows)
}

func (m DashboardModel) View() string {
	if m.picking {
		return screen("Dashboard", m.picker.View(), "Esc: cancelar")
	}

	if m.loading {
		return screen("Dashboard", "Carregando...", "")
	}

	if m.err != nil {
		return screen("Dashboard", errText.Render(fmt.Sprintf("Erro: %v", m.err)), m.ShortHelp())
	}

	s := m.report.Summary
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Entradas", money.FormatBRL(s.TotalInflow), fmt.Sprintf("%d notas", s.InflowCount)),
		card("Saídas", money.FormatBRL(s.TotalOutflow), fmt.Sprintf("%d notas", s.OutflowCount)),
		card("Saldo", money.FormatBRL(s.NetBalance), fmt.Sprintf("%d registros", m.report.Records)),
	)

	monthly := m.months.View()
	if err := m.report.MonthlyErr; err != nil {
		monthly = errText.Render(fmt.Sprintf("Indisponível: %v", err))
		if errors.Is(err, analytics.ErrMissingEntryDate) {
			monthly += "\n" + helpText.Render("Corrija a data de lançamento da nota indicada.")
		}
	}

	tables := lipgloss.JoinHorizontal(lipgloss.Top,
		boxed.Render("Por mês\n"+monthly),
		"  ",
		boxed.Render("Por fornecedor\n"+m.suppliers.View()),
	)

	body := strings.Join([]string{
		"Período: " + activeStyle(m.label),
		"",
		cards,
		"",
		tables,
	}, "\n")

	return screen("Dashboard", body, m.ShortHelp())
}

func card(title, value, detail string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2).
		MarginRight(1).
		Width(24).
		Render(fmt.Sprintf("%s\n%s\n%s", title, lipgloss.NewStyle().Bold(true).Render(value), helpText.Render(detail)))
}

type dashboardMsg struct {
	report *analytics.Report
	err    error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rep, err := m.svc.Report(ctx, filter)

		return dashboardMsg{report: rep, err: err}
	}
}
