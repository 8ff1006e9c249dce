package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/notas/internal/analytics"
	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
	"github.com/MrJamesThe3rd/notas/internal/money"
	"github.com/MrJamesThe3rd/notas/internal/report"
)

const exportTimeout = 30 * time.Second

type reportState int

const (
	reportStateBrowse reportState = iota
	reportStatePeriod
	reportStateConfirmDelete
)

// ReportModel browses invoices by period and supplier, and deletes or
// exports them.
type ReportModel struct {
	invoices *invoice.Service
	entities *entity.Service
	reports  *report.Service

	state   reportState
	table   table.Model
	records []*invoice.Record
	picker  TimeframePicker
	confirm *huh.Form
	doIt    *bool

	suppliers   []string
	supplierIdx int
	period      string
	filter      invoice.ListFilter

	status string
	err    error
}

func NewReportModel(invoices *invoice.Service, entities *entity.Service, reports *report.Service) ReportModel {
	return ReportModel{
		invoices: invoices,
		entities: entities,
		reports:  reports,
		table: newTable([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Data", Width: 11},
			{Title: "Fornecedor", Width: 26},
			{Title: "Loja", Width: 18},
			{Title: "NF-e", Width: 10},
			{Title: "Valor", Width: 15},
			{Title: "Tipo", Width: 8},
		}, 14),
		picker: NewTimeframePicker(),
		period: TimeframeAll.String(),
	}
}

func (m ReportModel) Title() string { return "Relatório" }

func (m ReportModel) ShortHelp() string {
	return "Esc: voltar | p: período | s: fornecedor | x: excluir | e: exportar xlsx | c: exportar csv"
}

func (m ReportModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.loadSuppliersCmd())
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.err = msg.err
		m.records = msg.records
		m.table.SetRows(idRows(m.records))

		return m, nil

	case reportSuppliersMsg:
		if msg.err == nil {
			m.suppliers = msg.names
		}

		return m, nil

	case reportActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = errText.Render(fmt.Sprintf("Erro: %v", msg.err))
		}

		return m, m.loadCmd()

	case TimeframeSelectedMsg:
		m.state = reportStateBrowse
		m.period = msg.Label
		m.filter.StartDate, m.filter.EndDate = msg.Start, msg.End
		m.table.Focus()

		return m, m.loadCmd()
	}

	switch m.state {
	case reportStatePeriod:
		return m.updatePeriod(msg)
	case reportStateConfirmDelete:
		return m.updateConfirm(msg)
	}

	return m.updateBrowse(msg)
}

func (m ReportModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "p":
			m.state = reportStatePeriod
			m.picker.Reset()
			m.table.Blur()

			return m, nil
		case "s":
			// Cycle through "all" (index 0) and each registered supplier.
			m.supplierIdx = (m.supplierIdx + 1) % (len(m.suppliers) + 1)
			m.filter.Supplier = ""

			if m.supplierIdx > 0 {
				m.filter.Supplier = m.suppliers[m.supplierIdx-1]
			}

			return m, m.loadCmd()
		case "x":
			return m.askDelete()
		case "e":
			return m, m.exportCmd(report.FormatXLSX)
		case "c":
			return m, m.exportCmd(report.FormatCSV)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReportModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.picker.IsSelecting() {
		m.state = reportStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ReportModel) askDelete() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return m, nil
	}

	r := m.records[idx]
	m.doIt = new(false)
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Excluir a nota %d de %s (%s)?", r.ID, orDash(r.SupplierName), FormatAmount(r.Amount))).
				Affirmative("Excluir").
				Negative("Cancelar").
				Value(m.doIt),
		),
	).WithShowHelp(false)
	m.state = reportStateConfirmDelete
	m.table.Blur()

	return m, m.confirm.Init()
}

func (m ReportModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = reportStateBrowse
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = reportStateBrowse
	m.table.Focus()

	if !*m.doIt {
		return m, nil
	}

	return m, m.deleteCmd(m.records[m.table.Cursor()].ID)
}

func (m ReportModel) View() string {
	supplier := "Todos"
	if m.filter.Supplier != "" {
		supplier = m.filter.Supplier
	}

	header := fmt.Sprintf("[p] Período: %s | [s] Fornecedor: %s", activeStyle(m.period), activeStyle(supplier))

	var body string

	switch {
	case m.state == reportStatePeriod:
		body = m.picker.View()
	case m.err != nil:
		body = errText.Render(fmt.Sprintf("Erro: %v", m.err))
	case len(m.records) == 0:
		body = "Nenhuma nota no filtro."
	default:
		body = boxed.Render(m.table.View()) + "\n" + totalsLine(m.records)
	}

	if m.state == reportStateConfirmDelete && m.confirm != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.confirm.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panel)
	}

	content := header + "\n\n" + body
	if m.status != "" {
		content += "\n\n" + m.status
	}

	return screen(m.Title(), content, m.ShortHelp())
}

func totalsLine(records []*invoice.Record) string {
	s := analytics.Summarize(records)

	return helpText.Render(fmt.Sprintf("%d notas | entradas %s | saídas %s | saldo %s",
		len(records),
		money.FormatBRL(s.TotalInflow),
		money.FormatBRL(s.TotalOutflow),
		money.FormatBRL(s.NetBalance),
	))
}

func idRows(records []*invoice.Record) []table.Row {
	rows := recordRows(records)
	for i, r := range records {
		rows[i] = append(table.Row{fmt.Sprint(r.ID)}, rows[i]...)
	}

	return rows
}

type reportLoadedMsg struct {
	records []*invoice.Record
	err     error
}

type reportSuppliersMsg struct {
	names []string
	err   error
}

type reportActionMsg struct {
	status string
	err    error
}

func (m ReportModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		records, err := m.invoices.List(ctx, filter)

		return reportLoadedMsg{records: records, err: err}
	}
}

func (m ReportModel) loadSuppliersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		suppliers, err := m.entities.List(ctx, entity.TypeSupplier)

		return reportSuppliersMsg{names: names(suppliers), err: err}
	}
}

func (m ReportModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.invoices.Delete(ctx, id); err != nil {
			return reportActionMsg{err: err}
		}

		return reportActionMsg{status: okText.Render(fmt.Sprintf("Nota %d excluída.", id))}
	}
}

func (m ReportModel) exportCmd(format report.Format) tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		name := format.Filename(time.Now())

		f, err := os.Create(name)
		if err != nil {
			return reportActionMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		if err := m.reports.Export(ctx, filter, format, f); err != nil {
			f.Close()
			os.Remove(name)

			return reportActionMsg{err: err}
		}

		return reportActionMsg{status: okText.Render("Exportado para " + name)}
	}
}
