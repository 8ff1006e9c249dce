package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

const recentCount = 20

// RecentModel lists the latest entries.
type RecentModel struct {
	svc *invoice.Service

	table   table.Model
	records []*invoice.Record
	err     error
}

func NewRecentModel(svc *invoice.Service) RecentModel {
	return RecentModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "Data", Width: 11},
			{Title: "Fornecedor", Width: 28},
			{Title: "Loja", Width: 20},
			{Title: "NF-e", Width: 10},
			{Title: "Valor", Width: 15},
			{Title: "Tipo", Width: 8},
		}, 15),
	}
}

func (m RecentModel) Title() string     { return "Últimos lançamentos" }
func (m RecentModel) ShortHelp() string { return "Esc: voltar | r: atualizar" }

func (m RecentModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RecentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recentMsg:
		m.err = msg.err
		m.records = msg.records
		m.table.SetRows(recordRows(m.records))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RecentModel) View() string {
	if m.err != nil {
		return screen(m.Title(), errText.Render(fmt.Sprintf("Erro: %v", m.err)), m.ShortHelp())
	}

	if len(m.records) == 0 {
		return screen(m.Title(), "Nenhuma nota lançada.", m.ShortHelp())
	}

	return screen(m.Title(), boxed.Render(m.table.View()), m.ShortHelp())
}

func recordRows(records []*invoice.Record) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			FormatDate(r.EntryDate),
			orDash(r.SupplierName),
			orDash(r.StoreName),
			orDash(r.InvoiceNumber),
			FormatAmount(r.Amount),
			string(r.KindOrDefault()),
		})
	}

	return rows
}

type recentMsg struct {
	records []*invoice.Record
	err     error
}

func (m RecentModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		records, err := m.svc.Recent(ctx, recentCount)

		return recentMsg{records: records, err: err}
	}
}
