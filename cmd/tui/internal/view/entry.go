package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/notas/internal/dates"
	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
	"github.com/MrJamesThe3rd/notas/internal/money"
)

type entryState int

const (
	entryStateLoading entryState = iota
	entryStateForm
	entryStateSaving
	entryStateDone
)

// entryValues lives on the heap so the form keeps writing to the same
// fields while the model is copied around by bubbletea.
type entryValues struct {
	store, supplier   string
	document, number  string
	accessKey, amount string
	entryDate, due    string
	note              string
	kind              invoice.Kind
}

// EntryModel is the new invoice form. It can start blank or prefilled from
// an imported document.
type EntryModel struct {
	invoices *invoice.Service
	entities *entity.Service

	prefill   *invoice.CreateParams
	stores    []*entity.Entity
	suppliers []*entity.Entity

	state  entryState
	form   *huh.Form
	values *entryValues

	saved *invoice.Record
	err   error
}

func NewEntryModel(invoices *invoice.Service, entities *entity.Service, prefill *invoice.CreateParams) EntryModel {
	return EntryModel{
		invoices: invoices,
		entities: entities,
		prefill:  prefill,
	}
}

func (m EntryModel) Title() string { return "Nova nota" }

func (m EntryModel) ShortHelp() string {
	if m.state == entryStateDone {
		return "Enter: nova nota | Esc: voltar"
	}

	return "Tab: próximo campo | Esc: voltar"
}

func (m EntryModel) Init() tea.Cmd {
	return m.loadEntitiesCmd()
}

func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entityOptionsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = entryStateDone

			return m, nil
		}

		m.stores, m.suppliers = msg.stores, msg.suppliers
		m.startForm()

		return m, m.form.Init()

	case entrySavedMsg:
		m.state = entryStateDone
		m.saved, m.err = msg.record, msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == entryStateDone && msg.Type == tea.KeyEnter {
			m.prefill = nil
			m.saved, m.err = nil, nil
			m.startForm()

			return m, m.form.Init()
		}
	}

	if m.state != entryStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = entryStateSaving
		return m, m.saveCmd()
	case huh.StateAborted:
		return m, Back
	}

	return m, cmd
}

func (m *EntryModel) startForm() {
	v := &entryValues{kind: invoice.KindInflow}

	if p := m.prefill; p != nil {
		v.store, v.supplier = p.StoreName, p.SupplierName
		v.document, v.number, v.accessKey = p.DocumentNumber, p.InvoiceNumber, p.AccessKey
		v.amount = money.FormatPlain(p.Amount)
		v.entryDate = dates.FormatBR(p.EntryDate)
		v.due = dates.FormatBR(p.DueDate)
		v.note = p.Note

		if p.Kind != "" {
			v.kind = p.Kind
		}
	}

	m.values = v
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Fornecedor").
				Suggestions(names(m.suppliers)).
				Value(&v.supplier).
				Validate(required("informe o fornecedor")),
			huh.NewInput().
				Title("Loja").
				Suggestions(names(m.stores)).
				Value(&v.store).
				Validate(required("informe a loja")),
			huh.NewSelect[invoice.Kind]().
				Title("Tipo").
				Options(
					huh.NewOption("Entrada", invoice.KindInflow),
					huh.NewOption("Saída", invoice.KindOutflow),
				).
				Value(&v.kind),
		),
		huh.NewGroup(
			huh.NewInput().Title("Documento").Value(&v.document),
			huh.NewInput().Title("NF-e").Value(&v.number),
			huh.NewInput().Title("Chave de acesso").Value(&v.accessKey),
			huh.NewInput().
				Title("Valor").
				Placeholder("1.234,56").
				Value(&v.amount).
				Validate(func(s string) error {
					d, err := money.Parse(s)
					if errors.Is(err, money.ErrAmbiguousAmount) {
						return errors.New("use vírgula para os centavos, ex.: 1.234,00")
					}

					if err != nil {
						return errors.New("valor inválido")
					}

					if d.IsNegative() {
						return errors.New("o valor não pode ser negativo")
					}

					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Data de lançamento").
				Placeholder("DD/MM/AAAA").
				Value(&v.entryDate).
				Validate(validDate(true)),
			huh.NewInput().
				Title("Vencimento").
				Placeholder("DD/MM/AAAA").
				Value(&v.due).
				Validate(validDate(false)),
			huh.NewText().Title("Observação").Value(&v.note),
		),
	).WithWidth(60).WithShowHelp(true)

	m.state = entryStateForm
}

func required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}

		return nil
	}
}

func validDate(mandatory bool) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			if mandatory {
				return errors.New("informe a data")
			}

			return nil
		}

		if _, err := dates.Parse(s); err != nil {
			return errors.New("use DD/MM/AAAA")
		}

		return nil
	}
}

func names(entities []*entity.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Name
	}

	return out
}

// taxIDFor returns the registered tax ID of the entity called name, keeping
// fallback when the name is not registered.
func taxIDFor(entities []*entity.Entity, name, fallback string) string {
	for _, e := range entities {
		if strings.EqualFold(e.Name, strings.TrimSpace(name)) {
			return e.TaxID
		}
	}

	return fallback
}

func (m EntryModel) View() string {
	switch m.state {
	case entryStateLoading:
		return screen(m.Title(), "Carregando lojas e fornecedores...", "")
	case entryStateSaving:
		return screen(m.Title(), "Salvando...", "")
	case entryStateDone:
		if m.err != nil {
			return screen(m.Title(), errText.Render(fmt.Sprintf("Erro: %v", m.err)), m.ShortHelp())
		}

		return screen(m.Title(), okText.Render(fmt.Sprintf(
			"Nota %d salva: %s, %s em %s.",
			m.saved.ID, m.saved.SupplierName, FormatAmount(m.saved.Amount), FormatDate(m.saved.EntryDate),
		)), m.ShortHelp())
	}

	return screen(m.Title(), m.form.View(), m.ShortHelp())
}

type entityOptionsMsg struct {
	stores    []*entity.Entity
	suppliers []*entity.Entity
	err       error
}

func (m EntryModel) loadEntitiesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stores, err := m.entities.List(ctx, entity.TypeStore)
		if err != nil {
			return entityOptionsMsg{err: err}
		}

		suppliers, err := m.entities.List(ctx, entity.TypeSupplier)

		return entityOptionsMsg{stores: stores, suppliers: suppliers, err: err}
	}
}

type entrySavedMsg struct {
	record *invoice.Record
	err    error
}

func (m EntryModel) saveCmd() tea.Cmd {
	v := *m.values
	prefill := invoice.CreateParams{}

	if m.prefill != nil {
		prefill = *m.prefill
	}

	stores, suppliers := m.stores, m.suppliers

	return func() tea.Msg {
		amount, err := money.Parse(v.amount)
		if err != nil {
			return entrySavedMsg{err: err}
		}

		entryDate, err := dates.Parse(v.entryDate)
		if err != nil {
			return entrySavedMsg{err: err}
		}

		due := ""
		if strings.TrimSpace(v.due) != "" {
			if due, err = dates.Parse(v.due); err != nil {
				return entrySavedMsg{err: err}
			}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		rec, err := m.invoices.Create(ctx, invoice.CreateParams{
			StoreName:      v.store,
			StoreTaxID:     taxIDFor(stores, v.store, prefill.StoreTaxID),
			SupplierName:   v.supplier,
			SupplierTaxID:  taxIDFor(suppliers, v.supplier, prefill.SupplierTaxID),
			DocumentNumber: v.document,
			InvoiceNumber:  v.number,
			AccessKey:      v.accessKey,
			Amount:         amount,
			EntryDate:      entryDate,
			DueDate:        due,
			Note:           v.note,
			Kind:           v.kind,
		})

		return entrySavedMsg{record: rec, err: err}
	}
}
