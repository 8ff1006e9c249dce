package view

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/notas/internal/entity"
)

type registerValues struct {
	name  string
	taxID string
}

// RegisterModel registers a store or a supplier, depending on its type.
type RegisterModel struct {
	svc *entity.Service
	typ entity.Type

	form   *huh.Form
	values *registerValues

	done  bool
	saved *entity.Entity
	err   error
}

func NewRegisterModel(svc *entity.Service, typ entity.Type) RegisterModel {
	m := RegisterModel{svc: svc, typ: typ}
	m.startForm()

	return m
}

func (m RegisterModel) Title() string {
	if m.typ == entity.TypeStore {
		return "Cadastrar loja"
	}

	return "Cadastrar fornecedor"
}

func (m RegisterModel) ShortHelp() string {
	if m.done {
		return "Enter: cadastrar outro | Esc: voltar"
	}

	return "Esc: voltar"
}

func (m *RegisterModel) startForm() {
	v := &registerValues{}

	m.values = v
	m.done = false
	m.saved, m.err = nil, nil
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nome").
				Value(&v.name).
				Validate(required("informe o nome")),
			huh.NewInput().
				Title("CNPJ").
				Placeholder("00.000.000/0000-00").
				Value(&v.taxID).
				Validate(func(s string) error {
					if entity.NormalizeTaxID(s) == "" {
						return errors.New("informe o CNPJ")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m RegisterModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerSavedMsg:
		m.done = true
		m.saved, m.err = msg.entity, msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.done && msg.Type == tea.KeyEnter {
			m.startForm()
			return m, m.form.Init()
		}
	}

	if m.done {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.saveCmd()
	}

	return m, cmd
}

func (m RegisterModel) View() string {
	if !m.done {
		return screen(m.Title(), m.form.View(), m.ShortHelp())
	}

	if errors.Is(m.err, entity.ErrDuplicate) {
		return screen(m.Title(), errText.Render("Nome ou CNPJ já cadastrado."), m.ShortHelp())
	}

	if m.err != nil {
		return screen(m.Title(), errText.Render(fmt.Sprintf("Erro: %v", m.err)), m.ShortHelp())
	}

	return screen(m.Title(), okText.Render(fmt.Sprintf("%s cadastrado (CNPJ %s).", m.saved.Name, m.saved.TaxID)), m.ShortHelp())
}

type registerSavedMsg struct {
	entity *entity.Entity
	err    error
}

func (m RegisterModel) saveCmd() tea.Cmd {
	v := *m.values

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.svc.Register(ctx, m.typ, v.name, v.taxID)

		return registerSavedMsg{entity: e, err: err}
	}
}
