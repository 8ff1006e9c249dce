package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/importer"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStateReview
	importStateError
)

// ImportModel picks an NF-e file, parses it and opens the entry form
// prefilled with its data so it can be checked before saving.
type ImportModel struct {
	importer *importer.Service
	invoices *invoice.Service
	entities *entity.Service

	state      importState
	filePicker filepicker.Model
	entry      EntryModel

	status string
	err    error
}

func NewImportModel(imp *importer.Service, invoices *invoice.Service, entities *entity.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".xml", ".XML"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importer:   imp,
		invoices:   invoices,
		entities:   entities,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Importar XML" }

func (m ImportModel) ShortHelp() string {
	return "Enter: selecionar | Esc: voltar"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewMsg:
		if msg.err != nil {
			m.state = importStateError
			m.err = msg.err

			return m, nil
		}

		m.state = importStateReview
		m.entry = NewEntryModel(m.invoices, m.entities, &msg.params)

		return m, m.entry.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.state == importStateError {
			m.state = importStateFilePick
			m.err = nil

			return m, nil
		}
	}

	switch m.state {
	case importStateReview:
		// Leaving the entry form returns to the file list, not the menu.
		if _, ok := msg.(importBackMsg); ok {
			m.state = importStateFilePick
			return m, nil
		}

		next, cmd := m.entry.Update(msg)
		m.entry = next.(EntryModel)

		return m, m.wrapBack(cmd)

	case importStateFilePick:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			return m, Back
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.state = importStateParsing
			m.status = fmt.Sprintf("Lendo %s...", path)

			return m, m.previewCmd(path)
		}

		return m, cmd
	}

	return m, nil
}

// importBackMsg stands in for the entry form's BackMsg so the parent menu
// does not see it.
type importBackMsg struct{}

func (m ImportModel) wrapBack(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}

	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(BackMsg); ok {
			return importBackMsg{}
		}

		return msg
	}
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateParsing:
		return screen(m.Title(), m.status, "")
	case importStateReview:
		return m.entry.View()
	case importStateError:
		return screen(m.Title(), errText.Render(fmt.Sprintf("Erro ao importar: %v", m.err)), "Esc: escolher outro arquivo")
	}

	return screen(m.Title(), "Selecione a NF-e (.xml):\n\n"+m.filePicker.View(), m.ShortHelp())
}

type previewMsg struct {
	params invoice.CreateParams
	err    error
}

func (m ImportModel) previewCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return previewMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := DbCtx()
		defer cancel()

		params, err := m.importer.Preview(ctx, importer.FormatNFe, f)

		return previewMsg{params: params, err: err}
	}
}
