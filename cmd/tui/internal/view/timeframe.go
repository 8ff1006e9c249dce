package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/notas/internal/dates"
)

// Timeframe is a predefined or custom entry date range.
type Timeframe int

const (
	TimeframeAll Timeframe = iota
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeThisYear
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeAll:
		return "Todo o período"
	case TimeframeThisMonth:
		return "Este mês"
	case TimeframeLastMonth:
		return "Mês passado"
	case TimeframeThisYear:
		return "Este ano"
	case TimeframeCustom:
		return "Período personalizado"
	}

	return "Desconhecido"
}

func timeframeRange(tf Timeframe, now time.Time) (time.Time, time.Time) {
	var start, end time.Time

	switch tf {
	case TimeframeThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case TimeframeLastMonth:
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case TimeframeThisYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	return start, end
}

// TimeframeSelectedMsg is emitted once a range is chosen. Start and End are
// nil when the whole history was picked.
type TimeframeSelectedMsg struct {
	Label string
	Start *time.Time
	End   *time.Time
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker lets the user pick an entry date range.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker() TimeframePicker {
	si := textinput.New()
	si.Placeholder = "DD/MM/AAAA"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Início: "

	ei := textinput.New()
	ei.Placeholder = "DD/MM/AAAA"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "Fim:    "

	return TimeframePicker{
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(key)
		case timeframeStateCustom:
			if next, cmd, handled := m.updateCustom(key); handled {
				return next, cmd
			}
		}
	}

	if m.state == timeframeStateCustom {
		var cmds []tea.Cmd
		var c tea.Cmd

		m.startInput, c = m.startInput.Update(msg)
		cmds = append(cmds, c)
		m.endInput, c = m.endInput.Update(msg)
		cmds = append(cmds, c)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeAll {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		switch m.selected {
		case TimeframeCustom:
			m.state = timeframeStateCustom
			m.focusIndex = 0
			m.startInput.Focus()

			return m, textinput.Blink
		case TimeframeAll:
			return m, selected(TimeframeSelectedMsg{Label: m.selected.String()})
		}

		start, end := timeframeRange(m.selected, time.Now())

		return m, selected(TimeframeSelectedMsg{Label: m.selected.String(), Start: &start, End: &end})
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink, true

	case "enter":
		start, err := parseInputDate(m.startInput.Value())
		if err != nil {
			m.err = fmt.Errorf("data inicial inválida")
			return m, nil, true
		}

		end, err := parseInputDate(m.endInput.Value())
		if err != nil {
			m.err = fmt.Errorf("data final inválida")
			return m, nil, true
		}

		if end.Before(start) {
			m.err = fmt.Errorf("data final antes da inicial")
			return m, nil, true
		}

		m.err = nil
		label := fmt.Sprintf("%s a %s", start.Format("02/01/2006"), end.Format("02/01/2006"))

		return m, selected(TimeframeSelectedMsg{Label: label, Start: &start, End: &end}), true

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func parseInputDate(s string) (time.Time, error) {
	iso, err := dates.Parse(s)
	if err != nil {
		return time.Time{}, err
	}

	return time.Parse(time.DateOnly, iso)
}

func selected(msg TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = "\n\n" + errText.Render(fmt.Sprintf("Erro: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Informe o período:\n\n%s\n%s\n\n(Enter confirma, Tab alterna, Esc volta)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Período:\n\n"
	for tf := TimeframeAll; tf <= TimeframeCustom; tf++ {
		cursor := " "
		if m.selected == tf {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, tf)
	}

	return s + errStr
}

// IsSelecting reports whether the picker is on the list rather than the
// custom range inputs.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
