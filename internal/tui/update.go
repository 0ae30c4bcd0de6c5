package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/hansollee/matzip/internal/tui/components/recordlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.recordList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case recordsMsg:
		m.applySnapshot(msg)
		return m, waitForRecords(m.watch)

	case recordlist.AddRecordMsg:
		m.errMsg = ""
		m.editingID = 0
		m.recordForm = newRecordFormModel(emptyRecord())
		m.form = newRecordForm(m.recordForm)
		m.state = StateForm
		return m, m.form.Init()

	case recordlist.EditRecordMsg:
		m.errMsg = ""
		m.editingID = msg.Record.ID
		m.recordForm = newRecordFormModel(msg.Record)
		m.form = newRecordForm(m.recordForm)
		m.state = StateForm
		return m, m.form.Init()

	case recordlist.DeleteRecordMsg:
		m.deleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case recordlist.ToggleSortMsg:
		m.toggleSort()
		return m, nil
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			m.cancelWatch()
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			m.errMsg = err.Error()
		}
		m.state = StateList
		return m, cmd

	case huh.StateAborted:
		m.state = StateList
		return m, cmd
	}

	return m, cmd
}

// submitForm persists the completed form. The watch feed delivers the
// refreshed list, so no manual reload is needed.
func (m *Model) submitForm() error {
	if m.editingID == 0 {
		_, err := m.journal.Create(m.recordForm.toRecord(), "")
		return err
	}
	return m.journal.Update(m.editingID, m.recordForm.toPatch(), "")
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			if err := m.journal.Delete(m.deleteID); err != nil {
				m.errMsg = err.Error()
			}
			m.state = StateList
		case "n", "N", "esc", "q":
			m.state = StateList
		}
	}
	return m, nil
}
