package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zyphh/mindly/internal/api"
	"github.com/zyphh/mindly/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textArea.SetWidth(max(40, msg.Width/2-6))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == viewLogin {
			return m.updateLoginKey(msg)
		}
		return m.updateJournalKey(msg)

	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil

	// ---- login surface ----

	case loginDoneMsg:
		m.loggingIn = false
		if err := m.sess.Save(msg.token); err != nil {
			m.loginErr = "could not store session: " + err.Error()
			return m, nil
		}
		m.view = viewJournal
		m.loginErr = ""
		m.loginPass.SetValue("")
		m.status = "welcome back"
		return m, m.beginCascade()

	case loginErrMsg:
		m.loggingIn = false
		if errors.Is(msg.err, api.ErrAuthFailed) {
			m.loginErr = "wrong username or password"
		} else {
			m.loginErr = msg.err.Error()
		}
		return m, nil

	// ---- refresh cascade and initial loads ----

	case entriesLoadedMsg:
		m.entries = msg.entries
		m.entriesErr = false
		if m.selected >= len(m.entries) {
			m.selected = max(0, len(m.entries)-1)
		}
		m.refreshSettled()
		return m, nil

	case entriesLoadErrMsg:
		if m.sessionEnded(msg.err) {
			return m, nil
		}
		m.entriesErr = true
		m.refreshSettled()
		return m, m.pushToast("Couldn't refresh entries: "+msg.err.Error(), toastError)

	case snapshotLoadedMsg:
		// last resolved load wins; the snapshot is replaced wholesale so
		// charts never mix two generations
		snap := msg.snapshot
		m.snapshot = &snap
		m.snapshotDays = msg.days
		m.snapshotBroken = false
		m.loadingSnapshot = false
		m.refreshSettled()
		return m, nil

	case snapshotLoadErrMsg:
		if m.sessionEnded(msg.err) {
			return m, nil
		}
		m.snapshotBroken = true
		m.loadingSnapshot = false
		m.refreshSettled()
		return m, m.pushToast("Couldn't load visualizations: "+msg.err.Error(), toastError)

	case streakLoadedMsg:
		m.streak = msg.streak
		m.refreshSettled()
		return m, nil

	case streakLoadErrMsg:
		if m.sessionEnded(msg.err) {
			return m, nil
		}
		m.refreshSettled()
		return m, m.pushToast("Couldn't refresh streak: "+msg.err.Error(), toastError)

	case insightsLoadedMsg:
		m.insights = msg.insights
		m.insightsErr = false
		return m, nil

	case insightsLoadErrMsg:
		if m.sessionEnded(msg.err) {
			return m, nil
		}
		m.insightsErr = true
		return m, nil

	case promptLoadedMsg:
		if msg.prompt == "" {
			m.prompt = fallbackPrompt
		} else {
			m.prompt = msg.prompt
		}
		return m, nil

	// ---- editor state machine + mutation coordinator ----

	case entrySavedMsg:
		m.saving = false
		m.resetEditor()
		text := "Journal entry saved!"
		if msg.updated {
			text = "Journal entry updated!"
		}
		return m, tea.Batch(m.pushToast(text, toastSuccess), m.beginCascade())

	case entrySaveErrMsg:
		if m.sessionEnded(msg.err) {
			return m, nil
		}
		// form left as-is so the user can retry without retyping
		m.saving = false
		return m, m.pushToast("Couldn't save the entry: "+msg.err.Error(), toastError)

	case entryLoadedForEditMsg:
		m.textArea.SetValue(msg.entry.Text)
		m.dateInput.SetValue(msg.entry.Date.In(m.cfg.Location()).Format("2006-01-02"))
		m.editingID = msg.entry.ID
		m.setFocus(focusText)
		return m, nil

	case entryEditErrMsg:
		if m.sessionEnded(msg.err) {
			return m, nil
		}
		text := "Couldn't load the entry for editing: " + msg.err.Error()
		if errors.Is(msg.err, api.ErrNotFound) {
			text = "That entry no longer exists."
		}
		return m, m.pushToast(text, toastError)

	case entryDeletedMsg:
		// the editor resets before any refresh lands, so a slow list
		// fetch can't leave a stale Editing state behind
		if m.editingID == msg.id {
			m.resetEditor()
		}
		return m, tea.Batch(m.pushToast("Journal entry deleted.", toastSuccess), m.beginCascade())

	case entryDeleteErrMsg:
		if m.sessionEnded(msg.err) {
			return m, nil
		}
		text := "Couldn't delete the entry: " + msg.err.Error()
		if errors.Is(msg.err, api.ErrNotFound) {
			text = "That entry was already gone."
		}
		return m, m.pushToast(text, toastError)

	case themeSavedMsg:
		if msg.err != nil {
			return m, m.pushToast("Couldn't save theme preference: "+msg.err.Error(), toastError)
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// sessionEnded implements the cross-cutting auth interrupt: an expired
// session is never a toast, it is a forced return to the login surface.
func (m *Model) sessionEnded(err error) bool {
	if !errors.Is(err, api.ErrAuthFailed) {
		return false
	}
	m.endSession()
	return true
}

func (m Model) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.loginUser.Focus()
			m.loginPass.Blur()
		} else {
			m.loginPass.Focus()
			m.loginUser.Blur()
		}
		return m, textinput.Blink

	case "enter":
		if m.loggingIn {
			return m, nil
		}
		user := strings.TrimSpace(m.loginUser.Value())
		pass := m.loginPass.Value()
		if user == "" || pass == "" {
			m.loginErr = "enter a username and password"
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, loginCmd(m.svc, user, pass)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginUser, cmd = m.loginUser.Update(msg)
	} else {
		m.loginPass, cmd = m.loginPass.Update(msg)
	}
	return m, cmd
}

func (m Model) updateJournalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// a pending delete confirmation captures the keyboard
	if m.confirmID != "" {
		switch msg.String() {
		case "y", "Y":
			id := m.confirmID
			m.confirmID = ""
			return m, deleteEntryCmd(m.svc, id)
		case "n", "N", "esc":
			m.confirmID = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.setFocus(nextFocus(m.focus))
		return m, nil

	case "ctrl+s":
		return m, m.submitEntry()

	case "ctrl+l":
		_ = m.sess.Clear()
		m.endSession()
		m.status = "logged out"
		return m, nil
	}

	if m.focus == focusList {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "j", "down":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
			return m, nil
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "e", "enter":
			if e, ok := m.selectedEntry(); ok {
				return m, loadEntryForEditCmd(m.svc, e.ID)
			}
			return m, nil
		case "d":
			if e, ok := m.selectedEntry(); ok {
				m.confirmID = e.ID
			}
			return m, nil
		case "f":
			return m, m.cycleFilter()
		case "t":
			return m, m.toggleTheme()
		case "i":
			return m, tea.Batch(loadInsightsCmd(m.svc, m.cfg.TrendDays), loadPromptCmd(m.svc))
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view == viewLogin {
		var cmd tea.Cmd
		if m.loginFocus == 0 {
			m.loginUser, cmd = m.loginUser.Update(msg)
		} else {
			m.loginPass, cmd = m.loginPass.Update(msg)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusText:
		m.textArea, cmd = m.textArea.Update(msg)
	case focusDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	}
	return m, cmd
}

// submitEntry validates locally and then routes the mutation: create when
// idle, update when editing. Validation failures never reach the network.
func (m *Model) submitEntry() tea.Cmd {
	if m.saving {
		return nil
	}
	text := strings.TrimSpace(m.textArea.Value())
	if text == "" {
		return m.pushToast("Please enter some text for your journal entry.", toastError)
	}
	date, err := utils.ParseEntryDate(m.dateInput.Value(), m.cfg.Location())
	if err != nil {
		return m.pushToast("That date doesn't look like a calendar date.", toastError)
	}
	m.saving = true
	return saveEntryCmd(m.svc, m.editingID, text, date)
}

// cycleFilter moves to the next trend window and reloads the snapshot.
// The old snapshot stays on screen until the new one resolves.
func (m *Model) cycleFilter() tea.Cmd {
	for i, d := range timeFilters {
		if d == m.filterDays {
			m.filterDays = timeFilters[(i+1)%len(timeFilters)]
			m.loadingSnapshot = true
			return loadSnapshotCmd(m.svc, m.filterDays, m.cfg.SummaryWeeks)
		}
	}
	m.filterDays = timeFilters[0]
	m.loadingSnapshot = true
	return loadSnapshotCmd(m.svc, m.filterDays, m.cfg.SummaryWeeks)
}

// toggleTheme recolors in place and persists the preference. No data is
// refetched; the snapshot is untouched.
func (m *Model) toggleTheme() tea.Cmd {
	if m.theme.Name == "dark" {
		m.theme = LightTheme()
	} else {
		m.theme = DarkTheme()
	}
	name := m.theme.Name
	save := m.saveTheme
	return func() tea.Msg {
		return themeSavedMsg{err: save(name)}
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.textArea.Blur()
	m.dateInput.Blur()
	switch f {
	case focusText:
		m.textArea.Focus()
	case focusDate:
		m.dateInput.Focus()
	}
}

func nextFocus(f focusArea) focusArea {
	switch f {
	case focusText:
		return focusDate
	case focusDate:
		return focusList
	default:
		return focusText
	}
}

func (m Model) selectedEntry() (api.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return api.Entry{}, false
	}
	return m.entries[m.selected], true
}
