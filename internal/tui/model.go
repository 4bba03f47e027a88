package tui

import (
	"context"
	"time"

	"github.com/MosinFAM/comment-widget/internal/models"
	"github.com/MosinFAM/comment-widget/internal/widget"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusName focusArea = iota
	focusContent
	focusList
	focusCount
)

// stateMsg - снимок состояния контроллера после запроса
type stateMsg struct {
	state widget.State
	err   error
}

type tickMsg time.Time

// row - строка комментария; delete привязан к ID строки при её создании
type row struct {
	id      int64
	name    string
	content string
	delete  tea.Cmd
}

// Model - Bubble Tea модель виджета
type Model struct {
	ctx      context.Context
	ctrl     *widget.Controller
	interval time.Duration

	state  widget.State
	rows   []row
	cursor int
	focus  focusArea

	name    textinput.Model
	content textinput.Model

	status string
	styles Styles
	width  int
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "│ "
	ti.CharLimit = limit
	ti.Width = 60
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// New создаёт модель; ctx ограничивает все её запросы
func New(ctx context.Context, ctrl *widget.Controller, interval time.Duration) Model {
	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		interval: interval,
		state:    ctrl.State(),
		name:     newInput("Your name", 64),
		content:  newInput("Say something... (Enter to send)", 2000),
		styles:   DefaultStyles(),
	}
	m.name.Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refresh() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		st, err := ctrl.Refresh(ctx)
		return stateMsg{state: st, err: err}
	}
}

func (m Model) submitCmd(name, content string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		err := ctrl.Submit(ctx, name, content)
		return stateMsg{state: ctrl.State(), err: err}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		err := ctrl.Delete(ctx, id)
		return stateMsg{state: ctrl.State(), err: err}
	}
}

func (m Model) nextCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		_, err := ctrl.Next(ctx)
		return stateMsg{state: ctrl.State(), err: err}
	}
}

func (m Model) prevCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		_, err := ctrl.Prev(ctx)
		return stateMsg{state: ctrl.State(), err: err}
	}
}

// bindRows строит строки, захватывая ID каждого комментария в команде удаления
func bindRows(comments []models.Comment, del func(id int64) tea.Cmd) []row {
	rows := make([]row, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, row{
			id:      c.ID,
			name:    c.Name,
			content: c.Content,
			delete:  del(c.ID),
		})
	}
	return rows
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 14; w > 10 {
			m.name.Width = w
			m.content.Width = w
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())

	case stateMsg:
		return m.applyState(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) applyState(msg stateMsg) Model {
	// Снимки приходят в произвольном порядке, оставляем самый новый
	if msg.state.Version >= m.state.Version {
		m.state = msg.state
		m.rows = bindRows(m.state.Comments, m.deleteCmd)
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}
	}
	if msg.err != nil {
		m.status = msg.err.Error()
	} else {
		m.status = ""
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "esc":
		return m.setFocus(focusList)
	case "pgdown":
		return m, m.nextCmd()
	case "pgup":
		return m, m.prevCmd()
	}

	switch m.focus {
	case focusName:
		if msg.Type == tea.KeyEnter {
			return m.setFocus(focusContent)
		}
	case focusContent:
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
	case focusList:
		return m.handleListKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n", "right", "l":
		return m, m.nextCmd()
	case "p", "left", "h":
		return m, m.prevCmd()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "d", "x", "delete":
		if m.cursor < len(m.rows) {
			return m, m.rows[m.cursor].delete
		}
	case "r":
		return m, m.refresh()
	case "i":
		return m.setFocus(focusName)
	}
	return m, nil
}

// submit очищает оба поля сразу после отправки валидного комментария
func (m Model) submit() (tea.Model, tea.Cmd) {
	name, content := m.name.Value(), m.content.Value()
	if err := (widget.Draft{Name: name, Content: content}).Validate(); err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.name.Reset()
	m.content.Reset()
	m.status = "sending..."

	next, focusCmd := m.setFocus(focusName)
	return next, tea.Batch(focusCmd, next.(Model).submitCmd(name, content))
}

func (m Model) setFocus(f focusArea) (tea.Model, tea.Cmd) {
	m.focus = f
	m.name.Blur()
	m.content.Blur()

	var cmd tea.Cmd
	switch f {
	case focusName:
		cmd = m.name.Focus()
	case focusContent:
		cmd = m.content.Focus()
	}
	return m, cmd
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusContent:
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}
