package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Comments"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Section.Render(m.renderComments()))
	sb.WriteString("\n")
	sb.WriteString(m.renderPageInfo())
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Label.Render("Name"))
	sb.WriteString(m.name.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Label.Render("Comment"))
	sb.WriteString(m.content.View())
	sb.WriteString("\n\n")

	if line := m.renderStatus(); line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(m.renderHelp())
	return sb.String()
}

// renderComments отображает только текущую страницу
func (m Model) renderComments() string {
	if !m.state.Loaded {
		return m.styles.Status.Render("Loading...")
	}
	if len(m.rows) == 0 {
		return m.styles.Status.Render("No comments yet.")
	}

	var sb strings.Builder
	for i, r := range m.rows {
		marker := "  "
		name := m.styles.Name.Render(r.name)
		if m.focus == focusList && i == m.cursor {
			marker = m.styles.Selected.Render("> ")
			name = m.styles.Selected.Render(r.name)
		}
		sb.WriteString(marker)
		sb.WriteString(name)
		sb.WriteString(" ")
		sb.WriteString(m.styles.ID.Render(fmt.Sprintf("#%d", r.id)))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Content.Render(r.content))
		if i < len(m.rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m Model) renderPageInfo() string {
	return m.styles.PageInfo.Render(fmt.Sprintf("Page %s · %d comments", m.state.PageInfo(), m.state.Total))
}

func (m Model) renderStatus() string {
	switch {
	case m.status != "":
		return m.styles.Error.Render(m.status)
	case m.state.Err != nil:
		return m.styles.Error.Render(fmt.Sprintf("store unavailable: %v (retrying)", m.state.Err))
	}
	return ""
}

func (m Model) renderHelp() string {
	if m.focus == focusList {
		return m.styles.Help.Render("↑/↓ select · d delete · n/p page · r refresh · i write · q quit")
	}
	return m.styles.Help.Render("tab switch field · enter send · esc list · pgup/pgdown page · ctrl+c quit")
}
