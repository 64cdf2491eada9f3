package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/shoko75/audioshelf/internal/textutil"
	"github.com/shoko75/audioshelf/internal/tui/styles"
)

const (
	headerHeight = 1
	footerHeight = 1
	detailHeight = 6
)

// listHeight returns how many list rows fit in the current window.
func (m Model) listHeight() int {
	h := m.height - headerHeight - footerHeight
	if m.mode == modeFiltering || m.filterInput.Value() != "" {
		h--
	}
	if m.showDetails {
		h -= detailHeight
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	// Full-screen states before any list exists
	if m.state.LoadingInitial && len(m.state.Items) == 0 {
		return m.centered(m.spin.View() + " Loading audiobooks…")
	}
	if m.state.ErrorMessage != "" && len(m.state.Items) == 0 {
		msg := styles.ErrorStyle.Render(m.state.ErrorMessage) + "\n\n" +
			styles.DimStyle.Render("press r to retry · q to quit")
		return m.centered(msg)
	}
	if m.state.IsEmpty {
		return m.centered(styles.DimStyle.Render("No audiobooks found."))
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	if m.mode == modeFiltering || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.listView())

	if m.showDetails {
		b.WriteString(m.detailView())
	}

	b.WriteString(m.footerView())

	return b.String()
}

func (m Model) headerView() string {
	title := styles.TitleStyle.Render("audioshelf")
	sub := styles.DimStyle.Render(" · best audiobooks")
	return title + sub
}

func (m Model) listView() string {
	var b strings.Builder

	h := m.listHeight()
	end := m.offset + h
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for row := m.offset; row < end; row++ {
		pos := m.visible[row].Index
		item := m.state.Items[pos]

		marker := "  "
		if row == m.cursor {
			marker = styles.AccentStyle.Render("› ")
		}

		fav := "  "
		if m.list.IsFavorite(item.ID) {
			fav = styles.FavoriteStyle.Render(styles.FavoriteMarker) + " "
		}

		title := m.renderTitle(item.Title, row == m.cursor)
		publisher := styles.SubtitleStyle.Render(" — " + item.DisplayPublisher())

		line := lipgloss.NewStyle().MaxWidth(maxInt(m.width, 10)).Render(marker + fav + title + publisher)
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Pad short lists so the footer stays put
	for row := end - m.offset; row < h; row++ {
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitle highlights filter-matched characters in the title.
func (m Model) renderTitle(title string, selected bool) string {
	query := m.filterInput.Value()
	if query == "" {
		if selected {
			return styles.TitleStyle.Render(title)
		}
		return title
	}

	matches := fuzzy.Find(query, []string{title})
	if len(matches) == 0 {
		return title
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range title {
		if matched[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(string(r))
		}
	}
	return b.String()
}

func (m Model) detailView() string {
	item, ok := m.selected()
	if !ok {
		return strings.Repeat("\n", detailHeight)
	}

	desc := textutil.CleanDescription(item.Description)
	if desc == "" {
		desc = styles.DimStyle.Render("No description.")
	}

	inner := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(item.Title),
		styles.SubtitleStyle.Render(item.DisplayPublisher()),
		textutil.Truncate(desc, maxInt((m.width-4)*2, 40)),
	)

	box := styles.DetailBorder.Width(maxInt(m.width-2, 20)).Height(detailHeight - 2).Render(inner)
	return box + "\n"
}

func (m Model) footerView() string {
	var parts []string

	parts = append(parts, styles.DimStyle.Render(
		fmt.Sprintf("%d/%d", minInt(m.cursor+1, len(m.visible)), len(m.visible))))

	switch {
	case m.state.LoadingMore:
		parts = append(parts, m.spin.View()+styles.DimStyle.Render(" loading more…"))
	case !m.state.HasMore:
		parts = append(parts, styles.DimStyle.Render("end of catalog"))
	}

	if m.state.ErrorMessage != "" {
		parts = append(parts, styles.ErrorStyle.Render(m.state.ErrorMessage+" (r to retry)"))
	}

	parts = append(parts, styles.DimStyle.Render("f fav · / filter · enter details · q quit"))

	return strings.Join(parts, styles.DimStyle.Render("  ·  "))
}

func (m Model) centered(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
