package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected marks the cursor row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a vertically scrolling list over items of type T. The cursor is
// kept inside the viewport.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]

	cursor int
	top    int
	height int
}

// New returns a list showing height rows at a time.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{items: items, render: render, height: max(height, 1)}
	m.clamp()
	return m
}

// SetItems replaces the items and keeps the cursor in range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.clamp()
}

// SetHeight changes the viewport height.
func (m *Model[T]) SetHeight(h int) {
	m.height = max(h, 1)
	m.clamp()
}

// Update moves the cursor on navigation keys. Other messages are ignored.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "pgup":
		m.cursor -= m.height
	case "pgdown":
		m.cursor += m.height
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.items) - 1
	default:
		return nil
	}
	m.clamp()
	return nil
}

func (m *Model[T]) clamp() {
	if len(m.items) == 0 {
		m.cursor, m.top = 0, 0
		return
	}
	m.cursor = min(max(m.cursor, 0), len(m.items)-1)
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+m.height {
		m.top = m.cursor - m.height + 1
	}
	m.top = min(max(m.top, 0), max(len(m.items)-m.height, 0))
}

// View renders the visible rows.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	end := min(m.top+m.height, len(m.items))
	lines := make([]string, 0, end-m.top)
	for i := m.top; i < end; i++ {
		lines = append(lines, m.render(m.items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of items.
func (m *Model[T]) Len() int { return len(m.items) }

// Cursor returns the selected index.
func (m *Model[T]) Cursor() int { return m.cursor }

// Visible returns the half-open index range currently on screen.
//
//nolint:nonamedreturns // Named returns document the range bounds.
func (m *Model[T]) Visible() (from, to int) {
	return m.top, min(m.top+m.height, len(m.items))
}

// Selected returns the item under the cursor, or false when empty.
func (m *Model[T]) Selected() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.cursor], true
}
