package listview

import (
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func renderInt(v int, selected bool) string {
	if selected {
		return ">" + strconv.Itoa(v)
	}
	return " " + strconv.Itoa(v)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Navigation(t *testing.T) {
	m := New(numbers(10), 3, renderInt)
	assert.Equal(t, ">0\n 1\n 2", m.View())

	m.Update(key("down"))
	m.Update(key("j"))
	m.Update(key("j"))
	assert.Equal(t, 3, m.Cursor())
	from, to := m.Visible()
	assert.Equal(t, 1, from)
	assert.Equal(t, 4, to)

	m.Update(key("end"))
	assert.Equal(t, 9, m.Cursor())
	assert.Equal(t, " 7\n 8\n>9", m.View())

	m.Update(key("pgdown"))
	assert.Equal(t, 9, m.Cursor(), "cursor stays on the last item")

	m.Update(key("g"))
	assert.Equal(t, 0, m.Cursor())
	m.Update(key("up"))
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_Empty(t *testing.T) {
	m := New[int](nil, 5, renderInt)
	m.Update(key("down"))
	assert.Empty(t, m.View())
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestModel_SetItemsClampsCursor(t *testing.T) {
	m := New(numbers(10), 4, renderInt)
	m.Update(key("end"))
	m.SetItems(numbers(2))
	v, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, m.Len())
}
