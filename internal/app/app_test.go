package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinser/hideout/internal/scenario"
	"github.com/vinser/hideout/internal/sound"
	"github.com/vinser/hideout/internal/state"
)

func TestMuteKeyTogglesMutedSession(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	sc, err := scenario.Default()
	require.NoError(t, err)
	st := state.New()
	st.Mute = true
	sm := &sound.Manager{}
	sm.Mute()

	m := New(st, sc, sm)
	require.Equal(t, statusBriefing, m.status)
	assert.Equal(t, 1, st.Runs)

	mute := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}
	next, _ := m.Update(mute)
	assert.False(t, sm.Muted())
	assert.False(t, st.Mute)

	next, _ = next.Update(mute)
	assert.True(t, sm.Muted())
	assert.True(t, st.Mute)
	assert.Equal(t, statusBriefing, next.(Model).status)
}
