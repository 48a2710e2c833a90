package ui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyPressMsg
		binding key.Binding
	}{
		{"7 exits", tea.KeyPressMsg{Code: '7', Text: "7"}, km.Quit},
		{"q exits", tea.KeyPressMsg{Code: 'q', Text: "q"}, km.Quit},
		{"ctrl+c exits", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, km.Quit},
		{"j down", tea.KeyPressMsg{Code: 'j', Text: "j"}, km.Down},
		{"arrow down", tea.KeyPressMsg{Code: tea.KeyDown}, km.Down},
		{"k up", tea.KeyPressMsg{Code: 'k', Text: "k"}, km.Up},
		{"arrow up", tea.KeyPressMsg{Code: tea.KeyUp}, km.Up},
		{"page down", tea.KeyPressMsg{Code: tea.KeyPgDown}, km.PageDown},
		{"page up", tea.KeyPressMsg{Code: tea.KeyPgUp}, km.PageUp},
		{"3 switches pane", tea.KeyPressMsg{Code: '3', Text: "3"}, km.SwitchPane},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}

	assert.False(t, key.Matches(tea.KeyPressMsg{Code: 'x', Text: "x"}, km.ShortHelp()...))
}

func TestShortHelpHasDescriptions(t *testing.T) {
	for _, b := range DefaultKeyMap().ShortHelp() {
		assert.NotEmpty(t, b.Help().Key)
		assert.NotEmpty(t, b.Help().Desc)
	}
}
