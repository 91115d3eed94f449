package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	syncAll    key.Binding
	syncOne    key.Binding
	online     key.Binding
	refresh    key.Binding
	keepLocal  key.Binding
	keepRemote key.Binding
	info       key.Binding
	esc        key.Binding
	quit       key.Binding
}

var keys = keyMap{
	syncAll:    key.NewBinding(key.WithKeys("s")),
	syncOne:    key.NewBinding(key.WithKeys("enter")),
	online:     key.NewBinding(key.WithKeys("o")),
	refresh:    key.NewBinding(key.WithKeys("r")),
	keepLocal:  key.NewBinding(key.WithKeys("L")),
	keepRemote: key.NewBinding(key.WithKeys("R")),
	info:       key.NewBinding(key.WithKeys("i")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
}
