package theme

import "charm.land/lipgloss/v2"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Brand          *lipgloss.Style
	Toggle         *lipgloss.Style
	ToggleOpen     *lipgloss.Style
	Item           *lipgloss.Style
	ItemIndicator  *lipgloss.Style
	Focused        *lipgloss.Style
	Heading        *lipgloss.Style
	Label          *lipgloss.Style
	Trigger        *lipgloss.Style
	TriggerOpen    *lipgloss.Style
	Option         *lipgloss.Style
	SelectedOption *lipgloss.Style
	Match          *lipgloss.Style
	Button         *lipgloss.Style
	Live           *lipgloss.Style
	Info           *lipgloss.Style
	Footer         *lipgloss.Style
}

var defaultStyles = Styles{
	Brand: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("124")).Bold(true),
	),
	Toggle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("124")),
	),
	ToggleOpen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Background(lipgloss.Color("255")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Focused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Heading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Trigger: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	TriggerOpen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Option: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedOption: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Match: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("34")),
	),
	Live: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
