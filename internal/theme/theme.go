package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header                *lipgloss.Style
	Mode                  *lipgloss.Style
	Prompt                *lipgloss.Style
	Gutter                *lipgloss.Style
	GutterResult          *lipgloss.Style
	GutterPrint           *lipgloss.Style
	GutterEcho            *lipgloss.Style
	GutterError           *lipgloss.Style
	GutterInfo            *lipgloss.Style
	Echo                  *lipgloss.Style
	Output                *lipgloss.Style
	Selected              *lipgloss.Style
	Placeholder           *lipgloss.Style
	PinnedTitle           *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Match                 *lipgloss.Style
	PopupTitle            *lipgloss.Style
	PopupBorder           *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	StatusNormal          *lipgloss.Style
	StatusError           *lipgloss.Style
	StatusSuccess         *lipgloss.Style
	StatusWarning         *lipgloss.Style
	EditorTitle           *lipgloss.Style
	EditorSaved           *lipgloss.Style
	EditorLive            *lipgloss.Style
	EditorDirty           *lipgloss.Style
	EditorError           *lipgloss.Style
	Footer                *lipgloss.Style
}

var defaultStyles = Styles{
	Header:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
	Mode:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")).Bold(true)),
	Prompt:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),
	Gutter:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))),
	GutterResult: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("33"))),
	GutterPrint:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245"))),
	GutterEcho:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34"))),
	GutterError:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196"))),
	GutterInfo:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("141"))),
	Echo:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true)),
	Output:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("252"))),
	Selected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	Placeholder: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)),
	PinnedTitle: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)),
	Item:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Match:             ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)),
	PopupTitle:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
	PopupBorder:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))),
	Filter:            ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	FilterPrompt:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),
	FilterPlaceholder: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	StatusNormal:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	StatusError:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)),
	StatusSuccess: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),
	StatusWarning: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)),
	EditorTitle:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
	EditorSaved:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34"))),
	EditorLive:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("33"))),
	EditorDirty:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("214"))),
	EditorError:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)),
	Footer:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Status returns the style for a status-bar notification type.
func (s *Styles) Status(kind string) *lipgloss.Style {
	switch kind {
	case "error":
		return s.StatusError
	case "success":
		return s.StatusSuccess
	case "warning":
		return s.StatusWarning
	}
	return s.StatusNormal
}

// GutterFor returns the gutter style for an output line type.
func (s *Styles) GutterFor(lineType string) *lipgloss.Style {
	switch lineType {
	case "result":
		return s.GutterResult
	case "print":
		return s.GutterPrint
	case "echo":
		return s.GutterEcho
	case "error", "exception":
		return s.GutterError
	case "info":
		return s.GutterInfo
	}
	return s.Gutter
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
