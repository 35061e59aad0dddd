package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching the fatih/color usage of the CLI
var (
	// ColorGreen for selected pages and success notices
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for page metadata
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for the highlighted page and cursor
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	// ColorRed for errors and destructive prompts
	ColorRed = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

// Reusable styles
var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for the cursor and the highlighted page
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleSelected marks selected thumbnails
	StyleSelected = lipgloss.NewStyle().Foreground(ColorGreen)

	// StylePending marks pages with an unapplied order change
	StylePending = lipgloss.NewStyle().Foreground(ColorCyan).Italic(true)

	// StyleMatch is for highlighted search terms in page text
	StyleMatch = lipgloss.NewStyle().Reverse(true)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleError is for failed actions
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleBorder is for panels and modals
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)

	// StyleFocused is the border of the focused panel
	StyleFocused = StyleBorder.BorderForeground(ColorYellow)
)
