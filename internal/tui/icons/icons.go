// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("PERFTRACK_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// Terminals that commonly ship with Nerd Fonts configured
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Entities
	Goal     = Icon{"󰓾", "◎"} // nf-md-target
	Employee = Icon{"󰀄", "◉"} // nf-md-account
	Team     = Icon{"󰡉", "⬡"} // nf-md-account_group
	Review   = Icon{"󰈙", "▤"} // nf-md-file_document
	Chart    = Icon{"󰄨", "▁"} // nf-md-chart_bar
	Star     = Icon{"󰓎", "★"} // nf-md-star

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info
	Pending  = Icon{"󰔟", "…"} // nf-md-timer_sand

	// Actions
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Add     = Icon{"󰐕", "+"} // nf-md-plus
	Edit    = Icon{"󰏫", "✎"} // nf-md-pencil
	Approve = Icon{"󰄬", "✔"} // nf-md-check
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app
	Lock    = Icon{"󰌾", "⚿"} // nf-md-lock

	// Application
	App      = Icon{"󰄨", "◈"} // nf-md-chart_bar (performance theme)
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
)
