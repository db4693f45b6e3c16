package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "interviewdesk"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/interviewdesk"
	DefaultDBName      = "interviewdesk.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ClockFormat is the wire format for interview start times and durations (HH:MM:SS)
	ClockFormat = "15:04:05"

	// ShortClockFormat is the HH:MM form accepted from users
	ShortClockFormat = "15:04"

	// Remote defaults
	DefaultAPIBaseURL     = "http://127.0.0.1:8000/api"
	DefaultRequestTimeout = 15 * time.Second
	RequestIDHeader       = "X-Request-ID"

	// Reference server defaults
	DefaultServerAddr = "127.0.0.1:8000"

	// Filter sentinel meaning "do not filter on this field"
	FilterAll = "all"
)

// Session States
const (
	StateBrowse SessionState = iota
	StateCreate
	StateEdit
	StateFilter
	StateJumpDate
	StateConfirmDelete
)
