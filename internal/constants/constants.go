package constants

// Session and context keys
const (
	SessionCookieName  = "pomodoro_session"
	ContextKeyUserID   = "user_id"
	SessionKeyUsername = "username"
)

// Validation limits
const (
	MinPasswordLength = 6
	MaxTitleLength    = 200
)

// Pomodoro defaults
const (
	DefaultPomodoroMinutes = 25
	StatsWindowDays        = 7
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxSuggestedTasks caps how many drafts the AI suggestion endpoint returns.
const MaxSuggestedTasks = 20
