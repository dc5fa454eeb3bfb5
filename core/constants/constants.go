package constants

import "time"

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Timeouts
const (
	DefaultTimeout        = 30 * time.Second
	DefaultRequestTimeout = 15 * time.Second
)

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Token lifetimes
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
	RedisKeyLoginAttempt   = "login:attempt:"
	RedisKeyOAuthState     = "oauth:state:"
	RedisKeyOccurrences    = "occurrences:"
	RedisKeyEventsVersion  = "events:version:"
)

// Login throttling
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// OAuth state tokens are one-time use and short-lived
const (
	OAuthStateTTL = 10 * time.Minute
)

// Occurrence cache
const (
	OccurrenceCacheTTL = 5 * time.Minute
)

// Asynq task types
const (
	TaskSessionReminder = "reminder:session"
)

// Reminder lead time before a session starts
const (
	SessionReminderLead = 30 * time.Minute
)
