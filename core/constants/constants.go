package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second
	EnqueueTimeout        = 3 * time.Second
	ShutdownTimeout       = 15 * time.Second
)

// Database pool
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Context keys set by the auth middleware
const (
	ContextTokenData = "token_data"
	ContextPrincipal = "principal"
	ContextRawToken  = "raw_token"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Login attempt limiting
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// Redis keys
const (
	RedisKeyTokenBlacklist = "blacklist:"
	RedisKeyLoginAttempt   = "login:"
)

// Pagination
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// EventDateLayout is the wire format of Event.date.
const EventDateLayout = "2006-01-02 15:04:05"

// Queue
const (
	QueueNotifications = "notifications"
	QueueDefault       = "default"
)
