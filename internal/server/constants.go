package server

import "time"

// Routes
const (
	PathHealthz = "/healthz"
	PathReadyz  = "/readyz"
	PathVersion = "/version"
	PathMetrics = "/metrics"
)

// Health status values
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

const (
	ReadHeaderTimeout = 5 * time.Second
	ReadinessTimeout  = 2 * time.Second
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting    = "Ops server starting"
	LogMsgServerStopped     = "Ops server stopped"
	LogMsgServerFailed      = "Ops server failed"
	LogMsgRequestCompleted  = "Request completed"
	LogMsgReadinessFailed   = "Readiness check failed"
	ErrMsgDatabaseReachable = "database connection failed"
)

// HTTP header names
const (
	HeaderContentType    = "Content-Type"
	HeaderNoSniff        = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Header values
const (
	ContentTypeJSON               = "application/json"
	HeaderValueNoSniff            = "nosniff"
	HeaderValueDeny               = "DENY"
	HeaderValueReferrerNoReferrer = "no-referrer"
)
