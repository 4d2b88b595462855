package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (matches internal/middleware context keys)
	FieldUserID   = "user_id"
	FieldUsername = "username"

	// Domain objects
	FieldPostID         = "post_id"
	FieldCommentID      = "comment_id"
	FieldNotificationID = "notification_id"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
