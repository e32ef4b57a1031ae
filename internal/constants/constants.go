package constants

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
	ViewerKey               ContextKey = "viewer"
	LoggerKey               ContextKey = "logger"
)

type RequestID string

const (
	RequestIDKey    RequestID = "request_id"
	RequestIDHeader           = "X-Request-ID"
)
