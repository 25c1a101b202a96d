package constants

// Ret codes carried by every HTTP and WebSocket response body.
const (
	RetCodeOk            = 1000
	RetCodeInvalidParams = 1001
	RetCodeNotFound      = 1002
	RetCodeUnknownError  = 1003
	RetCodeMapExists     = 1004
)

const (
	ENV_SERVER = "SERVER"

	DefaultHost       = "localhost"
	DefaultServerHost = "0.0.0.0"
	DefaultPort       = 9992
	DefaultLogLevel   = "info"
	DefaultStrategy   = "astar"
	DefaultPoolSize   = 4
	DefaultCellSize   = 64.0
)
