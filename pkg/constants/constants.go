package constants

type contextKey string

// Context keys shared across packages. Values of these keys are request
// scoped: they are written at most once per request and never survive it.
const (
	AppKey       contextKey = "app"
	PoolKey      contextKey = "pool"
	TxKey        contextKey = "tx"
	LoggerKey    contextKey = "logger"
	ParamsKey    contextKey = "params"
	SessionKey   contextKey = "session"
	TenantKey    contextKey = "tenant"
	RequestStart contextKey = "requestStart"
)
