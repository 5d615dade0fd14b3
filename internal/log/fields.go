package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserEmail  = "user_email"
	FieldKey        = "key"
	FieldBackend    = "backend"
	FieldTxID       = "transaction_id"
	FieldGoalID     = "goal_id"
	FieldCategoryID = "category_id"
	FieldAmount     = "amount"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentIdentity = "identity"
	ComponentLedger   = "ledger"
	ComponentCategory = "category"
	ComponentGoal     = "goal"
	ComponentSettings = "settings"
	ComponentStorage  = "storage"
	ComponentWorker   = "worker"
)

// Operations defines standard operation names
const (
	OpCreate     = "create"
	OpDelete     = "delete"
	OpList       = "list"
	OpLoad       = "load"
	OpPersist    = "persist"
	OpRegister   = "register"
	OpLogin      = "login"
	OpLogout     = "logout"
	OpContribute = "contribute"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)
