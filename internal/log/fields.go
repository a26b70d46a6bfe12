package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldUserID        = "user_id"
	FieldTransactionID = "transaction_id"
	FieldCount         = "count"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldPath          = "path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentBackend = "backend"
	ComponentExport  = "export"
)
