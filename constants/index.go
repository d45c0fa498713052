package constants

const (
	ROLE_ADMIN     = "ADMIN"
	ROLE_STAFF     = "STAFF"
	ROLE_ORGANIZER = "ORGANIZER"
	ROLE_CUSTOMER  = "CUSTOMER"
	// ROLE_SYSTEM is never stored; background jobs act with it.
	ROLE_SYSTEM = "SYSTEM"
)

const (
	SETTING_PAYMENT_SECRET_KEY = "payment_secret_key"
)

const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Could not read request data"
	ERROR_INVALID_BODY         = "Invalid request body"
	ERROR_UNAUTHENTICATED      = "Authentication required"
	ERROR_FORBIDDEN            = "You are not allowed to perform this action"
	INVALID_CREDENTIALS        = "Invalid email or password"
)

const (
	PAYMENT_EVENT_CHARGE_SUCCESS = "charge.success"
	PAYMENT_EVENT_CHARGE_FAILED  = "charge.failed"
)
