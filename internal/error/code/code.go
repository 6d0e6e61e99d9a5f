package code

// HTTP status codes.
const (
	// StatusOK - 200.
	StatusOK = 200
	// StatusBadRequest - 400: malformed or invalid request.
	StatusBadRequest = 400
	// StatusNotFound - 404: resource does not exist.
	StatusNotFound = 404
	// StatusConflict - 409: resource already exists.
	StatusConflict = 409
	// StatusTooManyRequests - 429.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: a dependency is down.
	StatusServiceUnavailable = 503
)

// Common error codes (100xxx).
const (
	// ErrSuccess - 200.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500.
	ErrUnknown
	// ErrBind - 400: request body or query could not be bound.
	ErrBind
	// ErrValidation - 400: request bound but failed validation.
	ErrValidation
	// ErrTooManyRequests - 429.
	ErrTooManyRequests
	// ErrInvalidUpdateMask - 400: updateMask names an unknown field.
	ErrInvalidUpdateMask
	// ErrNotFound - 404: no route or resource.
	ErrNotFound
	// ErrServiceUnavailable - 503.
	ErrServiceUnavailable
)

// User error codes (101xxx).
const (
	// ErrUserNotFound - 404.
	ErrUserNotFound int = iota + 101000
)

// Device error codes (102xxx).
const (
	// ErrDeviceNotFound - 404.
	ErrDeviceNotFound int = iota + 102000
	// ErrDeviceAlreadyExist - 409: pairing code already used.
	ErrDeviceAlreadyExist
	// ErrInvalidPairingCode - 400.
	ErrInvalidPairingCode
)

// Family member error codes (103xxx).
const (
	// ErrFamilyMemberNotFound - 404.
	ErrFamilyMemberNotFound int = iota + 103000
)

// SOS error codes (104xxx).
const (
	// ErrSOSTransition - 500: activate or cancel could not be persisted.
	ErrSOSTransition int = iota + 104000
)

// Database error codes (105xxx).
const (
	// ErrDatabase - 500.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404.
	ErrRecordNotFound
)
