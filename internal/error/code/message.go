package code

var codeMessageMap = map[int]string{
	// common
	ErrSuccess:            "OK",
	ErrUnknown:            "Internal error",
	ErrBind:               "Invalid request",
	ErrValidation:         "Validation failed",
	ErrTooManyRequests:    "Too many requests, slow down",
	ErrInvalidUpdateMask:  "Unknown field in updateMask",
	ErrNotFound:           "Not found",
	ErrServiceUnavailable: "Service unavailable",

	// user
	ErrUserNotFound: "User not found",

	// device
	ErrDeviceNotFound:     "Device not found",
	ErrDeviceAlreadyExist: "Device already paired",
	ErrInvalidPairingCode: "Invalid pairingCode",

	// family
	ErrFamilyMemberNotFound: "Family member not found",

	// sos
	ErrSOSTransition: "SOS state could not be updated",

	// database
	ErrDatabase:       "Database error",
	ErrRecordNotFound: "Record not found",
}

var codeStatusMap = map[int]int{
	ErrSuccess:            StatusOK,
	ErrUnknown:            StatusInternalServerError,
	ErrBind:               StatusBadRequest,
	ErrValidation:         StatusBadRequest,
	ErrTooManyRequests:    StatusTooManyRequests,
	ErrInvalidUpdateMask:  StatusBadRequest,
	ErrNotFound:           StatusNotFound,
	ErrServiceUnavailable: StatusServiceUnavailable,

	ErrUserNotFound: StatusNotFound,

	ErrDeviceNotFound:     StatusNotFound,
	ErrDeviceAlreadyExist: StatusConflict,
	ErrInvalidPairingCode: StatusBadRequest,

	ErrFamilyMemberNotFound: StatusNotFound,

	ErrSOSTransition: StatusInternalServerError,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage returns the default message for an error code.
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Unknown error"
}

// GetStatus returns the HTTP status for an error code.
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
