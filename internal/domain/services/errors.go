package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors returned by the services. Controllers map them to codes.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDeviceNotFound       = errors.New("device not found")
	ErrDeviceAlreadyExist   = errors.New("device already paired")
	ErrInvalidPairingCode   = errors.New("invalid pairingCode")
	ErrFamilyMemberNotFound = errors.New("family member not found")
	ErrIncompleteLocation   = errors.New("location requires both lat and lng")
	ErrTooManyBreadcrumbs   = errors.New("too many breadcrumbs in one batch")
	ErrEmptyText            = errors.New("text must not be blank")
)

// isDuplicateKey reports a unique-constraint violation. TranslateError covers
// mysql and postgres; the sqlite driver's message is matched exactly.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
