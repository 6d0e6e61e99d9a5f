package models

import (
	"fmt"
	"strconv"
)

// PageSizeRule describes the pageSize parameter of one list endpoint.
// Clamp pulls out-of-range values into range instead of rejecting them.
type PageSizeRule struct {
	Default int
	Min     int
	Max     int
	Clamp   bool
}

var (
	DevicePageSize     = PageSizeRule{Default: 50, Min: 1, Max: 200}
	BreadcrumbPageSize = PageSizeRule{Default: 1000, Min: 1, Max: 5000}
	CheckInPageSize    = PageSizeRule{Default: 50, Min: 1, Max: 200, Clamp: true}
	MessagePageSize    = PageSizeRule{Default: 50, Min: 1, Max: 200, Clamp: true}
)

// Resolve parses raw; an empty value yields the default.
func (r PageSizeRule) Resolve(raw string) (int, error) {
	if raw == "" {
		return r.Default, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("pageSize must be an integer")
	}
	if n >= r.Min && n <= r.Max {
		return n, nil
	}
	if !r.Clamp {
		return 0, fmt.Errorf("pageSize must be between %d and %d", r.Min, r.Max)
	}
	if n < r.Min {
		return r.Min, nil
	}
	return r.Max, nil
}
