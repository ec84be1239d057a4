package types

import (
	"strings"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

// NaiveResultLimit caps the base query of the per-order lookup strategy.
const NaiveResultLimit = 1000

// OrderSearch filters order listings. Empty fields match everything.
type OrderSearch struct {
	// MemberName matches a case-insensitive substring of the member name.
	MemberName string
	Status     domain.Status
}

// Normalize trims the name and upper-cases the status.
func (s OrderSearch) Normalize() OrderSearch {
	return OrderSearch{
		MemberName: strings.TrimSpace(s.MemberName),
		Status:     domain.Status(strings.ToUpper(strings.TrimSpace(string(s.Status)))),
	}
}

// Matches applies the filter to in-memory values.
func (s OrderSearch) Matches(memberName string, status domain.Status) bool {
	if s.Status != "" && s.Status != status {
		return false
	}
	if s.MemberName == "" {
		return true
	}
	return strings.Contains(strings.ToLower(memberName), strings.ToLower(s.MemberName))
}

// Page is an offset/limit window over orders. A zero Limit means unbounded.
type Page struct {
	Offset int
	Limit  int
}

// Fetch selects which associations a graph query loads.
type Fetch struct {
	Items bool
}
