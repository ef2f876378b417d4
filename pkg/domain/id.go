package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// CustomerID identifies a customer across every backend.
// Invariant: non-empty. Construct via ParseCustomerID at trust boundaries;
// direct casting bypasses validation.
type CustomerID string

// ParseCustomerID validates and returns a CustomerID.
func ParseCustomerID(s string) (CustomerID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("customer id is required")
	}
	return CustomerID(s), nil
}

func (c CustomerID) String() string {
	return string(c)
}

// IsNil returns true if the customer ID is empty.
func (c CustomerID) IsNil() bool {
	return c == ""
}

// Period identifies one monthly dataset partition.
// Invariant: the value matches YYYY-MM.
type Period string

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ParsePeriod validates and returns a Period.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if !periodPattern.MatchString(s) {
		return "", fmt.Errorf("period must match YYYY-MM, got %q", s)
	}
	return Period(s), nil
}

func (p Period) String() string {
	return string(p)
}

// IsNil returns true if the period is empty.
func (p Period) IsNil() bool {
	return p == ""
}
