package models

import (
	"github.com/pkg/errors"
)

// LoanStatus is the loan state of a BookInstance. Any value may follow any
// other; transition rules belong to whoever drives loans and returns.
type LoanStatus int

const (
	LoanStatusAvailable LoanStatus = iota
	LoanStatusReserved
	LoanStatusTaken
	LoanStatusUnavailable
)

var loanStatusNames = map[LoanStatus]string{
	LoanStatusAvailable:   "available",
	LoanStatusReserved:    "reserved",
	LoanStatusTaken:       "taken",
	LoanStatusUnavailable: "unavailable",
}

// LoanStatuses lists every status in code order.
var LoanStatuses = []LoanStatus{
	LoanStatusAvailable,
	LoanStatusReserved,
	LoanStatusTaken,
	LoanStatusUnavailable,
}

func (s LoanStatus) Valid() bool {
	_, ok := loanStatusNames[s]
	return ok
}

// String returns the untranslated label key of the status, or "unknown" for
// values outside the enumeration.
func (s LoanStatus) String() string {
	if name, ok := loanStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseLoanStatus accepts the label key of a status ("taken").
func ParseLoanStatus(name string) (LoanStatus, error) {
	for s, n := range loanStatusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, errors.Errorf("unknown loan status %q", name)
}
