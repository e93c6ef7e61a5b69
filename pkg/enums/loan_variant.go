package enums

import "fmt"

// LoanVariant discriminates the loan sub-types persisted in the record store.
type LoanVariant string

const (
	LoanVariantStandard LoanVariant = "standard"
	LoanVariantStaff    LoanVariant = "staff"
)

var validLoanVariants = []LoanVariant{
	LoanVariantStandard,
	LoanVariantStaff,
}

// String implements fmt.Stringer.
func (v LoanVariant) String() string {
	return string(v)
}

// IsValid reports whether the value is a known LoanVariant.
func (v LoanVariant) IsValid() bool {
	for _, candidate := range validLoanVariants {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseLoanVariant converts raw input into a LoanVariant.
func ParseLoanVariant(value string) (LoanVariant, error) {
	for _, candidate := range validLoanVariants {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid loan variant %q", value)
}
