package loans

import (
	"github.com/google/uuid"
	"github.com/lenddesk/lenddesk-backend/pkg/enums"
	pkgerrors "github.com/lenddesk/lenddesk-backend/pkg/errors"
)

// DefaultStaffNote is stored when a staff loan is proposed without a note.
const DefaultStaffNote = "not provided"

type variantConstructor func(base Loan, extras Extras) Loan

// Each variant registers a constructor keyed by its tag. The overlap
// algorithm never consults this table, so new variants slot in here alone.
var variantConstructors = map[enums.LoanVariant]variantConstructor{
	enums.LoanVariantStandard: newStandardLoan,
	enums.LoanVariantStaff:    newStaffLoan,
}

func newStandardLoan(base Loan, _ Extras) Loan {
	return base
}

func newStaffLoan(base Loan, extras Extras) Loan {
	note := extras.Note
	if note == "" {
		note = DefaultStaffNote
	}
	base.Note = note
	return base
}

// NewLoan builds a loan record of the requested variant with a generated id.
// Unknown variant tags return a typed rejection before anything is written.
func NewLoan(variant string, itemID, userID uuid.UUID, start, end string, extras Extras) (Loan, error) {
	tag, err := enums.ParseLoanVariant(variant)
	if err != nil {
		return Loan{}, pkgerrors.Wrap(pkgerrors.CodeUnknownVariant, err, "unknown loan variant").
			WithDetails(map[string]string{"loan_type": variant})
	}

	build, ok := variantConstructors[tag]
	if !ok {
		return Loan{}, pkgerrors.New(pkgerrors.CodeUnknownVariant, "loan variant has no constructor").
			WithDetails(map[string]string{"loan_type": variant})
	}

	base := Loan{
		ID:        uuid.New(),
		ItemID:    itemID,
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Variant:   tag,
	}
	return build(base, extras), nil
}
