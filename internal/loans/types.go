package loans

import (
	"time"

	"github.com/google/uuid"
	"github.com/lenddesk/lenddesk-backend/pkg/enums"
)

// TimeLayout is the fixed textual pattern for loan interval timestamps, both
// on the wire and in the record store.
const TimeLayout = "2006-01-02 15:04"

// Loan is the flat record persisted in the store. Intervals are half-open:
// a loan ending at 12:00 does not conflict with one starting at 12:00.
type Loan struct {
	ID        uuid.UUID         `json:"loan_id"`
	ItemID    uuid.UUID         `json:"item_id"`
	UserID    uuid.UUID         `json:"user_id"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Variant   enums.LoanVariant `json:"loan_type"`
	Note      string            `json:"note,omitempty"`
}

// Interval parses the stored start/end timestamps. Historical records with
// unparseable timestamps surface the error so callers can skip them.
func (l Loan) Interval() (start, end time.Time, err error) {
	start, err = time.Parse(TimeLayout, l.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = time.Parse(TimeLayout, l.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Extras carries variant-specific construction inputs. Only the staff
// variant reads from it today; new variants add fields here.
type Extras struct {
	Note string `json:"note,omitempty"`
}
