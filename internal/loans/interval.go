package loans

import (
	"time"

	pkgerrors "github.com/lenddesk/lenddesk-backend/pkg/errors"
)

// ParseInterval validates a candidate interval. Both timestamps must match
// TimeLayout and the start must be strictly before the end.
func ParseInterval(startRaw, endRaw string) (start, end time.Time, err error) {
	start, parseErr := time.Parse(TimeLayout, startRaw)
	if parseErr != nil {
		return time.Time{}, time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInvalidFormat, parseErr, "invalid start time").
			WithDetails(map[string]string{"start_time": startRaw, "expected": "YYYY-MM-DD HH:MM"})
	}
	end, parseErr = time.Parse(TimeLayout, endRaw)
	if parseErr != nil {
		return time.Time{}, time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInvalidFormat, parseErr, "invalid end time").
			WithDetails(map[string]string{"end_time": endRaw, "expected": "YYYY-MM-DD HH:MM"})
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeInvalidOrder, "start time must be before end time").
			WithDetails(map[string]string{"start_time": startRaw, "end_time": endRaw})
	}
	return start, end, nil
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Shared boundaries are not an overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
