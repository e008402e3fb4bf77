package params

import "time"

// Report holds the raw reporting query input. Start and End carry the
// unparsed query values; Window resolves the effective time range.
type Report struct {
	Period    string
	CompanyID string
	Start     string
	End       string
}

// Window resolves the report time range at the given moment. An explicit
// parsable start/end pair wins over the named period. Unknown periods
// and unparsable dates fall back to the current day.
func (p Report) Window(now time.Time) (time.Time, time.Time) {
	now = now.UTC()

	if p.Start != "" && p.End != "" {
		start, errStart := time.Parse(time.RFC3339, p.Start)
		end, errEnd := time.Parse(time.RFC3339, p.End)
		if errStart == nil && errEnd == nil {
			return start.UTC(), end.UTC()
		}
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch p.Period {
	case "weekly":
		// Monday of the current week.
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -daysSinceMonday), now
	case "monthly":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), now
	case "yearly":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), now
	default:
		// daily and anything unknown.
		return midnight, now
	}
}
