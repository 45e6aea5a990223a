package scheduling

import (
	"time"

	"agendly/models"
)

// maxOccurrences caps a single expansion; a rule that would materialize more
// is rejected rather than truncated.
const maxOccurrences = 1000

// RecurrenceExpander turns a base start time and a rule into the finite,
// ordered list of occurrence start times. Expansion is pure: it knows nothing
// about conflicts, which are checked per occurrence at submission time.
type RecurrenceExpander struct{}

// Expand materializes every occurrence, base date included. Each occurrence
// keeps the base's time of day; only the date moves.
func (RecurrenceExpander) Expand(base time.Time, rule models.RecurrenceRule) ([]time.Time, error) {
	if err := rule.Validate(); err != nil {
		return nil, NewValidationError("invalid recurrence rule: %v", err)
	}

	interval := rule.EffectiveInterval()
	var out []time.Time
	for i := 0; ; i++ {
		occ := advance(base, rule.Frequency, interval*i)
		if rule.Count > 0 && len(out) == rule.Count {
			break
		}
		if !rule.Until.IsZero() && occ.After(endOfDay(rule.Until)) {
			break
		}
		if len(out) == maxOccurrences {
			return nil, NewValidationError("recurrence rule expands to more than %d occurrences", maxOccurrences)
		}
		out = append(out, occ)
	}
	return out, nil
}

// advance computes occurrence i directly from the base so that monthly
// normalization (e.g. Jan 31 + 1 month) does not accumulate drift.
func advance(base time.Time, freq models.RecurrenceFrequency, periods int) time.Time {
	switch freq {
	case models.FrequencyDaily:
		return base.AddDate(0, 0, periods)
	case models.FrequencyWeekly:
		return base.AddDate(0, 0, 7*periods)
	default: // monthly
		return base.AddDate(0, periods, 0)
	}
}

// endOfDay treats the until bound as inclusive of its whole date.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
