package recurrence

import (
	"net/url"
	"strconv"

	"inventech/bizerror"
	"inventech/domain"
)

const (
	MinOccurrences     = 1
	MaxOccurrences     = 50
	DefaultOccurrences = 12
)

// Plan is the validated, server ready recurrence fragment of a work order
// submission plus a display only estimate of how many orders the server will
// generate. The authoritative expansion happens server side and the estimate
// is never reconciled against it.
type Plan struct {
	Policy          domain.RecurrencePolicy `json:"policy"`
	IntervalDays    int                     `json:"intervalDays,omitempty"`
	OccurrenceCount int                     `json:"occurrenceCount,omitempty"`
	Estimate        int                     `json:"estimate"`
}

// PlanRecurrence validates the recurrence inputs and normalizes them. A zero
// occurrence count falls back to the default; out of range counts are clamped
// rather than rejected, both for the estimate and for the submitted payload.
func PlanRecurrence(policy domain.RecurrencePolicy, intervalDays, occurrenceCount int) (*Plan, error) {
	if policy == "" {
		policy = domain.RecurrenceNone
	}
	if !policy.Known() {
		return nil, bizerror.ErrUnknownRecurrencePolicy
	}
	if policy == domain.RecurrenceCustom && intervalDays < 1 {
		return nil, bizerror.ErrInvalidRecurrenceInterval
	}
	if policy == domain.RecurrenceNone {
		return &Plan{Policy: policy, Estimate: 1}, nil
	}

	count := clampOccurrences(occurrenceCount)
	plan := &Plan{Policy: policy, OccurrenceCount: count, Estimate: count}
	if policy == domain.RecurrenceCustom {
		plan.IntervalDays = intervalDays
	}
	return plan, nil
}

// Estimate projects how many work orders a submission would generate. Display
// only.
func Estimate(policy domain.RecurrencePolicy, occurrenceCount int) int {
	if !policy.Recurring() {
		return 1
	}
	return clampOccurrences(occurrenceCount)
}

// AppendPayloadFields adds the recurrence fragment to a submission. NONE
// sends no recurrence fields at all; only CUSTOM carries an interval.
func (p *Plan) AppendPayloadFields(fields url.Values) {
	if !p.Policy.Recurring() {
		return
	}
	fields.Set("recurrence", string(p.Policy))
	fields.Set("occurrenceCount", strconv.Itoa(p.OccurrenceCount))
	if p.Policy == domain.RecurrenceCustom {
		fields.Set("intervalDays", strconv.Itoa(p.IntervalDays))
	}
}

func clampOccurrences(count int) int {
	if count == 0 {
		count = DefaultOccurrences
	}
	if count < MinOccurrences {
		return MinOccurrences
	}
	if count > MaxOccurrences {
		return MaxOccurrences
	}
	return count
}
