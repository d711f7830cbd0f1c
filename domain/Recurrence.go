package domain

// RecurrencePolicy describes how a preventive work order expands into a
// bounded series of future occurrences. The expansion itself is performed by
// the persistence API.
type RecurrencePolicy string

const (
	RecurrenceNone     RecurrencePolicy = "NONE"
	RecurrenceDaily    RecurrencePolicy = "DAILY"
	RecurrenceWeekly   RecurrencePolicy = "WEEKLY"
	RecurrenceBiweekly RecurrencePolicy = "BIWEEKLY"
	RecurrenceMonthly  RecurrencePolicy = "MONTHLY"
	RecurrenceYearly   RecurrencePolicy = "YEARLY"
	RecurrenceCustom   RecurrencePolicy = "CUSTOM"
)

var RecurrencePolicies = []RecurrencePolicy{
	RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly,
	RecurrenceMonthly, RecurrenceYearly, RecurrenceCustom,
}

func (p RecurrencePolicy) Known() bool {
	for _, policy := range RecurrencePolicies {
		if p == policy {
			return true
		}
	}
	return false
}

// Recurring reports whether the policy expands into more than one occurrence.
// The empty value is treated as NONE.
func (p RecurrencePolicy) Recurring() bool {
	return p != "" && p != RecurrenceNone
}
