package common

import (
	"strings"
	"time"
)

const jsonTimeFormat = "2006-01-02T15:04:05.999999Z07:00"

// Timestamp is a time.Time with microsecond precision which marshals the zero
// value as JSON null.
type Timestamp time.Time

func CurrentTimestamp() Timestamp {
	return Timestamp(time.Now().Round(time.Microsecond))
}

func TimestampOfDate(year int, month time.Month, day, hour, min, sec, nsec int, loc *time.Location) Timestamp {
	return Timestamp(time.Date(year, month, day, hour, min, sec, nsec, loc).Round(time.Microsecond))
}

func TimestampOfTime(t time.Time) Timestamp {
	return Timestamp(t.Round(time.Microsecond))
}

func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return time.Time(t).Format(jsonTimeFormat)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + time.Time(t).Format(jsonTimeFormat) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "null" || value == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := time.Parse(jsonTimeFormat, value)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed.Round(time.Microsecond))
	return nil
}

func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Timestamp) UnmarshalText(data []byte) error {
	value := string(data)
	if value == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := time.Parse(jsonTimeFormat, value)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed.Round(time.Microsecond))
	return nil
}
