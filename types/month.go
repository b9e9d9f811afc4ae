package types

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

const (
	MinYear = 2000
	MaxYear = 2100
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Month is a calendar month (year + month 1-12) with no day or time component.
type Month struct {
	Year  int
	Month int
}

// IsValidMonth reports whether value is a "YYYY-MM" month inside the supported range.
func IsValidMonth(value string) bool {
	_, err := ParseMonth(value)
	return err == nil
}

// ParseMonth builds a Month from its "YYYY-MM" form.
func ParseMonth(value string) (Month, error) {
	if !monthPattern.MatchString(value) {
		return Month{}, fmt.Errorf("month %q must have the form YYYY-MM", value)
	}
	year, _ := strconv.Atoi(value[:4])
	month, _ := strconv.Atoi(value[5:])
	return NewMonth(year, month)
}

// NewMonth validates year and month and returns the Month.
func NewMonth(year, month int) (Month, error) {
	if year < MinYear || year > MaxYear {
		return Month{}, fmt.Errorf("year %d out of range %d-%d", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("month %d out of range 1-12", month)
	}
	return Month{Year: year, Month: month}, nil
}

// MustParseMonth is ParseMonth for constants and tests; it panics on bad input.
func MustParseMonth(value string) Month {
	m, err := ParseMonth(value)
	if err != nil {
		panic(err)
	}
	return m
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// ordinal counts months since year 0, giving a total order over months.
func (m Month) ordinal() int {
	return m.Year*12 + (m.Month - 1)
}

// Compare returns -1, 0 or 1 when m is before, equal to or after other.
func (m Month) Compare(other Month) int {
	switch a, b := m.ordinal(), other.ordinal(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (m Month) Before(other Month) bool { return m.Compare(other) < 0 }

func (m Month) After(other Month) bool { return m.Compare(other) > 0 }

// AddMonths shifts m by n months (n may be negative).
func (m Month) AddMonths(n int) Month {
	o := m.ordinal() + n
	return Month{Year: o / 12, Month: o%12 + 1}
}

// MonthsBetween is the signed number of month steps from start to end.
// It is not clamped: equal months give 0 and reversed months give a negative count.
func MonthsBetween(start, end Month) int {
	return (end.Year-start.Year)*12 + (end.Month - start.Month)
}

// RentalMonths is the billable duration of a rental from start to end.
// The minimum rental period is one month, so the result is never below 1.
// Use MonthsBetween when the sign matters.
func RentalMonths(start, end Month) int {
	if n := MonthsBetween(start, end); n > 1 {
		return n
	}
	return 1
}

// RangesOverlap reports whether [start1, end1] and [start2, end2] share a month.
// Boundary months count, so a range ending in March overlaps one starting in March.
func RangesOverlap(start1, end1, start2, end2 Month) bool {
	return start1.Compare(end2) <= 0 && start2.Compare(end1) <= 0
}

// Value stores the month as "YYYY-MM".
func (m Month) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}
	return m.String(), nil
}

// Scan reads a "YYYY-MM" column.
func (m *Month) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = Month{}
		return nil
	case string:
		parsed, err := ParseMonth(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		return m.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Month", src)
	}
}

// GormDataType keeps the column a short string on every dialect.
func (Month) GormDataType() string {
	return "string"
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
