package date

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Default calculator.
 *
 * Backed by the host clock and time.Time. The two value kinds are distinct
 * wrapper types discriminated at construction (Date, DateTime), so kind
 * dispatch is a type assertion, never shape probing.
 *
 * Representation: a Date is midnight UTC of its calendar day, which makes
 * day arithmetic pure calendar math with a zero UTC offset. A DateTime is
 * an absolute instant; calendar fields are resolved against a zone id at
 * access time.
 *
 * Zone policy: zone ids resolve through the Go zone database wherever the
 * calculator merely reads instant fields or interprets a wall-clock
 * literal. Today, ToDate and ToDateTime are defined against a single
 * reference clock and support only the host's own zone; any other zone id
 * fails with the contractual "does not support time zone specific
 * calculations" error.
 */

// Date is a calendar day without time-of-day. The zero value is invalid;
// construct through a Calculator.
type Date struct {
	t time.Time // midnight UTC of the calendar day
}

// Time exposes the underlying midnight-UTC representation.
func (d Date) Time() time.Time { return d.t }

// String renders the strict YYYY-MM-DD literal form.
func (d Date) String() string { return d.t.Format("2006-01-02") }

// MarshalJSON renders the literal form as a JSON string.
func (d Date) MarshalJSON() ([]byte, error) { return []byte(`"` + d.String() + `"`), nil }

// DateTime is an absolute instant. Calendar fields are resolved against a
// zone id at access time. The zero value is invalid; construct through a
// Calculator.
type DateTime struct {
	t time.Time
}

// Time exposes the underlying instant.
func (dt DateTime) Time() time.Time { return dt.t }

// String renders the instant in RFC 3339 UTC form.
func (dt DateTime) String() string { return dt.t.UTC().Format("2006-01-02T15:04:05Z") }

// MarshalJSON renders the RFC 3339 UTC form as a JSON string.
func (dt DateTime) MarshalJSON() ([]byte, error) { return []byte(`"` + dt.String() + `"`), nil }

// SystemZone is the zone id alias for the host's own zone. An empty zone
// id means the same thing.
const SystemZone = "SYSTEM"

var (
	dateLiteral     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	dateTimeLiteral = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(Z?)$`)
)

// DefaultCalculator implements Calculator over the host clock.
// Stateless and safe for concurrent use.
type DefaultCalculator struct {
	now func() time.Time // test seam; time.Now in production
}

// NewDefaultCalculator returns the host-clock-backed calculator.
func NewDefaultCalculator() *DefaultCalculator {
	return &DefaultCalculator{now: time.Now}
}

// IsDate reports whether v is a default-representation date.
func (c *DefaultCalculator) IsDate(v any) bool {
	_, ok := v.(Date)
	return ok
}

// IsDateTime reports whether v is a default-representation datetime.
func (c *DefaultCalculator) IsDateTime(v any) bool {
	_, ok := v.(DateTime)
	return ok
}

// CreateDate parses a strict YYYY-MM-DD literal. Any other shape,
// including one with a time component, is a creation error.
func (c *DefaultCalculator) CreateDate(iso string) (any, error) {
	m := dateLiteral.FindStringSubmatch(iso)
	if m == nil {
		return nil, fmt.Errorf("date literal '%s' is not in YYYY-MM-DD format: %w", iso, types.ErrInvalidDateFormat)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return c.CreateDateFields(year, month, day)
}

// CreateDateFields validates the calendar combination and builds a Date.
func (c *DefaultCalculator) CreateDateFields(year, month, day int) (any, error) {
	if err := validateCalendar(year, month, day); err != nil {
		return nil, err
	}
	return Date{t: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}, nil
}

// CreateDateTime parses a strict ISO datetime literal.
// No offset: zoneID is mandatory and the literal is wall-clock time there.
// 'Z' suffix: zoneID must be absent and the literal is a UTC instant.
func (c *DefaultCalculator) CreateDateTime(iso, zoneID string) (any, error) {
	m := dateTimeLiteral.FindStringSubmatch(iso)
	if m == nil {
		return nil, fmt.Errorf("datetime literal '%s' is not in YYYY-MM-DDThh:mm:ss[Z] format: %w", iso, types.ErrInvalidDateFormat)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	if err := validateCalendar(year, month, day); err != nil {
		return nil, err
	}
	if err := validateClock(hour, minute, second); err != nil {
		return nil, err
	}

	utc := m[7] == "Z"
	if utc {
		if zoneID != "" {
			return nil, fmt.Errorf("zone id '%s' must not be supplied for a UTC instant literal: %w", zoneID, types.ErrInvalidDateFormat)
		}
		return DateTime{t: time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)}, nil
	}
	if zoneID == "" {
		return nil, fmt.Errorf("zone id is required for a datetime literal without offset: %w", types.ErrInvalidDateFormat)
	}
	loc, err := c.location(zoneID)
	if err != nil {
		return nil, err
	}
	return DateTime{t: time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)}, nil
}

// CreateDateTimeFields builds a datetime from explicit wall-clock fields in
// zoneID (mandatory).
func (c *DefaultCalculator) CreateDateTimeFields(year, month, day, hour, minute, second int, zoneID string) (any, error) {
	if zoneID == "" {
		return nil, fmt.Errorf("zone id is required for explicit datetime fields: %w", types.ErrInvalidDateFormat)
	}
	if err := validateCalendar(year, month, day); err != nil {
		return nil, err
	}
	if err := validateClock(hour, minute, second); err != nil {
		return nil, err
	}
	loc, err := c.location(zoneID)
	if err != nil {
		return nil, err
	}
	return DateTime{t: time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)}, nil
}

// Today returns the current date, time-of-day truncated. Only the host's
// own zone is supported.
func (c *DefaultCalculator) Today(zoneID string) (any, error) {
	if err := c.requireSystemZone(zoneID); err != nil {
		return nil, err
	}
	y, m, d := c.now().In(time.Local).Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
}

// Now returns the current instant.
func (c *DefaultCalculator) Now() any {
	return DateTime{t: c.now()}
}

// GetDateField extracts a 1-based calendar field of a Date.
func (c *DefaultCalculator) GetDateField(v any, f Field) (int, error) {
	d, ok := v.(Date)
	if !ok {
		return 0, notCompatible(v)
	}
	if !f.IsDateField() {
		return 0, fmt.Errorf("field %v is not a date field: %w", f, types.ErrFieldOutOfRange)
	}
	y, m, day := d.t.Date()
	switch f {
	case Year:
		return y, nil
	case Month:
		return int(m), nil
	default:
		return day, nil
	}
}

// GetDateTimeField extracts a field of a DateTime, resolved in zoneID.
// Calendar fields are 1-based, clock fields 0-based.
func (c *DefaultCalculator) GetDateTimeField(v any, f Field, zoneID string) (int, error) {
	dt, ok := v.(DateTime)
	if !ok {
		return 0, notCompatible(v)
	}
	if !f.IsDateTimeField() {
		return 0, fmt.Errorf("field %v is not a datetime field: %w", f, types.ErrFieldOutOfRange)
	}
	loc, err := c.location(zoneID)
	if err != nil {
		return 0, err
	}
	t := dt.t.In(loc)
	switch f {
	case Year:
		return t.Year(), nil
	case Month:
		return int(t.Month()), nil
	case DayOfMonth:
		return t.Day(), nil
	case Hour:
		return t.Hour(), nil
	case Minute:
		return t.Minute(), nil
	default:
		return t.Second(), nil
	}
}

// WithDateField sets one calendar field of a Date. YEAR/MONTH clamp the
// day-of-month to the end of the resulting month; DAY_OF_MONTH never
// clamps and errors when the month cannot hold the requested day.
func (c *DefaultCalculator) WithDateField(v any, f Field, value int) (any, error) {
	d, ok := v.(Date)
	if !ok {
		return nil, notCompatible(v)
	}
	if !f.IsDateField() {
		return nil, fmt.Errorf("field %v is not a date field: %w", f, types.ErrFieldOutOfRange)
	}
	if err := validateFieldValue(f, value); err != nil {
		return nil, err
	}
	y, m, day := d.t.Date()
	year, month := y, int(m)
	switch f {
	case Year:
		year = value
		day = clampDay(day, year, month)
	case Month:
		month = value
		day = clampDay(day, year, month)
	case DayOfMonth:
		if value > daysInMonth(year, month) {
			return nil, fmt.Errorf("day %d does not exist in %04d-%02d: %w", value, year, month, types.ErrFieldOutOfRange)
		}
		day = value
	}
	return Date{t: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}, nil
}

// WithDateTimeField sets one field of a DateTime, resolved as wall-clock
// time in zoneID. Same clamping rules as WithDateField.
func (c *DefaultCalculator) WithDateTimeField(v any, f Field, value int, zoneID string) (any, error) {
	dt, ok := v.(DateTime)
	if !ok {
		return nil, notCompatible(v)
	}
	if !f.IsDateTimeField() {
		return nil, fmt.Errorf("field %v is not a datetime field: %w", f, types.ErrFieldOutOfRange)
	}
	if err := validateFieldValue(f, value); err != nil {
		return nil, err
	}
	loc, err := c.location(zoneID)
	if err != nil {
		return nil, err
	}
	t := dt.t.In(loc)
	year, month, day := t.Year(), int(t.Month()), t.Day()
	hour, minute, second := t.Hour(), t.Minute(), t.Second()
	switch f {
	case Year:
		year = value
		day = clampDay(day, year, month)
	case Month:
		month = value
		day = clampDay(day, year, month)
	case DayOfMonth:
		if value > daysInMonth(year, month) {
			return nil, fmt.Errorf("day %d does not exist in %04d-%02d: %w", value, year, month, types.ErrFieldOutOfRange)
		}
		day = value
	case Hour:
		hour = value
	case Minute:
		minute = value
	case Second:
		second = value
	}
	return DateTime{t: time.Date(year, time.Month(month), day, hour, minute, second, dt.t.Nanosecond(), loc)}, nil
}

// AddDateField adds a signed amount to a calendar field with natural carry.
// YEAR/MONTH addition clamps on the original day-of-month.
func (c *DefaultCalculator) AddDateField(v any, f Field, amount int) (any, error) {
	d, ok := v.(Date)
	if !ok {
		return nil, notCompatible(v)
	}
	if !f.IsDateField() {
		return nil, fmt.Errorf("field %v is not a date field: %w", f, types.ErrFieldOutOfRange)
	}
	y, m, day := d.t.Date()
	year, month, dom := addCalendar(y, int(m), day, f, amount)
	return Date{t: time.Date(year, time.Month(month), dom, 0, 0, 0, 0, time.UTC)}, nil
}

// AddDateTimeField adds a signed amount to a DateTime field. Calendar
// fields operate on the wall clock in zoneID; clock fields shift the
// instant by an exact duration.
func (c *DefaultCalculator) AddDateTimeField(v any, f Field, amount int, zoneID string) (any, error) {
	dt, ok := v.(DateTime)
	if !ok {
		return nil, notCompatible(v)
	}
	if !f.IsDateTimeField() {
		return nil, fmt.Errorf("field %v is not a datetime field: %w", f, types.ErrFieldOutOfRange)
	}
	switch f {
	case Hour:
		return DateTime{t: dt.t.Add(time.Duration(amount) * time.Hour)}, nil
	case Minute:
		return DateTime{t: dt.t.Add(time.Duration(amount) * time.Minute)}, nil
	case Second:
		return DateTime{t: dt.t.Add(time.Duration(amount) * time.Second)}, nil
	}
	loc, err := c.location(zoneID)
	if err != nil {
		return nil, err
	}
	t := dt.t.In(loc)
	year, month, dom := addCalendar(t.Year(), int(t.Month()), t.Day(), f, amount)
	return DateTime{t: time.Date(year, time.Month(month), dom, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)}, nil
}

// DifferenceBetweenDates computes the signed YEAR/MONTH/DAY_OF_MONTH
// difference from v1 to v2. Negative iff v1 is chronologically later.
func (c *DefaultCalculator) DifferenceBetweenDates(v1, v2 any, f Field) (int, error) {
	if !f.IsDateField() {
		return 0, fmt.Errorf("field %v is not a date field: %w", f, types.ErrFieldOutOfRange)
	}
	p1, err := c.calendarParts(v1)
	if err != nil {
		return 0, err
	}
	p2, err := c.calendarParts(v2)
	if err != nil {
		return 0, err
	}

	negative := p1.instant > p2.instant
	earlier, later := p1, p2
	if negative {
		earlier, later = p2, p1
	}

	var n int
	switch f {
	case DayOfMonth:
		// Wall-clock second difference absorbs any UTC-offset delta, so a
		// DST transition between the two instants cannot shift the count.
		secs := (later.instant + int64(later.offset)) - (earlier.instant + int64(earlier.offset))
		n = int(secs / 86400)
	default:
		n = monthsBetween(earlier, later)
		if f == Year {
			n /= 12
		}
	}
	if negative {
		n = -n
	}
	return n, nil
}

// ToDateTime converts a Date to midnight local time. Only the host's own
// zone is supported.
func (c *DefaultCalculator) ToDateTime(v any, zoneID string) (any, error) {
	d, ok := v.(Date)
	if !ok {
		return nil, notCompatible(v)
	}
	if err := c.requireSystemZone(zoneID); err != nil {
		return nil, err
	}
	y, m, day := d.t.Date()
	return DateTime{t: time.Date(y, m, day, 0, 0, 0, 0, time.Local)}, nil
}

// ToDate truncates a DateTime's time-of-day. Only the host's own zone is
// supported.
func (c *DefaultCalculator) ToDate(v any, zoneID string) (any, error) {
	dt, ok := v.(DateTime)
	if !ok {
		return nil, notCompatible(v)
	}
	if err := c.requireSystemZone(zoneID); err != nil {
		return nil, err
	}
	y, m, day := dt.t.In(time.Local).Date()
	return Date{t: time.Date(y, m, day, 0, 0, 0, 0, time.UTC)}, nil
}

// calendarParts extracts the comparison view of either value kind: calendar
// day fields, the underlying instant, and its UTC offset. Dates live at
// midnight UTC, so their offset is zero by construction.
type parts struct {
	year, month, day int
	instant          int64
	offset           int
}

func (c *DefaultCalculator) calendarParts(v any) (parts, error) {
	switch x := v.(type) {
	case Date:
		y, m, d := x.t.Date()
		return parts{year: y, month: int(m), day: d, instant: x.t.Unix()}, nil
	case DateTime:
		t := x.t.In(time.Local)
		_, offset := t.Zone()
		return parts{year: t.Year(), month: int(t.Month()), day: t.Day(), instant: t.Unix(), offset: offset}, nil
	default:
		return parts{}, notCompatible(v)
	}
}

// monthsBetween counts whole elapsed months from the earlier to the later
// date, crediting the final partial month only when the later day-of-month
// has reached the earlier one. Jan-30 to Feb-29 is therefore 0 months while
// Jan-29 to Feb-29 is 1.
func monthsBetween(earlier, later parts) int {
	n := 12*(later.year-earlier.year) + (later.month - earlier.month)
	if later.day < earlier.day {
		n--
	}
	return n
}

// addCalendar applies a signed field addition to calendar fields, with
// carry into higher-order fields and month-end clamping on the original
// day-of-month for YEAR/MONTH.
func addCalendar(year, month, day int, f Field, amount int) (int, int, int) {
	switch f {
	case Year:
		year += amount
		return year, month, clampDay(day, year, month)
	case Month:
		total := (month - 1) + amount
		year += floorDiv(total, 12)
		month = mod(total, 12) + 1
		return year, month, clampDay(day, year, month)
	default:
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, amount)
		return t.Year(), int(t.Month()), t.Day()
	}
}

// clampDay pulls a day-of-month back to the last valid day of the month.
func clampDay(day, year, month int) int {
	if max := daysInMonth(year, month); day > max {
		return max
	}
	return day
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// mod returns the non-negative remainder of a / b.
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// validateCalendar checks a full (year, month, day) combination.
func validateCalendar(year, month, day int) error {
	if err := validateFieldValue(Year, year); err != nil {
		return err
	}
	if err := validateFieldValue(Month, month); err != nil {
		return err
	}
	if day < 1 || day > daysInMonth(year, month) {
		return fmt.Errorf("day %d does not exist in %04d-%02d: %w", day, year, month, types.ErrFieldOutOfRange)
	}
	return nil
}

// validateClock checks a full (hour, minute, second) combination.
func validateClock(hour, minute, second int) error {
	if err := validateFieldValue(Hour, hour); err != nil {
		return err
	}
	if err := validateFieldValue(Minute, minute); err != nil {
		return err
	}
	return validateFieldValue(Second, second)
}

// location resolves a zone id for instant-field access. Empty and SYSTEM
// mean the host zone; anything else resolves through the zone database.
func (c *DefaultCalculator) location(zoneID string) (*time.Location, error) {
	if zoneID == "" || zoneID == SystemZone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone '%s': %w", zoneID, types.ErrZoneNotSupported)
	}
	return loc, nil
}

// requireSystemZone enforces the default calculator's reference-clock
// restriction for Today, ToDate and ToDateTime.
func (c *DefaultCalculator) requireSystemZone(zoneID string) error {
	if zoneID == "" || zoneID == SystemZone || zoneID == time.Local.String() {
		return nil
	}
	return fmt.Errorf("default date calculator %w (requested zone '%s')", types.ErrZoneNotSupported, zoneID)
}
