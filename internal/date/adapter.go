package date

/*
 * Adapter composition.
 *
 * A host application may supply its own high-precision calculator with its
 * own date/datetime representations. The adapter composes it with the
 * default calculator: creation and clock operations go to the custom
 * calculator (it is the preferred implementation), while per-operand
 * operations probe IsDate/IsDateTime and dispatch to whichever calculator
 * recognizes the operand. Mixed-kind binary operations convert both
 * operands to the default representation before computing. An operand
 * recognized by neither calculator is a hard error.
 */

// Adapter composes a custom calculator with the default one.
type Adapter struct {
	custom   Calculator
	fallback Calculator
}

// NewAdapter wraps a custom calculator. A nil fallback selects the default
// calculator.
func NewAdapter(custom, fallback Calculator) *Adapter {
	if fallback == nil {
		fallback = NewDefaultCalculator()
	}
	return &Adapter{custom: custom, fallback: fallback}
}

// IsDate reports recognition by either calculator.
func (a *Adapter) IsDate(v any) bool {
	return a.custom.IsDate(v) || a.fallback.IsDate(v)
}

// IsDateTime reports recognition by either calculator.
func (a *Adapter) IsDateTime(v any) bool {
	return a.custom.IsDateTime(v) || a.fallback.IsDateTime(v)
}

// CreateDate delegates creation to the custom calculator.
func (a *Adapter) CreateDate(iso string) (any, error) {
	return a.custom.CreateDate(iso)
}

// CreateDateFields delegates creation to the custom calculator.
func (a *Adapter) CreateDateFields(year, month, day int) (any, error) {
	return a.custom.CreateDateFields(year, month, day)
}

// CreateDateTime delegates creation to the custom calculator.
func (a *Adapter) CreateDateTime(iso, zoneID string) (any, error) {
	return a.custom.CreateDateTime(iso, zoneID)
}

// CreateDateTimeFields delegates creation to the custom calculator.
func (a *Adapter) CreateDateTimeFields(year, month, day, hour, minute, second int, zoneID string) (any, error) {
	return a.custom.CreateDateTimeFields(year, month, day, hour, minute, second, zoneID)
}

// Today delegates to the custom calculator.
func (a *Adapter) Today(zoneID string) (any, error) {
	return a.custom.Today(zoneID)
}

// Now delegates to the custom calculator.
func (a *Adapter) Now() any {
	return a.custom.Now()
}

// GetDateField dispatches on operand recognition.
func (a *Adapter) GetDateField(v any, f Field) (int, error) {
	c, err := a.forDate(v)
	if err != nil {
		return 0, err
	}
	return c.GetDateField(v, f)
}

// GetDateTimeField dispatches on operand recognition.
func (a *Adapter) GetDateTimeField(v any, f Field, zoneID string) (int, error) {
	c, err := a.forDateTime(v)
	if err != nil {
		return 0, err
	}
	return c.GetDateTimeField(v, f, zoneID)
}

// WithDateField dispatches on operand recognition.
func (a *Adapter) WithDateField(v any, f Field, value int) (any, error) {
	c, err := a.forDate(v)
	if err != nil {
		return nil, err
	}
	return c.WithDateField(v, f, value)
}

// WithDateTimeField dispatches on operand recognition.
func (a *Adapter) WithDateTimeField(v any, f Field, value int, zoneID string) (any, error) {
	c, err := a.forDateTime(v)
	if err != nil {
		return nil, err
	}
	return c.WithDateTimeField(v, f, value, zoneID)
}

// AddDateField dispatches on operand recognition.
func (a *Adapter) AddDateField(v any, f Field, amount int) (any, error) {
	c, err := a.forDate(v)
	if err != nil {
		return nil, err
	}
	return c.AddDateField(v, f, amount)
}

// AddDateTimeField dispatches on operand recognition.
func (a *Adapter) AddDateTimeField(v any, f Field, amount int, zoneID string) (any, error) {
	c, err := a.forDateTime(v)
	if err != nil {
		return nil, err
	}
	return c.AddDateTimeField(v, f, amount, zoneID)
}

// DifferenceBetweenDates dispatches to the calculator recognizing both
// operands; a mixed pair is converted to the default representation first.
func (a *Adapter) DifferenceBetweenDates(v1, v2 any, f Field) (int, error) {
	if a.recognizes(a.custom, v1) && a.recognizes(a.custom, v2) {
		return a.custom.DifferenceBetweenDates(v1, v2, f)
	}
	d1, err := ToDefault(a, v1)
	if err != nil {
		return 0, err
	}
	d2, err := ToDefault(a, v2)
	if err != nil {
		return 0, err
	}
	return a.fallback.DifferenceBetweenDates(d1, d2, f)
}

// ToDateTime dispatches on operand recognition.
func (a *Adapter) ToDateTime(v any, zoneID string) (any, error) {
	c, err := a.forDate(v)
	if err != nil {
		return nil, err
	}
	return c.ToDateTime(v, zoneID)
}

// ToDate dispatches on operand recognition.
func (a *Adapter) ToDate(v any, zoneID string) (any, error) {
	c, err := a.forDateTime(v)
	if err != nil {
		return nil, err
	}
	return c.ToDate(v, zoneID)
}

// forDate selects the calculator recognizing v as a date, custom first.
func (a *Adapter) forDate(v any) (Calculator, error) {
	if a.custom.IsDate(v) {
		return a.custom, nil
	}
	if a.fallback.IsDate(v) {
		return a.fallback, nil
	}
	return nil, notCompatible(v)
}

// forDateTime selects the calculator recognizing v as a datetime, custom first.
func (a *Adapter) forDateTime(v any) (Calculator, error) {
	if a.custom.IsDateTime(v) {
		return a.custom, nil
	}
	if a.fallback.IsDateTime(v) {
		return a.fallback, nil
	}
	return nil, notCompatible(v)
}

// recognizes reports whether c accepts v as either kind.
func (a *Adapter) recognizes(c Calculator, v any) bool {
	return c.IsDate(v) || c.IsDateTime(v)
}

// ToDefault rebuilds v in the default calculator's representation.
// Default-representation values pass through; custom dates and datetimes
// are reconstructed from their calendar fields. Values no calculator
// recognizes fail with the contractual incompatibility error.
func ToDefault(c Calculator, v any) (any, error) {
	switch v.(type) {
	case Date, DateTime:
		return v, nil
	}
	if c == nil {
		return nil, notCompatible(v)
	}
	fallback := Calculator(NewDefaultCalculator())
	if a, ok := c.(*Adapter); ok {
		c, fallback = a.custom, a.fallback
	}
	switch {
	case c.IsDate(v):
		year, err := c.GetDateField(v, Year)
		if err != nil {
			return nil, err
		}
		month, err := c.GetDateField(v, Month)
		if err != nil {
			return nil, err
		}
		day, err := c.GetDateField(v, DayOfMonth)
		if err != nil {
			return nil, err
		}
		return fallback.CreateDateFields(year, month, day)
	case c.IsDateTime(v):
		fields := [6]int{}
		for i, f := range []Field{Year, Month, DayOfMonth, Hour, Minute, Second} {
			n, err := c.GetDateTimeField(v, f, SystemZone)
			if err != nil {
				return nil, err
			}
			fields[i] = n
		}
		return fallback.CreateDateTimeFields(fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], SystemZone)
	default:
		return nil, notCompatible(v)
	}
}
