package functions

import (
	"github.com/gavelhq/gavel/internal/date"
)

// builtinDeclarations is the complete built-in function library, grouped
// by domain. The table is read once by NewBuilder; user registrations are
// checked against it for collisions.
var builtinDeclarations = []Declaration{
	// Array functions
	{Name: "Count", Implementation: fnCount},
	{Name: "Flat", Implementation: fnFlat},
	{Name: "Join", Implementation: fnJoin},

	// Set functions
	{Name: "Union", Implementation: fnUnion},
	{Name: "Intersection", Implementation: fnIntersection},
	{Name: "Difference", Implementation: fnDifference},
	{Name: "SymmetricDifference", Implementation: fnSymmetricDifference},
	{Name: "Distinct", Implementation: fnDistinct},

	// Quantifier functions
	{Name: "Any", Implementation: fnAny},
	{Name: "All", Implementation: fnAll},

	// String functions
	{Name: "Substring", Implementation: fnSubstring},
	{Name: "PadLeft", Implementation: fnPadLeft},
	{Name: "PadRight", Implementation: fnPadRight},
	{Name: "StartsWith", Implementation: fnStartsWith},
	{Name: "EndsWith", Implementation: fnEndsWith},
	{Name: "Includes", Implementation: fnIncludes},
	{Name: "Upper", Implementation: fnUpper},
	{Name: "Lower", Implementation: fnLower},
	{Name: "Trim", Implementation: fnTrim},
	{Name: "IsBlank", Implementation: fnIsBlank},
	{Name: "Concat", Implementation: fnConcat},
	{Name: "NumberToString", Implementation: fnNumberToString},

	// Math and aggregate functions
	{Name: "Sum", Implementation: fnSum},
	{Name: "Avg", Implementation: fnAvg},
	{Name: "Min", Implementation: fnMin},
	{Name: "Max", Implementation: fnMax},
	{Name: "Abs", Implementation: fnAbs},
	{Name: "Sign", Implementation: fnSign},
	{Name: "Floor", Implementation: fnFloor},
	{Name: "Ceil", Implementation: fnCeil},
	{Name: "Round", Implementation: fnRound},
	{Name: "RoundEven", Implementation: fnRoundEven},
	{Name: "Sqrt", Implementation: fnSqrt},
	{Name: "NumberSequence", Implementation: fnNumberSequence},

	// Money functions
	{Name: "FromMoney", Implementation: fnFromMoney},

	// Date functions
	{Name: "Date", Implementation: fnDate},
	{Name: "DateTime", Implementation: fnDateTime},
	{Name: "Today", Implementation: fnToday},
	{Name: "Now", Implementation: fnNow},
	{Name: "GetYear", Implementation: fieldGetter("GetYear", date.Year)},
	{Name: "GetMonth", Implementation: fieldGetter("GetMonth", date.Month)},
	{Name: "GetDay", Implementation: fieldGetter("GetDay", date.DayOfMonth)},
	{Name: "GetHour", Implementation: fieldGetter("GetHour", date.Hour)},
	{Name: "GetMinute", Implementation: fieldGetter("GetMinute", date.Minute)},
	{Name: "GetSecond", Implementation: fieldGetter("GetSecond", date.Second)},
	{Name: "WithYear", Implementation: fieldSetter("WithYear", date.Year)},
	{Name: "WithMonth", Implementation: fieldSetter("WithMonth", date.Month)},
	{Name: "WithDay", Implementation: fieldSetter("WithDay", date.DayOfMonth)},
	{Name: "PlusYears", Implementation: fieldAdder("PlusYears", date.Year)},
	{Name: "PlusMonths", Implementation: fieldAdder("PlusMonths", date.Month)},
	{Name: "PlusDays", Implementation: fieldAdder("PlusDays", date.DayOfMonth)},
	{Name: "PlusHours", Implementation: fieldAdder("PlusHours", date.Hour)},
	{Name: "PlusMinutes", Implementation: fieldAdder("PlusMinutes", date.Minute)},
	{Name: "PlusSeconds", Implementation: fieldAdder("PlusSeconds", date.Second)},
	{Name: "NumberOfYearsBetween", Implementation: fieldDifference("NumberOfYearsBetween", date.Year)},
	{Name: "NumberOfMonthsBetween", Implementation: fieldDifference("NumberOfMonthsBetween", date.Month)},
	{Name: "NumberOfDaysBetween", Implementation: fieldDifference("NumberOfDaysBetween", date.DayOfMonth)},
	{Name: "IsDateBetween", Implementation: fnIsDateBetween},
	{Name: "AsDate", Implementation: fnAsDate},
	{Name: "AsDateTime", Implementation: fnAsDateTime},
	{Name: "Format", Implementation: fnFormat},

	// Native operator functions
	{Name: "_eq", Implementation: fnEq},
	{Name: "_neq", Implementation: fnNeq},
	{Name: "_lt", Implementation: fnLt},
	{Name: "_lte", Implementation: fnLte},
	{Name: "_mt", Implementation: fnMt},
	{Name: "_mte", Implementation: fnMte},
	{Name: "_in", Implementation: fnIn},
	{Name: "_add", Implementation: fnAdd},
	{Name: "_sub", Implementation: fnSub},
	{Name: "_mult", Implementation: fnMult},
	{Name: "_div", Implementation: fnDiv},
	{Name: "_mod", Implementation: fnMod},
	{Name: "_pow", Implementation: fnPow},
	{Name: "_neg", Implementation: fnNeg},
	{Name: "_not", Implementation: fnNot},
}
