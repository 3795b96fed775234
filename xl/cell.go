package xl

import (
	"math"
	"strconv"
	"time"
)

// Cell is one position of a row: a raw value plus an optional style. A nil
// Style and a default Style both mean the document-wide default format.
type Cell struct {
	Value any
	Style *CellStyle
}

// NewCell wraps a raw value without style.
func NewCell(v any) Cell {
	return Cell{Value: v}
}

// WithStyle returns a copy of c carrying st.
func (c Cell) WithStyle(st CellStyle) Cell {
	c.Style = &st
	return c
}

// Raw value types understood by the classifier besides strings, Go numbers
// and time.Time.
type (
	// Number is a numeric value already rendered as text, written verbatim.
	Number string
	// Timestamp is a spreadsheet serial date/time, e.g. "44000.5".
	Timestamp string
	// Formula is a cell formula with options. The "value" option holds the
	// cached result.
	Formula struct {
		Expr string
		Opts map[string]string
	}
)

type emptyValue struct{}

// Empty is the raw value of a cell that has a style but no content.
var Empty = emptyValue{}

// CellKind is the classification of a cell value.
type CellKind int

// Cell value kinds.
const (
	CellKindUnrecognized CellKind = iota
	CellKindTimestamp
	CellKindFormula
	CellKindString
	CellKindNumber
	CellKindDate
	CellKindEmpty
)

var cellKindNames = [...]string{"unrecognized", "timestamp", "formula", "string", "number", "date", "empty"}

func (k CellKind) String() string {
	if k < 0 || int(k) >= len(cellKindNames) {
		return "CellKind(" + strconv.Itoa(int(k)) + ")"
	}
	return cellKindNames[k]
}

// CellValue is a classified cell value. Text holds the string, the numeric
// text or the formula expression depending on Kind.
type CellValue struct {
	Kind CellKind
	Text string
	Opts map[string]string // formula options
	Time time.Time         // CellKindDate only
}

// Classify resolves a raw value into a CellValue. isDate tells whether the
// active number format is a date format; it turns numbers into timestamps and
// is required for time.Time values. Unsupported values classify as
// CellKindUnrecognized and are not an error.
func Classify(raw any, isDate bool) CellValue {
	numeric := func(s string) CellValue {
		if isDate {
			return CellValue{Kind: CellKindTimestamp, Text: s}
		}
		return CellValue{Kind: CellKindNumber, Text: s}
	}

	switch v := raw.(type) {
	case string:
		return CellValue{Kind: CellKindString, Text: v}
	case Number:
		if v == "" {
			break
		}
		return numeric(string(v))
	case Timestamp:
		if v == "" {
			break
		}
		return CellValue{Kind: CellKindTimestamp, Text: string(v)}
	case Formula:
		return CellValue{Kind: CellKindFormula, Text: v.Expr, Opts: v.Opts}
	case *Formula:
		if v == nil {
			break
		}
		return CellValue{Kind: CellKindFormula, Text: v.Expr, Opts: v.Opts}
	case time.Time:
		if isDate {
			return CellValue{Kind: CellKindDate, Time: v}
		}
	case emptyValue:
		return CellValue{Kind: CellKindEmpty}
	case int:
		return numeric(strconv.FormatInt(int64(v), 10))
	case int8:
		return numeric(strconv.FormatInt(int64(v), 10))
	case int16:
		return numeric(strconv.FormatInt(int64(v), 10))
	case int32:
		return numeric(strconv.FormatInt(int64(v), 10))
	case int64:
		return numeric(strconv.FormatInt(v, 10))
	case uint:
		return numeric(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return numeric(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return numeric(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return numeric(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return numeric(strconv.FormatUint(v, 10))
	case float32:
		return classifyFloat(float64(v), 32, numeric)
	case float64:
		return classifyFloat(v, 64, numeric)
	}
	return CellValue{Kind: CellKindUnrecognized}
}

func classifyFloat(f float64, bits int, numeric func(string) CellValue) CellValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return CellValue{Kind: CellKindUnrecognized}
	}
	return numeric(strconv.FormatFloat(f, 'g', -1, bits))
}

var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// serialDate converts the wall-clock reading of t into a serial number of
// the 1900 date system. The location of t is ignored.
func serialDate(t time.Time) (string, bool) {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	secs := wall.Unix() - serialEpoch.Unix()
	days := (float64(secs) + float64(wall.Nanosecond())/1e9) / 86400
	if days < 61 {
		// serials below 61 skip the nonexistent 1900-02-29
		days--
	}
	if days < 1 {
		return "", false
	}
	return strconv.FormatFloat(days, 'f', -1, 64), true
}
