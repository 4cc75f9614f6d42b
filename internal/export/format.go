package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// FormatCell renders a record value as report text.
// Dates print as YYYY-MM-DD, whole numbers without decimals and other
// numbers with two decimals.
func FormatCell(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case pgtype.Numeric:
		f, ok := numericValue(val)
		if !ok {
			return ""
		}
		return formatFloat(f)

	case pgtype.Date:
		if !val.Valid {
			return ""
		}
		return val.Time.Format("2006-01-02")

	case pgtype.Text:
		if !val.Valid {
			return ""
		}
		return val.String

	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")

	case bool:
		if val {
			return "Yes"
		}
		return "No"

	case int64:
		return strconv.FormatInt(val, 10)

	case float64:
		return formatFloat(val)

	case string:
		return val

	default:
		return fmt.Sprintf("%v", v)
	}
}

// cellValue returns a spreadsheet-native value: numbers stay numeric.
func cellValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if f, ok := numericValue(val); ok {
			return f
		}
		return nil
	case int64, float64:
		return val
	}
	return FormatCell(v)
}

func numericValue(n pgtype.Numeric) (float64, bool) {
	if !n.Valid {
		return 0, false
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, false
	}
	return f.Float64, true
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%.2f", f)
}
