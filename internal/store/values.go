package store

import "github.com/jackc/pgx/v5/pgtype"

// normalizeValue converts driver results to the small set of types the
// rest of the application handles: nil, int64, float64, string, bool,
// time.Time and pgtype.Numeric.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case int:
		return int64(x)
	case float32:
		return float64(x)
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		return x
	}
	return v
}
