package filter

import (
	"context"

	"github.com/nonibytes/drivesim/drivesim/query"
)

// Apply filters records against the expression, preserving their relative
// order. An empty expression is a no-op and returns the input unchanged.
// On any evaluation error no partial result is returned.
func Apply[R Record](ctx context.Context, m *Matcher, expr query.Expression, records []R) ([]R, error) {
	if len(expr) == 0 {
		return records, nil
	}
	out := make([]R, 0, len(records))
	for _, rec := range records {
		ok, err := Evaluate(ctx, m, rec, expr)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
