package manifest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/schema"
)

// NormalizeTissueID converts a tissue identifier to its stored integer form.
// Integers are range checked; strings have a leading "model_" and then a
// leading "tissue_" stripped before parsing, so "model_tissue_12",
// "tissue_12", "12" and 12 all normalize to 12.
func NormalizeTissueID(v any) (int32, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimPrefix(s, "model_")
		s = strings.TrimPrefix(s, "tissue_")
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, genemanifest.NewQueryError(ColumnTissueID, fmt.Sprintf("invalid tissue id %q", v), err)
		}
		return int32(n), nil
	}

	n, ok := schema.AsInt64(v)
	if !ok {
		return 0, genemanifest.NewQueryError(ColumnTissueID, fmt.Sprintf("unsupported tissue id type %T", v), nil)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, genemanifest.NewQueryError(ColumnTissueID, fmt.Sprintf("tissue id %d out of range", n), nil)
	}
	return int32(n), nil
}
