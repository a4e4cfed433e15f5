package screener

import (
	"sort"

	"github.com/guttosm/screenpulse/internal/domain/models"
	"github.com/guttosm/screenpulse/internal/fields"
)

// Run filters the snapshot through pred, sorts the full matched set, and
// returns one page plus the total match count (counted before slicing).
//
// Sorting: numeric fields order by value with nulls last regardless of
// direction; text fields order lexicographically. Ticker breaks ties
// ascending in both directions, so repeated calls against an unchanged
// snapshot paginate deterministically.
//
// The snapshot is read-only here; Run does O(N log N) work per call and keeps
// no cache between calls. An offset past the end yields an empty page, not an
// error. An unknown sort field is a validation error.
func Run(snap *models.Snapshot, pred Predicate, sortField, sortDir string, limit, offset int) ([]models.Company, int, error) {
	d, ok := fields.Describe(sortField)
	if !ok {
		return nil, 0, &ValidationError{Field: sortField, Msg: "unknown sort field"}
	}
	asc := sortDir == "asc"

	var matched []models.Company
	if snap != nil {
		matched = make([]models.Company, 0, len(snap.Records))
		for i := range snap.Records {
			if pred(&snap.Records[i]) {
				matched = append(matched, snap.Records[i])
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return less(d, asc, &matched[i], &matched[j])
	})

	total := len(matched)
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= total {
		return []models.Company{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// less orders two records for the given sort descriptor and direction.
func less(d fields.Descriptor, asc bool, a, b *models.Company) bool {
	if d.Kind == fields.KindText {
		av, bv := d.Text(a), d.Text(b)
		if av != bv {
			if asc {
				return av < bv
			}
			return av > bv
		}
		return a.Ticker < b.Ticker
	}

	av, bv := d.Number(a), d.Number(b)
	switch {
	case av == nil && bv == nil:
		return a.Ticker < b.Ticker
	case av == nil:
		return false // nulls sort last either direction
	case bv == nil:
		return true
	case *av != *bv:
		if asc {
			return *av < *bv
		}
		return *av > *bv
	default:
		return a.Ticker < b.Ticker
	}
}
