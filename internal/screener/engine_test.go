package screener

import (
	"testing"
	"time"

	"github.com/guttosm/screenpulse/internal/domain/dto"
	"github.com/guttosm/screenpulse/internal/domain/models"
)

func snap(records ...models.Company) *models.Snapshot {
	return &models.Snapshot{Version: 1, CreatedAt: time.Now().UTC(), Records: records}
}

func matchAll(c *models.Company) bool { return true }

func tickers(records []models.Company) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Ticker
	}
	return out
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRun_UnknownSortField(t *testing.T) {
	_, _, err := Run(snap(), matchAll, "bogus", "desc", 10, 0)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestRun_SortNumeric(t *testing.T) {
	s := snap(
		rec("B", f64(9e8)),
		rec("D", nil),
		rec("A", f64(5e8)),
		rec("C", f64(1.5e9)),
	)

	page, total, err := Run(s, matchAll, "market_cap", "desc", 10, 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if total != 4 {
		t.Fatalf("total=%d", total)
	}
	if !sameOrder(tickers(page), []string{"C", "B", "A", "D"}) {
		t.Fatalf("desc order: %v", tickers(page))
	}

	// Nulls stay last in ascending order too.
	page, _, _ = Run(s, matchAll, "market_cap", "asc", 10, 0)
	if !sameOrder(tickers(page), []string{"A", "B", "C", "D"}) {
		t.Fatalf("asc order: %v", tickers(page))
	}
}

// Reversing direction reverses value order, but tie groups keep their internal
// ticker ordering in both directions.
func TestRun_SortStability(t *testing.T) {
	s := snap(
		rec("C", f64(100)),
		rec("A", f64(100)),
		rec("B", f64(200)),
		rec("D", f64(100)),
	)

	desc, _, _ := Run(s, matchAll, "market_cap", "desc", 10, 0)
	asc, _, _ := Run(s, matchAll, "market_cap", "asc", 10, 0)

	if !sameOrder(tickers(desc), []string{"B", "A", "C", "D"}) {
		t.Fatalf("desc: %v", tickers(desc))
	}
	if !sameOrder(tickers(asc), []string{"A", "C", "D", "B"}) {
		t.Fatalf("asc: %v", tickers(asc))
	}
}

func TestRun_SortText(t *testing.T) {
	a := models.Company{Ticker: "T1", Sector: "Energy"}
	b := models.Company{Ticker: "T2", Sector: "Technology"}
	c := models.Company{Ticker: "T3", Sector: "Energy"}
	s := snap(b, c, a)

	page, _, err := Run(s, matchAll, "sector", "asc", 10, 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !sameOrder(tickers(page), []string{"T1", "T3", "T2"}) {
		t.Fatalf("text asc: %v", tickers(page))
	}
	page, _, _ = Run(s, matchAll, "sector", "desc", 10, 0)
	if !sameOrder(tickers(page), []string{"T2", "T1", "T3"}) {
		t.Fatalf("text desc: %v", tickers(page))
	}
}

// Concatenating all pages over an unchanged snapshot reproduces the full
// result exactly once per record: no duplicates, no gaps.
func TestRun_Pagination(t *testing.T) {
	records := []models.Company{
		rec("A", f64(1)), rec("B", f64(2)), rec("C", f64(3)),
		rec("D", f64(4)), rec("E", f64(5)), rec("F", nil), rec("G", f64(7)),
	}
	s := snap(records...)

	full, total, _ := Run(s, matchAll, "market_cap", "desc", len(records), 0)
	if total != len(records) {
		t.Fatalf("total=%d", total)
	}

	const limit = 3
	var joined []models.Company
	for offset := 0; offset < total; offset += limit {
		page, pageTotal, err := Run(s, matchAll, "market_cap", "desc", limit, offset)
		if err != nil {
			t.Fatalf("page at %d: %v", offset, err)
		}
		if pageTotal != total {
			t.Fatalf("total changed across pages: %d vs %d", pageTotal, total)
		}
		joined = append(joined, page...)
	}

	if !sameOrder(tickers(joined), tickers(full)) {
		t.Fatalf("pages %v != full %v", tickers(joined), tickers(full))
	}
}

func TestRun_OffsetClipping(t *testing.T) {
	s := snap(rec("A", f64(1)), rec("B", f64(2)))

	cases := []struct {
		name     string
		limit    int
		offset   int
		wantLen  int
		wantTot  int
	}{
		{name: "offset beyond total", limit: 10, offset: 5, wantLen: 0, wantTot: 2},
		{name: "offset at total", limit: 10, offset: 2, wantLen: 0, wantTot: 2},
		{name: "limit past end", limit: 10, offset: 1, wantLen: 1, wantTot: 2},
		{name: "negative offset", limit: 10, offset: -3, wantLen: 2, wantTot: 2},
		{name: "zero limit", limit: 0, offset: 0, wantLen: 0, wantTot: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, total, err := Run(s, matchAll, "market_cap", "desc", tc.limit, tc.offset)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if len(page) != tc.wantLen || total != tc.wantTot {
				t.Fatalf("len=%d total=%d, want %d/%d", len(page), total, tc.wantLen, tc.wantTot)
			}
		})
	}
}

func TestRun_NilSnapshot(t *testing.T) {
	page, total, err := Run(nil, matchAll, "market_cap", "desc", 10, 0)
	if err != nil || total != 0 || len(page) != 0 {
		t.Fatalf("nil snapshot: page=%v total=%d err=%v", page, total, err)
	}
}

// End-to-end: three records, filter market_cap gte 8e8, default descending
// market_cap sort.
func TestRun_FilterSortEndToEnd(t *testing.T) {
	s := snap(rec("SML", f64(5e8)), rec("MID", f64(9e8)), rec("BIG", f64(1.5e9)))

	pred, err := Compile([]dto.ScreenFilter{{Field: "market_cap", Operator: "gte", Value: 8e8}})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	page, total, err := Run(s, pred, "market_cap", "desc", 100, 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if total != 2 {
		t.Fatalf("total=%d", total)
	}
	if !sameOrder(tickers(page), []string{"BIG", "MID"}) {
		t.Fatalf("order: %v", tickers(page))
	}
}
