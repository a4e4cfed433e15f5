package screener

import (
	"testing"

	"github.com/guttosm/screenpulse/internal/domain/dto"
	"github.com/guttosm/screenpulse/internal/domain/models"
)

func f64(v float64) *float64 { return &v }

func rec(ticker string, marketCap *float64) models.Company {
	return models.Company{Ticker: ticker, Sector: "Technology", MarketCap: marketCap}
}

func TestCompile_Validation(t *testing.T) {
	cases := []struct {
		name    string
		filter  dto.ScreenFilter
		wantErr bool
	}{
		{name: "unknown field", filter: dto.ScreenFilter{Field: "nope", Operator: "gte", Value: 1.0}, wantErr: true},
		{name: "gt on text field", filter: dto.ScreenFilter{Field: "sector", Operator: "gt", Value: "A"}, wantErr: true},
		{name: "between on text field", filter: dto.ScreenFilter{Field: "sector", Operator: "between", Value: []any{"A", "Z"}}, wantErr: true},
		{name: "text eq with numeric value", filter: dto.ScreenFilter{Field: "sector", Operator: "eq", Value: 3.0}, wantErr: true},
		{name: "unsupported operator", filter: dto.ScreenFilter{Field: "market_cap", Operator: "contains", Value: 1.0}, wantErr: true},
		{name: "between with one value", filter: dto.ScreenFilter{Field: "market_cap", Operator: "between", Value: []any{1.0}}, wantErr: true},
		{name: "between with three values", filter: dto.ScreenFilter{Field: "market_cap", Operator: "between", Value: []any{1.0, 2.0, 3.0}}, wantErr: true},
		{name: "between with scalar", filter: dto.ScreenFilter{Field: "market_cap", Operator: "between", Value: 1.0}, wantErr: true},
		{name: "unparseable numeric string", filter: dto.ScreenFilter{Field: "market_cap", Operator: "gte", Value: "abc"}, wantErr: true},
		{name: "valid numeric", filter: dto.ScreenFilter{Field: "market_cap", Operator: "gte", Value: 1.0}},
		{name: "valid numeric string", filter: dto.ScreenFilter{Field: "market_cap", Operator: "lt", Value: "5e8"}},
		{name: "valid between", filter: dto.ScreenFilter{Field: "market_cap", Operator: "between", Value: []any{1.0, 2.0}}},
		{name: "valid text eq", filter: dto.ScreenFilter{Field: "sector", Operator: "eq", Value: "Technology"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile([]dto.ScreenFilter{tc.filter})
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tc.wantErr)
			}
			if tc.wantErr {
				if _, ok := err.(*ValidationError); !ok {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestPredicate_Operators(t *testing.T) {
	c := rec("AAPL", f64(100))

	cases := []struct {
		name   string
		op     string
		value  any
		expect bool
	}{
		{name: "gt below", op: "gt", value: 99.0, expect: true},
		{name: "gt exact", op: "gt", value: 100.0, expect: false},
		{name: "gte exact", op: "gte", value: 100.0, expect: true},
		{name: "lt above", op: "lt", value: 101.0, expect: true},
		{name: "lt exact", op: "lt", value: 100.0, expect: false},
		{name: "lte exact", op: "lte", value: 100.0, expect: true},
		{name: "eq exact", op: "eq", value: 100.0, expect: true},
		{name: "eq off", op: "eq", value: 100.0001, expect: false},
		{name: "between inside", op: "between", value: []any{50.0, 150.0}, expect: true},
		{name: "between at low bound", op: "between", value: []any{100.0, 150.0}, expect: true},
		{name: "between at high bound", op: "between", value: []any{50.0, 100.0}, expect: true},
		{name: "between outside", op: "between", value: []any{101.0, 150.0}, expect: false},
		{name: "between reversed pair", op: "between", value: []any{150.0, 50.0}, expect: true},
		{name: "between reversed bound exact", op: "between", value: []any{100.0, 50.0}, expect: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pred, err := Compile([]dto.ScreenFilter{{Field: "market_cap", Operator: tc.op, Value: tc.value}})
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if got := pred(&c); got != tc.expect {
				t.Fatalf("match=%v want %v", got, tc.expect)
			}
		})
	}
}

// Records with a null value for the filtered field never match, whatever the
// operator. Nulls must not behave like zero.
func TestPredicate_NullNeverMatches(t *testing.T) {
	c := rec("NULL", nil)
	ops := []struct {
		op    string
		value any
	}{
		{"gt", -1.0}, {"gte", -1.0}, {"lt", 1.0}, {"lte", 1.0}, {"eq", 0.0},
		{"between", []any{-1.0, 1.0}},
	}
	for _, o := range ops {
		pred, err := Compile([]dto.ScreenFilter{{Field: "market_cap", Operator: o.op, Value: o.value}})
		if err != nil {
			t.Fatalf("compile %s: %v", o.op, err)
		}
		if pred(&c) {
			t.Fatalf("operator %s matched a null value", o.op)
		}
	}
}

func TestPredicate_TextEq(t *testing.T) {
	c := rec("AAPL", f64(1))

	pred, err := Compile([]dto.ScreenFilter{{Field: "sector", Operator: "eq", Value: "Technology"}})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !pred(&c) {
		t.Fatal("exact match expected")
	}

	// Case-sensitive exact match.
	pred, _ = Compile([]dto.ScreenFilter{{Field: "sector", Operator: "eq", Value: "technology"}})
	if pred(&c) {
		t.Fatal("text eq must be case-sensitive")
	}

	// Empty field value behaves as absent.
	empty := models.Company{Ticker: "X"}
	pred, _ = Compile([]dto.ScreenFilter{{Field: "sector", Operator: "eq", Value: ""}})
	if pred(&empty) {
		t.Fatal("empty text value must not match")
	}
}

func TestPredicate_AndSemantics(t *testing.T) {
	a := rec("A", f64(100))
	b := models.Company{Ticker: "B", Sector: "Energy", MarketCap: f64(100)}

	pred, err := Compile([]dto.ScreenFilter{
		{Field: "market_cap", Operator: "gte", Value: 50.0},
		{Field: "sector", Operator: "eq", Value: "Technology"},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !pred(&a) || pred(&b) {
		t.Fatalf("AND semantics broken: a=%v b=%v", pred(&a), pred(&b))
	}

	// Empty filter list matches everything.
	pred, err = Compile(nil)
	if err != nil {
		t.Fatalf("compile empty: %v", err)
	}
	if !pred(&a) || !pred(&b) {
		t.Fatal("empty filter list must match every record")
	}
}

// Adding constraints never increases the match count.
func TestPredicate_Monotonicity(t *testing.T) {
	records := []models.Company{
		rec("A", f64(5e8)), rec("B", f64(9e8)), rec("C", f64(1.5e9)), rec("D", nil),
	}
	count := func(filters []dto.ScreenFilter) int {
		pred, err := Compile(filters)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		n := 0
		for i := range records {
			if pred(&records[i]) {
				n++
			}
		}
		return n
	}

	all := count(nil)
	if all != len(records) {
		t.Fatalf("empty filter matched %d of %d", all, len(records))
	}
	one := count([]dto.ScreenFilter{{Field: "market_cap", Operator: "gte", Value: 8e8}})
	two := count([]dto.ScreenFilter{
		{Field: "market_cap", Operator: "gte", Value: 8e8},
		{Field: "market_cap", Operator: "lt", Value: 1e9},
	})
	if one > all || two > one {
		t.Fatalf("monotonicity violated: %d, %d, %d", all, one, two)
	}
}
