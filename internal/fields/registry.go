// Package fields holds the static catalog of queryable and sortable screener
// fields. The catalog is a closed table resolved once at process start: every
// field name used in a filter or sort request must resolve to exactly one
// descriptor here, and an unresolved name is a validation error upstream, never
// a silent no-op.
package fields

import "github.com/guttosm/screenpulse/internal/domain/models"

// Kind is the semantic type of a field's value.
type Kind string

const (
	KindNumeric Kind = "number"
	KindText    Kind = "string"
)

// Format tells the presentation boundary how to render a field. The core never
// formats values itself.
type Format string

const (
	FormatCurrencyCompact Format = "currency_compact"
	FormatPercent         Format = "percent"
	FormatPercentChange   Format = "percent_change"
	FormatDecimal2        Format = "decimal2"
	FormatPlain           Format = "plain"
)

// Descriptor describes one screener field: its wire name, human label, value
// kind, display format, and a typed accessor into a company record.
//
// Exactly one of Number/Text is set, matching Kind.
type Descriptor struct {
	Name   string
	Label  string
	Kind   Kind
	Format Format

	// Number extracts the field's numeric value; nil means null/absent.
	Number func(c *models.Company) *float64
	// Text extracts the field's text value.
	Text func(c *models.Company) string
}

func text(name, label string, get func(c *models.Company) string) Descriptor {
	return Descriptor{Name: name, Label: label, Kind: KindText, Format: FormatPlain, Text: get}
}

func num(name, label string, format Format, get func(c *models.Company) *float64) Descriptor {
	return Descriptor{Name: name, Label: label, Kind: KindNumeric, Format: format, Number: get}
}

// registry lists every filterable/sortable field in display order.
var registry = []Descriptor{
	// Identifiers
	text("ticker", "Ticker", func(c *models.Company) string { return c.Ticker }),
	text("name", "Company Name", func(c *models.Company) string { return c.Name }),
	text("exchange", "Exchange", func(c *models.Company) string { return c.Exchange }),
	text("country", "Country", func(c *models.Company) string { return c.Country }),
	text("sector", "Sector", func(c *models.Company) string { return c.Sector }),
	text("industry", "Industry", func(c *models.Company) string { return c.Industry }),

	// Valuation
	num("market_cap", "Market Cap", FormatCurrencyCompact, func(c *models.Company) *float64 { return c.MarketCap }),
	num("enterprise_value", "Enterprise Value", FormatCurrencyCompact, func(c *models.Company) *float64 { return c.EnterpriseValue }),
	num("pe_ratio", "P/E Ratio (TTM)", FormatDecimal2, func(c *models.Company) *float64 { return c.PERatio }),
	num("forward_pe", "Forward P/E", FormatDecimal2, func(c *models.Company) *float64 { return c.ForwardPE }),
	num("price_to_sales", "Price/Sales", FormatDecimal2, func(c *models.Company) *float64 { return c.PriceToSales }),
	num("price_to_book", "Price/Book", FormatDecimal2, func(c *models.Company) *float64 { return c.PriceToBook }),
	num("ev_to_ebitda", "EV/EBITDA", FormatDecimal2, func(c *models.Company) *float64 { return c.EVToEBITDA }),
	num("ev_to_revenue", "EV/Revenue", FormatDecimal2, func(c *models.Company) *float64 { return c.EVToRevenue }),

	// Profitability
	num("gross_margin", "Gross Margin", FormatPercent, func(c *models.Company) *float64 { return c.GrossMargin }),
	num("operating_margin", "Operating Margin", FormatPercent, func(c *models.Company) *float64 { return c.OperatingMargin }),
	num("net_margin", "Net Margin", FormatPercent, func(c *models.Company) *float64 { return c.NetMargin }),
	num("ebitda_margin", "EBITDA Margin", FormatPercent, func(c *models.Company) *float64 { return c.EBITDAMargin }),

	// Returns
	num("roic", "ROIC", FormatPercent, func(c *models.Company) *float64 { return c.ROIC }),
	num("roe", "ROE", FormatPercent, func(c *models.Company) *float64 { return c.ROE }),
	num("roa", "ROA", FormatPercent, func(c *models.Company) *float64 { return c.ROA }),

	// Growth
	num("revenue_growth_yoy", "Revenue Growth (YoY)", FormatPercent, func(c *models.Company) *float64 { return c.RevenueGrowthYoY }),
	num("revenue_growth_3yr_cagr", "Revenue Growth (3yr CAGR)", FormatPercent, func(c *models.Company) *float64 { return c.RevenueGrowth3YrCAGR }),
	num("earnings_growth_yoy", "Earnings Growth (YoY)", FormatPercent, func(c *models.Company) *float64 { return c.EarningsGrowthYoY }),

	// Balance sheet
	num("debt_to_equity", "Debt/Equity", FormatDecimal2, func(c *models.Company) *float64 { return c.DebtToEquity }),
	num("net_debt_to_ebitda", "Net Debt/EBITDA", FormatDecimal2, func(c *models.Company) *float64 { return c.NetDebtToEBITDA }),
	num("current_ratio", "Current Ratio", FormatDecimal2, func(c *models.Company) *float64 { return c.CurrentRatio }),

	// Short interest
	num("short_percent_float", "Short % Float", FormatPercent, func(c *models.Company) *float64 { return c.ShortPercentFloat }),
	num("short_ratio", "Short Ratio", FormatDecimal2, func(c *models.Company) *float64 { return c.ShortRatio }),

	// Historical averages
	num("pe_5yr_avg", "P/E (5yr Avg)", FormatDecimal2, func(c *models.Company) *float64 { return c.PE5YrAvg }),
	num("ev_ebitda_5yr_avg", "EV/EBITDA (5yr Avg)", FormatDecimal2, func(c *models.Company) *float64 { return c.EVEBITDA5YrAvg }),
	num("gross_margin_5yr_avg", "Gross Margin (5yr Avg)", FormatPercent, func(c *models.Company) *float64 { return c.GrossMargin5YrAvg }),
	num("operating_margin_5yr_avg", "Op. Margin (5yr Avg)", FormatPercent, func(c *models.Company) *float64 { return c.OperatingMargin5YrAvg }),
	num("net_margin_5yr_avg", "Net Margin (5yr Avg)", FormatPercent, func(c *models.Company) *float64 { return c.NetMargin5YrAvg }),
	num("roic_5yr_avg", "ROIC (5yr Avg)", FormatPercent, func(c *models.Company) *float64 { return c.ROIC5YrAvg }),
	num("roe_5yr_avg", "ROE (5yr Avg)", FormatPercent, func(c *models.Company) *float64 { return c.ROE5YrAvg }),

	// Percent vs historical
	num("forward_pe_vs_5yr_pct", "Forward P/E vs 5yr Avg (%)", FormatPercentChange, func(c *models.Company) *float64 { return c.ForwardPEVs5YrPct }),
	num("ev_ebitda_vs_5yr_pct", "EV/EBITDA vs 5yr Avg (%)", FormatPercentChange, func(c *models.Company) *float64 { return c.EVEBITDAVs5YrPct }),
	num("gross_margin_vs_5yr_pct", "Gross Margin vs 5yr Avg (%)", FormatPercentChange, func(c *models.Company) *float64 { return c.GrossMarginVs5YrPct }),
	num("operating_margin_vs_5yr_pct", "Op. Margin vs 5yr Avg (%)", FormatPercentChange, func(c *models.Company) *float64 { return c.OperatingMarginVs5YrPct }),
	num("roic_vs_5yr_pct", "ROIC vs 5yr Avg (%)", FormatPercentChange, func(c *models.Company) *float64 { return c.ROICVs5YrPct }),
	num("roe_vs_5yr_pct", "ROE vs 5yr Avg (%)", FormatPercentChange, func(c *models.Company) *float64 { return c.ROEVs5YrPct }),
}

// byName indexes the registry; built once at init.
var byName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(registry))
	for _, d := range registry {
		m[d.Name] = d
	}
	return m
}()

// Describe resolves a field name to its descriptor. The second return is false
// for unknown names.
func Describe(name string) (Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// All returns every descriptor in display order. The returned slice must not
// be modified.
func All() []Descriptor {
	return registry
}

// Definition is the wire shape of one field in GET /api/fields.
type Definition struct {
	Label  string `json:"label"`
	Type   Kind   `json:"type"`
	Format Format `json:"format,omitempty"`
}

// Definitions returns the field catalog keyed by field name, as served to the
// filter-builder UI. Text fields carry no display format.
func Definitions() map[string]Definition {
	out := make(map[string]Definition, len(registry))
	for _, d := range registry {
		def := Definition{Label: d.Label, Type: d.Kind}
		if d.Kind == KindNumeric {
			def.Format = d.Format
		}
		out[d.Name] = def
	}
	return out
}
