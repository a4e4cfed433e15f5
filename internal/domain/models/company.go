package models

// Company is one screened company record. It is assembled wholesale by the
// ingestion pipeline and never mutated field-by-field afterwards; query paths
// only ever read it.
//
// All ratio fields are pointers: an upstream gap (missing statement, undefined
// average) is a null, not a zero, and nulls are excluded from filter matches.
//
// Ticker is the unique key within a snapshot.
type Company struct {
	// Identity
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Country  string `json:"country"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`

	// Current valuation
	MarketCap       *float64 `json:"market_cap"`
	EnterpriseValue *float64 `json:"enterprise_value"`
	LastPrice       *float64 `json:"last_price"`
	PERatio         *float64 `json:"pe_ratio"`
	ForwardPE       *float64 `json:"forward_pe"`
	PriceToSales    *float64 `json:"price_to_sales"`
	PriceToBook     *float64 `json:"price_to_book"`
	EVToEBITDA      *float64 `json:"ev_to_ebitda"`
	EVToRevenue     *float64 `json:"ev_to_revenue"`

	// Current profitability (decimals, 0.45 = 45%)
	GrossMargin     *float64 `json:"gross_margin"`
	OperatingMargin *float64 `json:"operating_margin"`
	NetMargin       *float64 `json:"net_margin"`
	EBITDAMargin    *float64 `json:"ebitda_margin"`

	// Current returns
	ROIC *float64 `json:"roic"`
	ROE  *float64 `json:"roe"`
	ROA  *float64 `json:"roa"`

	// Growth
	RevenueGrowthYoY     *float64 `json:"revenue_growth_yoy"`
	RevenueGrowth3YrCAGR *float64 `json:"revenue_growth_3yr_cagr"`
	EarningsGrowthYoY    *float64 `json:"earnings_growth_yoy"`

	// Balance sheet
	DebtToEquity    *float64 `json:"debt_to_equity"`
	NetDebtToEBITDA *float64 `json:"net_debt_to_ebitda"`
	CurrentRatio    *float64 `json:"current_ratio"`

	// Short interest
	ShortPercentFloat *float64 `json:"short_percent_float"`
	ShortRatio        *float64 `json:"short_ratio"`

	// 5-year historical averages (most recent period excluded)
	PE5YrAvg              *float64 `json:"pe_5yr_avg"`
	EVEBITDA5YrAvg        *float64 `json:"ev_ebitda_5yr_avg"`
	GrossMargin5YrAvg     *float64 `json:"gross_margin_5yr_avg"`
	OperatingMargin5YrAvg *float64 `json:"operating_margin_5yr_avg"`
	NetMargin5YrAvg       *float64 `json:"net_margin_5yr_avg"`
	ROIC5YrAvg            *float64 `json:"roic_5yr_avg"`
	ROE5YrAvg             *float64 `json:"roe_5yr_avg"`

	// Percent vs 5-year average, (current - avg) / avg. Null when the
	// average is null or zero.
	ForwardPEVs5YrPct       *float64 `json:"forward_pe_vs_5yr_pct"`
	EVEBITDAVs5YrPct        *float64 `json:"ev_ebitda_vs_5yr_pct"`
	GrossMarginVs5YrPct     *float64 `json:"gross_margin_vs_5yr_pct"`
	OperatingMarginVs5YrPct *float64 `json:"operating_margin_vs_5yr_pct"`
	ROICVs5YrPct            *float64 `json:"roic_vs_5yr_pct"`
	ROEVs5YrPct             *float64 `json:"roe_vs_5yr_pct"`
}
