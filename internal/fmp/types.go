package fmp

// Wire types for the FMP endpoints the pipeline consumes. Numeric fields are
// pointers because FMP returns null for anything it does not know.

// ListedStock is one entry of GET /v3/stock/list.
type ListedStock struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Exchange          string `json:"exchange"`
	ExchangeShortName string `json:"exchangeShortName"`
	Type              string `json:"type"`
}

// Profile is one entry of GET /v3/profile/{ticker}.
type Profile struct {
	Symbol   string `json:"symbol"`
	Country  string `json:"country"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// IncomeStatement is one annual row of GET /v3/income-statement/{ticker}.
// Rows arrive most recent first.
type IncomeStatement struct {
	Date                 string   `json:"date"`
	CalendarYear         string   `json:"calendarYear"`
	Revenue              *float64 `json:"revenue"`
	GrossProfitRatio     *float64 `json:"grossProfitRatio"`
	OperatingIncomeRatio *float64 `json:"operatingIncomeRatio"`
	EBITDARatio          *float64 `json:"ebitdaratio"`
	NetIncome            *float64 `json:"netIncome"`
	NetIncomeRatio       *float64 `json:"netIncomeRatio"`
}

// KeyMetrics is one annual row of GET /v3/key-metrics/{ticker}.
// Rows arrive most recent first.
type KeyMetrics struct {
	Date            string   `json:"date"`
	PERatio         *float64 `json:"peRatio"`
	ForwardPE       *float64 `json:"forwardPE"`
	PriceToSales    *float64 `json:"priceToSalesRatio"`
	PriceToBook     *float64 `json:"pbRatio"`
	EVToEBITDA      *float64 `json:"enterpriseValueOverEBITDA"`
	EVToRevenue     *float64 `json:"evToRevenue"`
	EnterpriseValue *float64 `json:"enterpriseValue"`
	MarketCap       *float64 `json:"marketCap"`
	ROIC            *float64 `json:"roic"`
	ROE             *float64 `json:"roe"`
	ROA             *float64 `json:"returnOnAssets"`
	DebtToEquity    *float64 `json:"debtToEquity"`
	NetDebtToEBITDA *float64 `json:"netDebtToEBITDA"`
	CurrentRatio    *float64 `json:"currentRatio"`
}

// Quote is one entry of GET /v3/quote/{tickers}.
type Quote struct {
	Symbol    string   `json:"symbol"`
	Price     *float64 `json:"price"`
	MarketCap *float64 `json:"marketCap"`
	PE        *float64 `json:"pe"`
}
