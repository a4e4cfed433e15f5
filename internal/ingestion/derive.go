package ingestion

import (
	"math"

	"github.com/guttosm/screenpulse/internal/domain/models"
	"github.com/guttosm/screenpulse/internal/fmp"
)

// fundamentals is the raw upstream data fetched for one company before any
// derived metric is computed. Statement and metric rows arrive most recent
// first.
type fundamentals struct {
	stock   fmp.ListedStock
	profile *fmp.Profile
	income  []fmp.IncomeStatement
	metrics []fmp.KeyMetrics
}

// empty reports whether the fetch produced nothing to screen on.
func (f *fundamentals) empty() bool {
	return len(f.income) == 0 && len(f.metrics) == 0
}

// buildRecord turns one company's fetched fundamentals into a screener record,
// computing the 5-year averages and vs-average percentages deterministically
// from the fetched history.
func buildRecord(f *fundamentals) models.Company {
	c := models.Company{
		Ticker:   f.stock.Symbol,
		Name:     f.stock.Name,
		Exchange: f.stock.ExchangeShortName,
	}
	if f.profile != nil {
		c.Country = f.profile.Country
		c.Sector = f.profile.Sector
		c.Industry = f.profile.Industry
	}

	var latestMetric *fmp.KeyMetrics
	if len(f.metrics) > 0 {
		latestMetric = &f.metrics[0]
	}
	var latestIncome *fmp.IncomeStatement
	if len(f.income) > 0 {
		latestIncome = &f.income[0]
	}

	if latestMetric != nil {
		c.MarketCap = latestMetric.MarketCap
		c.EnterpriseValue = latestMetric.EnterpriseValue
		c.PERatio = latestMetric.PERatio
		c.ForwardPE = latestMetric.ForwardPE
		if c.ForwardPE == nil {
			c.ForwardPE = latestMetric.PERatio
		}
		c.PriceToSales = latestMetric.PriceToSales
		c.PriceToBook = latestMetric.PriceToBook
		c.EVToEBITDA = latestMetric.EVToEBITDA
		c.EVToRevenue = latestMetric.EVToRevenue
		c.ROIC = latestMetric.ROIC
		c.ROE = latestMetric.ROE
		c.ROA = latestMetric.ROA
		c.DebtToEquity = latestMetric.DebtToEquity
		c.NetDebtToEBITDA = latestMetric.NetDebtToEBITDA
		c.CurrentRatio = latestMetric.CurrentRatio
	}
	if latestIncome != nil {
		c.GrossMargin = latestIncome.GrossProfitRatio
		c.OperatingMargin = latestIncome.OperatingIncomeRatio
		c.NetMargin = latestIncome.NetIncomeRatio
		c.EBITDAMargin = latestIncome.EBITDARatio
	}

	// Historical windows skip the most recent period and average the prior
	// five, so the "current vs average" comparison never compares a value
	// against a window containing itself.
	histMetrics := window(f.metrics, 1, 5)
	histIncome := window(f.income, 1, 5)

	c.PE5YrAvg = safeAvg(collect(histMetrics, func(m fmp.KeyMetrics) *float64 { return m.PERatio }))
	c.EVEBITDA5YrAvg = safeAvg(collect(histMetrics, func(m fmp.KeyMetrics) *float64 { return m.EVToEBITDA }))
	c.ROIC5YrAvg = safeAvg(collect(histMetrics, func(m fmp.KeyMetrics) *float64 { return m.ROIC }))
	c.ROE5YrAvg = safeAvg(collect(histMetrics, func(m fmp.KeyMetrics) *float64 { return m.ROE }))
	c.GrossMargin5YrAvg = safeAvg(collect(histIncome, func(s fmp.IncomeStatement) *float64 { return s.GrossProfitRatio }))
	c.OperatingMargin5YrAvg = safeAvg(collect(histIncome, func(s fmp.IncomeStatement) *float64 { return s.OperatingIncomeRatio }))
	c.NetMargin5YrAvg = safeAvg(collect(histIncome, func(s fmp.IncomeStatement) *float64 { return s.NetIncomeRatio }))

	c.RevenueGrowthYoY, c.RevenueGrowth3YrCAGR = revenueGrowth(f.income)
	c.EarningsGrowthYoY = earningsGrowth(f.income)

	c.ForwardPEVs5YrPct = pctVsAvg(c.ForwardPE, c.PE5YrAvg)
	c.EVEBITDAVs5YrPct = pctVsAvg(c.EVToEBITDA, c.EVEBITDA5YrAvg)
	c.GrossMarginVs5YrPct = pctVsAvg(c.GrossMargin, c.GrossMargin5YrAvg)
	c.OperatingMarginVs5YrPct = pctVsAvg(c.OperatingMargin, c.OperatingMargin5YrAvg)
	c.ROICVs5YrPct = pctVsAvg(c.ROIC, c.ROIC5YrAvg)
	c.ROEVs5YrPct = pctVsAvg(c.ROE, c.ROE5YrAvg)

	return c
}

// window slices rows[offset : offset+n], clipped to bounds.
func window[T any](rows []T, offset, n int) []T {
	if offset >= len(rows) {
		return nil
	}
	end := offset + n
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func collect[T any](rows []T, get func(T) *float64) []*float64 {
	out := make([]*float64, 0, len(rows))
	for _, r := range rows {
		out = append(out, get(r))
	}
	return out
}

// safeAvg averages the non-null values; nil when there are none.
func safeAvg(values []*float64) *float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// pctVsAvg is (current - avg) / avg, null when either side is null or the
// average is zero. Never divides by zero.
func pctVsAvg(current, avg *float64) *float64 {
	if current == nil || avg == nil || *avg == 0 {
		return nil
	}
	pct := (*current - *avg) / *avg
	return &pct
}

// revenueGrowth computes YoY growth from the two most recent statements and
// the 3-year CAGR from a four-statement span.
func revenueGrowth(income []fmp.IncomeStatement) (yoy, cagr3 *float64) {
	if len(income) >= 2 {
		cur, prev := income[0].Revenue, income[1].Revenue
		if cur != nil && prev != nil && *prev != 0 {
			g := (*cur - *prev) / math.Abs(*prev)
			yoy = &g
		}
	}
	if len(income) >= 4 {
		cur, base := income[0].Revenue, income[3].Revenue
		if cur != nil && base != nil && *base > 0 && *cur > 0 {
			g := math.Pow(*cur / *base, 1.0/3.0) - 1
			cagr3 = &g
		}
	}
	return yoy, cagr3
}

func earningsGrowth(income []fmp.IncomeStatement) *float64 {
	if len(income) < 2 {
		return nil
	}
	cur, prev := income[0].NetIncome, income[1].NetIncome
	if cur == nil || prev == nil || *prev == 0 {
		return nil
	}
	g := (*cur - *prev) / math.Abs(*prev)
	return &g
}
