// Package storage persists published snapshots and the watchlist in
// PostgreSQL. The database is not on the query path (queries run against the
// in-memory snapshot); it only guarantees the last fully-ingested snapshot
// survives a restart.
package storage

import (
	"database/sql"
	"errors"

	"github.com/guttosm/screenpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// SnapshotRepository defines the contract for DB operations.
type SnapshotRepository interface {
	// SaveSnapshot replaces the persisted snapshot wholesale in one
	// transaction.
	SaveSnapshot(snap *models.Snapshot) error
	// LoadLatest restores the last persisted snapshot; (nil, nil) when none
	// has been persisted yet.
	LoadLatest() (*models.Snapshot, error)

	ReplaceUniverse(tickers []string) error
	CountUniverse() (int, error)

	WatchlistTickers() ([]string, error)
	AddWatchlistTicker(ticker string) error
	RemoveWatchlistTicker(ticker string) error
}

type snapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// recordColumns is the column order shared by the bulk insert and the restore
// query. Keep it in sync with recordArgs and recordDests.
var recordColumns = []string{
	"ticker", "name", "exchange", "country", "sector", "industry",
	"market_cap", "enterprise_value", "last_price", "pe_ratio", "forward_pe",
	"price_to_sales", "price_to_book", "ev_to_ebitda", "ev_to_revenue",
	"gross_margin", "operating_margin", "net_margin", "ebitda_margin",
	"roic", "roe", "roa",
	"revenue_growth_yoy", "revenue_growth_3yr_cagr", "earnings_growth_yoy",
	"debt_to_equity", "net_debt_to_ebitda", "current_ratio",
	"short_percent_float", "short_ratio",
	"pe_5yr_avg", "ev_ebitda_5yr_avg", "gross_margin_5yr_avg",
	"operating_margin_5yr_avg", "net_margin_5yr_avg", "roic_5yr_avg", "roe_5yr_avg",
	"forward_pe_vs_5yr_pct", "ev_ebitda_vs_5yr_pct", "gross_margin_vs_5yr_pct",
	"operating_margin_vs_5yr_pct", "roic_vs_5yr_pct", "roe_vs_5yr_pct",
}

// recordArgs lists insert values in recordColumns order. Nil pointers become
// SQL NULLs.
func recordArgs(c *models.Company) []any {
	return []any{
		c.Ticker, c.Name, c.Exchange, c.Country, c.Sector, c.Industry,
		c.MarketCap, c.EnterpriseValue, c.LastPrice, c.PERatio, c.ForwardPE,
		c.PriceToSales, c.PriceToBook, c.EVToEBITDA, c.EVToRevenue,
		c.GrossMargin, c.OperatingMargin, c.NetMargin, c.EBITDAMargin,
		c.ROIC, c.ROE, c.ROA,
		c.RevenueGrowthYoY, c.RevenueGrowth3YrCAGR, c.EarningsGrowthYoY,
		c.DebtToEquity, c.NetDebtToEBITDA, c.CurrentRatio,
		c.ShortPercentFloat, c.ShortRatio,
		c.PE5YrAvg, c.EVEBITDA5YrAvg, c.GrossMargin5YrAvg,
		c.OperatingMargin5YrAvg, c.NetMargin5YrAvg, c.ROIC5YrAvg, c.ROE5YrAvg,
		c.ForwardPEVs5YrPct, c.EVEBITDAVs5YrPct, c.GrossMarginVs5YrPct,
		c.OperatingMarginVs5YrPct, c.ROICVs5YrPct, c.ROEVs5YrPct,
	}
}

// recordDests lists scan destinations in recordColumns order. SQL NULLs land
// as nil pointers.
func recordDests(c *models.Company) []any {
	return []any{
		&c.Ticker, &c.Name, &c.Exchange, &c.Country, &c.Sector, &c.Industry,
		&c.MarketCap, &c.EnterpriseValue, &c.LastPrice, &c.PERatio, &c.ForwardPE,
		&c.PriceToSales, &c.PriceToBook, &c.EVToEBITDA, &c.EVToRevenue,
		&c.GrossMargin, &c.OperatingMargin, &c.NetMargin, &c.EBITDAMargin,
		&c.ROIC, &c.ROE, &c.ROA,
		&c.RevenueGrowthYoY, &c.RevenueGrowth3YrCAGR, &c.EarningsGrowthYoY,
		&c.DebtToEquity, &c.NetDebtToEBITDA, &c.CurrentRatio,
		&c.ShortPercentFloat, &c.ShortRatio,
		&c.PE5YrAvg, &c.EVEBITDA5YrAvg, &c.GrossMargin5YrAvg,
		&c.OperatingMargin5YrAvg, &c.NetMargin5YrAvg, &c.ROIC5YrAvg, &c.ROE5YrAvg,
		&c.ForwardPEVs5YrPct, &c.EVEBITDAVs5YrPct, &c.GrossMarginVs5YrPct,
		&c.OperatingMarginVs5YrPct, &c.ROICVs5YrPct, &c.ROEVs5YrPct,
	}
}

// SaveSnapshot deletes the previous persisted snapshot, bulk-loads the new
// records via COPY, and updates the snapshot metadata, all in one transaction.
func (r *snapshotRepository) SaveSnapshot(snap *models.Snapshot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`DELETE FROM screener_records`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn("screener_records", recordColumns...))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for i := range snap.Records {
		if _, err := stmt.Exec(recordArgs(&snap.Records[i])...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}
	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO snapshot_log (id, version, created_at, record_count)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET version = EXCLUDED.version,
					  created_at = EXCLUDED.created_at,
					  record_count = EXCLUDED.record_count
	`, snap.Version, snap.CreatedAt, len(snap.Records)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// LoadLatest restores the persisted snapshot, records ordered by ticker.
func (r *snapshotRepository) LoadLatest() (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	err := r.db.QueryRow(`SELECT version, created_at FROM snapshot_log WHERE id = 1`).
		Scan(&snap.Version, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + columnList() + ` FROM screener_records ORDER BY ticker`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c models.Company
		if err := rows.Scan(recordDests(&c)...); err != nil {
			return nil, err
		}
		snap.Records = append(snap.Records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

func columnList() string {
	out := ""
	for i, col := range recordColumns {
		if i > 0 {
			out += ", "
		}
		out += col
	}
	return out
}

// ReplaceUniverse swaps the persisted ticker universe in one transaction.
func (r *snapshotRepository) ReplaceUniverse(tickers []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM universe`); err != nil {
		_ = tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(pq.CopyIn("universe", "ticker"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, t := range tickers {
		if _, err := stmt.Exec(t); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}
	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *snapshotRepository) CountUniverse() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM universe`).Scan(&n)
	return n, err
}

func (r *snapshotRepository) WatchlistTickers() ([]string, error) {
	rows, err := r.db.Query(`SELECT ticker FROM watchlist ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *snapshotRepository) AddWatchlistTicker(ticker string) error {
	_, err := r.db.Exec(`
		INSERT INTO watchlist (ticker) VALUES ($1)
		ON CONFLICT (ticker) DO NOTHING
	`, ticker)
	return err
}

func (r *snapshotRepository) RemoveWatchlistTicker(ticker string) error {
	_, err := r.db.Exec(`DELETE FROM watchlist WHERE ticker = $1`, ticker)
	return err
}
