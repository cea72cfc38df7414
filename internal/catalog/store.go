package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"sourcing-dashboard/internal/models"
)

// OpenStore opens the catalog's SQLite database, sets the pragmas the service
// relies on, and validates connectivity.
func OpenStore(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return db, nil
}

// persist upserts the freshly ingested records inside one transaction so a
// partial import never reaches the store.
func (c *Catalog) persist(ctx context.Context, records []models.ProductRecord) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog transaction: %w", err)
	}

	const upsert = `
		INSERT INTO products (name, unit_price_usd, weight_kg, base_duty_rate, section_301_rate)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			unit_price_usd = excluded.unit_price_usd,
			weight_kg = excluded.weight_kg,
			base_duty_rate = excluded.base_duty_rate,
			section_301_rate = excluded.section_301_rate`

	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, upsert,
			rec.Name, rec.UnitPriceUSD, rec.WeightKg, rec.BaseDutyRate, rec.Section301Rate); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert product %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog transaction: %w", err)
	}

	return nil
}
