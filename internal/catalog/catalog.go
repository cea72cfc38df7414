// Package catalog ingests the product reference CSV, persists it to the
// SQLite store, and serves reads from an in-memory index. The index is
// populated once at startup and never mutated afterward, so reads need no
// coordination beyond the load-time lock.
package catalog

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sourcing-dashboard/internal/models"
)

const maxParseWorkers = 8

// csvHeader is the expected column order of the product reference file.
var csvHeader = []string{"Product_Name", "Unit_Price_USD", "Weight_kg", "Base_Duty_Rate", "Section_301_Tariff"}

type Catalog struct {
	mu       sync.RWMutex
	byName   map[string]models.ProductRecord
	names    []string
	source   string
	loadedAt time.Time
	db       *sql.DB
	logger   *slog.Logger
}

// New builds an empty catalog. db may be nil, in which case ingested records
// are kept in memory only (used by tests).
func New(db *sql.DB) *Catalog {
	return &Catalog{
		byName: make(map[string]models.ProductRecord),
		db:     db,
		logger: slog.Default(),
	}
}

// LoadFromCSV ingests the reference file, normalizes rate columns to
// fractions, persists the rows, and swaps in the in-memory index. Any failure
// here is fatal for the process; the service never runs on partial data.
func (c *Catalog) LoadFromCSV(ctx context.Context, filename string) error {
	start := time.Now()

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("read catalog csv: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("catalog file %q is empty", filename)
	}
	if err := checkHeader(rows[0]); err != nil {
		return err
	}
	if len(rows) < 2 {
		return fmt.Errorf("catalog file %q has no product rows", filename)
	}

	records := make([]models.ProductRecord, len(rows)-1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParseWorkers)
	for i, row := range rows[1:] {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rec, err := parseProductRow(row)
			if err != nil {
				return fmt.Errorf("catalog row %d: %w", i+2, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("process catalog csv: %w", err)
	}

	if c.db != nil {
		if err := c.persist(ctx, records); err != nil {
			return fmt.Errorf("persist catalog: %w", err)
		}
	}

	c.SetRecords(records)
	c.mu.Lock()
	c.source = filename
	c.mu.Unlock()

	c.logger.Info("catalog loaded",
		"file", filename,
		"products", len(records),
		"duration", time.Since(start),
	)
	return nil
}

// SetRecords replaces the in-memory index, preserving record order for the
// product selector.
func (c *Catalog) SetRecords(records []models.ProductRecord) {
	byName := make(map[string]models.ProductRecord, len(records))
	names := make([]string, 0, len(records))
	for _, rec := range records {
		if _, seen := byName[rec.Name]; !seen {
			names = append(names, rec.Name)
		}
		byName[rec.Name] = rec
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName = byName
	c.names = names
	c.loadedAt = time.Now()
}

// Product returns the record for a SKU name.
func (c *Catalog) Product(name string) (models.ProductRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.byName[name]
	return rec, ok
}

// Products returns all records in catalog order.
func (c *Catalog) Products() []models.ProductRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.ProductRecord, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}

// Stats reports catalog metadata for the admin endpoint.
func (c *Catalog) Stats() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]any{
		"product_count": len(c.names),
		"source":        c.source,
		"loaded_at":     c.loadedAt,
	}
}

func checkHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("catalog header has %d columns, want %d", len(header), len(csvHeader))
	}
	for i, col := range csvHeader {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("catalog header column %d is %q, want %q", i+1, header[i], col)
		}
	}
	return nil
}

func parseProductRow(row []string) (models.ProductRecord, error) {
	if len(row) != len(csvHeader) {
		return models.ProductRecord{}, fmt.Errorf("has %d columns, want %d", len(row), len(csvHeader))
	}

	name := strings.TrimSpace(row[0])
	if name == "" {
		return models.ProductRecord{}, fmt.Errorf("empty product name")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return models.ProductRecord{}, fmt.Errorf("parse unit price %q: %w", row[1], err)
	}
	if price < 0 {
		return models.ProductRecord{}, fmt.Errorf("negative unit price %v", price)
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return models.ProductRecord{}, fmt.Errorf("parse weight %q: %w", row[2], err)
	}
	if weight < 0 {
		return models.ProductRecord{}, fmt.Errorf("negative weight %v", weight)
	}

	baseDuty, err := ParseRate(row[3])
	if err != nil {
		return models.ProductRecord{}, err
	}
	s301, err := ParseRate(row[4])
	if err != nil {
		return models.ProductRecord{}, err
	}

	return models.ProductRecord{
		Name:           name,
		UnitPriceUSD:   price,
		WeightKg:       weight,
		BaseDutyRate:   baseDuty,
		Section301Rate: s301,
	}, nil
}

// ParseRate normalizes a duty or tariff cell to a fraction in [0,1]. The
// input may be a percent string ("7.5%") or an already-normalized fraction
// ("0.075"); the output is always a fraction. Nothing downstream of ingestion
// ever re-interprets percent syntax.
func ParseRate(raw string) (float64, error) {
	s := strings.TrimSpace(raw)

	isPercent := false
	if rest, ok := strings.CutSuffix(s, "%"); ok {
		isPercent = true
		s = strings.TrimSpace(rest)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse rate %q: %w", raw, err)
	}
	if isPercent {
		v /= 100
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("rate %q is outside [0,1] after normalization", raw)
	}
	return v, nil
}
