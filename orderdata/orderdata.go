// Package orderdata is the SQLite-backed order-data collaborator: the
// product snapshot, shipping options, and bump offers a checkout session
// starts from. Read-mostly; the checkout never writes back.
package orderdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/vitrine/order"
)

// Schema creates the catalog tables.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	image_url   TEXT NOT NULL DEFAULT '',
	price_cents INTEGER NOT NULL,
	quantity    INTEGER NOT NULL DEFAULT 1,
	type        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS shipping_options (
	id             TEXT PRIMARY KEY,
	product_id     TEXT NOT NULL REFERENCES products(id),
	name           TEXT NOT NULL,
	price_cents    INTEGER NOT NULL,
	estimated_days INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bump_offers (
	id              TEXT PRIMARY KEY,
	product_id      TEXT NOT NULL REFERENCES products(id),
	name            TEXT NOT NULL,
	image_url       TEXT NOT NULL DEFAULT '',
	price_cents     INTEGER NOT NULL,
	was_price_cents INTEGER NOT NULL DEFAULT 0
);
`

// ErrNoProduct is returned when the catalog has no product to sell.
var ErrNoProduct = errors.New("orderdata: no product in catalog")

// Catalog is everything a checkout session needs from the collaborator.
type Catalog struct {
	Product  order.Product          `json:"product"`
	Shipping []order.ShippingOption `json:"shipping"`
	Bumps    []order.BumpOffer      `json:"bumps"`
}

// Store reads the catalog.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a Store over an opened database with the schema applied.
func New(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Seed inserts a demonstration catalog when the products table is empty, so
// a fresh install renders a working checkout immediately. Idempotent.
func (s *Store) Seed(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return fmt.Errorf("orderdata: seed: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("orderdata: seed: %w", err)
	}
	defer tx.Rollback()

	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO products (id, name, image_url, price_cents, quantity, type) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"prd_demo", "Kit Ferramentas Essencial", "", int64(7900), 1, string(order.Physical)}},
		{`INSERT INTO shipping_options (id, product_id, name, price_cents, estimated_days) VALUES (?, ?, ?, ?, ?)`,
			[]any{"shp_pac", "prd_demo", "PAC", int64(1500), 8}},
		{`INSERT INTO shipping_options (id, product_id, name, price_cents, estimated_days) VALUES (?, ?, ?, ?, ?)`,
			[]any{"shp_sedex", "prd_demo", "SEDEX", int64(2900), 3}},
		{`INSERT INTO bump_offers (id, product_id, name, image_url, price_cents, was_price_cents) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"bmp_case", "prd_demo", "Maleta organizadora", "", int64(1900), int64(2900)}},
	}
	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.q, st.args...); err != nil {
			return fmt.Errorf("orderdata: seed: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("orderdata: seed: %w", err)
	}

	s.logger.Info("orderdata: seeded demonstration catalog")
	return nil
}

// Catalog returns the product plus its shipping options and bump offers.
// With multiple products, the first by id wins — one checkout sells one
// product.
func (s *Store) Catalog(ctx context.Context) (Catalog, error) {
	var cat Catalog
	var typ string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, image_url, price_cents, quantity, type
		FROM products ORDER BY id LIMIT 1`).Scan(
		&cat.Product.ID, &cat.Product.Name, &cat.Product.ImageURL,
		&cat.Product.UnitPriceCents, &cat.Product.Quantity, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return Catalog{}, ErrNoProduct
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("orderdata: catalog: %w", err)
	}
	cat.Product.Type = order.ProductType(typ)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price_cents, estimated_days
		FROM shipping_options WHERE product_id = ? ORDER BY price_cents`, cat.Product.ID)
	if err != nil {
		return Catalog{}, fmt.Errorf("orderdata: shipping: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o order.ShippingOption
		if err := rows.Scan(&o.ID, &o.Name, &o.PriceCents, &o.EstimatedDays); err != nil {
			return Catalog{}, fmt.Errorf("orderdata: shipping: %w", err)
		}
		cat.Shipping = append(cat.Shipping, o)
	}
	if err := rows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("orderdata: shipping: %w", err)
	}

	brows, err := s.db.QueryContext(ctx, `
		SELECT id, name, image_url, price_cents, was_price_cents
		FROM bump_offers WHERE product_id = ? ORDER BY id`, cat.Product.ID)
	if err != nil {
		return Catalog{}, fmt.Errorf("orderdata: bumps: %w", err)
	}
	defer brows.Close()
	for brows.Next() {
		var b order.BumpOffer
		if err := brows.Scan(&b.ID, &b.Name, &b.ImageURL, &b.PriceCents, &b.WasPriceCents); err != nil {
			return Catalog{}, fmt.Errorf("orderdata: bumps: %w", err)
		}
		cat.Bumps = append(cat.Bumps, b)
	}
	if err := brows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("orderdata: bumps: %w", err)
	}

	return cat, nil
}
