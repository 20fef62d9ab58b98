package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bizarre-bazaar/internal/model"

	"github.com/shopspring/decimal"
)

var sqliteSchema = []string{`CREATE TABLE IF NOT EXISTS suppliers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	location TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL,
	rating REAL NOT NULL DEFAULT 0,
	total_reviews INTEGER NOT NULL DEFAULT 0
)`, `CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	price TEXT NOT NULL,
	stock INTEGER NOT NULL,
	status TEXT NOT NULL,
	supplier_id TEXT NOT NULL REFERENCES suppliers(id)
)`, `CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	product_id TEXT NOT NULL REFERENCES products(id),
	customer_name TEXT NOT NULL,
	rating INTEGER NOT NULL,
	comment TEXT NOT NULL,
	created_at TEXT NOT NULL
)`}

// SQLiteSource reads the seed from a sqlite file with the tables above.
// Rows come back in id order.
type SQLiteSource struct {
	DB *sql.DB
}

func (SQLiteSource) Name() string { return "sqlite" }

func (s SQLiteSource) Load(ctx context.Context) (*model.Catalog, error) {
	ctx, span := SeedTracer.Start(ctx, "SQLiteSource.Load")
	defer span.End()

	c := &model.Catalog{}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, location, phone, email, rating, total_reviews FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select suppliers: %w", err)
	}
	for rows.Next() {
		var sp model.Supplier
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Location, &sp.Phone, &sp.Email, &sp.Rating, &sp.TotalReviews); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		c.Suppliers = append(c.Suppliers, sp)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.DB.QueryContext(ctx, `SELECT id, name, category, price, stock, status, supplier_id FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	for rows.Next() {
		var (
			p     model.Product
			price string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &price, &p.Stock, &p.Status, &p.SupplierID); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("product %s price: %w", p.ID, err)
		}
		c.Products = append(c.Products, p)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.DB.QueryContext(ctx, `SELECT id, product_id, customer_name, rating, comment, created_at FROM reviews ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	for rows.Next() {
		var (
			r       model.Review
			created string
		)
		if err := rows.Scan(&r.ID, &r.ProductID, &r.CustomerName, &r.Rating, &r.Comment, &created); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan review: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("review %s created_at: %w", r.ID, err)
		}
		c.Reviews = append(c.Reviews, r)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return c, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterate rows: %w", err)
	}
	return rows.Close()
}

// WriteSQLite creates the seed tables and replaces their contents with c.
// It prepares seed files; the running service never writes to them.
func WriteSQLite(ctx context.Context, db *sql.DB, c *model.Catalog) (retErr error) {
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{`DELETE FROM reviews`, `DELETE FROM products`, `DELETE FROM suppliers`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}
	for _, s := range c.Suppliers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO suppliers(id,name,location,phone,email,rating,total_reviews) VALUES(?,?,?,?,?,?,?)`,
			s.ID, s.Name, s.Location, s.Phone, s.Email, s.Rating, s.TotalReviews); err != nil {
			return fmt.Errorf("insert supplier %s: %w", s.ID, err)
		}
	}
	for _, p := range c.Products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products(id,name,category,price,stock,status,supplier_id) VALUES(?,?,?,?,?,?,?)`,
			p.ID, p.Name, string(p.Category), p.Price.StringFixed(2), p.Stock, string(p.Status), p.SupplierID); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}
	for _, r := range c.Reviews {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reviews(id,product_id,customer_name,rating,comment,created_at) VALUES(?,?,?,?,?,?)`,
			r.ID, r.ProductID, r.CustomerName, r.Rating, r.Comment, r.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("insert review %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}
