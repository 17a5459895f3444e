package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// Snapshot reads the full product table once. Every per-request decision
// (stock check, pricing, the public listing) works from one snapshot.
func (r *Repo) Snapshot(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, description, base_price, category, image, stock, featured, tax_rate, cost
		FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.BasePrice, &p.Category,
			&p.Image, &p.Stock, &p.Featured, &p.TaxRatePercent, &p.Cost); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateOrder persists the order header, its lines, and the stock
// decrements in a single transaction. The decrement is conditional
// (stock >= qty), so two concurrent orders racing for the same product
// cannot drive stock negative: the loser rolls back with a StockError.
func (r *Repo) CreateOrder(ctx context.Context, o *Order, lines []OrderLine) (string, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o.ID = NewOrderID(time.Now())
	o.Status = StatusPending

	_, err = tx.Exec(ctx, `
		INSERT INTO pedidos(id, created_at, customer_name, customer_email, customer_phone,
		                    customer_address, subtotal, tax_total, total, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID, o.CreatedAt, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.CustomerAddress, o.Subtotal, o.TaxTotal, o.Total, o.Status)
	if err != nil {
		return "", err
	}

	for i := range lines {
		lines[i].OrderID = o.ID
		ln := lines[i]
		_, err = tx.Exec(ctx, `
			INSERT INTO detalle_pedidos(order_id, product_id, product_name, qty, base_price,
			                            tax_rate, tax_amount, final_price, line_subtotal)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			ln.OrderID, ln.ProductID, ln.ProductName, ln.Quantity, ln.BasePrice,
			ln.TaxRatePercent, ln.TaxAmount, ln.FinalPrice, ln.LineSubtotal)
		if err != nil {
			return "", err
		}
	}

	var shortages []StockShortage
	for _, ln := range lines {
		ct, err := tx.Exec(ctx, `UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
			ln.ProductID, ln.Quantity)
		if err != nil {
			return "", err
		}
		if ct.RowsAffected() == 1 {
			continue
		}
		// Lost the race since the snapshot was taken; report the live stock.
		var live int
		if err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, ln.ProductID).Scan(&live); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				shortages = append(shortages, StockShortage{ProductID: ln.ProductID, Name: ln.ProductName, Requested: ln.Quantity, Missing: true})
				continue
			}
			return "", err
		}
		shortages = append(shortages, StockShortage{
			ProductID: ln.ProductID, Name: ln.ProductName, Requested: ln.Quantity, Available: live,
		})
	}
	if len(shortages) > 0 {
		return "", &StockError{Shortages: shortages} // rollback via defer
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return o.ID, nil
}
