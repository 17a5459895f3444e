package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// The storefront client expects bare JSON numbers for money fields.
func init() { decimal.MarshalJSONWithoutQuotes = true }

var hundred = decimal.NewFromInt(100)

// Product mirrors one row of the catalog. Cost is operator-only and must
// never reach the public listing.
type Product struct {
	ID             string
	Name           string
	Description    string
	BasePrice      decimal.Decimal
	Category       string
	Image          string
	Stock          int
	Featured       bool
	TaxRatePercent decimal.Decimal
	Cost           decimal.Decimal
}

// TaxAmount is the per-unit ITBMS derived from the catalog rate.
func (p Product) TaxAmount() decimal.Decimal {
	return p.BasePrice.Mul(p.TaxRatePercent).Div(hundred)
}

func (p Product) FinalPrice() decimal.Decimal {
	return p.BasePrice.Add(p.TaxAmount())
}

type Customer struct {
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}

// CartLine is a submitted cart entry. Only ProductID and Quantity are
// honored; the monetary fields are still decoded so older clients keep
// working, but every price is recomputed from the catalog.
type CartLine struct {
	ProductID      string          `json:"id"`
	Name           string          `json:"nombre"`
	Quantity       int             `json:"cantidad"`
	BasePrice      decimal.Decimal `json:"precioBase"`
	TaxRatePercent decimal.Decimal `json:"itbmsPorc"`
	TaxAmount      decimal.Decimal `json:"itbmsMonto"`
	FinalPrice     decimal.Decimal `json:"precioFinal"`
}

const StatusPending = "Pendiente"

// Order is written exactly once and never mutated afterwards.
type Order struct {
	ID              string
	CreatedAt       time.Time
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Subtotal        decimal.Decimal
	TaxTotal        decimal.Decimal
	Total           decimal.Decimal
	Status          string
}

type OrderLine struct {
	OrderID        string
	ProductID      string
	ProductName    string
	Quantity       int
	BasePrice      decimal.Decimal
	TaxRatePercent decimal.Decimal
	TaxAmount      decimal.Decimal
	FinalPrice     decimal.Decimal
	LineSubtotal   decimal.Decimal
}

type Totals struct {
	Subtotal decimal.Decimal
	TaxTotal decimal.Decimal
	Total    decimal.Decimal
}

// FormatFecha renders a timestamp the way the storefront displays it:
// dd/mm/yyyy, hh:mm:ss in the store's timezone.
func FormatFecha(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02/01/2006, 15:04:05")
}
