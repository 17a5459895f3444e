// catalog-import loads a catalog CSV export into the products table.
// The expected column layout matches the storefront's spreadsheet export:
// id, nombre, descripcion, precioBase, categoria, imagen, stock,
// destacado, itbmsPorc, costo. Money and percentage cells may carry
// currency symbols, thousands separators or percent signs.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/tiendazana/storefront-api/internal/catalog"
	"github.com/tiendazana/storefront-api/internal/config"
	"github.com/tiendazana/storefront-api/internal/orders"
	"github.com/tiendazana/storefront-api/internal/postgres"
)

var defaultTaxRate = decimal.NewFromInt(7)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "", "path to the catalog CSV export")
	skipHeader := flag.Bool("skip-header", true, "skip the first row")
	flag.Parse()
	if *file == "" {
		log.Fatal("usage: catalog-import -file <catalog.csv>")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	row, imported := 0, 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("read csv: %v", err)
		}
		row++
		if *skipHeader && row == 1 {
			continue
		}
		p := rowToProduct(rec)
		if p.ID == "" {
			continue
		}
		_, err = db.Exec(ctx, `
			INSERT INTO products(id, name, description, base_price, category, image, stock, featured, tax_rate, cost)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, description = EXCLUDED.description,
				base_price = EXCLUDED.base_price, category = EXCLUDED.category,
				image = EXCLUDED.image, stock = EXCLUDED.stock,
				featured = EXCLUDED.featured, tax_rate = EXCLUDED.tax_rate,
				cost = EXCLUDED.cost`,
			p.ID, p.Name, p.Description, p.BasePrice, p.Category, p.Image,
			p.Stock, p.Featured, p.TaxRatePercent, p.Cost)
		if err != nil {
			log.Fatalf("upsert product %s: %v", p.ID, err)
		}
		imported++
	}
	log.Printf("imported %d products", imported)
}

func rowToProduct(rec []string) orders.Product {
	cell := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}
	return orders.Product{
		ID:             cell(0),
		Name:           cell(1),
		Description:    cell(2),
		BasePrice:      catalog.ParseAmount(cell(3), decimal.Zero),
		Category:       cell(4),
		Image:          cell(5),
		Stock:          catalog.ParseStock(cell(6)),
		Featured:       catalog.ParseFeatured(cell(7)),
		TaxRatePercent: catalog.ParseAmount(cell(8), defaultTaxRate),
		Cost:           catalog.ParseAmount(cell(9), decimal.Zero),
	}
}
