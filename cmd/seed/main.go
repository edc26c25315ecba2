package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the procurement database from CSV files",
		Commands: []*cli.Command{
			{
				Name:   "master",
				Usage:  "Seed master data (suppliers and components)",
				Flags:  append([]cli.Flag{newDBURLFlag(), newDataDirFlag()}, archiveFlags()...),
				Action: runMasterSeeder,
			},
			{
				Name:  "procurement",
				Usage: "Seed quotes, purchase orders, line items and cost entries",
				Flags: append([]cli.Flag{
					newDBURLFlag(),
					newDataDirFlag(),
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Truncate procurement tables before seeding",
					},
				}, archiveFlags()...),
				Action: runProcurementSeeder,
			},
			{
				Name:  "all",
				Usage: "Seed master data and procurement data",
				Flags: append([]cli.Flag{
					newDBURLFlag(),
					newDataDirFlag(),
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Truncate procurement tables before seeding",
					},
				}, archiveFlags()...),
				Action: func(c *cli.Context) error {
					if err := runMasterSeeder(c); err != nil {
						return fmt.Errorf("error seeding master data: %w", err)
					}
					if err := runProcurementSeeder(c); err != nil {
						return fmt.Errorf("error seeding procurement data: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openSeedDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func resolveDataDir(c *cli.Context) (string, error) {
	dataDir := c.String("data-dir")
	if !c.Bool("from-archive") {
		return dataDir, nil
	}

	downloader, err := newArchiveDownloader(c)
	if err != nil {
		return "", err
	}
	return downloader.downloadSeeds(c.Context, c.String("archive-prefix"))
}

func runMasterSeeder(c *cli.Context) error {
	db, err := openSeedDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	dataDir, err := resolveDataDir(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Seeding master data...")

	if err := seedSuppliers(ctx, tx, filepath.Join(dataDir, "suppliers.csv")); err != nil {
		return fmt.Errorf("failed to seed suppliers: %w", err)
	}
	if err := seedComponents(ctx, tx, filepath.Join(dataDir, "components.csv")); err != nil {
		return fmt.Errorf("failed to seed components: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Master data seeding completed successfully!")
	return nil
}

func runProcurementSeeder(c *cli.Context) error {
	db, err := openSeedDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	dataDir, err := resolveDataDir(c)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if c.Bool("reset") {
		log.Println("Resetting procurement tables...")
		resetQuery := `
			TRUNCATE TABLE po_cost_entries RESTART IDENTITY CASCADE;
			TRUNCATE TABLE purchase_line_items RESTART IDENTITY CASCADE;
			TRUNCATE TABLE purchase_orders RESTART IDENTITY CASCADE;
			TRUNCATE TABLE price_quote_line_items RESTART IDENTITY CASCADE;
			TRUNCATE TABLE price_quotes RESTART IDENTITY CASCADE;
		`
		if _, err := db.ExecContext(ctx, resetQuery); err != nil {
			return fmt.Errorf("failed to reset procurement tables: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Seeding procurement data...")

	supplierIDs, err := loadKeyIDMap(ctx, tx, "suppliers", "supplier_code")
	if err != nil {
		return err
	}
	componentIDs, err := loadKeyIDMap(ctx, tx, "components", "supplier_model")
	if err != nil {
		return err
	}

	if err := seedQuotes(ctx, tx, filepath.Join(dataDir, "price_quotes.csv"), supplierIDs); err != nil {
		return fmt.Errorf("failed to seed price quotes: %w", err)
	}
	if err := seedQuoteLineItems(ctx, tx, filepath.Join(dataDir, "price_quote_line_items.csv"), componentIDs); err != nil {
		return fmt.Errorf("failed to seed quote line items: %w", err)
	}
	if err := seedPurchaseOrders(ctx, tx, filepath.Join(dataDir, "purchase_orders.csv")); err != nil {
		return fmt.Errorf("failed to seed purchase orders: %w", err)
	}
	if err := seedPurchaseLineItems(ctx, tx, filepath.Join(dataDir, "purchase_line_items.csv"), componentIDs); err != nil {
		return fmt.Errorf("failed to seed purchase line items: %w", err)
	}
	if err := seedCostEntries(ctx, tx, filepath.Join(dataDir, "po_cost_entries.csv")); err != nil {
		return fmt.Errorf("failed to seed cost entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Procurement data seeding completed successfully!")
	return nil
}

func seedSuppliers(ctx context.Context, tx *sql.Tx, filePath string) error {
	const query = `
		INSERT INTO suppliers (supplier_name, supplier_code)
		VALUES ($1, $2)
		ON CONFLICT (supplier_code) DO UPDATE SET
			supplier_name = EXCLUDED.supplier_name,
			updated_at = NOW()
	`
	return seedFromCSV(ctx, tx, "suppliers", filePath,
		[]string{"supplier_name", "supplier_code"},
		func(get func(string) string) ([]interface{}, error) {
			return []interface{}{get("supplier_name"), get("supplier_code")}, nil
		}, query)
}

func seedComponents(ctx context.Context, tx *sql.Tx, filePath string) error {
	const query = `
		INSERT INTO components (supplier_model, internal_description, brand, category)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (supplier_model) DO UPDATE SET
			internal_description = EXCLUDED.internal_description,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			updated_at = NOW()
	`
	return seedFromCSV(ctx, tx, "components", filePath,
		[]string{"supplier_model", "internal_description", "brand", "category"},
		func(get func(string) string) ([]interface{}, error) {
			return []interface{}{
				get("supplier_model"),
				get("internal_description"),
				get("brand"),
				get("category"),
			}, nil
		}, query)
}

func seedQuotes(ctx context.Context, tx *sql.Tx, filePath string, supplierIDs map[string]int64) error {
	const query = `
		INSERT INTO price_quotes (id, supplier_id, quote_date, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			supplier_id = EXCLUDED.supplier_id,
			quote_date = EXCLUDED.quote_date,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			updated_at = NOW()
	`
	return seedFromCSV(ctx, tx, "price_quotes", filePath,
		[]string{"id", "supplier_code", "quote_date", "currency", "status"},
		func(get func(string) string) ([]interface{}, error) {
			supplierID, ok := supplierIDs[get("supplier_code")]
			if !ok {
				return nil, fmt.Errorf("supplier_code %s not found", get("supplier_code"))
			}
			return []interface{}{get("id"), supplierID, get("quote_date"), get("currency"), get("status")}, nil
		}, query)
}

func seedQuoteLineItems(ctx context.Context, tx *sql.Tx, filePath string, componentIDs map[string]int64) error {
	const query = `
		INSERT INTO price_quote_line_items (quote_id, component_id, quantity, unit_price, currency)
		VALUES ($1, $2, $3, $4, $5)
	`
	return seedFromCSV(ctx, tx, "price_quote_line_items", filePath,
		[]string{"quote_id", "supplier_model", "quantity", "unit_price", "currency"},
		func(get func(string) string) ([]interface{}, error) {
			componentID, ok := componentIDs[get("supplier_model")]
			if !ok {
				return nil, fmt.Errorf("supplier_model %s not found", get("supplier_model"))
			}
			return []interface{}{get("quote_id"), componentID, get("quantity"), get("unit_price"), get("currency")}, nil
		}, query)
}

func seedPurchaseOrders(ctx context.Context, tx *sql.Tx, filePath string) error {
	const query = `
		INSERT INTO purchase_orders (id, po_number, po_date, currency, exchange_rate, status, quote_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			po_number = EXCLUDED.po_number,
			po_date = EXCLUDED.po_date,
			currency = EXCLUDED.currency,
			exchange_rate = EXCLUDED.exchange_rate,
			status = EXCLUDED.status,
			quote_id = EXCLUDED.quote_id,
			updated_at = NOW()
	`
	return seedFromCSV(ctx, tx, "purchase_orders", filePath,
		[]string{"id", "po_number", "po_date", "currency", "exchange_rate", "status", "quote_id"},
		func(get func(string) string) ([]interface{}, error) {
			rate, err := parseNullableFloat(get("exchange_rate"))
			if err != nil {
				return nil, fmt.Errorf("invalid exchange_rate for PO %s: %w", get("po_number"), err)
			}
			return []interface{}{
				get("id"),
				get("po_number"),
				get("po_date"),
				get("currency"),
				rate,
				get("status"),
				nullIfEmpty(get("quote_id")),
			}, nil
		}, query)
}

func seedPurchaseLineItems(ctx context.Context, tx *sql.Tx, filePath string, componentIDs map[string]int64) error {
	const query = `
		INSERT INTO purchase_line_items (po_id, component_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4)
	`
	return seedFromCSV(ctx, tx, "purchase_line_items", filePath,
		[]string{"po_id", "supplier_model", "quantity", "unit_cost"},
		func(get func(string) string) ([]interface{}, error) {
			componentID, ok := componentIDs[get("supplier_model")]
			if !ok {
				return nil, fmt.Errorf("supplier_model %s not found", get("supplier_model"))
			}
			return []interface{}{get("po_id"), componentID, get("quantity"), get("unit_cost")}, nil
		}, query)
}

func seedCostEntries(ctx context.Context, tx *sql.Tx, filePath string) error {
	const query = `
		INSERT INTO po_cost_entries (po_id, cost_category, amount, payment_date)
		VALUES ($1, $2, $3, $4)
	`
	return seedFromCSV(ctx, tx, "po_cost_entries", filePath,
		[]string{"po_id", "cost_category", "amount", "payment_date"},
		func(get func(string) string) ([]interface{}, error) {
			return []interface{}{
				get("po_id"),
				get("cost_category"),
				get("amount"),
				nullIfEmpty(get("payment_date")),
			}, nil
		}, query)
}

// seedFromCSV streams a CSV file row by row through buildArgs into query.
// The columns slice names the required header columns.
func seedFromCSV(ctx context.Context, tx *sql.Tx, tableName, filePath string, columns []string, buildArgs func(get func(string) string) ([]interface{}, error), query string) error {
	log.Printf("Seeding %s from %s\n", tableName, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[strings.TrimSpace(h)] = i
	}
	for _, col := range columns {
		if _, ok := colIndex[col]; !ok {
			return fmt.Errorf("missing required column %q in %s", col, filePath)
		}
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for %s: %w", tableName, err)
	}
	defer stmt.Close()

	rowCount := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		get := func(col string) string {
			idx := colIndex[col]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		args, err := buildArgs(get)
		if err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", tableName, err)
		}

		rowCount++
		if rowCount%5000 == 0 {
			log.Printf("Seeded %d rows into %s...", rowCount, tableName)
		}
	}

	log.Printf("Successfully seeded %s (%d records)\n", tableName, rowCount)
	return nil
}

func loadKeyIDMap(ctx context.Context, tx *sql.Tx, tableName, keyColumn string) (map[string]int64, error) {
	query := fmt.Sprintf("SELECT %s, id FROM %s", keyColumn, tableName)
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s keys: %w", tableName, err)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var (
			key sql.NullString
			id  int64
		)
		if err := rows.Scan(&key, &id); err != nil {
			return nil, fmt.Errorf("failed to scan %s keys: %w", tableName, err)
		}
		if !key.Valid {
			continue
		}
		result[key.String] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s keys: %w", tableName, err)
	}

	return result, nil
}

func parseNullableFloat(value string) (sql.NullFloat64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return sql.NullFloat64{}, nil
	}

	cleaned := strings.ReplaceAll(value, ",", "")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return sql.NullFloat64{}, fmt.Errorf("invalid float value %s: %w", value, err)
	}

	return sql.NullFloat64{Float64: num, Valid: true}, nil
}
