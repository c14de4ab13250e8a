package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const seedBatchSize = 5000

// SeedFromCSV imports the retail transactions dataset. It is a no-op when
// the table already has rows, so restarting the service never duplicates
// data. Returns the number of rows inserted.
func SeedFromCSV(db *sql.DB, path string) (int, error) {
	count, err := CountTransactions(db)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("Database already has %d rows, skipping seed", count)
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{
		"CustomerID", "ProductID", "Quantity", "Price", "TransactionDate",
		"PaymentMethod", "StoreLocation", "ProductCategory", "DiscountApplied(%)", "TotalAmount",
	} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("CSV missing column %q", required)
		}
	}

	total := 0
	var batch []Transaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("reading CSV row: %w", err)
		}

		t, err := parseCSVTransaction(record, col)
		if err != nil {
			return total, fmt.Errorf("row %d: %w", total+len(batch)+1, err)
		}
		batch = append(batch, t)

		if len(batch) >= seedBatchSize {
			n, err := InsertTransactions(db, batch)
			total += n
			if err != nil {
				return total, err
			}
			log.Printf("Seeded %d rows ...", total)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		n, err := InsertTransactions(db, batch)
		total += n
		if err != nil {
			return total, err
		}
	}

	log.Printf("Seed complete: %d transactions", total)
	return total, nil
}

func parseCSVTransaction(record []string, col map[string]int) (Transaction, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[col[name]])
	}

	quantity, err := strconv.Atoi(field("Quantity"))
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid Quantity %q: %w", field("Quantity"), err)
	}
	price, err := strconv.ParseFloat(field("Price"), 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid Price %q: %w", field("Price"), err)
	}
	discount, err := strconv.ParseFloat(field("DiscountApplied(%)"), 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid DiscountApplied %q: %w", field("DiscountApplied(%)"), err)
	}
	total, err := strconv.ParseFloat(field("TotalAmount"), 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid TotalAmount %q: %w", field("TotalAmount"), err)
	}
	date, err := parseTransactionDate(field("TransactionDate"))
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		CustomerID:      field("CustomerID"),
		ProductID:       field("ProductID"),
		Quantity:        quantity,
		Price:           price,
		TransactionDate: date,
		PaymentMethod:   field("PaymentMethod"),
		StoreLocation:   field("StoreLocation"),
		ProductCategory: field("ProductCategory"),
		DiscountApplied: discount,
		TotalAmount:     total,
	}, nil
}

// parseTransactionDate accepts the dataset's "M/D/YYYY H:MM" format, falling
// back to date-only rows.
func parseTransactionDate(s string) (time.Time, error) {
	if t, err := time.Parse("1/2/2006 15:04", s); err == nil {
		return t, nil
	}
	t, err := time.Parse("1/2/2006", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid TransactionDate %q: %w", s, err)
	}
	return t, nil
}
