package main

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func fixtureRows() []Transaction {
	return []Transaction{
		{
			CustomerID: "109318", ProductID: "A", Quantity: 2, Price: 5.00,
			TransactionDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			PaymentMethod:   "Cash", StoreLocation: "12 Main St, Springfield",
			ProductCategory: "Electronics", DiscountApplied: 0, TotalAmount: 10.00,
		},
		{
			CustomerID: "109318", ProductID: "B", Quantity: 5, Price: 15.25,
			TransactionDate: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
			PaymentMethod:   "Credit Card", StoreLocation: "34 Oak Ave, Shelbyville",
			ProductCategory: "Books", DiscountApplied: 10, TotalAmount: 76.25,
		},
		{
			CustomerID: "993229", ProductID: "A", Quantity: 1, Price: 20.00,
			TransactionDate: time.Date(2024, 3, 10, 14, 45, 0, 0, time.UTC),
			PaymentMethod:   "PayPal", StoreLocation: "12 Main St, Springfield",
			ProductCategory: "Electronics", DiscountApplied: 5, TotalAmount: 19.00,
		},
	}
}

func seedTestDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := InsertTransactions(db, fixtureRows()); err != nil {
		t.Fatalf("InsertTransactions failed: %v", err)
	}
}

func TestInsertAndCountTransactions(t *testing.T) {
	db := newTestDB(t)

	n, err := InsertTransactions(db, fixtureRows())
	if err != nil {
		t.Fatalf("InsertTransactions failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 inserted, got %d", n)
	}

	count, err := CountTransactions(db)
	if err != nil {
		t.Fatalf("CountTransactions failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
}

func TestGetTransactionsByCustomerOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	seedTestDB(t, db)

	rows, err := GetTransactionsByCustomer(db, "109318", 20)
	if err != nil {
		t.Fatalf("GetTransactionsByCustomer failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Most recent first.
	if rows[0].ProductID != "B" || rows[1].ProductID != "A" {
		t.Fatalf("expected date-descending order, got %s then %s", rows[0].ProductID, rows[1].ProductID)
	}

	limited, err := GetTransactionsByCustomer(db, "109318", 1)
	if err != nil {
		t.Fatalf("GetTransactionsByCustomer failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ProductID != "B" {
		t.Fatalf("expected limit to keep the most recent row, got %+v", limited)
	}

	all, err := GetTransactionsByCustomer(db, "109318", -1)
	if err != nil {
		t.Fatalf("GetTransactionsByCustomer failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected negative limit to return all rows, got %d", len(all))
	}
}

func TestGetTransactionsByProductCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedTestDB(t, db)

	upper, err := GetTransactionsByProduct(db, "A")
	if err != nil {
		t.Fatalf("GetTransactionsByProduct failed: %v", err)
	}
	lower, err := GetTransactionsByProduct(db, "a")
	if err != nil {
		t.Fatalf("GetTransactionsByProduct failed: %v", err)
	}
	if len(upper) != 2 || len(lower) != 2 {
		t.Fatalf("expected case-insensitive lookup to match 2 rows, got %d and %d", len(upper), len(lower))
	}

	missing, err := GetTransactionsByProduct(db, "Z")
	if err != nil {
		t.Fatalf("GetTransactionsByProduct failed: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected no rows for unknown product, got %d", len(missing))
	}
}

func TestGetAllTransactions(t *testing.T) {
	db := newTestDB(t)
	seedTestDB(t, db)

	rows, err := GetAllTransactions(db)
	if err != nil {
		t.Fatalf("GetAllTransactions failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
}
