package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id      TEXT NOT NULL,
		product_id       TEXT NOT NULL,
		quantity         INTEGER NOT NULL,
		price            REAL NOT NULL,
		transaction_date DATETIME NOT NULL,
		payment_method   TEXT NOT NULL,
		store_location   TEXT NOT NULL,
		product_category TEXT NOT NULL,
		discount_applied REAL NOT NULL,
		total_amount     REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_product ON transactions(product_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(transaction_date);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func InsertTransactions(db *sql.DB, rows []Transaction) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO transactions (customer_id, product_id, quantity, price, transaction_date,
		 payment_method, store_location, product_category, discount_applied, total_amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range rows {
		_, err := stmt.Exec(
			r.CustomerID, r.ProductID, r.Quantity, r.Price, r.TransactionDate,
			r.PaymentMethod, r.StoreLocation, r.ProductCategory, r.DiscountApplied, r.TotalAmount,
		)
		if err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, tx.Commit()
}

func CountTransactions(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

// GetTransactionsByCustomer returns up to limit rows for one customer, most
// recent first. A negative limit returns all rows (SQLite treats LIMIT -1 as
// unbounded). The ID comparison is case-insensitive: callers pass IDs
// through NormalizeEntityID and the stored value is upper-cased in SQL.
func GetTransactionsByCustomer(db *sql.DB, customerID string, limit int) ([]Transaction, error) {
	rows, err := db.Query(
		`SELECT id, customer_id, product_id, quantity, price, transaction_date,
		 payment_method, store_location, product_category, discount_applied, total_amount
		 FROM transactions WHERE UPPER(customer_id) = ?
		 ORDER BY transaction_date DESC LIMIT ?`,
		NormalizeEntityID(customerID), limit,
	)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func GetTransactionsByProduct(db *sql.DB, productID string) ([]Transaction, error) {
	rows, err := db.Query(
		`SELECT id, customer_id, product_id, quantity, price, transaction_date,
		 payment_method, store_location, product_category, discount_applied, total_amount
		 FROM transactions WHERE UPPER(product_id) = ?`,
		NormalizeEntityID(productID),
	)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func GetAllTransactions(db *sql.DB) ([]Transaction, error) {
	rows, err := db.Query(
		`SELECT id, customer_id, product_id, quantity, price, transaction_date,
		 payment_method, store_location, product_category, discount_applied, total_amount
		 FROM transactions`,
	)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]Transaction, error) {
	defer rows.Close()

	var items []Transaction
	for rows.Next() {
		var t Transaction
		err := rows.Scan(
			&t.ID, &t.CustomerID, &t.ProductID, &t.Quantity, &t.Price, &t.TransactionDate,
			&t.PaymentMethod, &t.StoreLocation, &t.ProductCategory, &t.DiscountApplied, &t.TotalAmount,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
