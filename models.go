package main

import (
	"strings"
	"time"
)

// Transaction is one row from the retail transactions table. Rows are
// read-only facts: the core aggregates over fetched snapshots and never
// writes back.
type Transaction struct {
	ID              int64     `json:"id"`
	CustomerID      string    `json:"customer_id"`
	ProductID       string    `json:"product_id"`
	Quantity        int       `json:"quantity"`
	Price           float64   `json:"price"`
	TransactionDate time.Time `json:"transaction_date"`
	PaymentMethod   string    `json:"payment_method"`
	StoreLocation   string    `json:"store_location"`
	ProductCategory string    `json:"product_category"`
	DiscountApplied float64   `json:"discount_applied"`
	TotalAmount     float64   `json:"total_amount"`
}

// Intent values form a closed set. The classifier normalizes whatever the
// model returns into one of these before anything downstream sees it.
const (
	IntentCustomerQuery  = "customer_query"
	IntentProductQuery   = "product_query"
	IntentBusinessMetric = "business_metric"
	IntentComparison     = "comparison"
	IntentGeneral        = "general"
	IntentOffTopic       = "off_topic"
)

var validIntents = map[string]bool{
	IntentCustomerQuery:  true,
	IntentProductQuery:   true,
	IntentBusinessMetric: true,
	IntentComparison:     true,
	IntentGeneral:        true,
	IntentOffTopic:       true,
}

// Classification is the normalized output of one classify call. Entity ID
// fields are empty when absent; Summary is always present (possibly empty).
type Classification struct {
	Intent      string
	CustomerID  string
	CustomerID2 string
	ProductID   string
	ProductID2  string
	MetricType  string // only meaningful for business_metric ("revenue", "count", ...)
	Summary     string
}

// ChatResult is the payload for one chat request. ChartData must be omitted
// entirely (not null, not empty array) when no charts apply.
type ChatResult struct {
	Response   string  `json:"response"`
	SourceData string  `json:"source_data,omitempty"`
	Intent     string  `json:"intent,omitempty"`
	ChartData  []Chart `json:"chart_data,omitempty"`
}

// Chart is a presentation-only descriptor consumed by the frontend.
// Grouped-bar data points carry one key per series next to "name", so points
// are free-form maps rather than a fixed struct.
type Chart struct {
	Type    string           `json:"type"` // "bar", "pie", or "grouped_bar"
	Title   string           `json:"title"`
	Data    []map[string]any `json:"data"`
	DataKey string           `json:"dataKey,omitempty"`
	Color   string           `json:"color,omitempty"`
	Keys    []string         `json:"keys,omitempty"`
	Colors  []string         `json:"colors,omitempty"`
}

// NormalizeEntityID upper-cases a customer or product ID extracted from user
// text so lookups are case-insensitive ("abc123" and "ABC123" hit the same
// rows).
func NormalizeEntityID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
