package main

import "sort"

// RowSummary holds per-entity statistics over one fetched row set. Running
// sums keep full float precision; rounding happens only when formatting.
type RowSummary struct {
	Count           int
	TotalQuantity   int
	TotalRevenue    float64
	SumPrices       float64
	AvgPrice        float64 // mean of unit price, deliberately not revenue/quantity
	SumDiscounts    float64
	AvgDiscount     float64
	Stores          []string // sorted distinct
	Categories      []string // sorted distinct
	PaymentCounts   map[string]int
	CategoryRevenue map[string]float64
}

// BusinessSummary holds dataset-wide statistics.
type BusinessSummary struct {
	Count           int
	TotalRevenue    float64
	AvgTransaction  float64
	UniqueCustomers int
	UniqueProducts  int
	CategoryRevenue map[string]float64
	CategoryCounts  map[string]int
	PaymentRevenue  map[string]float64
}

// SummarizeRows computes per-entity statistics over an in-memory row set.
// An empty row set yields a zero-value summary; averages are never computed
// over zero rows.
func SummarizeRows(rows []Transaction) RowSummary {
	s := RowSummary{
		Count:           len(rows),
		PaymentCounts:   make(map[string]int),
		CategoryRevenue: make(map[string]float64),
	}
	if len(rows) == 0 {
		return s
	}

	storeSet := make(map[string]bool)
	categorySet := make(map[string]bool)
	for _, r := range rows {
		s.TotalQuantity += r.Quantity
		s.TotalRevenue += r.TotalAmount
		s.SumPrices += r.Price
		s.SumDiscounts += r.DiscountApplied
		storeSet[r.StoreLocation] = true
		categorySet[r.ProductCategory] = true
		s.PaymentCounts[r.PaymentMethod]++
		s.CategoryRevenue[r.ProductCategory] += r.TotalAmount
	}

	n := float64(len(rows))
	s.AvgPrice = s.SumPrices / n
	s.AvgDiscount = s.SumDiscounts / n
	s.Stores = sortedSet(storeSet)
	s.Categories = sortedSet(categorySet)
	return s
}

// SummarizeBusiness computes dataset-wide statistics over all rows.
func SummarizeBusiness(rows []Transaction) BusinessSummary {
	s := BusinessSummary{
		Count:           len(rows),
		CategoryRevenue: make(map[string]float64),
		CategoryCounts:  make(map[string]int),
		PaymentRevenue:  make(map[string]float64),
	}
	if len(rows) == 0 {
		return s
	}

	customerSet := make(map[string]bool)
	productSet := make(map[string]bool)
	for _, r := range rows {
		s.TotalRevenue += r.TotalAmount
		customerSet[r.CustomerID] = true
		productSet[r.ProductID] = true
		s.CategoryRevenue[r.ProductCategory] += r.TotalAmount
		s.CategoryCounts[r.ProductCategory]++
		s.PaymentRevenue[r.PaymentMethod] += r.TotalAmount
	}

	s.AvgTransaction = s.TotalRevenue / float64(len(rows))
	s.UniqueCustomers = len(customerSet)
	s.UniqueProducts = len(productSet)
	return s
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// sortedKeys returns map keys in ascending order. Used for per-entity
// breakdowns where stable alphabetical ordering is the contract.
func sortedKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedCountKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// keysByValueDesc returns map keys ordered by descending value, ties broken
// by key ascending. Used for business-wide breakdowns (biggest first).
func keysByValueDesc(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if m[out[i]] != m[out[j]] {
			return m[out[i]] > m[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
