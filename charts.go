package main

import (
	"fmt"
	"math"
)

// Chart series colors, matched to the frontend palette.
const (
	chartColorPrimary   = "#6c63ff"
	chartColorSecondary = "#a78bfa"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildProductCharts derives the two product-query charts (revenue by
// category bar, payment-method pie) from the same rows the formatter saw.
// Keys are ascending for deterministic per-entity ordering.
func BuildProductCharts(productID string, rows []Transaction) []Chart {
	if len(rows) == 0 {
		return nil
	}

	s := SummarizeRows(rows)

	catData := make([]map[string]any, 0, len(s.CategoryRevenue))
	for _, cat := range sortedKeys(s.CategoryRevenue) {
		catData = append(catData, map[string]any{"name": cat, "value": round2(s.CategoryRevenue[cat])})
	}
	pmData := make([]map[string]any, 0, len(s.PaymentCounts))
	for _, pm := range sortedCountKeys(s.PaymentCounts) {
		pmData = append(pmData, map[string]any{"name": pm, "value": s.PaymentCounts[pm]})
	}

	return []Chart{
		{
			Type:    "bar",
			Title:   fmt.Sprintf("Product %s — Revenue by Category", productID),
			Data:    catData,
			DataKey: "value",
			Color:   chartColorPrimary,
		},
		{
			Type:  "pie",
			Title: fmt.Sprintf("Product %s — Payment Methods", productID),
			Data:  pmData,
		},
	}
}

// BuildBusinessCharts derives the two business-metric charts. The revenue
// bar is ordered biggest-first to match the narrative; the pie stays in
// ascending key order.
func BuildBusinessCharts(rows []Transaction) []Chart {
	if len(rows) == 0 {
		return nil
	}

	s := SummarizeBusiness(rows)

	catData := make([]map[string]any, 0, len(s.CategoryRevenue))
	for _, cat := range keysByValueDesc(s.CategoryRevenue) {
		catData = append(catData, map[string]any{"name": cat, "value": round2(s.CategoryRevenue[cat])})
	}
	pmData := make([]map[string]any, 0, len(s.PaymentRevenue))
	for _, pm := range sortedKeys(s.PaymentRevenue) {
		pmData = append(pmData, map[string]any{"name": pm, "value": round2(s.PaymentRevenue[pm])})
	}

	return []Chart{
		{
			Type:    "bar",
			Title:   "Revenue by Category",
			Data:    catData,
			DataKey: "value",
			Color:   chartColorPrimary,
		},
		{
			Type:  "pie",
			Title: "Revenue by Payment Method",
			Data:  pmData,
		},
	}
}

// BuildCustomerComparisonChart builds one grouped-bar of per-category spend,
// one series per customer. The category axis is the sorted union of both
// sides; a category absent for one customer contributes zero. Charts require
// data on both sides; the narrative handles the asymmetric case.
func BuildCustomerComparisonChart(id1, id2 string, rows1, rows2 []Transaction) []Chart {
	if len(rows1) == 0 || len(rows2) == 0 {
		return nil
	}

	s1 := SummarizeRows(rows1)
	s2 := SummarizeRows(rows2)

	union := make(map[string]float64, len(s1.CategoryRevenue)+len(s2.CategoryRevenue))
	for cat := range s1.CategoryRevenue {
		union[cat] = 0
	}
	for cat := range s2.CategoryRevenue {
		union[cat] = 0
	}

	key1 := "Customer " + id1
	key2 := "Customer " + id2
	data := make([]map[string]any, 0, len(union))
	for _, cat := range sortedKeys(union) {
		data = append(data, map[string]any{
			"name": cat,
			key1:   round2(s1.CategoryRevenue[cat]),
			key2:   round2(s2.CategoryRevenue[cat]),
		})
	}

	return []Chart{
		{
			Type:   "grouped_bar",
			Title:  fmt.Sprintf("Spending by Category — Customer %s vs %s", id1, id2),
			Data:   data,
			Keys:   []string{key1, key2},
			Colors: []string{chartColorPrimary, chartColorSecondary},
		},
	}
}

// BuildProductComparisonCharts builds two grouped-bar charts: revenue
// totals, then volume (transaction count and quantity sold as two grouped
// rows). Both sides must carry data.
func BuildProductComparisonCharts(id1, id2 string, rows1, rows2 []Transaction) []Chart {
	if len(rows1) == 0 || len(rows2) == 0 {
		return nil
	}

	s1 := SummarizeRows(rows1)
	s2 := SummarizeRows(rows2)

	key1 := "Product " + id1
	key2 := "Product " + id2
	keys := []string{key1, key2}
	colors := []string{chartColorPrimary, chartColorSecondary}

	return []Chart{
		{
			Type:  "grouped_bar",
			Title: fmt.Sprintf("Product %s vs %s — Revenue", id1, id2),
			Data: []map[string]any{
				{"name": "Total Revenue", key1: round2(s1.TotalRevenue), key2: round2(s2.TotalRevenue)},
			},
			Keys:   keys,
			Colors: colors,
		},
		{
			Type:  "grouped_bar",
			Title: fmt.Sprintf("Product %s vs %s — Volume", id1, id2),
			Data: []map[string]any{
				{"name": "Transactions", key1: s1.Count, key2: s2.Count},
				{"name": "Qty Sold", key1: s1.TotalQuantity, key2: s2.TotalQuantity},
			},
			Keys:   keys,
			Colors: colors,
		},
	}
}
