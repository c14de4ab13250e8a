package main

import (
	"fmt"
	"strings"
)

const breakdownHeader = "═══════════════════════════════════════"

// Sum breakdowns render every addend up to this many values; beyond it the
// first breakdownSampleSize addends are shown with an explicit remainder
// count so the output stays bounded but auditable.
const (
	breakdownFullLimit  = 8
	breakdownSampleSize = 5
)

// fmtUSD renders a dollar amount with comma separators, rounded to two
// decimals. Rounding lives here and nowhere else in the pipeline.
func fmtUSD(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	if len(intPart) > 3 {
		var parts []string
		for len(intPart) > 3 {
			parts = append([]string{intPart[len(intPart)-3:]}, parts...)
			intPart = intPart[:len(intPart)-3]
		}
		parts = append([]string{intPart}, parts...)
		intPart = strings.Join(parts, ",")
	}
	out := "$" + intPart + frac
	if neg {
		out = "-" + out
	}
	return out
}

// breakdownAmounts renders "$10.00 + $15.00" for short lists, or the first
// five addends plus "... (N more)" for longer ones.
func breakdownAmounts(values []float64) string {
	terms := make([]string, 0, breakdownFullLimit)
	if len(values) <= breakdownFullLimit {
		for _, v := range values {
			terms = append(terms, fmt.Sprintf("$%.2f", v))
		}
		return strings.Join(terms, " + ")
	}
	for _, v := range values[:breakdownSampleSize] {
		terms = append(terms, fmt.Sprintf("$%.2f", v))
	}
	return strings.Join(terms, " + ") + fmt.Sprintf(" + ... (%d more)", len(values)-breakdownSampleSize)
}

func breakdownQuantities(values []int) string {
	terms := make([]string, 0, breakdownFullLimit)
	if len(values) <= breakdownFullLimit {
		for _, v := range values {
			terms = append(terms, fmt.Sprintf("%d", v))
		}
		return strings.Join(terms, " + ")
	}
	for _, v := range values[:breakdownSampleSize] {
		terms = append(terms, fmt.Sprintf("%d", v))
	}
	return strings.Join(terms, " + ") + fmt.Sprintf(" + ... (%d more values)", len(values)-breakdownSampleSize)
}

// FormatCustomerTransactions renders a customer's recent transactions with a
// total-spend breakdown. Rows arrive already ordered (most recent first) and
// limited by the store accessor.
func FormatCustomerTransactions(customerID string, rows []Transaction) string {
	if len(rows) == 0 {
		return fmt.Sprintf("No transactions found for customer %s.", customerID)
	}

	lines := []string{fmt.Sprintf("Found %d transaction(s) for customer %s:\n", len(rows), customerID)}
	amounts := make([]float64, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf(
			"- %s | Product %s (%s) | Qty %d × $%.2f | Discount %.1f%% | Total $%.2f | %s | %s",
			r.TransactionDate.Format("2006-01-02"), r.ProductID, r.ProductCategory,
			r.Quantity, r.Price, r.DiscountApplied, r.TotalAmount,
			r.PaymentMethod, r.StoreLocation,
		))
		amounts = append(amounts, r.TotalAmount)
	}

	s := SummarizeRows(rows)
	lines = append(lines, "")
	lines = append(lines, "Total Spend = sum(TotalAmount)")
	lines = append(lines, "  = "+breakdownAmounts(amounts))
	lines = append(lines, "  = "+fmtUSD(s.TotalRevenue))
	return strings.Join(lines, "\n")
}

// FormatProductInfo renders aggregated product statistics with calculation
// breakdowns showing the arithmetic, not just the results.
func FormatProductInfo(productID string, rows []Transaction) string {
	if len(rows) == 0 {
		return fmt.Sprintf("No transactions found for product %s.", productID)
	}

	s := SummarizeRows(rows)
	quantities := make([]int, 0, len(rows))
	amounts := make([]float64, 0, len(rows))
	for _, r := range rows {
		quantities = append(quantities, r.Quantity)
		amounts = append(amounts, r.TotalAmount)
	}

	lines := []string{
		fmt.Sprintf("Product %s — %d transactions", productID, s.Count),
		breakdownHeader,
		"",
		"Categories: " + strings.Join(s.Categories, ", "),
		"",
		"[Calculation Breakdown]",
		"",
		"Total Qty Sold = sum of all quantities",
		"  = " + breakdownQuantities(quantities),
		fmt.Sprintf("  = %d", s.TotalQuantity),
		"",
		"Total Revenue = sum of all transaction amounts",
		"  = " + breakdownAmounts(amounts),
		"  = " + fmtUSD(s.TotalRevenue),
		"",
		"Avg Price = sum(all prices) / count(transactions)",
		fmt.Sprintf("  = %s / %d", fmtUSD(s.SumPrices), s.Count),
		"  = " + fmtUSD(s.AvgPrice),
		"",
		"Avg Discount = sum(all discounts) / count(transactions)",
		fmt.Sprintf("  = %.2f / %d", s.SumDiscounts, s.Count),
		fmt.Sprintf("  = %.1f%%", s.AvgDiscount),
		"",
		"Payment Methods:",
	}
	for _, pm := range sortedCountKeys(s.PaymentCounts) {
		lines = append(lines, fmt.Sprintf("  • %s: %dx", pm, s.PaymentCounts[pm]))
	}
	lines = append(lines, fmt.Sprintf("Store Locations: %d", len(s.Stores)))
	return strings.Join(lines, "\n")
}

// FormatBusinessMetrics renders dataset-wide metrics. Unlike per-entity
// views, grouped breakdowns here are ordered biggest-first (ties broken by
// key) so the top line items lead.
func FormatBusinessMetrics(rows []Transaction) string {
	if len(rows) == 0 {
		return "No transaction data available."
	}

	s := SummarizeBusiness(rows)
	lines := []string{
		fmt.Sprintf("Business Metrics — %d transactions", s.Count),
		breakdownHeader,
		"",
		"[Calculation Breakdown]",
		"",
		fmt.Sprintf("Total Revenue = sum(TotalAmount for all %d rows)", s.Count),
		"  = " + fmtUSD(s.TotalRevenue),
		"",
		"Avg Transaction Value = Total Revenue / Transaction Count",
		fmt.Sprintf("  = %s / %d", fmtUSD(s.TotalRevenue), s.Count),
		"  = " + fmtUSD(s.AvgTransaction),
		"",
		fmt.Sprintf("Unique Customers = count(distinct CustomerID) = %d", s.UniqueCustomers),
		fmt.Sprintf("Unique Products = count(distinct ProductID) = %d", s.UniqueProducts),
		"",
		"Revenue by Category:",
		"  (each = sum of TotalAmount WHERE ProductCategory = X)",
	}
	for _, cat := range keysByValueDesc(s.CategoryRevenue) {
		rev := s.CategoryRevenue[cat]
		cnt := s.CategoryCounts[cat]
		lines = append(lines, fmt.Sprintf("  • %s: %s  (%d transactions, avg %s)",
			cat, fmtUSD(rev), cnt, fmtUSD(rev/float64(cnt))))
	}
	lines = append(lines, "")
	lines = append(lines, "Revenue by Payment Method:")
	for _, pm := range keysByValueDesc(s.PaymentRevenue) {
		lines = append(lines, fmt.Sprintf("  • %s: %s", pm, fmtUSD(s.PaymentRevenue[pm])))
	}
	return strings.Join(lines, "\n")
}

// FormatCustomerComparison renders two independent per-customer breakdown
// blocks under a shared header. The arithmetic of the two sides is never
// interleaved.
func FormatCustomerComparison(id1, id2 string, rows1, rows2 []Transaction) string {
	switch {
	case len(rows1) == 0 && len(rows2) == 0:
		return fmt.Sprintf("No transactions found for either customer %s or customer %s.", id1, id2)
	case len(rows1) == 0:
		return fmt.Sprintf("No transactions found for customer %s. Customer %s has data.", id1, id2)
	case len(rows2) == 0:
		return fmt.Sprintf("Customer %s has data. No transactions found for customer %s.", id1, id2)
	}

	lines := []string{
		fmt.Sprintf("Comparison: Customer %s vs Customer %s", id1, id2),
		breakdownHeader,
		"",
		"[Calculation Breakdown]",
		"",
		customerBreakdown(id1, rows1),
		"",
		customerBreakdown(id2, rows2),
	}
	return strings.Join(lines, "\n")
}

func customerBreakdown(customerID string, rows []Transaction) string {
	s := SummarizeRows(rows)
	amounts := make([]float64, 0, len(rows))
	for _, r := range rows {
		amounts = append(amounts, r.TotalAmount)
	}

	lines := []string{
		fmt.Sprintf("  Customer %s: %d transaction(s)", customerID, s.Count),
		"  Total Spend = sum(TotalAmount)",
		"    = " + breakdownAmounts(amounts),
		"    = " + fmtUSD(s.TotalRevenue),
		fmt.Sprintf("  Avg per Transaction = %s / %d = %s",
			fmtUSD(s.TotalRevenue), s.Count, fmtUSD(s.TotalRevenue/float64(s.Count))),
		"  Categories:",
	}
	for _, cat := range sortedKeys(s.CategoryRevenue) {
		lines = append(lines, fmt.Sprintf("    • %s: %s", cat, fmtUSD(s.CategoryRevenue[cat])))
	}
	lines = append(lines, "  Payment Methods:")
	for _, pm := range sortedCountKeys(s.PaymentCounts) {
		lines = append(lines, fmt.Sprintf("    • %s: %dx", pm, s.PaymentCounts[pm]))
	}
	return strings.Join(lines, "\n")
}

// FormatProductComparison renders two independent per-product breakdown
// blocks under a shared header.
func FormatProductComparison(id1, id2 string, rows1, rows2 []Transaction) string {
	switch {
	case len(rows1) == 0 && len(rows2) == 0:
		return fmt.Sprintf("No transactions found for either product %s or product %s.", id1, id2)
	case len(rows1) == 0:
		return fmt.Sprintf("No transactions found for product %s. Product %s has data.", id1, id2)
	case len(rows2) == 0:
		return fmt.Sprintf("Product %s has data. No transactions found for product %s.", id1, id2)
	}

	lines := []string{
		fmt.Sprintf("Comparison: Product %s vs Product %s", id1, id2),
		breakdownHeader,
		"",
		"[Calculation Breakdown]",
		"",
		productBreakdown(id1, rows1),
		"",
		productBreakdown(id2, rows2),
	}
	return strings.Join(lines, "\n")
}

func productBreakdown(productID string, rows []Transaction) string {
	s := SummarizeRows(rows)
	lines := []string{
		fmt.Sprintf("  Product %s: %d transactions", productID, s.Count),
		fmt.Sprintf("  Total Qty = sum(Quantity) = %d", s.TotalQuantity),
		fmt.Sprintf("  Total Revenue = sum(TotalAmount) = %s", fmtUSD(s.TotalRevenue)),
		fmt.Sprintf("  Avg Price = sum(Price) / count = %s / %d = %s",
			fmtUSD(s.SumPrices), s.Count, fmtUSD(s.AvgPrice)),
		fmt.Sprintf("  Avg Discount = sum(Discount) / count = %.2f / %d = %.1f%%",
			s.SumDiscounts, s.Count, s.AvgDiscount),
		fmt.Sprintf("  Store Locations = count(distinct StoreLocation) = %d", len(s.Stores)),
	}
	return strings.Join(lines, "\n")
}
