package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNormalizeIntent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"customer_query", IntentCustomerQuery},
		{"PRODUCT_QUERY", IntentProductQuery},
		{"  business_metric  ", IntentBusinessMetric},
		{"comparison", IntentComparison},
		{"general", IntentGeneral},
		{"off_topic", IntentOffTopic},
		// Model inventions outside the closed set.
		{"customer_info", IntentCustomerQuery},
		{"product_lookup", IntentProductQuery},
		{"revenue_query", IntentBusinessMetric},
		{"total_sales", IntentBusinessMetric},
		{"chitchat", IntentGeneral},
		{"", IntentGeneral},
	}
	for _, tc := range tests {
		if got := normalizeIntent(tc.in); got != tc.want {
			t.Fatalf("normalizeIntent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCoerceEntityID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"109318"`, "109318"},
		{`"  abc  "`, "abc"},
		{`109318`, "109318"},
		{`12.5`, "12.5"},
		{`null`, ""},
		{``, ""},
		{`{"nested": true}`, ""},
		{`["a"]`, ""},
	}
	for _, tc := range tests {
		if got := coerceEntityID(json.RawMessage(tc.in)); got != tc.want {
			t.Fatalf("coerceEntityID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseClassification(t *testing.T) {
	raw := `{"intent": "customer_query", "customer_id": "109318", "metric_type": "", "summary": "recent purchases"}`
	c, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parseClassification failed: %v", err)
	}
	if c.Intent != IntentCustomerQuery || c.CustomerID != "109318" || c.Summary != "recent purchases" {
		t.Fatalf("unexpected classification: %+v", c)
	}
}

func TestParseClassificationStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"intent\": \"product_query\", \"product_id\": 42}\n```"
	c, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parseClassification failed: %v", err)
	}
	if c.Intent != IntentProductQuery {
		t.Fatalf("expected product_query, got %q", c.Intent)
	}
	// Bare-number IDs come through as strings.
	if c.ProductID != "42" {
		t.Fatalf("expected product ID \"42\", got %q", c.ProductID)
	}
}

func TestParseClassificationInvalidJSON(t *testing.T) {
	if _, err := parseClassification("The customer wants to know about revenue."); err == nil {
		t.Fatal("expected parse error for prose response")
	}
}

func TestClassifyRetriesThenFallsBack(t *testing.T) {
	calls := 0
	l := &LLM{call: func(systemPrompt, userPrompt string) (string, error) {
		calls++
		return "", errors.New("model unavailable")
	}}

	c := l.Classify("what did customer 109318 buy?")
	if calls != maxLLMAttempts {
		t.Fatalf("expected %d attempts, got %d", maxLLMAttempts, calls)
	}
	if c.Intent != IntentGeneral {
		t.Fatalf("expected general fallback intent, got %q", c.Intent)
	}
	if c.Summary != "what did customer 109318 buy?" {
		t.Fatalf("expected summary to echo the question, got %q", c.Summary)
	}
	if c.CustomerID != "" || c.ProductID != "" {
		t.Fatalf("expected fallback with no entities, got %+v", c)
	}
}

func TestClassifySucceedsOnSecondAttempt(t *testing.T) {
	calls := 0
	l := &LLM{call: func(systemPrompt, userPrompt string) (string, error) {
		calls++
		if calls == 1 {
			return "not json", nil
		}
		return `{"intent": "business_metric", "metric_type": "Revenue"}`, nil
	}}

	c := l.Classify("how is revenue?")
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
	if c.Intent != IntentBusinessMetric {
		t.Fatalf("expected business_metric, got %q", c.Intent)
	}
	if c.MetricType != "revenue" {
		t.Fatalf("expected metric type lowered to \"revenue\", got %q", c.MetricType)
	}
}

func TestGenerateTrimsResponse(t *testing.T) {
	l := &LLM{call: func(systemPrompt, userPrompt string) (string, error) {
		if !strings.Contains(userPrompt, "[DATA]") {
			t.Fatalf("expected data block in prompt, got %q", userPrompt)
		}
		return "  Here is your answer.  \n", nil
	}}

	if got := l.Generate("q", "some data"); got != "Here is your answer." {
		t.Fatalf("expected trimmed response, got %q", got)
	}
}

func TestGenerateFallsBack(t *testing.T) {
	calls := 0
	l := &LLM{call: func(systemPrompt, userPrompt string) (string, error) {
		calls++
		return "", errors.New("timeout")
	}}

	if got := l.Generate("q", "data"); got != generateFallbackMessage {
		t.Fatalf("expected fallback message, got %q", got)
	}
	if calls != maxLLMAttempts {
		t.Fatalf("expected %d attempts, got %d", maxLLMAttempts, calls)
	}
}
