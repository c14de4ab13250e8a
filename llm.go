package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"
const defaultOpenAIModel = "gpt-4o-mini"

// maxLLMAttempts bounds the retry loops around model calls. Retries are
// immediate; any parse failure counts as a failed attempt.
const maxLLMAttempts = 2

const generateFallbackMessage = "Sorry, I couldn't generate a response right now. Please try again."

// LanguageModel is the capability the orchestrator depends on. Both methods
// absorb model failures into deterministic fallback values, so neither can
// fail from the caller's point of view.
type LanguageModel interface {
	Classify(question string) Classification
	Generate(question, data string) string
}

// LLM backs LanguageModel with the configured provider. The call field is
// the raw model invocation and is replaced in tests with a canned responder.
type LLM struct {
	cfg  Config
	call func(systemPrompt, userPrompt string) (string, error)
}

func NewLLM(cfg Config) *LLM {
	l := &LLM{cfg: cfg}
	l.call = l.callProvider
	return l
}

func (l *LLM) callProvider(systemPrompt, userPrompt string) (string, error) {
	switch l.cfg.LLMProvider {
	case "openai":
		model := l.cfg.LLMModel
		if model == "" {
			model = defaultOpenAIModel
		}
		return callOpenAI(l.cfg.OpenAIAPIKey, model, systemPrompt, userPrompt)
	default:
		model := l.cfg.LLMModel
		if model == "" {
			model = defaultAnthropicModel
		}
		return callAnthropic(l.cfg.AnthropicAPIKey, model, systemPrompt, userPrompt)
	}
}

// Classify sends the question to the model and normalizes the result into
// the closed intent set. After retries exhaust it returns a deterministic
// fallback (general intent, no entities, summary = the question) so the
// orchestrator can always proceed.
func (l *LLM) Classify(question string) Classification {
	userPrompt := fmt.Sprintf(classificationPromptFmt, question)

	for attempt := 1; attempt <= maxLLMAttempts; attempt++ {
		responseText, err := l.call(classifierSystemPrompt, userPrompt)
		if err != nil {
			log.Printf("llm classify attempt=%d error: %v", attempt, err)
			continue
		}
		c, err := parseClassification(responseText)
		if err != nil {
			log.Printf("llm classify attempt=%d parse error: %v", attempt, err)
			continue
		}
		log.Printf("llm classify intent=%s customer_id=%q product_id=%q metric_type=%q",
			c.Intent, c.CustomerID, c.ProductID, c.MetricType)
		return c
	}

	return Classification{Intent: IntentGeneral, Summary: question}
}

// Generate asks the model for the final answer given the question and the
// formatted source data. After retries exhaust it returns a fixed apology so
// a transient generation failure never wastes a successful data fetch.
func (l *LLM) Generate(question, data string) string {
	userPrompt := fmt.Sprintf(responsePromptFmt, question, data)

	for attempt := 1; attempt <= maxLLMAttempts; attempt++ {
		responseText, err := l.call(assistantSystemPrompt, userPrompt)
		if err != nil {
			log.Printf("llm generate attempt=%d error: %v", attempt, err)
			continue
		}
		return strings.TrimSpace(responseText)
	}

	return generateFallbackMessage
}

// rawClassification matches the model's JSON before normalization. Entity
// IDs are RawMessage because models send them as strings or bare numbers.
type rawClassification struct {
	Intent      string          `json:"intent"`
	CustomerID  json.RawMessage `json:"customer_id"`
	CustomerID2 json.RawMessage `json:"customer_id_2"`
	ProductID   json.RawMessage `json:"product_id"`
	ProductID2  json.RawMessage `json:"product_id_2"`
	MetricType  string          `json:"metric_type"`
	Summary     string          `json:"summary"`
}

func parseClassification(responseText string) (Classification, error) {
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var raw rawClassification
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		return Classification{}, fmt.Errorf("parsing classification response: %w (response: %.200s)", err, responseText)
	}

	return Classification{
		Intent:      normalizeIntent(raw.Intent),
		CustomerID:  coerceEntityID(raw.CustomerID),
		CustomerID2: coerceEntityID(raw.CustomerID2),
		ProductID:   coerceEntityID(raw.ProductID),
		ProductID2:  coerceEntityID(raw.ProductID2),
		MetricType:  strings.ToLower(strings.TrimSpace(raw.MetricType)),
		Summary:     raw.Summary,
	}, nil
}

var metricKeywords = []string{"metric", "revenue", "business", "aggregate", "total"}

// normalizeIntent maps any intent string into the closed set. The substring
// heuristics catch common model inventions like "customer_info" or
// "revenue_query"; everything else lands on general.
func normalizeIntent(intent string) string {
	intent = strings.ToLower(strings.TrimSpace(intent))
	if validIntents[intent] {
		return intent
	}
	if strings.Contains(intent, "customer") {
		return IntentCustomerQuery
	}
	if strings.Contains(intent, "product") {
		return IntentProductQuery
	}
	for _, kw := range metricKeywords {
		if strings.Contains(intent, kw) {
			return IntentBusinessMetric
		}
	}
	return IntentGeneral
}

// coerceEntityID accepts a JSON string, number, or null and returns the ID
// as a string ("" for null/absent).
func coerceEntityID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}

	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String()
	}

	return ""
}

// --- Anthropic ---

func callAnthropic(apiKey, model, systemPrompt, userPrompt string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	message, err := client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		log.Printf("llm anthropic error: %v", err)
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("llm anthropic response size=%d tokens_in=%d tokens_out=%d",
				len(block.Text), message.Usage.InputTokens, message.Usage.OutputTokens)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}

// --- OpenAI ---

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func callOpenAI(apiKey, model, systemPrompt, userPrompt string) (string, error) {
	reqBody := openAIRequest{
		Model: model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("llm openai error: %v", err)
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var openAIResp openAIResponse
	if err := json.Unmarshal(respBody, &openAIResp); err != nil {
		return "", fmt.Errorf("parsing OpenAI response: %w", err)
	}

	if openAIResp.Error != nil {
		log.Printf("llm openai api error: %s", openAIResp.Error.Message)
		return "", fmt.Errorf("OpenAI API error: %s", openAIResp.Error.Message)
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	log.Printf("llm openai response size=%d", len(openAIResp.Choices[0].Message.Content))
	return openAIResp.Choices[0].Message.Content, nil
}
