package main

import (
	"database/sql"
	"log"
	"strings"
)

// maxMessageChars is the hard cap on inbound question length. Longer
// messages are rejected before any model or store call.
const maxMessageChars = 500

// chatCustomerLimit bounds the customer transaction list rendered into chat
// source data.
const chatCustomerLimit = 20

const (
	emptyMessageReply = "Please enter a question about retail data."
	offTopicReply     = "I can only answer retail analytics questions about customers, products, and business metrics in the transaction data."
	chatErrorReply    = "Sorry, something went wrong processing your question. Please try again."

	noComparisonEntitiesData = "Could not identify two entities to compare. Please specify two customer IDs or two product IDs."
	noRetrievalNeededData    = "No specific data retrieval needed for this query."
)

// ChatService drives one chat request: classify, resolve data, generate.
// It holds no per-request state; every request re-fetches from scratch.
type ChatService struct {
	db  *sql.DB
	llm LanguageModel
}

func NewChatService(db *sql.DB, llm LanguageModel) *ChatService {
	return &ChatService{db: db, llm: llm}
}

// HandleChat processes one user message end to end. Classifier and
// generator failures are absorbed by their fallbacks; a store-layer error is
// the only path that returns a non-nil error, and then the result carries
// only the fixed apology.
func (s *ChatService) HandleChat(message string) (ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatResult{Response: emptyMessageReply}, nil
	}
	if len(message) > maxMessageChars {
		return ChatResult{Response: "Your question is too long. Please keep it under 500 characters."}, nil
	}

	c := s.llm.Classify(message)
	log.Printf("chat intent=%s customer_id=%q customer_id_2=%q product_id=%q product_id_2=%q",
		c.Intent, c.CustomerID, c.CustomerID2, c.ProductID, c.ProductID2)

	if c.Intent == IntentOffTopic {
		return ChatResult{Response: offTopicReply, Intent: IntentOffTopic}, nil
	}

	sourceData, charts, err := s.resolveData(c)
	if err != nil {
		log.Printf("chat data resolution error: %v", err)
		return ChatResult{Response: chatErrorReply}, err
	}

	response := s.llm.Generate(message, sourceData)

	return ChatResult{
		Response:   response,
		SourceData: sourceData,
		Intent:     c.Intent,
		ChartData:  charts,
	}, nil
}

// resolveData dispatches on the classified intent, fetches each entity's
// rows exactly once, and derives narrative and charts from that same
// snapshot.
func (s *ChatService) resolveData(c Classification) (string, []Chart, error) {
	switch {
	case c.Intent == IntentComparison && c.CustomerID != "" && c.CustomerID2 != "":
		id1 := NormalizeEntityID(c.CustomerID)
		id2 := NormalizeEntityID(c.CustomerID2)
		rows1, err := GetTransactionsByCustomer(s.db, id1, -1)
		if err != nil {
			return "", nil, err
		}
		rows2, err := GetTransactionsByCustomer(s.db, id2, -1)
		if err != nil {
			return "", nil, err
		}
		data := FormatCustomerComparison(id1, id2, rows1, rows2)
		return data, BuildCustomerComparisonChart(id1, id2, rows1, rows2), nil

	case c.Intent == IntentComparison && c.ProductID != "" && c.ProductID2 != "":
		id1 := NormalizeEntityID(c.ProductID)
		id2 := NormalizeEntityID(c.ProductID2)
		rows1, err := GetTransactionsByProduct(s.db, id1)
		if err != nil {
			return "", nil, err
		}
		rows2, err := GetTransactionsByProduct(s.db, id2)
		if err != nil {
			return "", nil, err
		}
		data := FormatProductComparison(id1, id2, rows1, rows2)
		return data, BuildProductComparisonCharts(id1, id2, rows1, rows2), nil

	case c.Intent == IntentComparison:
		return noComparisonEntitiesData, nil, nil

	case c.Intent == IntentCustomerQuery && c.CustomerID != "":
		id := NormalizeEntityID(c.CustomerID)
		rows, err := GetTransactionsByCustomer(s.db, id, chatCustomerLimit)
		if err != nil {
			return "", nil, err
		}
		return FormatCustomerTransactions(id, rows), nil, nil

	case c.Intent == IntentProductQuery && c.ProductID != "":
		id := NormalizeEntityID(c.ProductID)
		rows, err := GetTransactionsByProduct(s.db, id)
		if err != nil {
			return "", nil, err
		}
		return FormatProductInfo(id, rows), BuildProductCharts(id, rows), nil

	case c.Intent == IntentBusinessMetric:
		rows, err := GetAllTransactions(s.db)
		if err != nil {
			return "", nil, err
		}
		data := FormatBusinessMetrics(rows)
		var charts []Chart
		if c.MetricType == "revenue" {
			charts = BuildBusinessCharts(rows)
		}
		return data, charts, nil

	default:
		return noRetrievalNeededData, nil, nil
	}
}
