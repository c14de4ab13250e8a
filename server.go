package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
)

// apiCustomerLimit bounds the REST customer transactions endpoint, which
// shows more history than the chat view.
const apiCustomerLimit = 50

type chatRequest struct {
	Message string `json:"message"`
}

func StartServer(cfg Config, db *sql.DB, llm LanguageModel) error {
	log.Printf("Listening on %s", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, newRouter(db, llm))
}

func newRouter(db *sql.DB, llm LanguageModel) http.Handler {
	chat := NewChatService(db, llm)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("POST /api/chat", handleChat(chat))
	mux.HandleFunc("GET /api/customers/{id}/transactions", handleCustomerTransactions(db))
	mux.HandleFunc("GET /api/products/{id}", handleProduct(db))

	return withCORS(mux)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleChat(chat *ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"response": emptyMessageReply})
			return
		}

		result, err := chat.HandleChat(req.Message)
		if err != nil {
			// Store-layer failure: fixed apology, no partial payload.
			writeJSON(w, http.StatusInternalServerError, map[string]string{"response": chatErrorReply})
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func handleCustomerTransactions(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := NormalizeEntityID(r.PathValue("id"))
		rows, err := GetTransactionsByCustomer(db, id, apiCustomerLimit)
		if err != nil {
			log.Printf("customer transactions error id=%s: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load transactions"})
			return
		}
		if rows == nil {
			rows = []Transaction{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"customer_id":  id,
			"count":        len(rows),
			"transactions": rows,
		})
	}
}

func handleProduct(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := NormalizeEntityID(r.PathValue("id"))
		rows, err := GetTransactionsByProduct(db, id)
		if err != nil {
			log.Printf("product summary error id=%s: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load product"})
			return
		}
		if len(rows) == 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no transactions found for product " + id})
			return
		}

		s := SummarizeRows(rows)
		writeJSON(w, http.StatusOK, map[string]any{
			"product_id":      id,
			"transactions":    s.Count,
			"total_quantity":  s.TotalQuantity,
			"total_revenue":   round2(s.TotalRevenue),
			"avg_price":       round2(s.AvgPrice),
			"avg_discount":    round2(s.AvgDiscount),
			"categories":      s.Categories,
			"store_count":     len(s.Stores),
			"payment_methods": s.PaymentCounts,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

// withCORS allows the browser frontend (served from a different origin
// during development) to call the API.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
