// Command payment_gateway is a local stand-in for the payments backend.
//
// Donations above MaxDonation are declined with 402. MOCK_FAILURE_RATE (0..1)
// makes a share of the remaining requests answer {"status":"failed"}.
// Repeated Idempotency-Key values replay the first response.
package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxDonation is the largest donation the mock accepts.
const MaxDonation = 10000

type response struct {
	TransactionID string `json:"transaction_id,omitempty"`
	Status        string `json:"status"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	Message       string `json:"message,omitempty"`
}

type replay struct {
	code int
	body response
}

type gateway struct {
	failureRate float64

	mu   sync.Mutex
	seen map[string]replay
}

func main() {
	rate, _ := strconv.ParseFloat(os.Getenv("MOCK_FAILURE_RATE"), 64)
	g := &gateway{failureRate: rate, seen: make(map[string]replay)}

	http.HandleFunc("/api/donations", g.idempotent(func(r *http.Request) (int, response) {
		var req struct {
			Amount   float64 `json:"amount"`
			Currency string  `json:"currency"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount <= 0 {
			return http.StatusBadRequest, response{Status: "failed", Message: "invalid amount"}
		}
		if req.Amount > MaxDonation {
			return http.StatusPaymentRequired, response{Status: "failed", Message: "amount exceeds card limit"}
		}
		return g.settle(response{})
	}))

	http.HandleFunc("/api/subscriptions", g.idempotent(func(r *http.Request) (int, response) {
		var req struct {
			UserID string `json:"user_id"`
			PlanID string `json:"plan_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.PlanID == "" {
			return http.StatusBadRequest, response{Status: "failed", Message: "user_id and plan_id are required"}
		}
		return g.settle(response{RedirectURL: "http://localhost:8081/checkout/" + req.PlanID})
	}))

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Payment Gateway] Health write error: %v", err)
		}
	})

	log.Printf("Mock Payment Gateway running on :8081 (failure rate %.2f)", rate)
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

func (g *gateway) settle(resp response) (int, response) {
	if g.failureRate > 0 && rand.Float64() <= g.failureRate {
		return http.StatusOK, response{Status: "failed", Message: "card declined"}
	}

	resp.TransactionID = uuid.NewString()
	resp.Status = "succeeded"
	return http.StatusOK, resp
}

func (g *gateway) idempotent(handle func(r *http.Request) (int, response)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Simulate processing latency (200-700ms)
		time.Sleep(time.Duration(200+rand.Intn(500)) * time.Millisecond)

		key := r.Header.Get("Idempotency-Key")

		g.mu.Lock()
		prev, replayed := g.seen[key]
		g.mu.Unlock()

		if !replayed {
			code, body := handle(r)
			prev = replay{code: code, body: body}
			if key != "" {
				g.mu.Lock()
				g.seen[key] = prev
				g.mu.Unlock()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(prev.code)
		if err := json.NewEncoder(w).Encode(prev.body); err != nil {
			log.Printf("[Payment Gateway] Write error: %v", err)
		}

		log.Printf("[Payment Gateway] %s %s - %d %s (replayed=%t)", r.Method, r.URL.Path, prev.code, prev.body.Status, replayed)
	}
}
