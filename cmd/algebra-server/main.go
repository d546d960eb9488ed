// cmd/algebra-server/main.go: HTTP tool server for goalgebra
//
// Exposes parsing and simplification as JSON tool calls.
//
// Usage:
//
//	go run ./cmd/algebra-server -port 8080 -rps 20 -burst 40
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"golang.org/x/time/rate"

	goalgebra "github.com/njchilds90/goalgebra"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	rps := flag.Float64("rps", 20, "Sustained tool calls per second (0 disables limiting)")
	burst := flag.Int("burst", 40, "Burst size for the rate limiter")
	flag.Parse()

	var limiter *rate.Limiter
	if *rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(*rps), *burst)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("goalgebra tool server listening on %s", addr)
	log.Printf("  POST /tool   - execute a tool call")
	log.Printf("  GET  /schema - tool schema")
	log.Printf("  GET  /health - health check")
	if limiter != nil {
		log.Printf("  rate limit: %.1f req/s, burst %d", *rps, *burst)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// newMux builds the server routes. A nil limiter disables rate limiting.
func newMux(limiter *rate.Limiter) *http.ServeMux {
	mux := http.NewServeMux()

	// POST /tool: handle a tool call
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in /tool: %v\n%s", rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if limiter != nil && !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req goalgebra.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeError(w, http.StatusBadRequest, "invalid JSON: trailing data")
			return
		}

		resp := goalgebra.HandleToolCall(req)
		if resp.Error != "" {
			log.Printf("tool %s: %s", req.Tool, resp.Error)
		}
		body, err := json.Marshal(resp)
		if err != nil {
			log.Printf("tool %s: encode response: %v", req.Tool, err)
			writeError(w, http.StatusInternalServerError, "encode response: "+err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(append(body, '\n'))
	})

	// GET /schema: return tool schema
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, goalgebra.ToolSpec())
	})

	// GET /health: liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	return mux
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
