//go:build !test

/* server.go
 * Contains the HTTP server Start function that listens for incoming connections.
 * Excluded from test coverage as it blocks and requires real network binding.
 */

package web

import (
	"log"
	"net/http"
	"time"
)

// Start initializes and starts the HTTP server with the given configuration
func Start(cfg Config) error {
	s := NewServer(cfg)

	mux := http.NewServeMux()
	// bind handler methods that have access to s.api
	mux.HandleFunc("/picker/pick", s.PickHandler)
	mux.HandleFunc("/picker/complete", s.CompleteRoundHandler)
	mux.HandleFunc("/picker/new-round", s.NewRoundHandler)
	mux.HandleFunc("/picker/stats", s.PickStatsHandler)
	mux.HandleFunc("/shuffler/run", s.ShuffleHandler)
	mux.HandleFunc("/shuffler/toggle", s.ToggleCompletionHandler)
	mux.HandleFunc("/shuffler/stats", s.ShuffleStatsHandler)
	mux.HandleFunc("/assigners/equitable", s.EquitableHandler)
	mux.HandleFunc("/assigners/rotating", s.RotatingHandler)
	mux.HandleFunc("/assigners/random", s.RandomHandler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	log.Println("HTTP server listening on", cfg.Addr)
	return srv.ListenAndServe()
}
