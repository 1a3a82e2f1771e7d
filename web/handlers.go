/* handlers.go
 * Contains the HTTP handler methods for the random-tools endpoints. Mutation
 * endpoints share one rate limiter; each operation is a single synchronous
 * request invoked by one operator at a time.
 */

package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"classtools/api/logic"
	"classtools/api/store"
)

// PickHandler handles POST /picker/pick: draws one student from the active round
func (s *Server) PickHandler(w http.ResponseWriter, r *http.Request) {
	var req PickRequest
	if !s.decodeMutation(w, r, &req) {
		return
	}

	student, position, err := s.api.PickStudent(toShared(req.Participants))
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := PickResponse{Exhausted: student == nil}
	if student != nil {
		resp.Student = &Participant{ID: student.ID, DisplayName: student.DisplayName, Gender: student.Gender}
		resp.Position = position
	}
	writeJSON(w, http.StatusOK, resp)
}

// CompleteRoundHandler handles POST /picker/complete: marks the active round completed
func (s *Server) CompleteRoundHandler(w http.ResponseWriter, r *http.Request) {
	if !s.checkMutation(w, r) {
		return
	}
	if err := s.api.CompleteActiveRound(); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NewRoundHandler handles POST /picker/new-round: retires the active round and starts a fresh one
func (s *Server) NewRoundHandler(w http.ResponseWriter, r *http.Request) {
	if !s.checkMutation(w, r) {
		return
	}
	round, err := s.api.StartNewRound()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, round)
}

// PickStatsHandler handles GET /picker/stats
func (s *Server) PickStatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.api.PickStats()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ShuffleHandler handles POST /shuffler/run: produces and persists a constrained permutation
func (s *Server) ShuffleHandler(w http.ResponseWriter, r *http.Request) {
	var req ShuffleRequest
	if !s.decodeMutation(w, r, &req) {
		return
	}
	results, err := s.api.RunShuffle(toShared(req.Participants))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// ToggleCompletionHandler handles POST /shuffler/toggle: flips a checklist entry on a run
func (s *Server) ToggleCompletionHandler(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !s.decodeMutation(w, r, &req) {
		return
	}
	ids, err := s.api.ToggleCompletion(req.RunID, req.StudentID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{CompletedStudentIDs: ids})
}

// ShuffleStatsHandler handles GET /shuffler/stats
func (s *Server) ShuffleStatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.api.ShuffleStats(nil)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// EquitableHandler handles POST /assigners/equitable
func (s *Server) EquitableHandler(w http.ResponseWriter, r *http.Request) {
	var req AssignerRequest
	if !s.decodeMutation(w, r, &req) {
		return
	}
	results, err := s.api.RunEquitable(toShared(req.Participants), req.Items, req.BalanceGender, req.Strict)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// RotatingHandler handles POST /assigners/rotating
func (s *Server) RotatingHandler(w http.ResponseWriter, r *http.Request) {
	var req AssignerRequest
	if !s.decodeMutation(w, r, &req) {
		return
	}
	results, err := s.api.RunRotating(toShared(req.Participants), req.Items, req.Direction, req.BalanceGender, req.Strict)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// RandomHandler handles POST /assigners/random
func (s *Server) RandomHandler(w http.ResponseWriter, r *http.Request) {
	var req AssignerRequest
	if !s.decodeMutation(w, r, &req) {
		return
	}
	results, err := s.api.RunRandom(toShared(req.Participants), req.Items)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// checkMutation enforces the POST method and the shared rate limit
func (s *Server) checkMutation(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if !s.limiter.Allow() {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return false
	}
	return true
}

// decodeMutation runs the mutation checks and decodes the JSON request body
func (s *Server) decodeMutation(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !s.checkMutation(w, r) {
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// writeError maps domain errors onto HTTP statuses
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, logic.ErrCountMismatch):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrOutOfOrderAppend):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		log.Println("request failed:", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("failed to encode response:", err)
	}
}
