/* models.go
 * Contains the configuration, server and request/response payload structs for the web package
 */

package web

import (
	"golang.org/x/time/rate"

	"classtools/api/api"
	"classtools/api/shared"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	// Mutations per second allowed before requests get a 429. Zero selects
	// the default of 5/s with a burst of 10.
	RateLimit rate.Limit
	Burst     int
}

// Server is the HTTP server that handles random-tools requests
type Server struct {
	api     *api.API
	limiter *rate.Limiter
}

// NewServer builds a Server from the configuration, applying rate limit defaults
func NewServer(cfg Config) *Server {
	limit := cfg.RateLimit
	burst := cfg.Burst
	if limit == 0 {
		limit = rate.Limit(5)
	}
	if burst == 0 {
		burst = 10
	}
	return &Server{
		api:     cfg.API,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Participant is the wire form of a roster entry
type Participant struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Gender      string `json:"gender,omitempty"`
}

// PickRequest supplies the roster the pick draws from
type PickRequest struct {
	Participants []Participant `json:"participants"`
}

// PickResponse reports the drawn student, or Exhausted when every student has
// already been picked this round
type PickResponse struct {
	Student   *Participant `json:"student,omitempty"`
	Position  int          `json:"position,omitempty"`
	Exhausted bool         `json:"exhausted"`
}

// ShuffleRequest supplies the roster to permute
type ShuffleRequest struct {
	Participants []Participant `json:"participants"`
}

// ToggleRequest identifies the shuffle run checklist entry to flip
type ToggleRequest struct {
	RunID     string `json:"runId"`
	StudentID string `json:"studentId"`
}

// ToggleResponse returns the updated checklist
type ToggleResponse struct {
	CompletedStudentIDs []string `json:"completedStudentIds"`
}

// AssignerRequest supplies the inputs shared by the three assigner endpoints.
// Direction and Strict are ignored by the assigners that do not use them.
type AssignerRequest struct {
	Participants  []Participant `json:"participants"`
	Items         []string      `json:"items"`
	Direction     string        `json:"direction,omitempty"`
	BalanceGender bool          `json:"balanceGender,omitempty"`
	Strict        bool          `json:"strict,omitempty"`
}

// ErrorResponse carries a user-facing failure message
type ErrorResponse struct {
	Error string `json:"error"`
}

// toShared converts wire participants to the domain type
func toShared(participants []Participant) []shared.Participant {
	out := make([]shared.Participant, 0, len(participants))
	for _, p := range participants {
		out = append(out, shared.Participant{ID: p.ID, DisplayName: p.DisplayName, Gender: p.Gender})
	}
	return out
}
