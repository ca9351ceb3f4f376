package gateway

import (
	"math"
	"strings"

	"github.com/bardlex/minegate/internal/miner"
)

// SolutionMarker in a status message means the session found a solution.
// The match is literal and case-sensitive.
const SolutionMarker = "Solution found"

// StatusView is the public shape of a status query
type StatusView struct {
	IsMining      bool    `json:"is_mining"`
	CurrentNonce  string  `json:"current_nonce"`
	TotalHashes   uint64  `json:"total_hashes"`
	HashRate      float64 `json:"hash_rate"`
	Message       string  `json:"message"`
	SolutionFound bool    `json:"solution_found"`
	SolutionNonce *string `json:"solution_nonce,omitempty"`
}

// NewStatusView copies st and derives the solution fields
func NewStatusView(st *miner.Status) StatusView {
	view := StatusView{
		IsMining:     st.IsMining,
		CurrentNonce: st.CurrentNonce,
		TotalHashes:  st.TotalHashes,
		HashRate:     st.HashRate,
		Message:      st.Message,
	}

	// JSON cannot carry NaN or infinities
	if math.IsNaN(view.HashRate) || math.IsInf(view.HashRate, 0) {
		view.HashRate = 0
	}

	if strings.Contains(st.Message, SolutionMarker) {
		view.SolutionFound = true
		nonce := st.CurrentNonce
		view.SolutionNonce = &nonce
	}

	return view
}

// Finished reports whether a watch on this session can stop
func (v StatusView) Finished() bool {
	return !v.IsMining || v.SolutionFound
}
