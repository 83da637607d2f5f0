package sizing

import (
	"encoding/json"
	"net/http"

	"github.com/ansel1/merry"

	"micropipe/internal/pipes"
	"micropipe/internal/props"
)

type Handler struct {
	Engine *Engine
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Engine.Calculate(input)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// statusFor maps the engine error taxonomy onto HTTP statuses: every one of
// them is a caller-input problem, but unknown-reference errors read better
// as 404s.
func statusFor(err error) int {
	switch {
	case merry.Is(err, props.ErrUnknownRefrigerant),
		merry.Is(err, pipes.ErrUnknownMaterialOrSize),
		merry.Is(err, pipes.ErrUnknownFitting),
		merry.Is(err, ErrUnknownCircuitType):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
