// Package ptconv exposes the saturation pressure/temperature conversions as
// calculator endpoints.
package ptconv

import (
	"encoding/json"
	"net/http"

	"micropipe/internal/props"
)

type Handler struct {
	Conv *props.Converter
}

type pressureAtInput struct {
	Refrigerant string  `json:"refrigerant"`
	TempC       float64 `json:"temp_c"`
}

type temperatureAtInput struct {
	Refrigerant string  `json:"refrigerant"`
	PressureKPa float64 `json:"pressure_kpa"`
}

type penaltyInput struct {
	Refrigerant string  `json:"refrigerant"`
	RefTempC    float64 `json:"ref_temp_c"`
	DropKPa     float64 `json:"drop_kpa"`
}

func (h *Handler) PressureAt(w http.ResponseWriter, r *http.Request) {
	var in pressureAtInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	p, err := h.Conv.PressureAt(in.Refrigerant, in.TempC)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]float64{"pressure_kpa": p})
}

func (h *Handler) TemperatureAt(w http.ResponseWriter, r *http.Request) {
	var in temperatureAtInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	temp, err := h.Conv.TemperatureAt(in.Refrigerant, in.PressureKPa)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]float64{"temp_c": temp})
}

func (h *Handler) Penalty(w http.ResponseWriter, r *http.Request) {
	var in penaltyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	penalty, err := h.Conv.TemperaturePenalty(in.Refrigerant, in.RefTempC, in.DropKPa)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]float64{"temp_penalty_k": penalty})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
