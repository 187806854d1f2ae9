package handler

import (
	"encoding/json"
	"net/http"
)

const (
	msgTermNotFound = "Termo não encontrado."
	msgInvalidQuery = "Consulta inválida."
	msgStillWorking = "Ainda gerando a definição. Tente novamente em instantes."
)

type errorResponse struct {
	Error      string `json:"error"`
	Retryable  bool   `json:"retryable"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
