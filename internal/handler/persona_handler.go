package handler

import (
	"net/http"

	"desbuguei/internal/domain"
)

// PersonaHandler lista as personas disponiveis para o assistente de voz.
func PersonaHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default":  domain.DefaultPersonaID,
		"personas": domain.Personas(),
	})
}
