package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDiagnosisRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/roster/diagnosis", handler.DiagnoseRoster)
	mux.HandleFunc("POST /v1/roster/diagnosis/raw", handler.DiagnoseScoredRoster)
	mux.HandleFunc("GET /v1/players/{playerName}/durability", handler.GetPlayerDurability)
}
