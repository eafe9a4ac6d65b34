package handlers

import (
	"net/http"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/application/services"
)

// PipelineHandler triggers ETL runs over HTTP
type PipelineHandler struct {
	etl *services.ETLService
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(etl *services.ETLService) *PipelineHandler {
	return &PipelineHandler{etl: etl}
}

// TriggerRun handles POST /api/pipeline/run
func (h *PipelineHandler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	report, err := h.etl.Run(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
