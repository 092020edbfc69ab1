package api

import (
	"encoding/json"
	"net/http"
)

type statsResponse struct {
	Cache    json.Marshaler `json:"cache"`
	Enricher json.Marshaler `json:"enricher"`
}

func (a *api) stats(w http.ResponseWriter, r *http.Request) {
	encodeJSON(w, http.StatusOK, statsResponse{
		Cache:    a.cacheStats,
		Enricher: a.enricherStats,
	})
}
