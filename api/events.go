package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/9seconds/geoenrich/enricher"
)

func (a *api) enrichEvent(w http.ResponseWriter, r *http.Request) {
	evt := enricher.Event{}

	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		abort(w, http.StatusBadRequest, "Cannot parse event: "+err.Error())

		return
	}

	if evt.EventID == "" {
		abort(w, http.StatusBadRequest, "eventid is required")

		return
	}

	enriched, ok := a.enricher.Enrich(r.Context(), evt)
	if !ok {
		w.WriteHeader(http.StatusNoContent)

		return
	}

	log.WithFields(log.Fields{
		"eventid": enriched.EventID,
		"session": enriched.Session,
		"remote":  r.RemoteAddr,
	}).Debug("Event was enriched via API.")

	encodeJSON(w, http.StatusOK, enriched)
}
