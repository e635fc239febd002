package controller

import (
    "encoding/json"
    "errors"
    "net/http"

    appErrors "github.com/unclebandit/outreach-tracker/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}

// writeError maps the app error types onto status codes.
func writeError(w http.ResponseWriter, err error) {
    var (
        verr     *appErrors.ValidationError
        werr     *appErrors.WriteError
        notFound *appErrors.CampaignNotFoundError
        noCust   *appErrors.CustomerNotFoundError
    )
    switch {
    case errors.As(err, &verr):
        writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error(), "field": verr.Field})
    case errors.As(err, &notFound):
        writeJSON(w, http.StatusNotFound, map[string]string{"error": notFound.Error()})
    case errors.As(err, &noCust):
        writeJSON(w, http.StatusNotFound, map[string]string{"error": noCust.Error()})
    case errors.As(err, &werr):
        writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "call was not logged: " + werr.Err.Error()})
    default:
        writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
    }
}
