// internal/controller/call_log_controller.go
package controller

import (
    "encoding/csv"
    "encoding/json"
    "fmt"
    "mime"
    "net/http"
    "time"

    "github.com/unclebandit/outreach-tracker/internal/model"
    "github.com/unclebandit/outreach-tracker/internal/repository"
    "github.com/unclebandit/outreach-tracker/internal/service"
)

// StatusProvider reports which backend the process is writing to.
type StatusProvider interface {
    Status() repository.BackendStatus
}

type CallLogController struct {
    CallLogService *service.CallLogService
    Store          StatusProvider
}

type recordCallRequest struct {
    Campaign   string `json:"campaign"`
    CustomerID string `json:"customer_id"`
    Outcome    string `json:"outcome"`
    Note       string `json:"note"`
}

// RecordCall accepts a JSON body or a submitted form.
func (c *CallLogController) RecordCall(w http.ResponseWriter, r *http.Request) {
    var body recordCallRequest

    mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
    if mediaType == "application/json" {
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            http.Error(w, "invalid body", http.StatusBadRequest)
            return
        }
    } else {
        if err := r.ParseForm(); err != nil {
            http.Error(w, "invalid form", http.StatusBadRequest)
            return
        }
        body = recordCallRequest{
            Campaign:   r.PostFormValue("campaign"),
            CustomerID: r.PostFormValue("customer_id"),
            Outcome:    r.PostFormValue("outcome"),
            Note:       r.PostFormValue("note"),
        }
    }

    entry, err := c.CallLogService.RecordCall(r.Context(), body.Campaign, body.CustomerID, body.Outcome, body.Note)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusCreated, entry)
}

func (c *CallLogController) ListCalls(w http.ResponseWriter, r *http.Request) {
    entries, err := c.CallLogService.ListCalls(r.Context(), r.URL.Query().Get("campaign"))
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "data":  entries,
        "count": len(entries),
    })
}

func (c *CallLogController) Status(w http.ResponseWriter, r *http.Request) {
    status := c.Store.Status()
    writeJSON(w, http.StatusOK, map[string]interface{}{
        "backend": status.Backend,
        "remote":  status.Remote,
        "label":   status.Label(),
        "reason":  status.Reason,
    })
}

// ExportCSV downloads the full call log with the same columns as the worksheet.
func (c *CallLogController) ExportCSV(w http.ResponseWriter, r *http.Request) {
    entries, err := c.CallLogService.ListCalls(r.Context(), r.URL.Query().Get("campaign"))
    if err != nil {
        writeError(w, err)
        return
    }

    filename := fmt.Sprintf("outreach_log_%s.csv", time.Now().Format("20060102"))
    w.Header().Set("Content-Type", "text/csv; charset=utf-8")
    w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

    cw := csv.NewWriter(w)
    cw.Write(model.CallLogHeader)
    for _, e := range entries {
        ts := ""
        if !e.Timestamp.IsZero() {
            ts = e.Timestamp.UTC().Format(time.RFC3339)
        }
        cw.Write([]string{ts, e.Campaign, e.CustomerID, string(e.Outcome), e.Note})
    }
    cw.Flush()
}
