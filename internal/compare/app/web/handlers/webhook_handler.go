package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"gocompare_api/internal/compare/business/services/ingest"
	"gocompare_api/pkg/logger"
)

const maxWebhookBody = 1 << 20

type Ingester interface {
	Ingest(ctx context.Context, req ingest.Request) (*ingest.Result, error)
}

// webhookPayload accepts both the short {category, runId} form and the
// actor platform's own run notification.
type webhookPayload struct {
	Category  string `json:"category"`
	RunID     string `json:"runId"`
	DatasetID string `json:"datasetId"`
	Source    string `json:"source"`
	Resource  struct {
		ID               string `json:"id"`
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"resource"`
	EventData struct {
		ActorRunID string `json:"actorRunId"`
	} `json:"eventData"`
}

func (p webhookPayload) request(r *http.Request) ingest.Request {
	req := ingest.Request{
		Category:  firstNonEmpty(p.Category, r.URL.Query().Get("category")),
		RunID:     firstNonEmpty(p.RunID, p.Resource.ID, p.EventData.ActorRunID),
		DatasetID: firstNonEmpty(p.DatasetID, p.Resource.DefaultDatasetID),
		Source:    firstNonEmpty(p.Source, r.URL.Query().Get("source")),
	}
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	return req
}

type webhookResponse struct {
	Success bool `json:"success"`
	*ingest.Result
}

type WebhookHandler struct {
	ingester Ingester
	log      logger.Logger
}

func NewWebhookHandler(ingester Ingester, writer io.Writer) *WebhookHandler {
	return &WebhookHandler{ingester: ingester, log: logger.NewLogger(writer, "[Webhook]")}
}

// Apify runs one ingestion batch for the posted actor run.
func (h *WebhookHandler) Apify(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	err := json.NewDecoder(io.LimitReader(r.Body, maxWebhookBody)).Decode(&payload)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req := payload.request(r)

	result, err := h.ingester.Ingest(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if ingest.IsInputError(err) {
			status = http.StatusBadRequest
		}
		h.log.Error("Ingestion of run %q (%s) failed: %v", req.RunID, req.Category, err)
		writeError(w, status, err.Error())
		return
	}

	h.log.Log("Run %q (%s): inserted %d, merged %d, skipped %d, errors %d of %d",
		req.RunID, result.Category, result.Inserted, result.Merged, result.Skipped, result.Errors, result.Total)
	writeJSON(w, http.StatusOK, webhookResponse{Success: true, Result: result})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
