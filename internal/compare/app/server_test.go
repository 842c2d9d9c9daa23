package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gocompare_api/config"
	"gocompare_api/internal/auth"
	"gocompare_api/internal/compare/business/models"
)

const datasetItems = `[
	{"id": "hb-1", "name": "Samsung Galaxy A54 8GB 128GB Siyah", "price": "15.999 TL",
	 "url": "https://www.example.com/p/hb-1", "image": "https://cdn.example.com/a54.jpg",
	 "ratingScore": {"averageRating": 4.5, "totalCount": 320}},
	{"id": "hb-2", "name": "Fiyatı olmayan telefon"}
]`

func newFakeApify(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/actor-runs/run-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"id": "run-1", "status": "SUCCEEDED", "defaultDatasetId": "ds-1"}}`)
	})
	mux.HandleFunc("/datasets/ds-1/items", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "apify-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, datasetItems)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) (*CompareServer, *config.AppConfig) {
	t.Helper()
	apify := newFakeApify(t)

	cfg := &config.AppConfig{
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Sqlite: config.SqliteConfig{Path: filepath.Join(t.TempDir(), "compare.db")},
		},
		Apify:   config.ApifyConfig{BaseURL: apify.URL, Token: "apify-token"},
		Webhook: config.WebhookConfig{RateLimit: 100, Burst: 100},
		Cors:    config.CorsConfig{AllowedOrigins: []string{"*"}},
	}

	s := NewCompareServer(NewConnector(cfg), cfg, io.Discard)
	if err := s.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	db, _ := s.Connect()
	t.Cleanup(func() { db.Close() })
	return s, cfg
}

func do(t *testing.T, h http.Handler, method, target, body string, header http.Header) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		// list bodies do not decode into a map; those tests read rec.Body
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func TestWebhookIngestsRunAndServesCards(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec, body := do(t, h, http.MethodPost, "/api/webhooks/apify", `{"category": "telefon", "runId": "run-1"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true || body["inserted"] != float64(1) || body["skipped"] != float64(1) || body["total"] != float64(2) {
		t.Fatalf("unexpected webhook response %v", body)
	}
	if body["category"] != "telefon" || body["source"] != "Trendyol" {
		t.Fatalf("unexpected category/source in %v", body)
	}

	category, err := s.store.Categories.GetBySlug(context.Background(), "telefon")
	if err != nil || category == nil {
		t.Fatalf("get category: %v", err)
	}
	products, err := s.store.Products.ListByCategory(context.Background(), category.ID)
	if err != nil || len(products) != 1 {
		t.Fatalf("expected one stored product, got %d (%v)", len(products), err)
	}
	id := products[0].ID

	rec, card := do(t, h, http.MethodGet, "/api/products/"+id, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if card["display_name"] != "Samsung Galaxy A54 8GB 128GB" || card["price_label"] != "15.999 TL" {
		t.Fatalf("unexpected card %v", card)
	}
	labels, _ := card["spec_labels"].(map[string]interface{})
	if labels["RAM"] != "8 GB" || labels["Depolama"] != "128 GB" {
		t.Fatalf("unexpected spec labels %v", card["spec_labels"])
	}

	rec, body = do(t, h, http.MethodGet, "/api/compare?a="+id+"&b=6a0f3a9c-5d1e-4c8b-9f2a-000000000000", "", nil)
	if rec.Code != http.StatusNotFound || body["success"] != false {
		t.Fatalf("expected 404 not-found body, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, body = do(t, h, http.MethodGet, "/api/compare?a="+id+"&b="+id, "", nil)
	if rec.Code != http.StatusOK || body["winner"] != string(models.WinnerTie) {
		t.Fatalf("expected a tie comparing a product with itself, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWebhookAcceptsPlatformPayload(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	payload := `{"eventType": "ACTOR.RUN.SUCCEEDED", "eventData": {"actorRunId": "run-1"},
		"resource": {"id": "run-1", "defaultDatasetId": "ds-1"}}`
	rec, body := do(t, h, http.MethodPost, "/api/webhooks/apify?category=telefon&source=Hepsiburada", payload, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["source"] != "Hepsiburada" || body["inserted"] != float64(1) {
		t.Fatalf("unexpected response %v", body)
	}
}

func TestWebhookRejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	cases := []struct {
		name, body string
		status     int
	}{
		{"malformed json", `{"category":`, http.StatusBadRequest},
		{"missing run id", `{"category": "telefon"}`, http.StatusBadRequest},
		{"missing category", `{"runId": "run-1"}`, http.StatusBadRequest},
		{"unknown category", `{"category": "uzay-gemisi", "runId": "run-1"}`, http.StatusBadRequest},
		{"upstream failure", `{"category": "telefon", "runId": "run-404"}`, http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, body := do(t, h, http.MethodPost, "/api/webhooks/apify", c.body, nil)
			if rec.Code != c.status {
				t.Fatalf("expected %d, got %d: %s", c.status, rec.Code, rec.Body.String())
			}
			if msg, _ := body["error"].(string); body["success"] != false || msg == "" {
				t.Fatalf("expected error body, got %v", body)
			}
		})
	}
}

func TestWebhookRequiresTokenWhenSecretSet(t *testing.T) {
	s, cfg := newTestServer(t)
	cfg.Webhook.JWTSecret = "webhook-secret"
	h := s.Handler()

	rec, _ := do(t, h, http.MethodPost, "/api/webhooks/apify", `{"category": "telefon", "runId": "run-1"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := auth.IssueToken("webhook-secret", "apify", auth.RoleIngest, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	header := http.Header{"Authorization": {"Bearer " + token}}
	rec, _ = do(t, h, http.MethodPost, "/api/webhooks/apify", `{"category": "telefon", "runId": "run-1"}`, header)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}

	// read endpoints stay open
	rec, _ = do(t, h, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected open health endpoint, got %d", rec.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec, _ := do(t, s.Handler(), http.MethodGet, "/api/categories", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var categories []models.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(categories) != 5 || categories[0].Slug != "telefon" {
		t.Fatalf("unexpected categories %+v", categories)
	}
}

func TestIngestFile(t *testing.T) {
	s, _ := newTestServer(t)
	path := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(path, []byte(datasetItems), 0644); err != nil {
		t.Fatalf("write items: %v", err)
	}

	result, err := s.IngestFile(context.Background(), "telefon", "Amazon", path)
	if err != nil {
		t.Fatalf("ingest file: %v", err)
	}
	if result.Inserted != 1 || result.Skipped != 1 || result.Source != "Amazon" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestIngestFileCSV(t *testing.T) {
	s, _ := newTestServer(t)
	path := filepath.Join(t.TempDir(), "export.csv")
	export := "Ürün Adı;Fiyat;Link\n" +
		"Samsung Galaxy A54 8GB 128GB Siyah;15.999 TL;https://www.example.com/p/a54\n" +
		"Fiyatı olmayan telefon;;https://www.example.com/p/none\n"
	if err := os.WriteFile(path, []byte(export), 0644); err != nil {
		t.Fatalf("write export: %v", err)
	}

	result, err := s.IngestFile(context.Background(), "telefon", "Hepsiburada", path)
	if err != nil {
		t.Fatalf("ingest csv: %v", err)
	}
	if result.Inserted != 1 || result.Skipped != 1 || result.Source != "Hepsiburada" {
		t.Fatalf("unexpected result %+v", result)
	}
}
