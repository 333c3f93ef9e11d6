package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"stationpro-api/internal/reports"
)

func testSummary() reports.StationSummary {
	return reports.StationSummary{
		FuelRevenue:   125000,
		ShopRevenue:   8000,
		TotalExpenses: 45000,
		LowStock:      []string{"Lave Glace 5L"},
		Tanks: []reports.TankLevel{
			{FuelType: "Essence", Level: 15000, Capacity: 20000},
			{FuelType: "Diesel", Level: 22000, Capacity: 30000},
		},
		Currency: "FCFA",
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestGenerate(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "Optimisez vos marges."}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
	}, quietLogger())

	text, err := client.Generate(context.Background(), testSummary())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "Optimisez vos marges." {
		t.Errorf("Unexpected text: %q", text)
	}

	if !strings.Contains(gotPath, "/v1beta/models/gemini-2.0-flash:generateContent") {
		t.Errorf("Unexpected request path: %s", gotPath)
	}
	if !strings.Contains(gotPath, "key=test-key") {
		t.Errorf("Expected API key in query: %s", gotPath)
	}

	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
		t.Fatalf("Unexpected request shape: %+v", gotBody)
	}
	prompt := gotBody.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "Revenu Carburant: 125000 FCFA") {
		t.Errorf("Prompt missing fuel revenue line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Stock Bas: Lave Glace 5L") {
		t.Errorf("Prompt missing low stock line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Essence: 15000/20000L") {
		t.Errorf("Prompt missing tank line:\n%s", prompt)
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost"}, quietLogger())

	_, err := client.Generate(context.Background(), testSummary())
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Errorf("Expected missing key error, got %v", err)
	}
}

func TestGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k", Model: "m"}, quietLogger())

	_, err := client.Generate(context.Background(), testSummary())
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("Expected status error, got %v", err)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k", Model: "m"}, quietLogger())

	_, err := client.Generate(context.Background(), testSummary())
	if err == nil || !strings.Contains(err.Error(), "no candidates") {
		t.Errorf("Expected no candidates error, got %v", err)
	}
}

func TestBuildPromptNoLowStock(t *testing.T) {
	summary := testSummary()
	summary.LowStock = nil

	prompt := BuildPrompt(summary)
	if !strings.Contains(prompt, "Stock Bas: Aucun") {
		t.Errorf("Expected Aucun fallback:\n%s", prompt)
	}
}
