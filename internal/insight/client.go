package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"stationpro-api/internal/reports"
)

// Config holds the generative-text service configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is an HTTP Generator speaking the generateContent protocol.
type Client struct {
	config Config
	http   *http.Client
	logger *logrus.Logger
}

// NewClient creates a client for the configured endpoint.
func NewClient(config Config, logger *logrus.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate posts the summary prompt and returns the generated text.
func (c *Client) Generate(ctx context.Context, summary reports.StationSummary) (string, error) {
	if c.config.APIKey == "" {
		return "", fmt.Errorf("insight API key is not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: BuildPrompt(summary)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode insight request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.config.BaseURL, "/"), c.config.Model, c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build insight request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("insight request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insight service returned status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode insight response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("insight service returned no candidates")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// BuildPrompt renders the summary as the analysis prompt sent to the
// generative service.
func BuildPrompt(summary reports.StationSummary) string {
	var b strings.Builder

	b.WriteString("Analysez la performance de la station-service suivante et fournissez 3 recommandations stratégiques clés en français.\n")
	fmt.Fprintf(&b, "- Revenu Carburant: %.0f %s\n", math.Round(summary.FuelRevenue), summary.Currency)
	fmt.Fprintf(&b, "- Revenu Boutique: %.0f %s\n", math.Round(summary.ShopRevenue), summary.Currency)
	fmt.Fprintf(&b, "- Dépenses Totales: %.0f %s\n", math.Round(summary.TotalExpenses), summary.Currency)

	lowStock := "Aucun"
	if len(summary.LowStock) > 0 {
		lowStock = strings.Join(summary.LowStock, ", ")
	}
	fmt.Fprintf(&b, "- Stock Bas: %s\n", lowStock)

	tanks := make([]string, 0, len(summary.Tanks))
	for _, t := range summary.Tanks {
		tanks = append(tanks, fmt.Sprintf("%s: %.0f/%.0fL", t.FuelType, t.Level, t.Capacity))
	}
	fmt.Fprintf(&b, "- Cuves: %s\n", strings.Join(tanks, ", "))

	b.WriteString("\nGardez un ton professionnel et expert.")

	return b.String()
}
