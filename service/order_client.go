package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"keypad-studio/models"
)

// OrderClient consumes the order/cart collaborator. Only reads are needed
// here: the export pipeline fetches an order's configured lines, it never
// mutates orders.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOrderClient creates a client for the order service at baseURL.
func NewOrderClient(baseURL string) *OrderClient {
	return &OrderClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// Ensure OrderClient implements OrderServiceInterface
var _ OrderServiceInterface = (*OrderClient)(nil)

// rawLine is the collaborator's duck-typed line shape; the stored keypad
// configuration travels in a custom-fields bag and is extracted here, at the
// boundary.
type rawLine struct {
	LineID       string                 `json:"lineId"`
	ProductName  string                 `json:"productName"`
	Quantity     int                    `json:"quantity"`
	CustomFields map[string]interface{} `json:"customFields"`
}

type linesResponse struct {
	Lines []rawLine `json:"lines"`
}

// GetConfiguredLines returns the order's lines that carry a stored keypad
// configuration. Lines without one are not keypad lines and are skipped.
func (c *OrderClient) GetConfiguredLines(ctx context.Context, orderCode string) ([]models.ConfiguredLine, error) {
	endpoint := fmt.Sprintf("%s/orders/%s/lines", c.baseURL, url.PathEscape(orderCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach order service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order service returned status %d for order %s", resp.StatusCode, orderCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}

	var parsed linesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse order lines: %w", err)
	}

	var lines []models.ConfiguredLine
	for _, raw := range parsed.Lines {
		stored := stringField(raw.CustomFields, "keypadConfiguration")
		if stored == "" {
			continue
		}
		lines = append(lines, models.ConfiguredLine{
			LineID:        raw.LineID,
			ProductName:   raw.ProductName,
			Quantity:      raw.Quantity,
			Configuration: stored,
		})
	}
	return lines, nil
}
