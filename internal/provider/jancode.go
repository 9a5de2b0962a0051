package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"price-catalog/internal/util"
)

// Product is the external provider's view of a catalog item. CodeNumber is
// the provider's canonical form of the queried barcode and may differ from
// it in the trailing check digit.
type Product struct {
	CodeNumber   string `json:"codeNumber"`
	ItemName     string `json:"itemName"`
	MakerName    string `json:"makerName"`
	BrandName    string `json:"brandName"`
	ItemImageURL string `json:"itemImageUrl"`
}

type lookupResponse struct {
	Product []Product `json:"product"`
}

// Client calls the JAN code lookup API.
type Client struct {
	baseURL    string
	appKey     string
	httpClient *http.Client
}

// NewClient creates a provider client with a bounded request timeout.
func NewClient(baseURL, appKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		appKey:  appKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchByBarcode queries the provider for a barcode. A nil product with a
// nil error means the provider knows nothing about the code.
func (c *Client) FetchByBarcode(ctx context.Context, barcode string) (*Product, error) {
	start := time.Now()
	defer func() {
		util.ProviderRequestLatency.Observe(time.Since(start).Seconds())
	}()

	reqURL := fmt.Sprintf("%s?appId=%s&query=%s",
		c.baseURL, url.QueryEscape(c.appKey), url.QueryEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if len(body.Product) == 0 {
		return nil, nil
	}
	return &body.Product[0], nil
}
