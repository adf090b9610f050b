package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resume-analyzer/internal/models"
)

// adzunaProvider queries the Adzuna job search API.
type adzunaProvider struct {
	appID   string
	appKey  string
	country string
	baseURL string
	client  *http.Client
}

func NewAdzunaProvider(appID, appKey, country string) JobProvider {
	return &adzunaProvider{
		appID:   appID,
		appKey:  appKey,
		country: country,
		baseURL: "https://api.adzuna.com",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *adzunaProvider) Name() string { return "adzuna" }

func (p *adzunaProvider) Search(ctx context.Context, query string) ([]models.JobListing, error) {
	params := url.Values{}
	params.Set("app_id", p.appID)
	params.Set("app_key", p.appKey)
	params.Set("what", query)
	params.Set("results_per_page", "10")
	params.Set("content-type", "application/json")

	endpoint := fmt.Sprintf("%s/v1/api/jobs/%s/search/1?%s", p.baseURL, p.country, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build adzuna request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("adzuna returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var out struct {
		Results []struct {
			Company struct {
				DisplayName string `json:"display_name"`
			} `json:"company"`
			Title       string `json:"title"`
			RedirectURL string `json:"redirect_url"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode adzuna response: %w", err)
	}

	listings := make([]models.JobListing, 0, len(out.Results))
	for _, r := range out.Results {
		listings = append(listings, models.JobListing{
			Company:  r.Company.DisplayName,
			Position: r.Title,
			ApplyURL: r.RedirectURL,
			Source:   p.Name(),
		})
	}

	return listings, nil
}
