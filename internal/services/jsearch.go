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

// jSearchProvider queries the JSearch API on RapidAPI.
type jSearchProvider struct {
	apiKey  string
	host    string
	baseURL string
	client  *http.Client
}

func NewJSearchProvider(apiKey string) JobProvider {
	return &jSearchProvider{
		apiKey:  apiKey,
		host:    "jsearch.p.rapidapi.com",
		baseURL: "https://jsearch.p.rapidapi.com",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *jSearchProvider) Name() string { return "jsearch" }

func (p *jSearchProvider) Search(ctx context.Context, query string) ([]models.JobListing, error) {
	endpoint := fmt.Sprintf("%s/search?query=%s&page=1&num_pages=1", p.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build jsearch request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", p.apiKey)
	req.Header.Set("X-RapidAPI-Host", p.host)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("jsearch returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var out struct {
		Data []struct {
			EmployerName string `json:"employer_name"`
			JobTitle     string `json:"job_title"`
			JobApplyLink string `json:"job_apply_link"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode jsearch response: %w", err)
	}

	listings := make([]models.JobListing, 0, len(out.Data))
	for _, d := range out.Data {
		listings = append(listings, models.JobListing{
			Company:  d.EmployerName,
			Position: d.JobTitle,
			ApplyURL: d.JobApplyLink,
			Source:   p.Name(),
		})
	}

	return listings, nil
}
