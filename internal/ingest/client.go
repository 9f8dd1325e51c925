package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"orlof/internal/records"
)

// Client fetches record collections from the two upstream services: the
// national registry (individuals, children) and the labour directorate
// (incomes, estimated birth dates).
type Client struct {
	registryURL string
	labourURL   string
	http        *http.Client
}

// NewClient constructs an upstream client. Base URLs carry no trailing slash.
func NewClient(registryURL, labourURL string) *Client {
	return &Client{
		registryURL: registryURL,
		labourURL:   labourURL,
		http:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// Individuals fetches the national registry individuals list.
func (c *Client) Individuals(ctx context.Context) ([]records.RegistryEntry, error) {
	body, err := c.get(ctx, c.registryURL+"/api/individuals")
	if err != nil {
		return nil, err
	}
	entries, err := decodeIndividuals(body)
	if err != nil {
		return nil, fmt.Errorf("decode individuals: %w", err)
	}
	return entries, nil
}

// Children fetches the national registry children list.
func (c *Client) Children(ctx context.Context) ([]records.ChildEntry, error) {
	body, err := c.get(ctx, c.registryURL+"/api/children")
	if err != nil {
		return nil, err
	}
	entries, err := decodeChildren(body)
	if err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}
	return entries, nil
}

// Incomes fetches the labour directorate maternity-leave income list.
func (c *Client) Incomes(ctx context.Context) ([]records.IncomeEntry, error) {
	body, err := c.get(ctx, c.labourURL+"/api/incomes")
	if err != nil {
		return nil, err
	}
	entries, err := decodeIncomes(body)
	if err != nil {
		return nil, fmt.Errorf("decode incomes: %w", err)
	}
	return entries, nil
}

// BirthEstimates fetches the labour directorate estimated birth date list.
func (c *Client) BirthEstimates(ctx context.Context) ([]records.EstimatedBirthEntry, error) {
	body, err := c.get(ctx, c.labourURL+"/api/estimatedBirthDates")
	if err != nil {
		return nil, err
	}
	entries, err := decodeBirthEstimates(body)
	if err != nil {
		return nil, fmt.Errorf("decode birth estimates: %w", err)
	}
	return entries, nil
}
