package clients

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"gocompare_api/internal/compare/business/models"
)

// ApifyClient reads the results of scraping-actor runs.
type ApifyClient struct {
	BaseClient
	token string
}

func NewApifyClient(apiURL, token string, writer io.Writer) *ApifyClient {
	return &ApifyClient{
		BaseClient: *NewBaseClient(strings.TrimRight(apiURL, "/"), writer, "[ApifyClient]"),
		token:      token,
	}
}

type actorRunResponse struct {
	Data struct {
		ID               string `json:"id"`
		Status           string `json:"status"`
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"data"`
}

// ResolveDataset returns the id of the default dataset of an actor run.
func (c *ApifyClient) ResolveDataset(ctx context.Context, runID string) (string, error) {
	if c.token == "" {
		return "", ErrMissingToken
	}

	var run actorRunResponse
	if err := c.doRequest(ctx, "/actor-runs/"+url.PathEscape(runID), c.auth(nil), &run); err != nil {
		return "", err
	}
	if run.Data.DefaultDatasetID == "" {
		return "", fmt.Errorf("actor run %s has no default dataset", runID)
	}
	return run.Data.DefaultDatasetID, nil
}

// FetchItems downloads at most limit items of a dataset.
func (c *ApifyClient) FetchItems(ctx context.Context, datasetID string, limit int) ([]models.RawItem, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	query := c.auth(url.Values{
		"clean": {"true"},
		"limit": {strconv.Itoa(limit)},
	})
	var items []models.RawItem
	if err := c.doRequest(ctx, "/datasets/"+url.PathEscape(datasetID)+"/items", query, &items); err != nil {
		return nil, err
	}
	c.log.Log("Fetched %d items from dataset %s", len(items), datasetID)
	return items, nil
}

func (c *ApifyClient) auth(query url.Values) url.Values {
	if query == nil {
		query = url.Values{}
	}
	query.Set("token", c.token)
	return query
}
