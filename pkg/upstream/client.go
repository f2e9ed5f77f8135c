// Package upstream talks to the external alerts backend that generates and
// delivers the newsletters. This service never produces alert content itself;
// it fetches what the backend computed and pushes back user edits.
package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"newsdigest/internal/model"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) FetchAlerts(userID string) (*model.AlertList, error) {
	var out model.AlertList
	if err := c.get("/fetchAlerts/"+userID, &out); err != nil {
		return nil, fmt.Errorf("upstream fetch alerts: %w", err)
	}
	return &out, nil
}

func (c *Client) FetchAlertDetails(alertID string) (*model.AlertDetails, error) {
	var out model.AlertDetails
	if err := c.get("/fetchAlertDetails/"+alertID, &out); err != nil {
		return nil, fmt.Errorf("upstream fetch alert details: %w", err)
	}
	return &out, nil
}

func (c *Client) FetchAvailableCompanies() (*model.CompanyList, error) {
	var out model.CompanyList
	if err := c.get("/companySpecificAlerts/fetchAvailableCompanies", &out); err != nil {
		return nil, fmt.Errorf("upstream fetch companies: %w", err)
	}
	return &out, nil
}

// FetchDeliveryData returns the runs for one alert inside the request's date
// range. The backend applies the company filter when CompanyIDs is non-empty.
func (c *Client) FetchDeliveryData(req model.DeliveryDataRequest) (*model.DeliveryData, error) {
	var out model.DeliveryData
	if err := c.post("/companySpecificAlerts/fetchDeliveryData", req, &out); err != nil {
		return nil, fmt.Errorf("upstream fetch delivery data: %w", err)
	}
	return &out, nil
}

// SubmitUpdatedData pushes a mutated runs snapshot back to the backend.
func (c *Client) SubmitUpdatedData(payload model.SubmitUpdatedDataPayload) error {
	if err := c.post("/companySpecificAlerts/submitUpdatedData", payload, nil); err != nil {
		return fmt.Errorf("upstream submit updated data: %w", err)
	}
	return nil
}

func (c *Client) SendBulkEmail(payload model.BulkEmailPayload) error {
	if err := c.post("/sendBulkEmail", payload, nil); err != nil {
		return fmt.Errorf("upstream send bulk email: %w", err)
	}
	return nil
}

func (c *Client) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
