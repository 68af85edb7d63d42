// Package webhook is the client for the automation backend's three n8n
// webhook endpoints: fetch leads, update lead, upload contacts. The backend
// is the source of truth for all lead state; this client holds none.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/stellar-voice/leads-console/internal/lead"
)

// Client defines the backend webhook operations.
type Client interface {
	FetchLeads(ctx context.Context) ([]*lead.Record, error)
	UpdateLead(ctx context.Context, phoneNumber string, updates map[string]string) error
	UploadContacts(ctx context.Context, contacts []*lead.Record, callStatus string) (*UploadResult, error)
}

// Endpoints are the three webhook URLs, injected from configuration.
type Endpoints struct {
	LeadsURL  string
	UpdateURL string
	UploadURL string
}

// leadsResponse is the body of the fetch-leads webhook. A missing or null
// array is tolerated as zero leads.
type leadsResponse struct {
	Leads []*lead.Record `json:"leads"`
}

// updateRequest is the body sent to the update-lead webhook. The phone
// number is the identity key addressing the lead.
type updateRequest struct {
	PhoneNumber string            `json:"phoneNumber"`
	Updates     map[string]string `json:"updates"`
}

// uploadRequest is the body sent to the upload-contacts webhook.
type uploadRequest struct {
	Contacts   []*lead.Record `json:"contacts"`
	CallStatus string         `json:"callStatus"`
}

// DuplicateContact identifies an uploaded contact the backend skipped
// because its phone number already exists.
type DuplicateContact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// UploadResult is the backend's report for an upload batch. Success is a
// pointer because only an explicit success:false marks failure; a report
// that omits the field entirely is still a successful upload.
type UploadResult struct {
	Success           *bool              `json:"success,omitempty"`
	Added             int                `json:"added"`
	Duplicates        int                `json:"duplicates"`
	DuplicateContacts []DuplicateContact `json:"duplicateContacts"`
	Errors            int                `json:"errors"`
	Error             string             `json:"error,omitempty"`
	Message           string             `json:"message,omitempty"`
}

// APIError is returned when the backend responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("webhook: HTTP %d: %s", e.StatusCode, e.Body)
}

// ProtocolError is returned when the transport call succeeded but the
// response violated the webhook contract: empty body, a body that is not
// JSON, or an explicit success:false payload.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "webhook: " + e.Reason
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	endpoints Endpoints
	http      *http.Client
}

// NewClient creates a webhook client for the given endpoints.
func NewClient(endpoints Endpoints, opts ...Option) Client {
	c := &httpClient{
		endpoints: endpoints,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) FetchLeads(ctx context.Context) ([]*lead.Record, error) {
	data, err := c.get(ctx, c.endpoints.LeadsURL)
	if err != nil {
		return nil, eris.Wrap(err, "webhook: fetch leads")
	}

	var resp leadsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, eris.Wrap(&ProtocolError{Reason: "leads response is not valid JSON"}, "webhook: fetch leads")
	}
	return resp.Leads, nil
}

func (c *httpClient) UpdateLead(ctx context.Context, phoneNumber string, updates map[string]string) error {
	req := updateRequest{PhoneNumber: phoneNumber, Updates: updates}
	if _, err := c.post(ctx, c.endpoints.UpdateURL, req); err != nil {
		return eris.Wrap(err, "webhook: update lead")
	}
	// Any 2xx is a confirmed write; the response body carries no contract.
	return nil
}

func (c *httpClient) UploadContacts(ctx context.Context, contacts []*lead.Record, callStatus string) (*UploadResult, error) {
	req := uploadRequest{Contacts: contacts, CallStatus: callStatus}
	data, err := c.post(ctx, c.endpoints.UploadURL, req)
	if err != nil {
		return nil, eris.Wrap(err, "webhook: upload contacts")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, eris.Wrap(&ProtocolError{Reason: "empty response body, check the upload workflow for errors"}, "webhook: upload contacts")
	}

	var result UploadResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, eris.Wrap(&ProtocolError{Reason: "invalid JSON response: " + snippet(data, 100)}, "webhook: upload contacts")
	}

	if result.Success != nil && !*result.Success {
		reason := result.Error
		if reason == "" {
			reason = "upload reported failure without an error message"
		}
		return nil, eris.Wrap(&ProtocolError{Reason: reason}, "webhook: upload contacts")
	}

	return &result, nil
}

func (c *httpClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	return c.do(req)
}

func (c *httpClient) post(ctx context.Context, url string, body any) ([]byte, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *httpClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	return data, nil
}

func snippet(data []byte, n int) string {
	s := strings.TrimSpace(string(data))
	if len(s) > n {
		return s[:n]
	}
	return s
}
