package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const httpProviderID = "national-id-api"

// HTTPProvider calls an external national ID lookup endpoint. The contract is
// a POST of {"nationalId": "..."} answered with the personal fields as JSON,
// either bare or wrapped in an {ok, data} envelope.
type HTTPProvider struct {
	url    string
	client *http.Client
}

// NewHTTPProvider builds a provider for the given endpoint URL. A zero
// timeout keeps the http.Client default.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) ID() string { return httpProviderID }

type lookupRequest struct {
	NationalID string `json:"nationalId"`
}

type lookupEnvelope struct {
	OK   bool    `json:"ok"`
	Data *Person `json:"data"`

	// Bare-field variant; populated when the upstream answers without an
	// envelope.
	Person
}

func (p *HTTPProvider) Lookup(ctx context.Context, nationalID string) (Person, error) {
	body, err := json.Marshal(lookupRequest{NationalID: nationalID})
	if err != nil {
		return Person{}, NewProviderError(ErrorInternal, p.ID(), "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return Person{}, NewProviderError(ErrorInternal, p.ID(), "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		category := ErrorProviderOutage
		if errors.Is(err, context.DeadlineExceeded) {
			category = ErrorTimeout
		}
		return Person{}, NewProviderError(category, p.ID(), "lookup request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Person{}, NewProviderError(ErrorNotFound, p.ID(), "national id not found", nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Person{}, NewProviderError(ErrorProviderOutage, p.ID(),
			fmt.Sprintf("lookup returned status %d", resp.StatusCode), nil)
	}

	var envelope lookupEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Person{}, NewProviderError(ErrorBadData, p.ID(), "decode response", err)
	}

	person := envelope.Person
	if envelope.Data != nil {
		person = *envelope.Data
	}
	return person.trimmed(), nil
}
