package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/usecase/listings"
)

// Assistant bridges the AI text service over HTTP. Calls are single-shot
// with no retry policy; any failure propagates as an error the callers
// translate into empty results or an error string.
type Assistant struct {
	endpoint string
	client   *fasthttp.Client
	timeout  time.Duration
	logger   *zap.Logger
}

func NewAssistant(endpoint string, timeout time.Duration, logger *zap.Logger) *Assistant {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		endpoint: endpoint,
		client:   &fasthttp.Client{},
		timeout:  timeout,
		logger:   logger,
	}
}

// ParseQuery asks the service to distill a free-text search into a
// structured filter.
func (a *Assistant) ParseQuery(ctx context.Context, query string) (*listings.SearchFilter, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	body, err := a.post("/v1/parse-query", payload)
	if err != nil {
		return nil, err
	}

	var filter listings.SearchFilter
	if err := json.Unmarshal(body, &filter); err != nil {
		return nil, err
	}
	return &filter, nil
}

// Describe asks the service for marketing copy built from the property's
// attributes.
func (a *Assistant) Describe(ctx context.Context, property *domain.Property) (string, error) {
	payload, err := json.Marshal(property)
	if err != nil {
		return "", err
	}

	body, err := a.post("/v1/describe", payload)
	if err != nil {
		return "", err
	}

	var result struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	return result.Description, nil
}

func (a *Assistant) post(path string, payload []byte) ([]byte, error) {
	if a.endpoint == "" {
		return nil, fmt.Errorf("assistant endpoint not configured")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(a.endpoint + path)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	if err := a.client.DoTimeout(req, resp, a.timeout); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("assistant returned status %d", resp.StatusCode())
	}
	return append([]byte(nil), resp.Body()...), nil
}

var (
	_ listings.Parser    = (*Assistant)(nil)
	_ listings.Describer = (*Assistant)(nil)
)
