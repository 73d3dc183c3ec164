package resthttp

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 10 * time.Second

// NewClient new resty client against a fixed upstream
func NewClient(baseURL string, headers map[string]string) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(defaultTimeout)

	for k, v := range headers {
		client = client.SetHeader(k, v)
	}

	return client
}

// Request new request bound to ctx
func Request(ctx context.Context, client *resty.Client) *resty.Request {
	return client.R().SetContext(ctx)
}
