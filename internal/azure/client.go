package azure

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	keyHeader       = "Ocp-Apim-Subscription-Key"
	requestIDHeader = "X-Ms-Client-Request-Id"
	userAgent       = "ai-lab-go/1.0"
)

// ClientOpts configures a service client. Endpoint is the resource endpoint,
// e.g. https://<name>.cognitiveservices.azure.com/.
type ClientOpts struct {
	Endpoint string
	Key      string
	// HTTPClient replaces the default transport. Mainly for tests.
	HTTPClient *http.Client
}

type client struct {
	httpClient *resty.Client
}

// newClient builds the shared resty client. It performs no network I/O.
func newClient(opts ClientOpts) client {
	var r *resty.Client
	if opts.HTTPClient != nil {
		r = resty.NewWithClient(opts.HTTPClient)
	} else {
		r = resty.New()
	}
	r.JSONMarshal = json.Marshal
	r.JSONUnmarshal = json.Unmarshal
	r.SetDebug(false).
		SetBaseURL(strings.TrimRight(opts.Endpoint, "/")).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": userAgent,
			keyHeader:    opts.Key,
		})

	return client{httpClient: r}
}

func (c client) req(ctx context.Context, result any) *resty.Request {
	request := c.httpClient.
		NewRequest().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString()).
		SetError(&errorResponse{})

	if result != nil {
		request.SetResult(result)
	}

	return request
}

// errorResponse is the error envelope shared by the Azure AI services.
type errorResponse struct {
	Error struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		InnerError *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"innererror"`
	} `json:"error"`
}

// ServiceError is returned when the service answers with an HTTP error.
type ServiceError struct {
	StatusCode int
	// Reason is the HTTP reason phrase, e.g. "Unauthorized".
	Reason    string
	Code      string
	Message   string
	InnerCode string
}

func (e *ServiceError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if msg == "" {
		return fmt.Sprintf("%s (status: %d)", e.Reason, e.StatusCode)
	}
	return fmt.Sprintf("%s - %s (status: %d)", e.Reason, msg, e.StatusCode)
}

// handleError turns failing responses (>399 status code) into a
// *ServiceError. Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, fmt.Errorf("request failed: %w", err)
	}
	if !res.IsError() {
		return res, nil
	}

	svcErr := &ServiceError{
		StatusCode: res.StatusCode(),
		Reason:     http.StatusText(res.StatusCode()),
	}
	if body, ok := res.Error().(*errorResponse); ok && body != nil {
		svcErr.Code = body.Error.Code
		svcErr.Message = body.Error.Message
		if body.Error.InnerError != nil {
			svcErr.InnerCode = body.Error.InnerError.Code
			if svcErr.Message == "" {
				svcErr.Message = body.Error.InnerError.Message
			}
		}
	}
	if svcErr.Reason == "" {
		svcErr.Reason = fmt.Sprintf("HTTP %d", svcErr.StatusCode)
	}
	return res, svcErr
}
