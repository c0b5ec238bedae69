package rides

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	timeEstimatesPath  = "/v1.2/estimates/time"
	priceEstimatesPath = "/v1.2/estimates/price"
	maxErrorBody       = 64 << 10
)

// Service fetches the estimates shown on a ride request button.
type Service interface {
	TimeEstimates(ctx context.Context, latitude, longitude float64, productID string) ([]TimeEstimate, error)
	PriceEstimates(ctx context.Context, startLatitude, startLongitude, endLatitude, endLongitude float64) ([]PriceEstimate, error)
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithBaseURL overrides the API host, e.g. for a sandbox.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithRegion selects the API host for region.
func WithRegion(region oauthmodel.Region) ClientOption {
	return func(c *Client) {
		c.baseURL = "https://api." + region.Domain()
	}
}

// NewClient returns a Client that authenticates every request with
// accessToken as a bearer token.
func NewClient(ctx context.Context, accessToken string, opts ...ClientOption) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	c := &Client{
		baseURL:    "https://api." + oauthmodel.RegionWorld.Domain(),
		httpClient: oauth2.NewClient(ctx, src),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) TimeEstimates(ctx context.Context, latitude, longitude float64, productID string) ([]TimeEstimate, error) {
	q := url.Values{}
	q.Set("start_latitude", formatCoordinate(latitude))
	q.Set("start_longitude", formatCoordinate(longitude))
	if productID != "" {
		q.Set("product_id", productID)
	}
	var body timeEstimatesResponse
	if err := c.get(ctx, timeEstimatesPath, q, &body); err != nil {
		return nil, err
	}
	return body.Times, nil
}

func (c *Client) PriceEstimates(ctx context.Context, startLatitude, startLongitude, endLatitude, endLongitude float64) ([]PriceEstimate, error) {
	q := url.Values{}
	q.Set("start_latitude", formatCoordinate(startLatitude))
	q.Set("start_longitude", formatCoordinate(startLongitude))
	q.Set("end_latitude", formatCoordinate(endLatitude))
	q.Set("end_longitude", formatCoordinate(endLongitude))
	var body priceEstimatesResponse
	if err := c.get(ctx, priceEstimatesPath, q, &body); err != nil {
		return nil, err
	}
	return body.Prices, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	if err := json.Unmarshal(raw, apiErr); err != nil {
		log.Debug().Err(err).Int("status", resp.StatusCode).Msg("rides api error body is not json")
		apiErr.Message = string(raw)
	}
	apiErr.StatusCode = resp.StatusCode
	return apiErr
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
