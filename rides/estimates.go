package rides

import (
	"fmt"
	"net/http"
	"strings"
)

// TimeEstimate is the pickup ETA for one product.
type TimeEstimate struct {
	ProductID   string `json:"product_id"`
	DisplayName string `json:"display_name"`
	// Estimate is the ETA in seconds.
	Estimate int `json:"estimate"`
}

// PriceEstimate is the fare range for one product between two points.
type PriceEstimate struct {
	ProductID       string   `json:"product_id"`
	DisplayName     string   `json:"display_name"`
	Estimate        string   `json:"estimate"`
	LowEstimate     *float64 `json:"low_estimate,omitempty"`
	HighEstimate    *float64 `json:"high_estimate,omitempty"`
	CurrencyCode    string   `json:"currency_code,omitempty"`
	SurgeMultiplier float64  `json:"surge_multiplier,omitempty"`
	Duration        int      `json:"duration,omitempty"`
	Distance        float64  `json:"distance,omitempty"`
}

type timeEstimatesResponse struct {
	Times []TimeEstimate `json:"times"`
}

type priceEstimatesResponse struct {
	Prices []PriceEstimate `json:"prices"`
}

// ClientError is one entry of an API error body.
type ClientError struct {
	Status int    `json:"status,omitempty"`
	Code   string `json:"code,omitempty"`
	Title  string `json:"title,omitempty"`
}

// APIError is a non-2xx response from the rides API. The API answers with
// either a single code/message pair or a list of errors; both are kept.
type APIError struct {
	StatusCode int           `json:"-"`
	Code       string        `json:"code,omitempty"`
	Message    string        `json:"message,omitempty"`
	Errors     []ClientError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	var parts []string
	if e.Code != "" || e.Message != "" {
		parts = append(parts, strings.TrimSpace(e.Code+" "+e.Message))
	}
	for _, ce := range e.Errors {
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("%d %s %s", ce.Status, ce.Code, ce.Title)))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("rides api: %s", http.StatusText(e.StatusCode))
	}
	return "rides api: " + strings.Join(parts, "; ")
}

func productNotFound(productID string) *APIError {
	return &APIError{
		StatusCode: http.StatusNotFound,
		Errors: []ClientError{{
			Status: http.StatusNotFound,
			Title:  fmt.Sprintf("Product Id %s requested not found.", productID),
		}},
	}
}

func findTimeEstimate(productID string, estimates []TimeEstimate) (TimeEstimate, bool) {
	for _, e := range estimates {
		if e.ProductID == productID {
			return e, true
		}
	}
	return TimeEstimate{}, false
}

func findPriceEstimate(productID string, estimates []PriceEstimate) (PriceEstimate, bool) {
	for _, e := range estimates {
		if e.ProductID == productID {
			return e, true
		}
	}
	return PriceEstimate{}, false
}
