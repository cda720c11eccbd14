package resolver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	apperrors "caja/internal/errors"
)

const defaultTimeout = 10 * time.Second

// HTTPRateResolver fetches currency quotes from a JSON rate service:
// GET {baseURL}/rates/{code} -> CurrencyInfo.
type HTTPRateResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRateResolver creates a rate resolver against the given base URL.
func NewHTTPRateResolver(baseURL string) *HTTPRateResolver {
	return &HTTPRateResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Quote fetches the currency record and returns the requested side.
func (r *HTTPRateResolver) Quote(currencyCode int, side QuoteSide) (decimal.Decimal, error) {
	info, err := r.CurrencyInfo(currencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	if side == SideBuy {
		return info.BuyRate, nil
	}
	return info.SellRate, nil
}

// CurrencyInfo fetches the full quote record for a currency.
func (r *HTTPRateResolver) CurrencyInfo(currencyCode int) (*CurrencyInfo, error) {
	var info CurrencyInfo
	url := fmt.Sprintf("%s/rates/%d", r.baseURL, currencyCode)
	if err := getJSON(r.client, url, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// HTTPPriceResolver fetches product prices from a JSON price service:
// GET {baseURL}/products/{code} -> ProductInfo.
type HTTPPriceResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPriceResolver creates a price resolver against the given base URL.
func NewHTTPPriceResolver(baseURL string) *HTTPPriceResolver {
	return &HTTPPriceResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Price fetches the product record and returns its unit price.
func (r *HTTPPriceResolver) Price(productCode int) (decimal.Decimal, error) {
	info, err := r.ProductInfo(productCode)
	if err != nil {
		return decimal.Zero, err
	}
	return info.Price, nil
}

// ProductInfo fetches the full price record for a product.
func (r *HTTPPriceResolver) ProductInfo(productCode int) (*ProductInfo, error) {
	var info ProductInfo
	url := fmt.Sprintf("%s/products/%d", r.baseURL, productCode)
	if err := getJSON(r.client, url, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// getJSON issues a GET and decodes the JSON body into out. Any non-200
// answer, including 404 for unknown codes, surfaces as
// ErrResolverUnavailable with the status attached.
func getJSON(client *http.Client, url string, out interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrResolverUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.WithMessage(apperrors.ErrResolverUnavailable,
			fmt.Sprintf("Rate or price service answered %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrResolverUnavailable, err)
	}
	return nil
}
