package alexa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var ErrMissingDeviceInfo = errors.New("missing apiEndpoint, deviceId or consent token")

// Address is the country-and-postal-code view of the device address.
type Address struct {
	CountryCode string `json:"countryCode"`
	PostalCode  string `json:"postalCode"`
}

// AddressResponse carries the HTTP status so callers can tell a refused
// lookup from a transport failure.
type AddressResponse struct {
	StatusCode int
	Address    Address
}

// AddressClient calls the Device Address API for one device.
type AddressClient struct {
	apiEndpoint  string
	deviceID     string
	consentToken string
	http         *http.Client
}

type AddressOption func(*AddressClient)

func WithHTTPClient(c *http.Client) AddressOption {
	return func(a *AddressClient) {
		if c != nil {
			a.http = c
		}
	}
}

func NewAddressClient(apiEndpoint, deviceID, consentToken string, opts ...AddressOption) (*AddressClient, error) {
	apiEndpoint = strings.TrimRight(strings.TrimSpace(apiEndpoint), "/")
	deviceID = strings.TrimSpace(deviceID)
	consentToken = strings.TrimSpace(consentToken)
	if apiEndpoint == "" || deviceID == "" || consentToken == "" {
		return nil, ErrMissingDeviceInfo
	}

	c := &AddressClient{
		apiEndpoint:  apiEndpoint,
		deviceID:     deviceID,
		consentToken: consentToken,
		http:         http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CountryAndPostalCode requests the coarse address. A non-200 status is
// reported in the response, not as an error.
func (c *AddressClient) CountryAndPostalCode(ctx context.Context) (*AddressResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/devices/%s/settings/address/countryAndPostalCode",
		c.apiEndpoint, url.PathEscape(c.deviceID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build address request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.consentToken)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("address request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return &AddressResponse{StatusCode: res.StatusCode}, nil
	}

	var addr Address
	if err := json.NewDecoder(res.Body).Decode(&addr); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	return &AddressResponse{StatusCode: res.StatusCode, Address: addr}, nil
}
