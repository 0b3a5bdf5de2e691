package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// defaultTokenInfoURL is Google's ID-token introspection endpoint.
const defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var ErrInvalidGoogleToken = errors.New("invalid google id token")

// GoogleIdentity is the subset of the tokeninfo response the backend uses.
type GoogleIdentity struct {
	ExternalID string
	Email      string
	Name       string
	Picture    string
}

// GoogleVerifier introspects Google ID tokens and checks their audience
// against the registered OAuth client ID.
type GoogleVerifier struct {
	clientID   string
	endpoint   string
	httpClient *http.Client
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID:   clientID,
		endpoint:   defaultTokenInfoURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewGoogleVerifierWithEndpoint is used by tests to point at a fake
// tokeninfo server.
func NewGoogleVerifierWithEndpoint(clientID, endpoint string) *GoogleVerifier {
	v := NewGoogleVerifier(clientID)
	v.endpoint = endpoint
	return v
}

type tokenInfoResponse struct {
	Aud     string `json:"aud"`
	Azp     string `json:"azp"`
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verify introspects the token with the provider and validates the audience.
// Providers populate aud and azp inconsistently, so either claim matching
// the client ID is accepted.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if idToken == "" {
		return nil, ErrInvalidGoogleToken
	}

	reqURL := fmt.Sprintf("%s?id_token=%s", v.endpoint, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidGoogleToken
	}

	var info tokenInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, ErrInvalidGoogleToken
	}

	if info.Aud != v.clientID && info.Azp != v.clientID {
		return nil, ErrInvalidGoogleToken
	}
	if info.Sub == "" || info.Email == "" {
		return nil, ErrInvalidGoogleToken
	}

	return &GoogleIdentity{
		ExternalID: info.Sub,
		Email:      info.Email,
		Name:       info.Name,
		Picture:    info.Picture,
	}, nil
}
