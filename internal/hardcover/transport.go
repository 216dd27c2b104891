package hardcover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Response bodies are read fully for error reporting but capped so a broken
// endpoint can't balloon memory.
const maxBodyBytes = 1 << 20

// execGraphQL posts a GraphQL request to the main API. The bearer token is
// required: every GraphQL operation Hardcover exposes is authenticated.
func (c *Client) execGraphQL(ctx context.Context, gql GraphQLRequest) ([]byte, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}

	payload, err := json.Marshal(gql)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", browserUserAgent)

	return do(c.graphql, req)
}

// execTypeahead queries the public Typesense books index. No user token is
// involved; the fixed public key plus browser-shaped headers are what the
// edge protection checks for.
func (c *Client) execTypeahead(ctx context.Context, text string, perPage int) ([]byte, error) {
	u := c.searchURL + "?" + BuildTypeahead(text, perPage).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-TYPESENSE-API-KEY", typesenseAPIKey)
	req.Header.Set("Origin", DefaultBaseURL)
	req.Header.Set("Referer", DefaultBaseURL+"/")
	req.Header.Set("User-Agent", browserUserAgent)

	return do(c.typeahead, req)
}

// do executes the request and applies the shared error taxonomy: network
// failures wrap ErrConnectivity, non-2xx responses become a StatusError
// carrying the status and body. No retries at this layer or any other.
func do(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
