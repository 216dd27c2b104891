package hardcover

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultGraphQLURL is the main Hardcover API endpoint.
	DefaultGraphQLURL = "https://api.hardcover.app/v1/graphql"

	// DefaultSearchURL is the public Typesense books collection. Used for
	// book typeahead because the GraphQL _ilike filters are restricted.
	DefaultSearchURL = "https://search.hardcover.app/collections/books/documents/search"

	// DefaultBaseURL is the website root for outbound navigation links.
	DefaultBaseURL = "https://hardcover.app"
)

// Public key shipped in the Hardcover web client; the search index accepts
// nothing else.
const typesenseAPIKey = "7JRcb63AvYIo2WJvE3IzH4f8j1z9fHcC"

// The search index's edge protection drops requests that don't look like the
// website, so the typeahead transport mimics a browser.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

const (
	graphqlTimeout   = 10 * time.Second
	typeaheadTimeout = 5 * time.Second
)

// Options configures a Client. Zero-value URLs fall back to the public
// endpoints.
type Options struct {
	Token        string
	UserID       int
	GraphQLURL   string
	SearchURL    string
	UseTypeahead bool
}

// Client talks to Hardcover's GraphQL API and, optionally, its Typesense
// search index. It is stateless apart from configuration; every call is a
// single HTTP exchange with no retries.
type Client struct {
	token        string
	userID       int
	graphqlURL   string
	searchURL    string
	useTypeahead bool
	graphql      *http.Client
	typeahead    *http.Client
}

// NewClient creates a client. The token is sanitized, so values pasted with
// a Bearer prefix or surrounding quotes work as-is.
func NewClient(opts Options) *Client {
	if opts.GraphQLURL == "" {
		opts.GraphQLURL = DefaultGraphQLURL
	}
	if opts.SearchURL == "" {
		opts.SearchURL = DefaultSearchURL
	}
	return &Client{
		token:        SanitizeToken(opts.Token),
		userID:       opts.UserID,
		graphqlURL:   opts.GraphQLURL,
		searchURL:    opts.SearchURL,
		useTypeahead: opts.UseTypeahead,
		graphql:      &http.Client{Timeout: graphqlTimeout},
		typeahead:    &http.Client{Timeout: typeaheadTimeout},
	}
}

// SanitizeToken normalizes a pasted API token: surrounding whitespace and
// quotes are removed, as is a leading "Bearer" scheme.
func SanitizeToken(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "Bearer ") {
		s = strings.TrimPrefix(s, "Bearer ")
	}
	return strings.TrimSpace(s)
}

// HasToken reports whether an API token is configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// UserID returns the configured account id, or zero when not set.
func (c *Client) UserID() int {
	return c.userID
}

// Search runs a search for the given kind and returns normalized results.
// Book searches go through the Typesense index when the client is configured
// for it; everything else uses the generic GraphQL search field. Exactly one
// backend is used per call.
func (c *Client) Search(ctx context.Context, kind Kind, text string, perPage, page int) ([]SearchResult, error) {
	if c.useTypeahead && kind == KindBook {
		body, err := c.execTypeahead(ctx, text, perPage)
		if err != nil {
			return nil, err
		}
		return Normalize(kind, body)
	}

	body, err := c.execGraphQL(ctx, BuildSearch(kind, text, perPage, page))
	if err != nil {
		return nil, err
	}
	return Normalize(kind, body)
}
