package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the Last.fm API endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

	// DefaultLimit is the number of entries requested by chart and search
	// operations when the caller does not choose one.
	DefaultLimit = 12

	// DefaultLang is the locale sent to the info operations.
	DefaultLang = "pt"

	userAgent = "soundwave/1.0"
)

// Method is a Last.fm API method name.
type Method string

// Supported API methods.
const (
	MethodTopArtists    Method = "chart.gettopartists"
	MethodTopTags       Method = "chart.gettoptags"
	MethodTopTracks     Method = "chart.gettoptracks"
	MethodTagTopAlbums  Method = "tag.gettopalbums"
	MethodArtistInfo    Method = "artist.getinfo"
	MethodArtistAlbums  Method = "artist.gettopalbums"
	MethodAlbumInfo     Method = "album.getinfo"
	MethodTrackInfo     Method = "track.getInfo"
	MethodSimilarTracks Method = "track.getsimilar"
	MethodTagInfo       Method = "tag.getinfo"
	MethodSearchArtists Method = "artist.search"
	MethodSearchAlbums  Method = "album.search"
	MethodSearchTracks  Method = "track.search"
)

// Params are the operation-specific query parameters of a request. Values
// may be strings or numbers.
type Params map[string]any

// Client is a Last.fm API client. Every call is a single attempt: failures
// are logged and reported as a nil result, never as an error.
type Client struct {
	apiKey     string
	lang       string
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithLogger sets the logger used to report failed requests.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Last.fm API client from the provided configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		apiKey: cfg.APIKey,
		lang:   cfg.Lang,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: cfg.BaseURL,
		logger:  zerolog.Nop(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.lang == "" {
		c.lang = DefaultLang
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request calls method with the given parameters and returns the raw JSON
// payload. The query always carries method, api_key and format=json; caller
// parameters are appended after them, so a repeated key is sent twice.
//
// Request returns nil if the call fails for any reason: transport error,
// non-2xx status, unreadable or non-JSON body, or a Last.fm error payload.
func (c *Client) Request(ctx context.Context, method Method, params Params) json.RawMessage {
	query := url.Values{}
	query.Add("method", string(method))
	query.Add("api_key", c.apiKey)
	query.Add("format", "json")
	for key, value := range params {
		query.Add(key, formatParam(value))
	}

	body, err := c.doRequest(ctx, query)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", string(method)).
			Msg("Last.fm request failed")
		return nil
	}
	return body
}

// doRequest performs a single HTTP GET request.
func (c *Client) doRequest(ctx context.Context, query url.Values) (json.RawMessage, error) {
	reqURL := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("decoding response: invalid JSON (status %d)", resp.StatusCode)
	}

	// Check for API error in response
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != 0 {
		return nil, &APIError{Code: apiErr.Error, Message: apiErr.Message}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}

// formatParam renders a parameter value for the query string.
func formatParam(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// decode issues a request and decodes the payload into T. It returns nil
// if the request fails or the payload does not match T.
func decode[T any](ctx context.Context, c *Client, method Method, params Params) *T {
	raw := c.Request(ctx, method, params)
	if raw == nil {
		return nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error().
			Err(err).
			Str("method", string(method)).
			Msg("Last.fm response did not match expected shape")
		return nil
	}
	return &out
}
