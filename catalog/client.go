// Package catalog talks to the music catalog web API: it enriches scraped
// song ids with track and artist metadata and builds playlists.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	maxTracksPerRequest    = 50
	maxArtistsPerRequest   = 50
	maxPlaylistItemsPerAdd = 100
	playlistPageSize       = 100

	defaultArtistCacheSize = 1024
)

type Options struct {
	AccountsURL  string
	APIURL       string
	ClientID     string
	ClientSecret string

	// Needed for playlist creation only.
	UserToken       string
	ArtistCacheSize int
}

type Client struct {
	accounts *resty.Client
	api      *resty.Client
	opts     Options
	token    string
	artists  *lru.Cache[string, Artist]
}

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	Status     int
	Message    string
	RetryAfter string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("catalog: %s (status %d)", e.Message, e.Status)
	if e.RetryAfter != "" {
		msg += ", retry after " + e.RetryAfter + "s"
	}
	return msg
}

var ErrNoUserToken = errors.New("catalog: a user access token is required")

func NewClient(opts Options) (*Client, error) {
	size := opts.ArtistCacheSize
	if size <= 0 {
		size = defaultArtistCacheSize
	}
	cache, err := lru.New[string, Artist](size)
	if err != nil {
		return nil, err
	}
	return &Client{
		accounts: resty.New().SetBaseURL(opts.AccountsURL),
		api:      resty.New().SetBaseURL(opts.APIURL),
		opts:     opts,
		artists:  cache,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate fetches an app access token with the client credentials flow.
func (c *Client) Authenticate(ctx context.Context) error {
	var token tokenResponse
	res, err := c.accounts.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.opts.ClientID,
			"client_secret": c.opts.ClientSecret,
		}).
		SetResult(&token).
		Post("/api/token")
	if err != nil {
		return err
	}
	if res.IsError() {
		return statusError(res)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("catalog: token response has no access token")
	}
	slog.DebugContext(ctx, "authenticated with catalog", "expires_in", token.ExpiresIn)
	c.token = token.AccessToken
	return nil
}

func (c *Client) appRequest(ctx context.Context) (*resty.Request, error) {
	if c.token == "" {
		if err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
	}
	return c.api.R().SetContext(ctx).SetAuthToken(c.token), nil
}

func (c *Client) userRequest(ctx context.Context) (*resty.Request, error) {
	if c.opts.UserToken == "" {
		return nil, ErrNoUserToken
	}
	return c.api.R().SetContext(ctx).SetAuthToken(c.opts.UserToken), nil
}

func statusError(res *resty.Response) error {
	e := &StatusError{Status: res.StatusCode()}
	switch res.StatusCode() {
	case http.StatusUnauthorized:
		e.Message = "bad or expired access token, re-authenticate"
	case http.StatusForbidden:
		e.Message = "bad OAuth request, check the client credentials"
	case http.StatusTooManyRequests:
		e.Message = "rate limit exceeded, try again later"
		e.RetryAfter = res.Header().Get("Retry-After")
	default:
		e.Message = "unexpected status " + res.Status()
	}
	return e
}
