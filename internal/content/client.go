// Package content fetches, validates, normalizes and orders the
// lists the app's content screens render.
//
// Every call is a fresh round trip: the pipeline caches nothing,
// retries nothing, and holds no state between calls. Errors come back
// as classified values so the caller can show a message that matches
// what actually went wrong.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	contentv1 "github.com/lucasfiiresearch/pocket/api/content/v1"
	pkterrs "github.com/lucasfiiresearch/pocket/errors"
)

const defaultTimeout = 15 * time.Second

type (
	// Client fetches content lists from the remote API.
	Client struct {
		origin string
		http   *http.Client
		tokens TokenSource
	}

	// Option tweaks a Client at construction.
	Option func(*Client)
)

// TokenSource supplies the bearer token attached to requests. Session
// handling lives with the caller; the pipeline only asks for the
// current token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// WithHTTPClient swaps the underlying HTTP client, e.g. to change the
// timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource attaches a bearer token to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New creates a Client against the given origin, e.g.
// "https://lucasfiiresearch.com.br".
func New(origin string, opts ...Option) *Client {
	c := &Client{
		origin: strings.TrimRight(origin, "/"),
		http:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Item is the surface every wire shape exposes to the pipeline. The
// type parameter lets Sanitized return the concrete shape.
type Item[T any] interface {
	ItemID() string
	ItemTitle() string
	Created() string
	IsActive() bool
	Sanitized(func(string) string) T
}

// Videos fetches the investment-thesis video list.
func (c *Client) Videos(ctx context.Context) ([]contentv1.Video, error) {
	return fetchList[contentv1.Video](ctx, c, CategoryThesisVideos, nil)
}

// WeeklyReports fetches the weekly report PDF list.
func (c *Client) WeeklyReports(ctx context.Context) ([]contentv1.Report, error) {
	return fetchList[contentv1.Report](ctx, c, CategoryWeeklyReports, nil)
}

// EtfReports fetches the ETF report PDF list.
func (c *Client) EtfReports(ctx context.Context) ([]contentv1.EtfReport, error) {
	return fetchList[contentv1.EtfReport](ctx, c, CategoryEtfReports, nil)
}

// Notifications fetches the user's notification feed. Unlike the
// other categories the endpoint scopes its results by user.
func (c *Client) Notifications(ctx context.Context, userID string) ([]contentv1.Notification, error) {
	return fetchList[contentv1.Notification](ctx, c, CategoryNotifications, url.Values{"userId": {userID}})
}

// ContentItem is the category-erased view of a fetched item.
type ContentItem interface {
	ItemID() string
	ItemTitle() string
	Created() string
	IsActive() bool
}

// Fetch retrieves any category erased to the common item view. userID
// is only consulted for the notifications category.
func (c *Client) Fetch(ctx context.Context, cat Category, userID string) ([]ContentItem, error) {
	switch cat {
	case CategoryThesisVideos:
		return erase(c.Videos(ctx))
	case CategoryWeeklyReports:
		return erase(c.WeeklyReports(ctx))
	case CategoryEtfReports:
		return erase(c.EtfReports(ctx))
	case CategoryNotifications:
		return erase(c.Notifications(ctx, userID))
	}

	return nil, pkterrs.E(pkterrs.KindFormat, fmt.Sprintf("unknown category: %s", cat))
}

func erase[T ContentItem](list []T, err error) ([]ContentItem, error) {
	if err != nil {
		return nil, err
	}

	out := make([]ContentItem, len(list))
	for i, item := range list {
		out[i] = item
	}

	return out, nil
}

// fetchList runs the whole pipeline for one category: request, status
// classification, content-type check, envelope normalization, active
// filter, sanitize, then a stable sort by recency.
func fetchList[T Item[T]](ctx context.Context, c *Client, cat Category, query url.Values) ([]T, error) {
	cfg, ok := categories[cat]
	if !ok {
		return nil, pkterrs.E(pkterrs.KindFormat, fmt.Sprintf("unknown category: %s", cat))
	}

	u := c.origin + cfg.path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, pkterrs.E(pkterrs.KindNetwork, fmt.Errorf("error building request: %s", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, pkterrs.E(pkterrs.KindAuth, fmt.Errorf("not signed in: %s", err))
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkterrs.E(pkterrs.KindNetwork, fmt.Errorf("error reaching server: %s", err))
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}

	// Refuse to parse anything the server didn't declare as JSON, so
	// an HTML error page never surfaces as data.
	if !jsonContentType(resp.Header.Get("Content-Type")) {
		return nil, pkterrs.E(pkterrs.KindFormat, resp.StatusCode, "server returned a non-JSON response")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkterrs.E(pkterrs.KindNetwork, fmt.Errorf("error reading response: %s", err))
	}

	list, err := decodeEnvelope[T](body, cfg.envelopeKeys)
	if err != nil {
		return nil, err
	}

	if cfg.filterInactive {
		kept := list[:0]
		for _, item := range list {
			if item.IsActive() {
				kept = append(kept, item)
			}
		}
		list = kept
	}

	for i, item := range list {
		list[i] = item.Sanitized(sanitize)
	}

	// Newest first. Undated or unparseable items get the zero time
	// and land at the end; the sort is stable so ties keep their
	// server order.
	sort.SliceStable(list, func(i, j int) bool {
		return parseCreated(list[i].Created()).After(parseCreated(list[j].Created()))
	})

	return list, nil
}

func classifyStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return pkterrs.E(pkterrs.KindAuth, resp.StatusCode, "not authorized, sign in again")
	case http.StatusForbidden:
		return pkterrs.E(pkterrs.KindEntitlement, resp.StatusCode, "an active plan is required")
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 100))
	return pkterrs.E(pkterrs.KindHTTP, resp.StatusCode,
		fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, snippet))
}

func jsonContentType(header string) bool {
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}

	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// The remote API's envelope is not stable across categories or
// deployments: the list may arrive bare, or wrapped in an object
// under one of a few known keys. The first matching shape wins.
func decodeEnvelope[T any](body []byte, keys []string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var bare []T
		if err := json.Unmarshal(trimmed, &bare); err != nil {
			return nil, pkterrs.E(pkterrs.KindFormat, "unexpected response shape")
		}
		return bare, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, pkterrs.E(pkterrs.KindFormat, "unexpected response shape")
	}

	for _, key := range keys {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		var list []T
		if err := json.Unmarshal(raw, &list); err != nil {
			// The key exists but doesn't hold the list; keep looking.
			continue
		}
		return list, nil
	}

	return nil, pkterrs.E(pkterrs.KindFormat, "unexpected response shape")
}

var stripPolicy = bluemonday.StrictPolicy()

// Removes html tags from API-supplied text and caps its length so a
// runaway description doesn't blow up the UI.
func sanitize(s string) string {
	s = strings.TrimSpace(stripPolicy.Sanitize(s))
	if len(s) > 2048 {
		s = s[:2048]
	}

	return s
}

// createdAt layouts seen in the wild. Anything else parses as the
// zero time, which sorts oldest.
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseCreated(s string) time.Time {
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
