package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"programctl/internal/program"
	"programctl/pkg/logging"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	programsPath = "api/programs"
	usersPath    = "api/users"

	// TotalCountHeader carries the size of the whole collection on list answers.
	TotalCountHeader = "X-Total-Count"

	mergePatchContentType = "application/merge-patch+json"
)

// ListQuery selects a page of Programs. The backend only honours paging
// when a sort is given, so Page and Size are sent together with Sort.
type ListQuery struct {
	Page int
	Size int
	Sort string
}

// Values encodes q the way the list endpoint expects it.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Sort != "" {
		v.Set("page", strconv.Itoa(q.Page))
		v.Set("size", strconv.Itoa(q.Size))
		v.Set("sort", q.Sort)
	}
	return v
}

// Page is one list answer.
type Page struct {
	Items      []program.Program
	TotalCount int
}

// Options configures a Client.
type Options struct {
	// BaseURL is the application root, e.g. http://localhost:8080/.
	BaseURL string
	// Timeout bounds each attempt of a request; retries get their own
	// budget. Zero means none.
	Timeout time.Duration
	// RetryMax is the number of retries on transport errors and 5xx answers.
	RetryMax int
	// HTTPClient replaces the underlying transport client, mostly for tests.
	HTTPClient *http.Client
}

// Client talks to the Program REST resource and the user directory.
type Client struct {
	base *url.URL
	http *retryablehttp.Client
	now  func() time.Time
}

// NewClient builds a Client for the backend at opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is empty")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base URL %q must be absolute", opts.BaseURL)
	}

	rc := retryablehttp.NewClient()
	if opts.HTTPClient != nil {
		// The caller's client is shared; set the timeout on a copy.
		hc := *opts.HTTPClient
		rc.HTTPClient = &hc
	}
	rc.HTTPClient.Timeout = opts.Timeout
	rc.RetryMax = opts.RetryMax
	rc.Logger = leveledLogger{}
	// Hand non-2xx answers back untouched so their problem body can be read.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{base: base, http: rc, now: time.Now}, nil
}

// ListPrograms fetches a page of Programs. A cache-busting parameter is
// always appended so intermediaries never answer with a stale list.
func (c *Client) ListPrograms(ctx context.Context, q ListQuery) (Page, error) {
	values := q.Values()
	values.Set("cacheBuster", strconv.FormatInt(c.now().UnixMilli(), 10))

	var items []program.Program
	resp, err := c.do(ctx, http.MethodGet, c.endpoint(programsPath), values, nil, "", &items)
	if err != nil {
		return Page{}, err
	}

	total := len(items)
	if raw := resp.Header.Get(TotalCountHeader); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			logging.Warn("API", "ignoring malformed %s header %q", TotalCountHeader, raw)
		} else {
			total = n
		}
	}
	return Page{Items: items, TotalCount: total}, nil
}

// GetProgram fetches a single Program.
func (c *Client) GetProgram(ctx context.Context, id int64) (program.Program, error) {
	var p program.Program
	_, err := c.do(ctx, http.MethodGet, c.programEndpoint(id), nil, nil, "", &p)
	return p, err
}

// CreateProgram POSTs a cleaned copy of p and returns what the backend stored.
func (c *Client) CreateProgram(ctx context.Context, p program.Program) (program.Program, error) {
	var created program.Program
	_, err := c.do(ctx, http.MethodPost, c.endpoint(programsPath), nil, p.Clean(), "application/json", &created)
	return created, err
}

// UpdateProgram PUTs a cleaned copy of p to its id.
func (c *Client) UpdateProgram(ctx context.Context, p program.Program) (program.Program, error) {
	var updated program.Program
	_, err := c.do(ctx, http.MethodPut, c.programEndpoint(p.ID), nil, p.Clean(), "application/json", &updated)
	return updated, err
}

// PatchProgram sends a merge patch; the backend only overwrites the fields
// present in the body.
func (c *Client) PatchProgram(ctx context.Context, p program.Program) (program.Program, error) {
	var patched program.Program
	_, err := c.do(ctx, http.MethodPatch, c.programEndpoint(p.ID), nil, p.Clean(), mergePatchContentType, &patched)
	return patched, err
}

// DeleteProgram removes a Program.
func (c *Client) DeleteProgram(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.programEndpoint(id), nil, nil, "", nil)
	return err
}

// GetUsers lists the users selectable as Program owner.
func (c *Client) GetUsers(ctx context.Context) ([]program.User, error) {
	var users []program.User
	_, err := c.do(ctx, http.MethodGet, c.endpoint(usersPath), nil, nil, "", &users)
	return users, err
}

func (c *Client) endpoint(path string) *url.URL {
	return c.base.JoinPath(strings.Split(path, "/")...)
}

func (c *Client) programEndpoint(id int64) *url.URL {
	return c.endpoint(programsPath).JoinPath(strconv.FormatInt(id, 10))
}

// do issues one request. body is JSON encoded when non-nil and out, when
// non-nil, receives the decoded 2xx answer.
func (c *Client) do(ctx context.Context, method string, u *url.URL, query url.Values, body interface{}, contentType string, out interface{}) (*http.Response, error) {
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var payload interface{}
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, u.Path, err)
		}
		payload = encoded
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, u.Path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	logging.Debug("API", "%s %s", method, u.Path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s answer: %w", method, u.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(method, u.Path, resp.StatusCode, raw)
		logging.Error("API", apiErr, "request rejected")
		return resp, apiErr
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, fmt.Errorf("decoding %s %s answer: %w", method, u.Path, err)
		}
	}
	return resp, nil
}

// leveledLogger routes retryablehttp's own messages into pkg/logging.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) {
	logging.Error("API", nil, "%s%s", msg, formatKV(kv))
}

func (leveledLogger) Info(msg string, kv ...interface{}) {
	logging.Debug("API", "%s%s", msg, formatKV(kv))
}

func (leveledLogger) Debug(msg string, kv ...interface{}) {
	logging.Debug("API", "%s%s", msg, formatKV(kv))
}

func (leveledLogger) Warn(msg string, kv ...interface{}) {
	logging.Warn("API", "%s%s", msg, formatKV(kv))
}

func formatKV(kv []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
