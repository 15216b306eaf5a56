package bannerbear

import (
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const (
	// DefaultBaseURL serves asynchronous, webhook-notified requests.
	DefaultBaseURL = "https://api.bannerbear.com/v2"
	// DefaultSyncBaseURL blocks until rendering completes before responding.
	DefaultSyncBaseURL = "https://sync.api.bannerbear.com/v2"

	// APIKeyEnv is read when NewClient is given an empty key.
	APIKeyEnv = "BANNERBEAR_API_KEY"

	defaultTimeout = 30 * time.Second
)

// Client is the Bannerbear API client. It is immutable after construction
// and may be shared between goroutines.
type Client struct {
	apiKey  string
	api     *api
	syncAPI *api
}

type options struct {
	baseURL     string
	syncBaseURL string
	httpClient  *http.Client
	log         logr.Logger
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL overrides the asynchronous API host.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithSyncBaseURL overrides the synchronous API host.
func WithSyncBaseURL(baseURL string) Option {
	return func(o *options) { o.syncBaseURL = baseURL }
}

// WithHTTPClient replaces the default 30s-timeout http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithLogger logs every request at V(1).
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

// NewClient creates a new Bannerbear API client. An empty apiKey falls back to
// the BANNERBEAR_API_KEY environment variable, read once here.
func NewClient(apiKey string, opts ...Option) *Client {
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnv)
	}

	o := options{
		baseURL:     DefaultBaseURL,
		syncBaseURL: DefaultSyncBaseURL,
		log:         logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Bearer "+apiKey)

	return &Client{
		apiKey:  apiKey,
		api:     newAPI(o.baseURL, header, o.httpClient, o.log),
		syncAPI: newAPI(o.syncBaseURL, header, o.httpClient, o.log.WithValues("synchronous", true)),
	}
}

// APIKey returns the token the client authenticates with.
func (c *Client) APIKey() string {
	return c.apiKey
}

// create picks the host for a create call; the request itself is identical.
func (c *Client) create(synchronous bool) *api {
	if synchronous {
		return c.syncAPI
	}
	return c.api
}

// ListOptions are the paging parameters shared by every list call.
// Zero values are omitted from the query string.
type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) query() string {
	q := queryBuilder{}
	q.addInt("page", o.Page)
	q.addInt("limit", o.Limit)
	return q.String()
}

// TemplateListOptions filters ListTemplates. Parameters are sent in the
// order page, tag, limit, name.
type TemplateListOptions struct {
	Page  int
	Tag   string
	Limit int
	Name  string
}

func (o TemplateListOptions) query() string {
	q := queryBuilder{}
	q.addInt("page", o.Page)
	q.add("tag", o.Tag)
	q.addInt("limit", o.Limit)
	q.add("name", o.Name)
	return q.String()
}

// queryBuilder keeps insertion order, which url.Values does not.
type queryBuilder struct {
	parts []string
}

func (q *queryBuilder) add(key, value string) {
	if value == "" {
		return
	}
	q.parts = append(q.parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

func (q *queryBuilder) addInt(key string, value int) {
	if value <= 0 {
		return
	}
	q.add(key, strconv.Itoa(value))
}

func (q *queryBuilder) String() string {
	if len(q.parts) == 0 {
		return ""
	}
	return "?" + strings.Join(q.parts, "&")
}

func resourcePath(collection, uid string) string {
	return "/" + collection + "/" + url.PathEscape(uid)
}
