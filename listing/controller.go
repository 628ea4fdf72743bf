package listing

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/rpupo63/portfolio-admin/notify"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// KeywordField is the free-text filter every collection accepts.
const KeywordField = "keyword"

// State is one screen's view of a collection. Page is 0-based.
type State struct {
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Keyword  string             `json:"keyword"`
	Filter   string             `json:"filter"`
	Total    int                `json:"total"`
	Records  []normalize.Record `json:"records"`
	Loading  bool               `json:"loading"`
	Err      string             `json:"error,omitempty"`
}

// Controller owns the pagination and filter state of one collection.
// Controllers share nothing; each guards its own state.
type Controller struct {
	kind       models.Kind
	info       models.KindInfo
	shape      normalize.Shape
	gateway    *services.Gateway
	normalizer *normalize.Normalizer
	token      string
	logger     zerolog.Logger

	mu    sync.Mutex
	state State
	seq   uint64
}

func NewController(kind models.Kind, gateway *services.Gateway, token string, normalizer *normalize.Normalizer) *Controller {
	info := kind.Info()
	return &Controller{
		kind:       kind,
		info:       info,
		shape:      normalize.ShapeFor(kind),
		gateway:    gateway,
		normalizer: normalizer,
		token:      token,
		logger:     log.With().Str("component", "listing").Str("kind", kind.String()).Logger(),
		state: State{
			PageSize: info.PageSize,
			Records:  []normalize.Record{},
		},
	}
}

func (c *Controller) Kind() models.Kind {
	return c.kind
}

// SetFilter changes the keyword or the collection's secondary filter,
// returns to the first page and reloads.
func (c *Controller) SetFilter(ctx context.Context, field, value string) error {
	c.mu.Lock()
	switch {
	case field == KeywordField:
		c.state.Keyword = value
	case field != "" && field == c.info.FilterParam:
		c.state.Filter = value
	default:
		c.mu.Unlock()
		return errs.NewBadRequestError("unsupported filter " + strconv.Quote(field) + " for " + c.kind.String())
	}
	c.state.Page = 0
	c.mu.Unlock()

	return c.Refetch(ctx)
}

// Query is a whole list request, for callers that keep no screen between
// requests.
type Query struct {
	Page    int
	Keyword string
	Filter  string
}

// Load replaces page and filters in one step and reloads once.
func (c *Controller) Load(ctx context.Context, q Query) error {
	if q.Page < 0 {
		return errs.NewBadRequestError("page must not be negative")
	}
	if q.Filter != "" && c.info.FilterParam == "" {
		return errs.NewBadRequestError(c.kind.String() + " has no secondary filter")
	}
	c.mu.Lock()
	c.state.Page = q.Page
	c.state.Keyword = q.Keyword
	c.state.Filter = q.Filter
	c.mu.Unlock()

	return c.Refetch(ctx)
}

// SetPage moves to page n (0-based) and reloads. Filters are kept.
func (c *Controller) SetPage(ctx context.Context, n int) error {
	if n < 0 {
		return errs.NewBadRequestError("page must not be negative")
	}
	c.mu.Lock()
	c.state.Page = n
	c.mu.Unlock()

	return c.Refetch(ctx)
}

// Refetch loads the current page. A failure replaces the records with an
// empty page and the collection's static error message. Only the newest
// request may write the state; older answers are dropped.
func (c *Controller) Refetch(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state.Loading = true
	c.state.Err = ""
	query := c.queryLocked()
	c.mu.Unlock()

	resp, err := c.gateway.Request(ctx, http.MethodGet, c.info.ListPath, services.RequestOptions{
		Query:     query,
		AuthToken: c.token,
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug().Uint64("seq", seq).Uint64("latest", c.seq).Msg("discarding stale page")
		return nil
	}
	c.state.Loading = false

	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load page")
		c.state.Err = c.kind.FetchErrorMessage()
		c.state.Records = []normalize.Record{}
		c.state.Total = 0
		return err
	}

	body := resp.JSON()
	c.state.Records = c.normalizer.Normalize(records(body, c.info.EnvelopeKey), c.shape)
	c.state.Total = int(body.Get("data.total").Int())
	return nil
}

func (c *Controller) queryLocked() url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(c.state.Page+1))
	query.Set("limit", strconv.Itoa(c.state.PageSize))
	if c.state.Keyword != "" {
		query.Set(KeywordField, c.state.Keyword)
	}
	if c.info.FilterParam != "" && c.state.Filter != "" {
		query.Set(c.info.FilterParam, c.state.Filter)
	}
	return query
}

// Snapshot copies the state; the records slice is not shared.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Records = append([]normalize.Record(nil), c.state.Records...)
	if s.Records == nil {
		s.Records = []normalize.Record{}
	}
	return s
}

// Watch reloads once every time signal fires.
func (c *Controller) Watch(signal *notify.Signal) {
	signal.Subscribe(func(ctx context.Context) {
		_ = c.Refetch(ctx)
	})
}

// records reads the collection array out of a list envelope.
func records(body gjson.Result, key string) []gjson.Result {
	return body.Get("data." + key).Array()
}
