package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
)

// catalog pages can be large; jsoniter keeps decoding cheap
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Config carries the provider connection settings. Scopes are separate
// because the provider issues scope-restricted tokens for reservations
// and class schedules.
type Config struct {
	BaseURL          string
	TokenURL         string
	ClientID         string
	ClientSecret     string
	ReservationScope string
	ScheduleScope    string
	PageSize         int
	Timeout          time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     *TokenSource
}

func New(cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		tokens:     NewTokenSource(cfg.TokenURL, cfg.ClientID, cfg.ClientSecret, httpClient),
	}
}

// ListReservations returns all provider reservations whose window falls
// on the given date.
func (c *Client) ListReservations(ctx context.Context, date time.Time) ([]Reservation, apperrors.Error) {
	params := url.Values{}
	day := date.Format("2006-01-02")
	params.Set("start_dt", day)
	params.Set("end_dt", day)
	return listPages[Reservation](ctx, c, c.cfg.ReservationScope, "/reservations", params)
}

// ListClassSchedules pages through the provider-wide schedule catalog.
// The API offers no date filter; callers filter client-side.
func (c *Client) ListClassSchedules(ctx context.Context) ([]ClassSchedule, apperrors.Error) {
	return listPages[ClassSchedule](ctx, c, c.cfg.ScheduleScope, "/classSchedules", url.Values{})
}

// ListClasses returns the active and future class catalog.
func (c *Client) ListClasses(ctx context.Context) ([]Class, apperrors.Error) {
	params := url.Values{}
	params.Set("status", ClassStatusActive+","+ClassStatusFuture)
	return listPages[Class](ctx, c, c.cfg.ScheduleScope, "/classes", params)
}

// listPages fetches every page until the provider returns a short page
// or the reported total is reached. A single page must never be assumed.
func listPages[T any](ctx context.Context, c *Client, scope, path string, params url.Values) ([]T, apperrors.Error) {
	var out []T
	for pageNum := 1; ; pageNum++ {
		params.Set("page", strconv.Itoa(pageNum))
		params.Set("page_size", strconv.Itoa(c.cfg.PageSize))

		body, err := c.doGET(ctx, scope, path, params)
		if err != nil {
			return nil, err
		}
		var pg page[T]
		if jerr := jsonAPI.Unmarshal(body, &pg); jerr != nil {
			log.Ctx(ctx).Error().Err(jerr).Str("path", path).Msg("failed to decode provider page")
			return nil, ErrBadResponse.Err(jerr)
		}
		out = append(out, pg.Results...)

		if len(pg.Results) < c.cfg.PageSize {
			break
		}
		if pg.Total > 0 && len(out) >= pg.Total {
			break
		}
	}
	return out, nil
}

// doGET performs an authenticated GET. A 401 invalidates the cached
// token and retries exactly once with a fresh one; the refresh is not
// surfaced to the caller unless the retry also fails.
func (c *Client) doGET(ctx context.Context, scope, path string, params url.Values) ([]byte, apperrors.Error) {
	body, err := c.tryGET(ctx, scope, path, params)
	if err != nil && err.Is(ErrUnauthorized) {
		c.tokens.Invalidate(scope)
		log.Ctx(ctx).Debug().Str("scope", scope).Msg("provider rejected token, refreshing")
		body, err = c.tryGET(ctx, scope, path, params)
	}
	return body, err
}

func (c *Client) tryGET(ctx context.Context, scope, path string, params url.Values) ([]byte, apperrors.Error) {
	token, err := c.tokens.Token(ctx, scope)
	if err != nil {
		return nil, err
	}
	fullURL := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, params.Encode())
	req, rerr := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if rerr != nil {
		return nil, ErrProvider.New("failed to build provider request").Err(rerr)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	rsp, rerr := c.httpClient.Do(req)
	if rerr != nil {
		return nil, ErrProvider.New("provider request failed").Err(rerr)
	}
	defer rsp.Body.Close()

	switch {
	case rsp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized.New("provider rejected token for " + path)
	case rsp.StatusCode != http.StatusOK:
		return nil, ErrProvider.New("provider returned " + rsp.Status + " for " + path)
	}
	body, rerr := io.ReadAll(rsp.Body)
	if rerr != nil {
		return nil, ErrProvider.New("failed to read provider response").Err(rerr)
	}
	return body, nil
}
