package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-comdir/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	userAgent      = "go-comdir/1.0"
	requestTimeout = 5 * time.Second
)

type nominatimHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger ...*zap.Logger) *Client {
	l := zap.L().Named("geocode.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geocode.client")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     l,
	}
}

// Resolve looks the address up against the Nominatim search API and takes the
// first hit. Every failure mode (network, bad status, empty result, unparsable
// coordinates) collapses into an unresolved Result.
func (c *Client) Resolve(ctx context.Context, address string) Result {
	l := contextutil.GetLogger(ctx, c.logger)

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		l.Warn("geocode request build failed", zap.Error(err))
		return Result{}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Warn("geocode request failed", zap.String("address", address), zap.Error(err))
		return Result{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.Warn("geocode unexpected status",
			zap.String("address", address),
			zap.Int("status", resp.StatusCode),
		)
		return Result{}
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		l.Warn("geocode decode failed", zap.Error(err))
		return Result{}
	}
	if len(hits) == 0 {
		l.Debug("geocode no match", zap.String("address", address))
		return Result{}
	}

	lat, latErr := strconv.ParseFloat(hits[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(hits[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		l.Warn("geocode unparsable coordinates",
			zap.String("lat", hits[0].Lat),
			zap.String("lon", hits[0].Lon),
		)
		return Result{}
	}

	return Result{Lat: lat, Lon: lon, Resolved: true}
}
