package network

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"portfolio-observer/src/logger"
	"portfolio-observer/src/models"
)

// -----------------------------------------------------------------------------

// AsyncNetworkManager performs plain GET requests. A request either completes
// or fails; there is no retry loop, the caller decides what a failure means.
type AsyncNetworkManager struct {
	Config *models.MConfig
	Client *http.Client
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncNetworkManager(cfg *models.MConfig, log *logger.Logger) *AsyncNetworkManager {
	return &AsyncNetworkManager{
		Config: cfg,
		Logger: log,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
	}
}

// -----------------------------------------------------------------------------

// Get performs a single GET request with the given query parameters and headers.
func (nm *AsyncNetworkManager) Get(urlStr string, params map[string]string, headers map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		q := reqUrl.Query()
		for k, v := range params {
			q.Add(k, v)
		}
		reqUrl.RawQuery = q.Encode()
	}

	req, err := http.NewRequest("GET", reqUrl.String(), nil)
	if err != nil {
		return nil, err
	}

	// Default browser-like User-Agent; per-request headers override.
	req.Header.Set("User-Agent", nm.Config.Network.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := nm.Client.Do(req)
	if err != nil {
		nm.Logger.Debug("Request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		nm.Logger.Debug("Bad status %d for %s", resp.StatusCode, reqUrl.String())
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}
