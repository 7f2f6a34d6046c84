package sina

import (
	"fmt"
	"strconv"
	"strings"

	"portfolio-observer/src/classifier"
	"portfolio-observer/src/interfaces"
	"portfolio-observer/src/logger"
	"portfolio-observer/src/models"
)

// -----------------------------------------------------------------------------
// SinaQuoteSource — one GET per symbol against the Sina hq endpoint.
//
// The provider rejects requests without a browser-like Referer/User-Agent.
// The payload is a single line of the form
//
//	var hq_str_sz300757="name,open,preclose,price,high,low,...";
//
// where comma field 2 is the previous close and field 3 the current price.
// -----------------------------------------------------------------------------

type SinaQuoteSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
	names   map[string]string
}

// Minimum comma fields needed to reach the current price.
const minQuoteFields = 4

// -----------------------------------------------------------------------------

func NewSinaQuoteSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, names map[string]string) *SinaQuoteSource {
	return &SinaQuoteSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "SinaQuoteSource"),
		names:   names,
	}
}

// -----------------------------------------------------------------------------

func (s *SinaQuoteSource) Name() string {
	return "sina"
}

// -----------------------------------------------------------------------------

// Fetch performs one network request for the symbol and parses the payload.
func (s *SinaQuoteSource) Fetch(symbol string) (models.MLiveQuote, error) {
	url := s.Config.Quote.Endpoint + symbol

	headers := map[string]string{
		"Referer":         s.Config.Network.Referer,
		"User-Agent":      s.Config.Network.UserAgent,
		"Accept-Language": "zh-CN,zh;q=0.9",
	}

	body, err := s.Network.Get(url, nil, headers)
	if err != nil {
		return models.MLiveQuote{}, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	return s.parseQuote(symbol, string(body))
}

// -----------------------------------------------------------------------------

// parseQuote extracts (name, previous close, price) from the provider line and
// computes the 2-decimal change percent.
func (s *SinaQuoteSource) parseQuote(symbol, payload string) (models.MLiveQuote, error) {
	idx := strings.Index(payload, `="`)
	if idx < 0 {
		return models.MLiveQuote{}, fmt.Errorf("malformed payload for %s: missing delimiter", symbol)
	}

	fields := strings.Split(payload[idx+2:], ",")
	if len(fields) < minQuoteFields {
		return models.MLiveQuote{}, fmt.Errorf("malformed payload for %s: %d fields", symbol, len(fields))
	}

	prevClose, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return models.MLiveQuote{}, fmt.Errorf("bad previous close for %s: %w", symbol, err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return models.MLiveQuote{}, fmt.Errorf("bad price for %s: %w", symbol, err)
	}
	if prevClose <= 0 {
		return models.MLiveQuote{}, fmt.Errorf("non-positive previous close for %s: %f", symbol, prevClose)
	}

	// Provider names come back GB18030-encoded; a configured display name
	// takes precedence.
	name := fields[0]
	if display, ok := s.names[symbol]; ok {
		name = display
	}

	quote := models.MLiveQuote{
		Symbol:        symbol,
		Name:          name,
		Price:         price,
		PreviousClose: prevClose,
		ChangePercent: classifier.ChangePercent(price, prevClose),
	}

	s.Logger.Debug("Fetched %s: price=%.2f preClose=%.2f change=%.2f%%",
		symbol, quote.Price, quote.PreviousClose, quote.ChangePercent)

	return quote, nil
}
