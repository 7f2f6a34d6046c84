package sina

import (
	"errors"
	"testing"

	"portfolio-observer/src/models"
)

// fakeNetwork returns a canned payload without touching the network.
type fakeNetwork struct {
	payload string
	err     error
	lastURL string
	headers map[string]string
}

func (f *fakeNetwork) Get(url string, params map[string]string, headers map[string]string) ([]byte, error) {
	f.lastURL = url
	f.headers = headers
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.payload), nil
}

// -----------------------------------------------------------------------------

func testConfig() *models.MConfig {
	return &models.MConfig{
		LogLevel: "ERROR",
		Network: models.MNetworkConfig{
			UserAgent: "Mozilla/5.0 (test)",
			Referer:   "https://finance.sina.com.cn",
		},
		Quote: models.MQuoteConfig{Endpoint: "https://hq.sinajs.cn/list="},
	}
}

const samplePayload = `var hq_str_sz300757="罗博特科,205.00,205.00,225.40,226.00,204.10,225.40,225.41,12345678,2753086420.00";`

// -----------------------------------------------------------------------------

func TestFetchParsesPayload(t *testing.T) {
	net := &fakeNetwork{payload: samplePayload}
	src := NewSinaQuoteSource(testConfig(), net, map[string]string{"sz300757": "罗博特科"})

	quote, err := src.Fetch("sz300757")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if net.lastURL != "https://hq.sinajs.cn/list=sz300757" {
		t.Errorf("request URL = %q", net.lastURL)
	}
	if net.headers["Referer"] != "https://finance.sina.com.cn" {
		t.Errorf("Referer header = %q, provider rejects requests without it", net.headers["Referer"])
	}
	if net.headers["User-Agent"] == "" {
		t.Error("User-Agent header must be set")
	}

	if quote.PreviousClose != 205.00 {
		t.Errorf("PreviousClose = %v, want 205.00 (comma field 2)", quote.PreviousClose)
	}
	if quote.Price != 225.40 {
		t.Errorf("Price = %v, want 225.40 (comma field 3)", quote.Price)
	}
	// (225.40-205.00)/205.00*100 = 9.95 after rounding.
	if quote.ChangePercent != 9.95 {
		t.Errorf("ChangePercent = %v, want 9.95", quote.ChangePercent)
	}
	if quote.Name != "罗博特科" {
		t.Errorf("Name = %q, want configured display name", quote.Name)
	}
}

func TestFetchNameFallsBackToProviderField(t *testing.T) {
	net := &fakeNetwork{payload: samplePayload}
	src := NewSinaQuoteSource(testConfig(), net, nil)

	quote, err := src.Fetch("sz300757")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if quote.Name != "罗博特科" {
		t.Errorf("Name = %q, want provider field 0", quote.Name)
	}
}

func TestFetchMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing delimiter", `var hq_str_sz300757=;`},
		{"too few fields", `var hq_str_sz300757="abc,1.0";`},
		{"non-numeric previous close", `var hq_str_sz300757="abc,1.0,xx,2.0";`},
		{"non-numeric price", `var hq_str_sz300757="abc,1.0,2.0,yy";`},
		{"zero previous close", `var hq_str_sz300757="abc,1.0,0.00,2.0";`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		net := &fakeNetwork{payload: tt.payload}
		src := NewSinaQuoteSource(testConfig(), net, nil)
		if _, err := src.Fetch("sz300757"); err == nil {
			t.Errorf("%s: Fetch() should fail", tt.name)
		}
	}
}

func TestFetchNetworkErrorPropagates(t *testing.T) {
	net := &fakeNetwork{err: errors.New("timeout")}
	src := NewSinaQuoteSource(testConfig(), net, nil)

	if _, err := src.Fetch("sz300757"); err == nil {
		t.Fatal("Fetch() should propagate network errors")
	}
}
