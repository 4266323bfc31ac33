package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/barakahchain/charity-platform-sub001/internal/config"
)

func TestFetchFailover(t *testing.T) {
	// 网关1超时
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(1500 * time.Millisecond)
		w.Write([]byte(`{"title":"slow"}`))
	}))
	defer slow.Close()

	// 网关2返回500
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	// 网关3正常
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "QmTest123") {
			t.Errorf("cid missing from request path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"X"}`))
	}))
	defer ok.Close()

	// 网关4不应被访问
	var extraCalls int32
	extra := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&extraCalls, 1)
		w.Write([]byte(`{"title":"extra"}`))
	}))
	defer extra.Close()

	resolver := NewResolver(config.IpfsConfig{
		Gateways: []string{
			slow.URL + "/ipfs/{cid}",
			failing.URL + "/ipfs/{cid}",
			ok.URL + "/ipfs/{cid}",
			extra.URL + "/ipfs/{cid}",
		},
		Timeout: 1,
	})

	doc, err := resolver.Fetch(context.Background(), "QmTest123")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(doc, &parsed); err != nil {
		t.Fatalf("returned doc is not JSON: %v", err)
	}
	if parsed["title"] != "X" {
		t.Errorf("title = %q, want X", parsed["title"])
	}

	if n := atomic.LoadInt32(&extraCalls); n != 0 {
		t.Errorf("fourth gateway was called %d times, want 0", n)
	}
}

func TestFetchSkipsMalformedJSON(t *testing.T) {
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error page</html>`))
	}))
	defer garbage.Close()

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ok.Close()

	resolver := NewResolver(config.IpfsConfig{
		Gateways: []string{garbage.URL + "/ipfs/{cid}", ok.URL + "/ipfs/{cid}"},
		Timeout:  2,
	})

	doc, err := resolver.Fetch(context.Background(), "QmAbc")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(doc) != `{"ok":true}` {
		t.Errorf("doc = %s", doc)
	}
}

func TestFetchAllGatewaysFail(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	resolver := NewResolver(config.IpfsConfig{
		Gateways: []string{failing.URL + "/ipfs/{cid}", failing.URL + "/other/{cid}"},
		Timeout:  2,
	})

	_, err := resolver.Fetch(context.Background(), "QmMissing")
	if err == nil {
		t.Fatal("expected error")
	}

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("error type = %T, want *UnavailableError", err)
	}
	if unavailable.Cid != "QmMissing" {
		t.Errorf("cid in error = %q, want QmMissing", unavailable.Cid)
	}
}

func TestFetchHonorsCallerContext(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Write([]byte(`{}`))
	}))
	defer slow.Close()

	resolver := NewResolver(config.IpfsConfig{
		Gateways: []string{slow.URL + "/ipfs/{cid}"},
		Timeout:  10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := resolver.Fetch(ctx, "QmSlow")
	if err == nil {
		t.Fatal("expected error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("caller context not honored, took %v", elapsed)
	}
}

func TestNormalizeCid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"QmPlain", "QmPlain"},
		{"  QmSpaced  ", "QmSpaced"},
		{`"QmQuoted"`, "QmQuoted"},
		{`'QmSingle'`, "QmSingle"},
		{` "QmBoth" `, "QmBoth"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeCid(tc.in); got != tc.want {
			t.Errorf("NormalizeCid(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFetchSubdomainTemplate(t *testing.T) {
	// 子域名风格的模板：CID替换在host部分而不是path
	var gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.Host
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	// httptest不支持子域名解析，这里只验证模板替换逻辑
	resolver := NewResolver(config.IpfsConfig{
		Gateways: []string{srv.URL + "/{cid}/"},
		Timeout:  2,
	})

	if _, err := resolver.Fetch(context.Background(), "QmSub"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotHost == "" {
		t.Error("server was not called")
	}
}
