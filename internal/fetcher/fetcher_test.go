package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yxlinfo/yxl-info/internal/fetcher"
)

// TestFetchCacheBust 每次请求都带时间戳参数并禁用中间缓存
func TestFetchCacheBust(t *testing.T) {
	var gotQuery, gotCacheControl string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("v")
		gotCacheControl = r.Header.Get("Cache-Control")
		w.Write([]byte("workbook-bytes"))
	}))
	defer srv.Close()

	f := fetcher.New(5 * time.Second)
	data, err := f.Fetch(context.Background(), srv.URL+"/YXL_통합.xlsx")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != "workbook-bytes" {
		t.Errorf("data = %q", data)
	}
	if gotQuery == "" {
		t.Error("v query param missing")
	}
	if gotCacheControl != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", gotCacheControl)
	}
}

// TestFetchKeepsExistingQuery 原有查询参数保留
func TestFetchKeepsExistingQuery(t *testing.T) {
	var gotSheet string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSheet = r.URL.Query().Get("sheet")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := fetcher.New(0)
	if _, err := f.Fetch(context.Background(), srv.URL+"/file.xlsx?sheet=total"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotSheet != "total" {
		t.Errorf("sheet = %q, want total", gotSheet)
	}
}

// TestFetchNon200 非 200 状态视为错误
func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := fetcher.New(5 * time.Second)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("err = nil for 404 response")
	}
}

// TestFetchInvalidURL 坏地址直接报错
func TestFetchInvalidURL(t *testing.T) {
	f := fetcher.New(5 * time.Second)
	if _, err := f.Fetch(context.Background(), "://not-a-url"); err == nil {
		t.Error("err = nil for invalid url")
	}
}
