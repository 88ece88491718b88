package soop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL SOOP 统合检索接口地址
const DefaultBaseURL = "https://sch.sooplive.co.kr"

const (
	defaultSearchCount = 10 // bjSearch 候选数
	defaultLiveCount   = 30 // liveSearch 候选数
)

// BJCandidate bjSearch 返回的单个候选
type BJCandidate struct {
	UserID      string `json:"user_id"`
	UserNick    string `json:"user_nick"`
	StationLogo string `json:"station_logo"`
}

type bjSearchResponse struct {
	Data []BJCandidate `json:"DATA"`
}

// LiveEntry liveSearch 返回的在播条目
type LiveEntry struct {
	UserID     string `json:"user_id"`
	UserNick   string `json:"user_nick"`
	BroadNo    string `json:"broad_no"`
	BroadImg   string `json:"broad_img"`
	BroadTitle string `json:"broad_title"`
	URL        string `json:"url"`
}

type liveSearchResponse struct {
	RealBroad []LiveEntry `json:"REAL_BROAD"`
}

// SearchClient 检索接口抽象，测试里用假实现替换
type SearchClient interface {
	SearchBJ(ctx context.Context, keyword string) ([]BJCandidate, error)
	SearchLive(ctx context.Context, keyword string) ([]LiveEntry, error)
}

// Client SOOP 检索客户端
// 两个操作都是只读、免认证的查询；服务端对频率敏感，
// 调用方（LiveEnricher）负责限并发和节流，这里只发请求
type Client struct {
	baseURL     string
	httpClient  *http.Client
	searchCount int
	liveCount   int
}

// NewClient 创建检索客户端，baseURL 为空时使用线上地址
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		searchCount: defaultSearchCount,
		liveCount:   defaultLiveCount,
	}
}

// SearchBJ 按昵称关键词检索账号
func (c *Client) SearchBJ(ctx context.Context, keyword string) ([]BJCandidate, error) {
	var resp bjSearchResponse
	if err := c.getJSON(ctx, "bjSearch", keyword, c.searchCount, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SearchLive 按昵称关键词检索在播列表
func (c *Client) SearchLive(ctx context.Context, keyword string) ([]LiveEntry, error) {
	var resp liveSearchResponse
	if err := c.getJSON(ctx, "liveSearch", keyword, c.liveCount, &resp); err != nil {
		return nil, err
	}
	return resp.RealBroad, nil
}

func (c *Client) getJSON(ctx context.Context, method, keyword string, count int, out any) error {
	q := url.Values{}
	q.Set("m", method)
	q.Set("keyword", keyword)
	q.Set("nListCnt", strconv.Itoa(count))
	q.Set("t", "json")
	reqURL := c.baseURL + "/api.php?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("soop %s failed: status %d", method, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("soop %s failed: %w", method, err)
	}
	return nil
}
