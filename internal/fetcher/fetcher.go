package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Fetcher 工作簿下载器
// 源文件会被定期覆盖更新，每次请求都加时间戳参数绕过中间缓存
type Fetcher struct {
	httpClient *http.Client
	now        func() time.Time
}

// New 创建下载器
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Fetch 下载整个文件内容
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	bustURL, err := withCacheBust(rawURL, f.now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("invalid source url %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bustURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s failed: status %d", rawURL, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// withCacheBust 追加 v=<毫秒时间戳> 参数
func withCacheBust(rawURL string, millis int64) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(millis, 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
