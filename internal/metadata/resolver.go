package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/barakahchain/charity-platform-sub001/internal/config"
	"github.com/barakahchain/charity-platform-sub001/internal/logger"
)

// UnavailableError 所有网关都失败
type UnavailableError struct {
	Cid string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("元数据不可用: %s", e.Cid)
}

// Resolver IPFS元数据解析器
// 按配置顺序依次尝试网关，取第一个成功的JSON响应，不做缓存和重试
type Resolver struct {
	gateways []string
	client   *http.Client
}

// NewResolver 创建元数据解析器
func NewResolver(cfg config.IpfsConfig) *Resolver {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Resolver{
		gateways: cfg.Gateways,
		client:   &http.Client{Timeout: timeout},
	}
}

// Fetch 获取CID对应的JSON元数据
func (r *Resolver) Fetch(ctx context.Context, cid string) (json.RawMessage, error) {
	cid = NormalizeCid(cid)
	if cid == "" {
		return nil, &UnavailableError{Cid: cid}
	}

	for _, gateway := range r.gateways {
		url := strings.ReplaceAll(gateway, "{cid}", cid)

		doc, err := r.fetchOne(ctx, url)
		if err != nil {
			// 单个网关失败继续下一个
			logger.Warn("Gateway %s failed for cid %s: %v", url, cid, err)
			continue
		}

		return doc, nil
	}

	return nil, &UnavailableError{Cid: cid}
}

// fetchOne 请求单个网关
func (r *Resolver) fetchOne(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	return json.RawMessage(body), nil
}

// NormalizeCid 清理上游存储可能带入的空白和引号
func NormalizeCid(cid string) string {
	cid = strings.TrimSpace(cid)
	cid = strings.Trim(cid, `"'`)
	return strings.TrimSpace(cid)
}
