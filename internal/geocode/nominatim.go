package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userAgent = "food-reviews-admin/1.0"

// Result is a single geocoding candidate.
type Result struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Client は Nominatim 互換の住所ジオコーディング API を呼び出す。
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient はエンドポイントとタイムアウトを束縛したクライアントを生成する。
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(endpoint, "/"),
	}
}

// Search は住所文字列から候補を最大 5 件取得する。
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "5")

	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.endpoint + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ジオコーディングリクエストの作成に失敗: %w", err)
	}
	// Nominatim の利用規約上 User-Agent は必須。
	req.Header.Set("User-Agent", userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ジオコーディングリクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return nil, fmt.Errorf("ジオコーディングでエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}

	// Nominatim は緯度経度を文字列で返す。
	var payload []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("ジオコーディング応答の解析に失敗: %w", err)
	}

	results := make([]Result, 0, len(payload))
	for _, item := range payload {
		latitude, err := strconv.ParseFloat(item.Lat, 64)
		if err != nil {
			continue
		}
		longitude, err := strconv.ParseFloat(item.Lon, 64)
		if err != nil {
			continue
		}
		results = append(results, Result{
			DisplayName: item.DisplayName,
			Latitude:    latitude,
			Longitude:   longitude,
		})
	}
	return results, nil
}
