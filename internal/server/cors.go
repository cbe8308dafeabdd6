package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/cors"
)

// ParseAllowOrigin 解析 --allow-origin 参数：
//   - "" 或 "none": 不输出任何 CORS 头
//   - "*": 允许任意来源
//   - 逗号分隔的来源列表，如 "https://a.example,http://localhost:5173"
func ParseAllowOrigin(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "", "none":
		return nil, nil
	case "*":
		return []string{"*"}, nil
	}

	var origins []string
	for _, part := range strings.Split(value, ",") {
		origin := strings.TrimRight(strings.TrimSpace(part), "/")
		switch origin {
		case "":
			return nil, errors.Newf("empty origin in %q", value)
		case "*", "none":
			return nil, errors.Newf("%q cannot be combined with other origins", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" || u.Path != "" {
			return nil, errors.Newf("invalid origin %q (expected scheme://host[:port])", part)
		}
		origins = append(origins, origin)
	}
	return origins, nil
}

// withCORS 按允许的来源包装 next，列表为空时原样返回。
func withCORS(allowed []string, next http.Handler) http.Handler {
	if len(allowed) == 0 {
		return next
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		MaxAge:         600,
	}).Handler(next)
}
