package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// tokenResponse 是两个 OAuth 接口的响应体。
type tokenResponse struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	ExpiresIn             *int64 `json:"expires_in,omitempty"`
	RefreshTokenExpiresIn *int64 `json:"refresh_token_expires_in,omitempty"`
}

const unavailableMessage = "Service temporarily unavailable"

func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		s.writeError(w, r, http.StatusBadRequest, "missing query parameter: code")
		return
	}

	tok, err := s.oauth.Exchange(s.upstreamContext(r.Context()), code)
	if err != nil {
		s.writeUpstreamError(w, r, "OAuth", err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, newTokenResponse(tok))
}

func (s *Server) handleOAuthRefresh(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh_token")
	if refresh == "" {
		s.writeError(w, r, http.StatusBadRequest, "missing query parameter: refresh_token")
		return
	}

	// 没有 access token 的令牌总是无效的，TokenSource 会立即走刷新流程
	src := s.oauth.TokenSource(s.upstreamContext(r.Context()), &oauth2.Token{RefreshToken: refresh})
	tok, err := src.Token()
	if err != nil {
		s.writeUpstreamError(w, r, "OAuth refresh", err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, newTokenResponse(tok))
}

func (s *Server) upstreamContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.client)
}

// writeUpstreamError 把令牌端点的失败映射为响应：
// 端点明确拒绝（带 error 字段）返回 400 和端点给出的描述；
// 网络故障返回 502；其余无法解析的响应返回 400。
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, what string, err error) {
	s.logger.Error(what+" request failed",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.Error(err),
	)

	var retrieveErr *oauth2.RetrieveError
	var netErr *url.Error
	switch {
	case errors.As(err, &retrieveErr) && retrieveErr.ErrorCode != "":
		msg := retrieveErr.ErrorDescription
		if msg == "" {
			msg = what + " failed"
		}
		s.writeError(w, r, http.StatusBadRequest, msg)
	case errors.As(err, &netErr):
		s.writeError(w, r, http.StatusBadGateway, unavailableMessage)
	default:
		s.writeError(w, r, http.StatusBadRequest, what+" failed")
	}
}

func newTokenResponse(tok *oauth2.Token) tokenResponse {
	return tokenResponse{
		AccessToken:           tok.AccessToken,
		RefreshToken:          tok.RefreshToken,
		ExpiresIn:             extraSeconds(tok, "expires_in"),
		RefreshTokenExpiresIn: extraSeconds(tok, "refresh_token_expires_in"),
	}
}

// extraSeconds 读取令牌响应中的秒数字段。
// JSON 响应里是 float64，表单响应里是 int64 或字符串。
func extraSeconds(tok *oauth2.Token, key string) *int64 {
	var n int64
	switch v := tok.Extra(key).(type) {
	case float64:
		n = int64(v)
	case int64:
		n = v
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil
		}
		n = i
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil
		}
		n = i
	default:
		return nil
	}
	if n <= 0 {
		return nil
	}
	return &n
}
