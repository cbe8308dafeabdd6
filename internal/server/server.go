package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"repoyear/internal/config"
	"repoyear/internal/history"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	upstreamTimeout   = 15 * time.Second
)

// Options 是服务端的启动参数。
type Options struct {
	Addr    string
	Version string

	// Repos 是 /api/contributions 扫描的目录树
	Repos config.Config

	ClientID     string
	ClientSecret string
	// TokenURL 为空时使用 GitHub 的令牌端点
	TokenURL string

	// AllowOrigins 见 ParseAllowOrigin
	AllowOrigins []string

	Logger *zap.Logger
}

// Server 是 HTTP API 服务端。
type Server struct {
	opts   Options
	logger *zap.Logger
	oauth  *oauth2.Config
	client *http.Client

	// scanMu 保证同一时间只有一次扫描
	scanMu sync.Mutex
	scan   func(config.Config) history.Result
}

// New 创建服务端，不会开始监听。
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoint := github.Endpoint
	if opts.TokenURL != "" {
		endpoint.TokenURL = opts.TokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	s := &Server{
		opts:   opts,
		logger: logger,
		oauth: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			Endpoint:     endpoint,
		},
		client: &http.Client{Timeout: upstreamTimeout},
	}
	collector := history.NewCollector(logger.Named("scan"))
	s.scan = collector.Collect
	return s
}

// Handler 返回带中间件的完整路由。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/version", s.handleVersion)
	mux.HandleFunc("GET /api/contributions", s.handleContributions)
	mux.HandleFunc("GET /api/oauth/callback", s.handleOAuthCallback)
	mux.HandleFunc("GET /api/oauth/refresh", s.handleOAuthRefresh)

	var h http.Handler = mux
	h = withCORS(s.opts.AllowOrigins, h)
	h = s.logRequests(h)
	h = requestID(h)
	return h
}

// Serve 在 opts.Addr 上监听，直到 ctx 被取消后优雅退出。
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.opts.Addr)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener 与 Serve 相同，但使用调用方提供的 listener。
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("server running",
		zap.String("version", s.opts.Version),
		zap.String("url", "http://"+ln.Addr().String()),
	)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	s.logger.Info("server stopped")
	return nil
}
