package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"repoyear/internal/server"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd 启动 HTTP API。
// GitHub 凭据可以通过 GITHUB_CLIENT_ID / GITHUB_CLIENT_SECRET 环境变量提供。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the contributions API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("bind", "localhost:3000", "Address to bind to")
	flags.String("github-client-id", "", "GitHub OAuth client ID (env GITHUB_CLIENT_ID)")
	flags.String("github-client-secret", "", "GitHub OAuth client secret (env GITHUB_CLIENT_SECRET)")
	flags.String("allow-origin", "none", `Origins allowed for cross-site requests: "none", "*" or a comma separated list`)

	for _, name := range []string{"bind", "github-client-id", "github-client-secret", "allow-origin"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	_ = viper.BindEnv("github-client-id", "GITHUB_CLIENT_ID")
	_ = viper.BindEnv("github-client-secret", "GITHUB_CLIENT_SECRET")

	rootCmd.AddCommand(serveCmd)
}

// serveOptions 从参数和环境变量组装服务端配置，不启动监听。
func serveOptions() (server.Options, error) {
	clientID := viper.GetString("github-client-id")
	clientSecret := viper.GetString("github-client-secret")
	if clientID == "" {
		return server.Options{}, errors.New("--github-client-id (or GITHUB_CLIENT_ID) is required")
	}
	if clientSecret == "" {
		return server.Options{}, errors.New("--github-client-secret (or GITHUB_CLIENT_SECRET) is required")
	}

	origins, err := server.ParseAllowOrigin(viper.GetString("allow-origin"))
	if err != nil {
		return server.Options{}, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return server.Options{}, err
	}

	return server.Options{
		Addr:         viper.GetString("bind"),
		Version:      Version,
		Repos:        cfg,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		AllowOrigins: origins,
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	opts, err := serveOptions()
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	opts.Logger = logger

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(opts).Serve(ctx)
}
