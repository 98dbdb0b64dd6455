package common

import (
	"github.com/futig/interview-bot/internal/config"
	pkgHTTP "github.com/futig/interview-bot/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds a JSON connector for one upstream service from its
// client settings. Extra options are applied after the configured ones.
func NewBaseConnector(service string, cfg config.HTTPClientConfig, logger *zap.Logger, extra ...pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
	}

	return pkgHTTP.NewConnector(&pkgHTTP.ConnectorConfig{
		Logger:  logger.Named(service),
		BaseURL: cfg.Url,
	}, append(opts, extra...)...)
}
