// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if resetCleanup != nil {
		resetCleanup.Stop()
	}
	if loginLimiter != nil {
		loginLimiter.Close()
	}
	if forgotLimiter != nil {
		forgotLimiter.Close()
	}
	if deps.DevCamperMongoClient != nil {
		logger.Info("disconnecting DevCamper MongoDB client")
		if err := deps.DevCamperMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
