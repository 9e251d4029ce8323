// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/devcamper/internal/app/store/users"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/dalemusser/devcamper/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// resetCleanup is started in Startup and stopped in Shutdown.
var resetCleanup *workers.ResetTokenCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		t := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Int("overrides", n),
			zap.Duration("short", t.Short),
			zap.Duration("medium", t.Medium),
			zap.Duration("batch", t.Batch))
	}

	if appCfg.ResetCleanupInterval > 0 {
		resetCleanup = workers.NewResetTokenCleanup(userstore.New(deps.DevCamperMongoDatabase), logger, appCfg.ResetCleanupInterval)
		resetCleanup.Start()
	}
	return nil
}
