// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/classhub/internal/app/store/oauthstate"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// The TTL index on oauth_states handles ongoing cleanup; the sweep here
// clears anything that accumulated while the service was down.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	states := oauthstate.New(deps.ClassHubMongoDatabase)
	removed, err := states.CleanupExpired(ctx)
	if err != nil {
		logger.Warn("oauth state cleanup failed", zap.Error(err))
		return nil
	}
	if removed > 0 {
		logger.Info("removed expired oauth states", zap.Int64("count", removed))
	}
	return nil
}
