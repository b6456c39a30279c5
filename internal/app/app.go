// internal/app/app.go
package app

import (
	"fmt"
	"time"

	"github.com/textlens/TextLensHub/internal/config"
	"github.com/textlens/TextLensHub/internal/di"
	"github.com/textlens/TextLensHub/internal/nlp"
	"github.com/textlens/TextLensHub/internal/services"
)

// InitServices builds and registers all services in dependency order:
// dispatcher and throttle first, then the stats and export services,
// then the analysis pipeline that consumes them.
func InitServices(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is required")
	}

	container := di.GetContainer()

	client := nlp.NewClient(cfg.AnalysisBaseURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	container.Register("client", client)

	var throttle *nlp.Throttle
	if cfg.GlobalThrottle {
		throttle = nlp.NewGlobalThrottle(nlp.ThrottleWindow)
	} else {
		throttle = nlp.NewThrottle()
	}
	container.Register("throttle", throttle)

	statsService := services.NewStatsService()
	container.Register("stats", statsService)

	exportService := services.NewExportService()
	container.Register("export", exportService)

	analysisService := services.NewAnalysisService(client, throttle, statsService)
	container.Register("analysis", analysisService)

	return nil
}

// HealthCheck verifies that the critical services are registered.
func HealthCheck() error {
	container := di.GetContainer()

	critical := []string{"client", "throttle", "analysis", "export"}
	for _, name := range critical {
		if service := container.Get(name); service == nil {
			return fmt.Errorf("critical service not registered: %s", name)
		}
	}

	return nil
}
