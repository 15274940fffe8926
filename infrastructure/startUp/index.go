package startup

import (
	"time"

	"skinsense.io/application/repository"
	"skinsense.io/application/services/history"
	"skinsense.io/infrastructure/database"
	"skinsense.io/infrastructure/database/connection/datastore"
	"skinsense.io/infrastructure/env"
	"skinsense.io/infrastructure/facedetection"
	"skinsense.io/infrastructure/logger"
	"skinsense.io/infrastructure/skinanalysis"
)

// Services holds everything the routers need. History is nil when no
// database could be reached.
type Services struct {
	Analyzer *skinanalysis.Analyzer
	History  *history.Service
}

// Used to start services such as loggers, databases and the analyzer.
func StartServices() *Services {
	logger.InitializeLogger()

	services := &Services{}
	if database.SetUpDatabase() {
		services.History = history.NewService(repository.HistoryRepo())
	} else {
		logger.Warning("history endpoints disabled, no database available")
	}

	cache := skinanalysis.NewResultCache(env.GetInt("ANALYSIS_CACHE_CAPACITY", skinanalysis.DefaultCacheCapacity))
	services.Analyzer = skinanalysis.NewAnalyzer(facedetection.InitialiseFaceDetector(), cache, skinanalysis.Config{
		MaxAttempts:    env.GetInt("ANALYSIS_MAX_ATTEMPTS", skinanalysis.DefaultMaxAttempts),
		AttemptTimeout: time.Duration(env.GetInt("FACEPP_TIMEOUT_SECONDS", 30)) * time.Second,
	})
	return services
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
	logger.Sync()
}
