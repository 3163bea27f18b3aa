package main

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/deposit-validator/api"
	"github.com/carson-networks/deposit-validator/internal/config"
	"github.com/carson-networks/deposit-validator/internal/logging"
	"github.com/carson-networks/deposit-validator/internal/operator"
	"github.com/carson-networks/deposit-validator/internal/refdata"
	"github.com/carson-networks/deposit-validator/internal/service"
	"github.com/carson-networks/deposit-validator/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("deposit-validator starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	provider := buildProvider(envConfig)
	runStorage := storage.NewStorage()

	delegator := operator.NewOperatorDelegator(4)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(runStorage, provider, delegator, envConfig.CooldownDays)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.Port,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}

// buildProvider picks the reference data source from config: GCS when a
// bucket/object pair is set, the spreadsheet export URL otherwise. A cache
// TTL wraps either source.
func buildProvider(envConfig *config.Config) refdata.Provider {
	var provider refdata.Provider
	if envConfig.ReferenceGCSBucket != "" && envConfig.ReferenceGCSObject != "" {
		provider = &refdata.GCSProvider{
			Bucket:       envConfig.ReferenceGCSBucket,
			Object:       envConfig.ReferenceGCSObject,
			PublicBucket: envConfig.ReferenceGCSPublic,
		}
	} else {
		provider = refdata.NewExportProvider(envConfig.ReferenceExportURL)
	}

	if envConfig.ReferenceCacheTTLSeconds > 0 {
		ttl := time.Duration(envConfig.ReferenceCacheTTLSeconds) * time.Second
		provider = refdata.NewCachingProvider(provider, ttl)
	}

	return provider
}
