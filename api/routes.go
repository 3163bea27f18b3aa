package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/deposit-validator/internal/handlers/v1/status"
	"github.com/carson-networks/deposit-validator/internal/handlers/v1/validation"
	"github.com/carson-networks/deposit-validator/internal/logging"
	"github.com/carson-networks/deposit-validator/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("deposit-validator", "1.0.0"))
	humaAPI.UseMiddleware(logging.HumaMiddleware(r.Logger))

	validation.NewCreateRunHandler(r.Service.Validation).Register(humaAPI)
	validation.NewResolveMappingHandler(r.Service.Validation).Register(humaAPI)
	validation.NewGetRunHandler(r.Service.Validation).Register(humaAPI)
	validation.NewListRunsHandler(r.Service.Validation).Register(humaAPI)
	validation.NewListDuplicatesHandler(r.Service.Validation).Register(humaAPI)
	validation.NewDownloadReportHandler(r.Service.Validation).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
