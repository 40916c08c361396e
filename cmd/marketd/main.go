package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mintduck/nft-marketplace/internal/config"
	"github.com/mintduck/nft-marketplace/internal/config/di"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init()

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	container.GetElastic().InstallMappings()

	container.GetMarketplaceIndexer().Subscribe()
	if config.Get().Aws.QueueUrl != "" {
		container.GetPublisher().Subscribe()
	}

	go health()

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketplace started")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, container.GetApi().Router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start marketplace api")
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health endpoint")
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
