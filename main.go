// main.go
package main

import (
	"log"

	"eventora-client/cmd"
	"eventora-client/internal/data/store"
	"eventora-client/internal/gateway"
	"eventora-client/internal/usecase"
	"eventora-client/internal/wire"
	"eventora-client/pkg/utils"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Client-local storage: credential, advisory seat locks, pending intent
	st, err := store.NewStore(afero.NewOsFs(), config.Storage.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open local storage", zap.Error(err))
	}

	logger.Info("Local storage ready", zap.String("path", config.Storage.Path))

	// Backend gateway and services. The 401 hook is bound through a closure
	// because the session service is built on top of the gateway.
	var service *usecase.Service
	gw := gateway.NewGateway(config.Backend, st.Credential, func() {
		if service != nil {
			service.Session.HandleUnauthorized()
		}
	}, logger)
	service = usecase.NewService(gw, st, config, logger)

	// Wire all dependencies
	app := wire.Wiring(service, gw, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
