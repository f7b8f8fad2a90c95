package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/GlebRadaev/photoexpress/internal/app"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
	"go.uber.org/zap"
)

//	@title			Photoexpress API
//	@version		1.0
//	@description	Print-on-demand photo orders: pricing, promo codes, order lifecycle.

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

//	@securityDefinitions.apikey	ServiceToken
//	@in							header
//	@name						X-Service-Token

// @host		localhost:8080
// @BasePath	/
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var application app.ApplicationI = app.New()
	err := application.Start(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Can't start application")
		zap.L().Fatal("Can't start application: ", zap.Error(err))
	}

	err = application.Wait(ctx, cancel)
	if err != nil {
		zap.L().Fatal("All systems closed with errors. LastError:", zap.Error(err))
	}

	zap.L().Info("All systems closed without errors")
}
