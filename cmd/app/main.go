package main

import (
	"context"
	"sage/config"
	"sage/di"
	"sage/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.Sweeper.Start(ctx)
	go app.Dispatcher.Run(ctx)

	app.HTTP.Serve()
}
