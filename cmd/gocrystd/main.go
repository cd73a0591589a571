package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/crystkit/gocryst/clog"
	"github.com/crystkit/gocryst/web"
)

func main() {
	//A missing .env is fine, the environment may be set by the deployment.
	_ = godotenv.Load()

	development := os.Getenv("GOCRYST_DEV") != ""
	debug := os.Getenv("GOCRYST_DEBUG") != ""
	logger, err := clog.NewLogger(development, debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	clog.SetDefault(logger)

	host := os.Getenv("GOCRYST_HOST")
	port := os.Getenv("GOCRYST_PORT")
	if port == "" {
		port = "8080"
	}

	server := web.NewServer(logger)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("Shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Errorw("Shutdown failed", "error", err)
		}
	}()

	addr := host + ":" + port
	logger.Infow("Serving crystal scenes", "addr", addr)
	if err := server.Run(addr); err != nil {
		logger.Fatalw("Server stopped", "error", err)
	}
}
