package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/reusedev/room-stager/config"
	"github.com/reusedev/room-stager/internal/components/mysql"
	"github.com/reusedev/room-stager/internal/modules/ai"
	"github.com/reusedev/room-stager/internal/modules/flow"
	"github.com/reusedev/room-stager/internal/modules/history"
	"github.com/reusedev/room-stager/internal/modules/http_client"
	"github.com/reusedev/room-stager/internal/modules/logs"
	"github.com/reusedev/room-stager/internal/modules/observer"
	"github.com/reusedev/room-stager/internal/service/http"
	"github.com/reusedev/room-stager/internal/service/http/handler"
	"github.com/reusedev/room-stager/tools"
)

var (
	httpPort   string
	configPath string
)

func init() {
	flag.StringVar(&httpPort, "http-port", ":3001", "listen http port")
	flag.StringVar(&configPath, "config", "config.yml", "config file path")
}

func main() {
	flag.Parse()
	// .env is optional; the key may come from the real environment
	_ = godotenv.Load()
	config.Init(tools.PanicOnError(tools.ReadFile(configPath)))
	logs.InitLogger(config.GConfig.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var observers []observer.Observer
	if config.GConfig.InvokeHistory.Enabled {
		db, err := mysql.Open(config.GConfig.InvokeHistory.MySQL)
		if err != nil {
			logs.Logger.Fatal().Err(err).Msg("open invoke history database")
		}
		recorder, err := history.NewRecorder(db)
		if err != nil {
			logs.Logger.Fatal().Err(err).Msg("migrate invoke history")
		}
		observers = append(observers, recorder)
	}

	httpClient := http_client.New(http_client.Options{
		Timeout:    config.GConfig.Gemini.TimeoutDuration(),
		PreferIPv4: config.GConfig.Gemini.PreferIPv4,
	})
	factory, err := ai.NewGenaiFactory(ctx, config.GConfig.Gemini, httpClient, observers...)
	if err != nil {
		logs.Logger.Fatal().Err(err).Msgf("create model session factory, is %s set?", config.APIKeyEnv)
	}
	policy := ai.RetryPolicy{
		MaxRetries:   config.GConfig.Retry.MaxRetries,
		InitialDelay: time.Duration(config.GConfig.Retry.InitialDelayMs) * time.Millisecond,
	}
	service := flow.NewService(ai.NewOrchestrator(factory, policy), policy, config.GConfig.Furnish.MaxVariants)
	h := handler.New(service, config.GConfig.Furnish.DefaultVariants)

	if err := http.Serve(ctx, httpPort, h, config.GConfig.HTTP.MaxUploadMB<<20); err != nil {
		logs.Logger.Fatal().Err(err).Msg("http server")
	}
	logs.Logger.Info().Msg("shutdown complete")
}
