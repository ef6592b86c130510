package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/client"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewConsoleLogger("go-blog-client", os.Stderr)

	cfg, rest, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if leveled, err := log.WithLevel(cfg.LogLevel); err == nil {
		log = leveled
	}

	api, err := adapter.NewHTTPBlogAPI(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating api client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(api, os.Stdin, os.Stdout, log)

	// a command given on the command line runs once; otherwise commands are
	// read from stdin
	if len(rest) > 0 {
		if rest[0] == "build-info" {
			fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
			return
		}
		if err = app.Execute(ctx, strings.Join(rest, " ")); err != nil {
			log.Fatal().Err(err).Msg("command failed")
		}
		return
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
