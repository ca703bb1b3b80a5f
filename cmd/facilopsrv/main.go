package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/logtrace"
	"github.com/crestview/facilops/internal/portalsrv/config"
	"github.com/crestview/facilops/internal/portalsrv/db"
	"github.com/crestview/facilops/internal/portalsrv/provider"
	"github.com/crestview/facilops/internal/portalsrv/server"
)

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile *string
}

func main() {
	slog := log.With().Str("state", "init").Logger()
	opt := parseFlags()

	slog.Info().Str("config_file", *opt.configFile).Msg("loading config file")
	if err := config.LoadConfig(*opt.configFile); err != nil {
		slog.Error().Str("config_file", *opt.configFile).Err(err).Msg("unable to load config file")
		os.Exit(1)
	}
	if config.Config().ServerPort == "" {
		slog.Error().Msg("server port not defined")
		os.Exit(1)
	}

	store, err := db.Open(config.Config().DB.Dsn())
	if err != nil {
		slog.Error().Err(err).Msg("unable to connect to database")
		os.Exit(1)
	}
	defer store.Close()

	pcfg := config.Config().Provider
	providerClient := provider.New(provider.Config{
		BaseURL:          pcfg.BaseURL,
		TokenURL:         pcfg.TokenURL,
		ClientID:         pcfg.ClientID,
		ClientSecret:     pcfg.ClientSecret,
		ReservationScope: pcfg.ReservationScope,
		ScheduleScope:    pcfg.ScheduleScope,
		PageSize:         pcfg.PageSize,
		Timeout:          time.Duration(pcfg.RequestTimeoutSec) * time.Second,
	})

	s, serr := server.CreateNewServer(store, providerClient)
	if serr != nil {
		slog.Error().Err(serr).Msg("unable to create server")
		os.Exit(1)
	}
	s.MountHandlers()

	slog.Info().Str("port", config.Config().ServerPort).Msg("starting portal server")
	if err := http.ListenAndServe(":"+config.Config().ServerPort, s.Router); err != nil {
		slog.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", "", "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
