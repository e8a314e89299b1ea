// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the car
// maintenance web console. Commands are organized using the cobra
// library. The root command starts the web server itself, while the
// cars and records sub-commands list or add the cars and maintenance
// records from a terminal, and the passwd sub-command hashes the
// passwords of the console users.
//
//	./cmweb [-c /path/of/main/config.yaml]           # start web server
//	./cmweb cars list [--search text] [--sort id|make|model|year]
//	./cmweb cars add --make Toyota --model Corolla --year 2020
//	./cmweb records list [--search text] [--car id] [--sort date-desc]
//	./cmweb records add --car 7 --description "Oil change" [--date ...]
//	./cmweb passwd alice [-w]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/carmaint/pkg/adapter/config"
	"github.com/momeni/carmaint/pkg/adapter/config/cfg1"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/routes"
	"github.com/momeni/carmaint/pkg/core/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds the graceful shutdown of the web server.
const shutdownTimeout = 10 * time.Second

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "cmweb",
	Short: "A car inventory and maintenance log web console",
	Long: `A car inventory and maintenance log web console which lets its
users add cars, log their maintenance records, and browse both of them
with searching, filtering, and sorting.
The cars and maintenance records are owned by an external REST backend
and are mirrored in memory, so browsing does not need the backend.
The mirror is reloaded periodically and after logging each record.
The backend address and credentials, the listening address of the web
server, and the console users are read from a YAML config file.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

// loadConfig loads the config file and makes its logging settings
// effective for the default slog logger.
func loadConfig() (*cfg1.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	slog.SetDefault(slog.New(c.Logging.NewHandler(os.Stderr)))
	return c, nil
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := c.Backend.NewClient()
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}
	var e *gin.Engine = c.Gin.NewEngine(c.Console)
	inventory, err := routes.Register(ctx, e, client, c)
	if err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{
		Addr:              c.Console.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		inventory.Refresh(ctx, c.Usecases.Inventory.Interval())
		return nil
	})
	g.Go(func() error {
		log.Info(ctx, "serving the web console",
			slog.String("address", srv.Addr),
			slog.String("backend", c.Backend.URL),
		)
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info(ctx, "shutting down the web console")
		sctx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx), shutdownTimeout,
		)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// zero for success and one for failures.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
