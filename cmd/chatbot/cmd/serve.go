package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/chatbot/internal/dispatch"
	"github.com/msto63/chatbot/internal/quotestore"
	"github.com/msto63/chatbot/internal/server"
	"github.com/msto63/chatbot/pkg/core/config"
	"github.com/msto63/chatbot/pkg/core/version"
)

var serveMemoryStore bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot with its websocket console",
	Long: `Loads the configured modules and serves the operator console.

The console accepts websocket connections at /ws; every "message" frame is
dispatched to commands and triggers exactly like a chat message.
/healthz reports the registry and quotation store.

Examples:
  chatbot serve
  chatbot serve --config ./configs/chatbot.toml
  chatbot serve --memory       # keep quotations in memory only`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveMemoryStore, "memory", false, "keep quotations in memory instead of SQLite")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("loading config", err)
		return err
	}
	logger := newLogger(cfg)

	var store quotestore.Store
	if serveMemoryStore {
		store = quotestore.NewMemoryStore()
	} else {
		sqliteStore, err := quotestore.NewSQLiteStore(quotestore.SQLiteConfig{Path: cfg.Quote.Database})
		if err != nil {
			printError("opening quotation store", err)
			return err
		}
		store = sqliteStore
	}
	defer store.Close()

	state, loadErrs, err := buildRegistry(cfg, store, logger)
	if err != nil {
		printError("loading modules", err)
		return err
	}
	for _, e := range loadErrs {
		logger.LogError(e)
	}

	dispatcher := dispatch.New(state, dispatch.Config{
		Nick:          cfg.Bot.Nick,
		CommandPrefix: cfg.Bot.CommandPrefix,
		Owners:        cfg.Owners(),
	}, logger)

	srv, err := server.New(serverConfig(cfg), server.Deps{
		State:      state,
		Dispatcher: dispatcher,
		Quotes:     store,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Printf("%s %s as %s\n", titleStyle.Render(cfg.General.Name), version.Version, cfg.Bot.Nick)
	fmt.Printf("  %d modules, %d commands, %d triggers\n", len(state.Modules()), len(state.Commands()), len(state.Triggers()))
	fmt.Printf("  console: ws://%s/ws\n", srv.Address())
	fmt.Println(mutedStyle.Render("  press Ctrl+C to stop"))

	select {
	case <-sigCh:
		fmt.Println()
	case err := <-errCh:
		if err != nil {
			printError("console server", err)
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

func serverConfig(cfg *config.Config) server.Config {
	srvCfg := server.DefaultConfig()
	srvCfg.Name = cfg.General.Name
	srvCfg.Version = version.Version
	srvCfg.Address = cfg.ConsoleAddress()
	srvCfg.ConsoleTimeout = cfg.Console.ReadTimeout.Duration
	srvCfg.WriteTimeout = cfg.Console.WriteTimeout.Duration
	return srvCfg
}
