package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"inkwell-cms/config"
	"inkwell-cms/logger"
	"inkwell-cms/metrics"
	"inkwell-cms/repositories"
	"inkwell-cms/server"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "inkwell",
		Short:         "Blog authoring backend with post version history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(serveCmd(), migrateCmd(), historyCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log)
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gin.SetMode(cfg.Server.Mode)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := config.InitDB(cfg.Database)
			if err != nil {
				return err
			}

			backend, closeBackend, err := server.NewSnapshotBackend(ctx, cfg, db)
			if err != nil {
				return err
			}
			defer closeBackend()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			router, err := server.NewRouter(ctx, cfg, db, backend, reg)
			if err != nil {
				return err
			}
			return server.Run(ctx, cfg.Server.Address(), router)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if _, err := config.InitDB(cfg.Database); err != nil {
				return err
			}
			log := logger.NewLogger("migrate")
			log.Info().Str("driver", cfg.Database.Driver).Msg("schema up to date")
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	var postID uint

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the version history of a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			db, err := config.InitDB(cfg.Database)
			if err != nil {
				return err
			}
			backend, closeBackend, err := server.NewSnapshotBackend(ctx, cfg, db)
			if err != nil {
				return err
			}
			defer closeBackend()

			store, err := repositories.NewVersionStore(ctx, backend, metrics.New(prometheus.NewRegistry()))
			if err != nil {
				return err
			}
			versions, err := store.List(ctx, postID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tID\tCREATED\tBY\tWORDS\tCHANGE")
			for _, v := range versions {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%s\n",
					v.VersionNumber, v.ID, v.CreatedAt.Format("2006-01-02 15:04:05"), v.CreatedBy, v.WordCount, v.ChangeDescription)
			}
			return w.Flush()
		},
	}
	cmd.Flags().UintVar(&postID, "post", 0, "post id")
	_ = cmd.MarkFlagRequired("post")
	return cmd
}
