package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/VitaminP8/newsfeed/graph"
	"github.com/VitaminP8/newsfeed/internal/auth"
	"github.com/VitaminP8/newsfeed/internal/config"
	"github.com/VitaminP8/newsfeed/internal/metrics"
	"github.com/VitaminP8/newsfeed/internal/newsfeed"
	"github.com/VitaminP8/newsfeed/internal/seed"
	"github.com/VitaminP8/newsfeed/internal/server"
	"github.com/VitaminP8/newsfeed/internal/telemetry"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "newsfeed",
		Short:        "Newsfeed GraphQL backend",
		SilenceUsage: true,
		RunE:         runServe,
	}

	flags := root.PersistentFlags()
	flags.String("storage", config.StorageMemory, "Тип хранилища: memory или postgres")
	flags.String("log-level", "info", "Уровень логирования: debug, info, warn, error")
	flags.String("log-format", "json", "Формат логов: json или console")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the GraphQL HTTP server",
		RunE:  runServe,
	}
	serve.Flags().String("addr", ":8080", "Адрес HTTP сервера")
	root.Flags().AddFlagSet(serve.Flags())

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  runMigrate,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with mock users, posts, comments and likes",
		RunE:  runSeed,
	}
	defaults := seed.DefaultOptions()
	seedCmd.Flags().Int("users", defaults.Users, "Number of users to create")
	seedCmd.Flags().Int("posts", defaults.Posts, "Number of posts to create")
	seedCmd.Flags().Int("max-comments", defaults.MaxComments, "Maximum comments per post")
	seedCmd.Flags().Int("max-likes", defaults.MaxLikes, "Maximum likes per post")
	seedCmd.Flags().Bool("clear", false, "Clear existing data before seeding")
	seedCmd.Flags().Int64("seed", 0, "Random seed, 0 means time based")

	root.AddCommand(serve, migrate, seedCmd)
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, a.cfg.OTLPEndpoint, a.cfg.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(c); err != nil {
			a.log.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	if err := a.migrate(); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tokens := auth.NewTokenService(a.cfg.JWTSecret, a.cfg.TokenTTL)
	svc := newsfeed.NewService(a.stores, tokens)
	schema := graph.NewSchema(graph.NewResolver(svc, a.log, m))

	handler := server.NewHandler(server.Deps{
		Schema:   schema,
		Tokens:   tokens,
		Users:    a.stores.Users,
		Metrics:  m,
		Gatherer: reg,
		Log:      a.log,
	})

	return server.New(a.cfg.Addr, handler, a.log).Run(ctx)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if a.db == nil {
		a.log.Warn("in-memory storage has no schema to migrate")
		return nil
	}
	return a.migrate()
}

func runSeed(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if a.db == nil {
		a.log.Warn("seeding in-memory storage, data is lost when the command exits")
	}
	if err := a.migrate(); err != nil {
		return err
	}

	flags := cmd.Flags()
	opts := seed.DefaultOptions()
	opts.Users, _ = flags.GetInt("users")
	opts.Posts, _ = flags.GetInt("posts")
	opts.MaxComments, _ = flags.GetInt("max-comments")
	opts.MaxLikes, _ = flags.GetInt("max-likes")
	opts.Clear, _ = flags.GetBool("clear")

	seedValue, _ := flags.GetInt64("seed")
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	a.log.Info("seeding", zap.Int64("seed", seedValue))

	_, err = seed.Run(cmd.Context(), a.stores, opts, gofakeit.New(seedValue), a.log)
	return err
}

