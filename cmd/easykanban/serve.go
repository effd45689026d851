package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/easykanban/easykanban/internal/access"
	"github.com/easykanban/easykanban/internal/api"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/board"
	"github.com/easykanban/easykanban/internal/card"
	"github.com/easykanban/easykanban/internal/comment"
	"github.com/easykanban/easykanban/internal/metrics"
	"github.com/easykanban/easykanban/internal/task"
	"github.com/easykanban/easykanban/internal/user"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Easy Kanban API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate("up"); err != nil {
		return err
	}

	m := metrics.New()
	m.RegisterDBStatsCollector(db.Stats)

	codec, err := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm)
	if err != nil {
		return err
	}
	hasher := auth.NewPasswordHasher()

	userStore := user.NewStore(db)
	boardStore := board.NewStore(db)
	cardStore := card.NewStore(db)
	taskStore := task.NewStore(db)
	commentStore := comment.NewStore(db)

	users := user.NewService(userStore, hasher)
	boards := board.NewService(boardStore, userStore)
	cards := card.NewService(cardStore, boardStore)
	tasks := task.NewService(taskStore, userStore, cardStore)
	comments := comment.NewService(commentStore, userStore, taskStore)

	authService := auth.NewService(user.NewAuthAdapter(userStore), codec, hasher, cfg.Auth.TokenTTL)
	authService.SetMetrics(m)

	guard := access.NewGuard(boards, cards, tasks, comments, users)
	guard.SetMetrics(m)

	router := api.NewRouter(api.RouterDeps{
		Users:              users,
		Boards:             boards,
		Cards:              cards,
		Tasks:              tasks,
		Comments:           comments,
		Auth:               authService,
		Guard:              guard,
		Metrics:            m,
		DB:                 db,
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		EnforceSelfService: cfg.Auth.EnforceSelfService,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCh
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}

