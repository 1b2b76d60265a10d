package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eleven-am/squall/internal/api"
	"github.com/eleven-am/squall/internal/auth"
	"github.com/eleven-am/squall/internal/logger"
	"github.com/eleven-am/squall/internal/policy"
	"github.com/eleven-am/squall/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Long:  "Start the HTTP API server against the configured database.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if squallConfig.Database.URL == "" {
		return fmt.Errorf("no database URL configured (set database.url or DATABASE_URL)")
	}
	if squallConfig.Auth.Secret == "" {
		return fmt.Errorf("no token secret configured (set auth.secret or JWT_SECRET)")
	}

	log := logger.CLI()

	connectCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	dbCfg := store.NewDBConfig(squallConfig.Database.URL)
	dbCfg.MaxOpenConns = squallConfig.Database.MaxConnections
	db, err := dbCfg.Connect(connectCtx)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("database connected")

	st := store.New(db)
	session := policy.NewSession(st)

	authService := auth.NewService(
		st.Users,
		[]byte(squallConfig.Auth.Secret),
		time.Duration(squallConfig.Auth.TokenTTLSecs)*time.Second,
	)

	server := api.NewServer(
		authService,
		policy.NewTodoService(session),
		policy.NewTaskService(session),
		policy.NewSharedTodoService(session),
	)

	httpServer := &http.Server{
		Addr:              squallConfig.Server.Addr,
		Handler:           server.Router(api.SplitOrigins(squallConfig.Server.CORSOrigins)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", squallConfig.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return httpServer.Shutdown(shutdownCtx)
}
