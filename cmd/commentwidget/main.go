package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/MosinFAM/comment-widget/internal/config"
	"github.com/MosinFAM/comment-widget/internal/logging"
	"github.com/MosinFAM/comment-widget/internal/metrics"
	"github.com/MosinFAM/comment-widget/internal/storage"
	"github.com/MosinFAM/comment-widget/internal/tui"
	"github.com/MosinFAM/comment-widget/internal/widget"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath string
	page       int

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "commentwidget",
	Short: "Paginated comment board backed by the Comment Store API",
	Long: `commentwidget shows the comments of a Comment Store API five per page,
lets you post and delete comments and refreshes the page every few seconds.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath, cmd.Flags())
		if err != nil {
			return err
		}

		// Терминал занят интерактивным интерфейсом
		if cmd == cmd.Root() {
			logger, err = logging.ForTerminal(cfg.Log.Level, cfg.Log.File)
		} else {
			logger, err = logging.New(cfg.Log.Level, cfg.Log.File)
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of comments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd.Context(), func(ctx context.Context, ctrl *widget.Controller) error {
			st, err := ctrl.GoTo(ctx, page)
			if err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), st)
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add NAME CONTENT",
	Short: "Post a comment and print the first page",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd.Context(), func(ctx context.Context, ctrl *widget.Controller) error {
			if err := ctrl.Submit(ctx, args[0], args[1]); err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), ctrl.State())
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a comment by id and print the page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid comment id %q: %w", args[0], err)
		}
		return withController(cmd.Context(), func(ctx context.Context, ctrl *widget.Controller) error {
			if _, err := ctrl.GoTo(ctx, page); err != nil {
				return err
			}
			if err := ctrl.Delete(ctx, id); err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), ctrl.State())
			return nil
		})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a page and reprint it whenever it changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd.Context(), func(ctx context.Context, ctrl *widget.Controller) error {
			out := cmd.OutOrStdout()
			st, err := ctrl.GoTo(ctx, page)
			if err != nil {
				return err
			}
			printState(out, st)

			last := formatState(st)
			return ctrl.Poll(ctx, cfg.Widget.PollInterval, func(st widget.State) {
				if s := formatState(st); s != last {
					last = s
					printState(out, st)
				}
			})
		})
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ./config.yaml)")
	flags.String("store", "", "comment store: http or memory")
	flags.String("base-url", "", "Comment Store API base URL")
	flags.Duration("timeout", 0, "Store API request timeout")
	flags.Duration("poll-interval", 0, "page refresh interval")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write logs to this file")
	flags.String("metrics-listen", "", "serve Prometheus metrics on this address")

	for _, c := range []*cobra.Command{listCmd, deleteCmd, watchCmd} {
		c.Flags().IntVar(&page, "page", 1, "page number, 1-indexed")
	}

	rootCmd.AddCommand(listCmd, addCmd, deleteCmd, watchCmd)
}

func newStorage(cfg *config.Config, logger *zap.Logger) storage.Storage {
	if cfg.Store.Type == config.StoreMemory {
		return storage.NewMemoryStorage(logger)
	}
	client := &http.Client{Timeout: cfg.Store.Timeout}
	return storage.NewHTTPStorage(cfg.Store.BaseURL, client, logger)
}

// withController запускает fn с контроллером до её завершения или сигнала.
// Если задан адрес метрик, рядом работает их сервер
func withController(parent context.Context, fn func(ctx context.Context, ctrl *widget.Controller) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	ctrl := widget.NewController(newStorage(cfg, logger), logger, m)

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Metrics.Listen != "" {
		g.Go(func() error {
			return serveMetrics(ctx, cfg.Metrics.Listen, m)
		})
	}
	g.Go(func() error {
		defer stop()
		return fn(ctx, ctrl)
	})
	return g.Wait()
}

func runInteractive(parent context.Context) error {
	return withController(parent, func(ctx context.Context, ctrl *widget.Controller) error {
		p := tea.NewProgram(
			tui.New(ctx, ctrl, cfg.Widget.PollInterval),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
		)
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run interface: %w", err)
		}
		return nil
	})
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
