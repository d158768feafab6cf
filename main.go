package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"detergent/auth"
	"detergent/buildinfo"
	"detergent/config"
	"detergent/database"
	"detergent/finance"
	"detergent/loader"
	"detergent/money"
	"detergent/pdfexport"
	"detergent/period"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "detergent",
	Short:   "Detergent works management dashboard",
	Long:    "Serves the procurement, machinery, fleet, sales, partner and finance API for a detergent works.",
	Version: buildinfo.String(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			level = zapcore.InfoLevel
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the schema and resume the document number sequences",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		fmt.Fprintln(cmd.OutOrStdout(), "database is up to date:", config.GetConfig().Database.Path)
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var (
	newUserEmail    string
	newUserPassword string
	newUserName     string
	newUserRole     string
)

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		u, err := auth.NewService(db).SignUp(newUserEmail, newUserPassword, newUserName, newUserRole)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", u.Email, u.Role)
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Manage the demo owner account",
}

var demoResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete and recreate the demo owner account",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		u, err := auth.NewService(db).ResetDemoUser()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "demo account reset: %s\n", u.Email)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <kind> <file.csv>",
	Short: "Bulk-import master data (" + strings.Join(loader.Kinds(), ", ") + ")",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := loader.ImportMasters(db, args[0], f)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "imported %d %s\n", res.Imported, args[0])
		for _, s := range res.Skipped {
			fmt.Fprintln(out, "skipped:", s)
		}
		return nil
	},
}

var reportPeriod string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the financial summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := period.Parse(reportPeriod)
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		cfg := config.GetConfig()
		r, err := finance.Report(cmd.Context(), db, p, time.Now(), cfg.Business.MonthlyWindow)
		if err != nil {
			return err
		}
		f := money.NewFormatter(cfg.Business.Locale, cfg.Business.CurrencySymbol)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s, period %s\n\n", cfg.Business.Name, r.Period)
		fmt.Fprintf(out, "  Revenue              %16s  (B2B %s, B2C %s)\n", f.Format(r.TotalRevenue), f.FormatPercent(r.B2BShare), f.FormatPercent(r.B2CShare))
		fmt.Fprintf(out, "  Expenses             %16s\n", f.Format(r.TotalExpenses))
		for _, e := range r.ExpenseBreakdown {
			fmt.Fprintf(out, "    %-18s %16s  %s\n", e.Category, f.Format(e.Amount), f.FormatPercent(e.Percentage))
		}
		fmt.Fprintf(out, "  Profit               %16s\n", f.Format(r.Profit))
		if r.ProfitMargin != nil {
			fmt.Fprintf(out, "  Profit margin        %16s\n", f.FormatPercent(*r.ProfitMargin))
		}
		fmt.Fprintf(out, "  Pending receivables  %16s\n\n", f.Format(r.PendingReceivables))
		for _, m := range r.Monthly {
			fmt.Fprintf(out, "  %-8s  revenue %14s  expenses %14s  profit %14s\n",
				m.Month, f.Format(m.Revenue), f.Format(m.Expenses), f.Format(m.Profit))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	usersCreateCmd.Flags().StringVar(&newUserEmail, "email", "", "login email")
	usersCreateCmd.Flags().StringVar(&newUserPassword, "password", "", "password (at least 6 characters)")
	usersCreateCmd.Flags().StringVar(&newUserName, "name", "", "display name")
	usersCreateCmd.Flags().StringVar(&newUserRole, "role", "staff", "owner or staff")
	_ = usersCreateCmd.MarkFlagRequired("email")
	_ = usersCreateCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(usersCreateCmd)

	demoCmd.AddCommand(demoResetCmd)

	reportCmd.Flags().StringVar(&reportPeriod, "period", "all", "all, year, quarter or month")

	rootCmd.AddCommand(serveCmd, migrateCmd, usersCmd, demoCmd, importCmd, reportCmd)
}

// openDB opens the configured database and brings the schema up to date.
func openDB() (*sqlx.DB, error) {
	cfg := config.GetConfig()
	db, err := database.Open(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := loader.InitDatabase(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("database initialization failed: %w", err)
	}
	return db, nil
}

// sweepSessions deletes expired sessions every interval until ctx is done.
func sweepSessions(ctx context.Context, db *sqlx.DB, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := database.DeleteExpiredSessions(db, now)
			if err != nil {
				zap.L().Warn("session sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				zap.L().Debug("expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.GetConfig()
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	zap.L().Info("database ready", zap.String("driver", cfg.Database.Driver), zap.String("path", cfg.Database.Path))

	svc := auth.NewService(db)
	if u, err := svc.EnsureDemoUser(); err == nil {
		zap.L().Info("demo account ready", zap.String("email", u.Email))
	} else if !errors.Is(err, auth.ErrDemoDisabled) {
		return fmt.Errorf("preparing demo account: %w", err)
	}

	watcher, err := config.Watch(ctx, configPath, func(c config.Config) {
		zap.L().Info("config reloaded", zap.String("business", c.Business.Name))
	})
	if err != nil {
		zap.L().Warn("config hot reload disabled", zap.Error(err))
	} else {
		defer watcher.Stop()
	}

	go sweepSessions(ctx, db, time.Hour)

	mux := http.NewServeMux()
	SetupRoutes(mux, db, svc)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.String("addr", cfg.Server.Addr), zap.String("version", buildinfo.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if cfg.Server.OpenBrowser {
		pdfexport.OpenBrowser(localURL(cfg.Server.Addr))
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server start error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// localURL turns a listen address such as ":8080" into a browsable URL.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
		}
		os.Exit(1)
	}
}
