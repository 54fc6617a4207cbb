package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yashagw/sjdb/internal/config"
	"github.com/yashagw/sjdb/internal/explain"
	"github.com/yashagw/sjdb/internal/logging"
	"github.com/yashagw/sjdb/internal/metadata"
	"github.com/yashagw/sjdb/internal/plan"
	"github.com/yashagw/sjdb/internal/server"
)

type flags struct {
	configPath string
	catalogue  string
	driver     string
	logLevel   string
	strict     bool
	addr       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "sjdb",
		Short:        "Estimate and optimise relational query plans",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "configuration file")
	root.PersistentFlags().StringVarP(&f.catalogue, "catalogue", "c", "", "catalogue file (YAML or SQLite)")
	root.PersistentFlags().StringVar(&f.driver, "driver", "", "catalogue driver: yaml or sqlite")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&f.strict, "strict", false, "fail on zero cardinality estimates instead of clamping")

	root.AddCommand(newExplainCmd(f), newServeCmd(f))
	return root
}

func newExplainCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [query]",
		Short: "Print the canonical and optimised plans of a query",
		Long:  "Print the canonical and optimised plans of a query. Without arguments the query is read from standard input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer env.close()

			query := strings.Join(args, " ")
			if query == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				query = strings.TrimSpace(string(data))
			}

			res, err := env.explainer.Explain(query)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), res.String())
			return nil
		},
	}
}

func newServeCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer queries over TCP with their plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer env.close()

			addr := env.cfg.Server.Addr
			if f.addr != "" {
				addr = f.addr
			}
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(env.explainer, env.logger).Serve(ctx, listener)
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address")
	return cmd
}

type environment struct {
	cfg       *config.Config
	logger    *slog.Logger
	explainer *explain.Explainer
	close     func()
}

// setup loads the configuration, applies flag overrides, and opens the
// catalogue.
func setup(cmd *cobra.Command, f *flags) (*environment, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.catalogue != "" {
		cfg.Catalogue.Path = f.catalogue
	}
	if f.driver != "" {
		cfg.Catalogue.Driver = f.driver
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.strict {
		cfg.Estimator.Strict = true
	}

	logger, closeLog, err := logging.SetupLogger(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.Log.Level,
		SeqURL: cfg.Log.SeqURL,
	})
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cat, err := metadata.Open(ctx, cfg.Catalogue.Driver, cfg.Catalogue.Path)
	if err != nil {
		closeLog()
		return nil, err
	}
	logger.Debug("catalogue loaded", "path", cfg.Catalogue.Path, "relations", cat.Len())

	estimator := plan.NewEstimator(
		plan.WithStrictCardinality(cfg.Estimator.Strict),
		plan.WithLogger(logger),
	)
	return &environment{
		cfg:       cfg,
		logger:    logger,
		explainer: explain.New(cat, estimator, logger),
		close:     closeLog,
	}, nil
}
