package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"archcompare/internal/artifact"
	"archcompare/internal/config"
	"archcompare/internal/loader"
	"archcompare/internal/orchestrator"
	"archcompare/internal/report"
	aws "archcompare/internal/providers/aws"
	"archcompare/internal/viewer"
	"archcompare/pkg/logging"
)

const (
	exitOK          = 0
	exitError       = 1
	exitDifferences = 2
)

// exitCodeError carries a non-zero exit status that is not a failure.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *logging.DefaultLogger
	stdout     io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout}
	a.logger = logging.NewDefaultLogger()
	a.logger.SetOutput(stderr)
	defer func() { _ = a.logger.Sync() }()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	var exitErr exitCodeError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &exitErr):
		return exitErr.code
	default:
		a.logger.Error("%v", err)
		return exitError
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "archcompare",
		Short:         "Compare baseline and enhanced architecture descriptions and browse the result",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = a.logLevel
			}
			a.logger.SetLevel(logging.StringToLogLevel(cfg.Log.Level))
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file (default "+config.DefaultConfigFile+" if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	root.AddCommand(a.generateCmd(), a.serveCmd(), a.snapshotCmd(), a.configCmd())
	return root
}

func (a *app) generateCmd() *cobra.Command {
	var (
		baseline, enhanced, baselineReasoning, enhancedReasoning string
		output, csvPath, format                                  string
		failOnDiff                                               bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compare the architecture documents and write the comparison artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			override := func(name string, dst *string, v string) {
				if flags.Changed(name) {
					*dst = v
				}
			}
			override("baseline", &cfg.Inputs.Baseline, baseline)
			override("enhanced", &cfg.Inputs.Enhanced, enhanced)
			override("baseline-reasoning", &cfg.Inputs.BaselineReasoning, baselineReasoning)
			override("enhanced-reasoning", &cfg.Inputs.EnhancedReasoning, enhancedReasoning)
			override("output", &cfg.Output.Artifact, output)
			override("csv", &cfg.Output.CSV, csvPath)
			override("format", &cfg.Output.Format, format)

			if err := cfg.Validate(); err != nil {
				return err
			}

			service := orchestrator.NewService(
				orchestrator.Config{
					Inputs:       cfg.Inputs,
					OutputPath:   cfg.Output.Artifact,
					CSVPath:      cfg.Output.CSV,
					OutputFormat: cfg.Output.Format,
				},
				loader.NewLoaderWithLogger(a.logger),
				artifact.NewFileStore(a.logger),
				report.DefaultPrinter{Out: a.stdout},
				a.logger,
			)

			hasDifferences, err := service.Run(cmd.Context())
			if err != nil {
				return err
			}
			if hasDifferences && failOnDiff {
				return exitCodeError{code: exitDifferences}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseline, "baseline", "", "Baseline architecture document")
	cmd.Flags().StringVar(&enhanced, "enhanced", "", "Enhanced architecture document")
	cmd.Flags().StringVar(&baselineReasoning, "baseline-reasoning", "", "Baseline reasoning document")
	cmd.Flags().StringVar(&enhancedReasoning, "enhanced-reasoning", "", "Enhanced reasoning document")
	cmd.Flags().StringVar(&output, "output", "", "Where to write the comparison artifact")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also export the architecture table as CSV")
	cmd.Flags().StringVar(&format, "format", "", "Report format: table or json")
	cmd.Flags().BoolVar(&failOnDiff, "fail-on-diff", false, "Exit with status 2 when differences are found")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var (
		address, artifactPath string
		port                  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("address") {
				cfg.Server.Address = address
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("artifact") {
				cfg.Output.Artifact = artifactPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := viewer.NewHandler(artifact.NewFileStore(a.logger), cfg.Output.Artifact, a.logger)
			server, err := viewer.NewServer(viewer.Config{
				Address:     cfg.Server.Address,
				Port:        cfg.Server.Port,
				ServiceName: cfg.Server.ServiceName,
			}, handler, a.logger)
			if err != nil {
				return err
			}

			a.logger.Info("Serving %s", cfg.Output.Artifact)
			return server.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (localhost, or 0.0.0.0 to share on the network)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (default 8501)")
	cmd.Flags().StringVar(&artifactPath, "artifact", "", "Comparison artifact to serve")
	return cmd
}

func (a *app) snapshotCmd() *cobra.Command {
	var (
		instanceIDs, output, region string
		concurrency, batchSize      int
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Describe running EC2 instances as a document the comparator can diff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("region") {
				cfg.AWS.Region = region
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.AWS.Concurrency = concurrency
			}
			if cmd.Flags().Changed("batch-size") {
				cfg.AWS.BatchSize = batchSize
			}

			ids := splitIDs(instanceIDs)
			if len(ids) == 0 {
				return errors.New("--instance-ids is required")
			}

			svc, err := aws.NewInstanceServiceWithDefaultConfig(cmd.Context(), cfg.AWS.Region)
			if err != nil {
				return err
			}
			svc.WithLimits(cfg.AWS.BatchSize, cfg.AWS.Concurrency)

			a.logger.Info("Describing %d EC2 instances", len(ids))
			snapshot, err := aws.CaptureSnapshot(cmd.Context(), svc, ids)
			if err != nil {
				return err
			}
			return writeTo(output, a.stdout, func(w io.Writer) error {
				return aws.WriteSnapshot(w, snapshot)
			})
		},
	}

	cmd.Flags().StringVar(&instanceIDs, "instance-ids", "", "Comma-separated list of AWS EC2 instance IDs")
	cmd.Flags().StringVar(&output, "output", "-", "Where to write the snapshot (- for stdout)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from the AWS SDK configuration)")
	cmd.Flags().IntVar(&concurrency, "concurrency", aws.DefaultConcurrency, "Maximum number of concurrent DescribeInstances calls")
	cmd.Flags().IntVar(&batchSize, "batch-size", aws.DefaultBatchSize, "Instance IDs per DescribeInstances call")
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration, or write it with --output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" {
				return a.cfg.Save(output)
			}
			enc := yaml.NewEncoder(a.stdout)
			defer enc.Close()
			return enc.Encode(a.cfg)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Write the configuration to this file instead of stdout")
	return cmd
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func writeTo(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

