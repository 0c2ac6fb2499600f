// Command guardrail checks the source tree for ledger writes outside the posting
// engine, deletes of financial rows, and tables without a tenant column.
//
// Exit status is 0 when clean, 1 when violations were found and 2 on usage or I/O errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SscSPs/finance_core/internal/guardrail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	exitClean      = 0
	exitViolations = 1
	exitError      = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(viper.New(), stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return exitClean
	case errors.Is(err, guardrail.ErrViolations):
		return exitViolations
	default:
		fmt.Fprintln(stderr, "guardrail:", err)
		return exitError
	}
}

func newRootCmd(v *viper.Viper, stdout io.Writer) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "guardrail",
		Short:         "Static checks that keep the posting engine the only ledger writer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile, cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .guardrail.yaml in the root, if present)")
	cmd.PersistentFlags().String("root", ".", "repository root to scan")
	cmd.PersistentFlags().Bool("verbose", false, "log skipped files to stderr")
	_ = v.BindPFlag("root", cmd.PersistentFlags().Lookup("root"))
	_ = v.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(checkCmd(v, stdout, guardrail.CheckSingleWriter, "Flag ledger-table writes outside the allow-listed packages", "single_writer.allow"))
	cmd.AddCommand(checkCmd(v, stdout, guardrail.CheckNoDelete, "Flag deletes against financial tables", "no_delete.allow"))
	cmd.AddCommand(tenantSchemaCmd(v, stdout))
	cmd.AddCommand(allCmd(v, stdout))
	return cmd
}

func initConfig(v *viper.Viper, cfgFile string, cmd *cobra.Command) error {
	defaults := guardrail.DefaultConfig()
	v.SetDefault("single_writer.allow", defaults.SingleWriter.Allow)
	v.SetDefault("single_writer.tables", defaults.SingleWriter.Tables)
	v.SetDefault("no_delete.allow", defaults.NoDelete.Allow)
	v.SetDefault("no_delete.tables", defaults.NoDelete.Tables)
	v.SetDefault("tenant_schema.migrations", defaults.TenantSchema.Migrations)
	v.SetDefault("tenant_schema.column", defaults.TenantSchema.Column)
	v.SetDefault("tenant_schema.exceptions", defaults.TenantSchema.Exceptions)
	v.SetDefault("models", defaults.Models)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(v.GetString("root"))
		v.SetConfigName(".guardrail")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("GUARDRAIL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level := slog.LevelWarn
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

func loadConfig(v *viper.Viper) (guardrail.Config, error) {
	var cfg guardrail.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runChecks(v *viper.Viper, stdout io.Writer, checks ...string) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	violations, err := guardrail.Run(cfg, checks...)
	if err != nil {
		return err
	}
	if err := guardrail.WriteReport(stdout, violations); err != nil {
		return err
	}
	if len(violations) > 0 {
		return fmt.Errorf("%d %w", len(violations), guardrail.ErrViolations)
	}
	return nil
}

func checkCmd(v *viper.Viper, stdout io.Writer, check, short, allowKey string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   check,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runChecks(v, stdout, check)
		},
	}
	cmd.Flags().StringSlice("allow", nil, "package directories exempt from this check (replaces the configured list)")
	_ = v.BindPFlag(allowKey, cmd.Flags().Lookup("allow"))
	return cmd
}

func tenantSchemaCmd(v *viper.Viper, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   guardrail.CheckTenantSchema,
		Short: "Flag migration tables without a tenant column",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runChecks(v, stdout, guardrail.CheckTenantSchema)
		},
	}
	cmd.Flags().String("migrations", "", "migrations directory relative to the root")
	_ = v.BindPFlag("tenant_schema.migrations", cmd.Flags().Lookup("migrations"))
	return cmd
}

func allCmd(v *viper.Viper, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every check",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runChecks(v, stdout, guardrail.AllChecks()...)
		},
	}
}
