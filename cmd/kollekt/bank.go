package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kbirkholm/kollekt/internal/aggregate"
	"github.com/kbirkholm/kollekt/internal/cli"
	"github.com/kbirkholm/kollekt/internal/common"
	"github.com/kbirkholm/kollekt/internal/config"
	"github.com/kbirkholm/kollekt/internal/exclude"
	"github.com/kbirkholm/kollekt/internal/ingest"
	"github.com/kbirkholm/kollekt/internal/ledger"
	"github.com/kbirkholm/kollekt/internal/match"
	"github.com/kbirkholm/kollekt/internal/report"
)

func bankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank <export.csv>",
		Short: "Reconcile a bank account export into the collection ledger",
		Long: `Parses a bank account export, drops the deposits that are not member
gifts, grows the address registry through arbitration and merges the
daily totals into the collection ledger workbook.`,
		Args: cobra.ExactArgs(1),
		RunE: runBank,
	}

	cmd.Flags().Bool("non-interactive", false, "Decline every unknown address instead of prompting")
	_ = viper.BindPFlag("non_interactive", cmd.Flags().Lookup("non-interactive"))

	return cmd
}

func runBank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	src, err := os.Open(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("export file not found, nothing to do", "path", args[0])
			return nil
		}
		return fmt.Errorf("opening export: %w", err)
	}
	defer src.Close()

	txns, err := ingest.NewReader(ingest.Bank()).Parse(ctx, src)
	if err != nil {
		return fmt.Errorf("parsing export: %w", err)
	}
	dropList := append(exclude.DefaultNonMemberAddresses(), cfg.NonMemberAddresses...)
	deposits := exclude.FilterBankDeposits(txns, dropList)
	slog.Info("export parsed", "transactions", len(txns), "member_deposits", len(deposits))

	if cfg.RegistryPath != "" {
		regStore, err := ledger.OpenWorkbook(cfg.RegistryPath, cfg.RegistrySheet)
		if errors.Is(err, common.ErrMissingFile) {
			slog.Warn("registry workbook not found, skipping arbitration", "path", cfg.RegistryPath)
		} else if err != nil {
			return fmt.Errorf("opening registry: %w", err)
		}
		if regStore != nil {
			defer regStore.Close()

			registry := ledger.LoadRegistry(regStore)
			var arb match.Arbitrator = match.DeclineAll{}
			if !cfg.NonInteractive {
				arb = cli.NewConsoleArbitrator(os.Stdin, os.Stdout)
			}
			if err := match.GrowRegistry(ctx, deposits, registry, arb, ledger.NewRegistryStore(regStore)); err != nil {
				return fmt.Errorf("growing registry: %w", err)
			}
		}
	}

	report.PrintMonthlyTotals(os.Stdout, aggregate.MonthlyTotals(deposits))
	report.PrintAddressTotals(os.Stdout, aggregate.MonthlyByAddress(deposits))

	if cfg.CollectionPath == "" {
		return common.NewUserError("collection_path is not configured", common.ErrMissingConfig)
	}
	collStore, err := ledger.OpenWorkbook(cfg.CollectionPath, cfg.CollectionSheet)
	if err != nil {
		return fmt.Errorf("opening collection ledger: %w", err)
	}
	defer collStore.Close()
	coll := ledger.NewCollection(collStore, ledger.DefaultCollectionColumns())

	for _, day := range aggregate.DailyTotals(deposits) {
		if err := coll.UpsertDay(day.Date, day.Total, day.Messages); err != nil {
			common.LogError(err, "skipping collection day", common.Fields{
				"date": day.Date.Format("02-01-2006"),
			})
		}
	}

	if err := collStore.Save(); err != nil {
		return fmt.Errorf("saving collection ledger: %w", err)
	}
	fmt.Println(cli.FormatSuccess("collection ledger updated"))
	return nil
}
