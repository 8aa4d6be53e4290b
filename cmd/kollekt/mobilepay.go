package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kbirkholm/kollekt/internal/aggregate"
	"github.com/kbirkholm/kollekt/internal/cli"
	"github.com/kbirkholm/kollekt/internal/common"
	"github.com/kbirkholm/kollekt/internal/config"
	"github.com/kbirkholm/kollekt/internal/exclude"
	"github.com/kbirkholm/kollekt/internal/ingest"
	"github.com/kbirkholm/kollekt/internal/ledger"
	"github.com/kbirkholm/kollekt/internal/model"
	"github.com/kbirkholm/kollekt/internal/report"
)

func mobilepayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mobilepay <export.csv>",
		Short: "Reconcile a MobilePay export into the gift ledger",
		Long: `Parses a MobilePay transaction export, tags excluded collections,
writes the per-day report files and merges the monthly gift totals into
the ledger workbook.`,
		Args: cobra.ExactArgs(1),
		RunE: runMobilePay,
	}

	cmd.Flags().Bool("dry-run", false, "Parse and summarize without writing reports or the ledger")
	_ = viper.BindPFlag("mobilepay.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runMobilePay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun := viper.GetBool("mobilepay.dry_run")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	keywords, err := exclude.LoadKeywords(cfg.ExclusionsPath)
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

	txns, err := ingest.NewReader(ingest.MobilePay()).Parse(ctx, src)
	if err != nil {
		return fmt.Errorf("parsing export: %w", err)
	}
	exclude.Tag(txns, keywords)
	slog.Info("export parsed", "transactions", len(txns), "exclusion_keywords", len(keywords))

	report.PrintDaily(os.Stdout, aggregate.Daily(txns))

	if dryRun {
		fmt.Println(cli.FormatSuccess("dry run, ledger and reports untouched"))
		return nil
	}

	for _, file := range aggregate.DayFiles(txns) {
		if cfg.WriteXLSX {
			path, err := report.WriteXLSX(cfg.ReportDir, file)
			if err != nil {
				return fmt.Errorf("writing day report: %w", err)
			}
			slog.Info("day report written", "path", path)
		}
		if cfg.WritePDF {
			path, err := report.WritePDF(cfg.ReportDir, file)
			if err != nil {
				return fmt.Errorf("writing day report: %w", err)
			}
			slog.Info("day report written", "path", path)
		}
	}

	if cfg.LedgerPath == "" {
		return common.NewUserError("ledger_path is not configured", common.ErrMissingConfig)
	}
	store, err := ledger.OpenWorkbook(cfg.LedgerPath, cfg.LedgerSheet)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer store.Close()
	engine := ledger.NewEngine(store, ledger.DefaultColumns())

	totals := aggregate.MonthlyByIdentity(txns)
	bar := progressbar.Default(int64(len(totals)), "merging monthly totals")
	for _, total := range totals {
		label, err := model.MonthLabel(total.Month)
		if err != nil {
			return err
		}
		if err := engine.UpsertMonthlyTotal(total.Name, total.PhoneSuffix, label, total.Total); err != nil {
			if common.IsFatal(err) {
				return err
			}
			common.LogError(err, "skipping monthly total", common.Fields{
				"name":  total.Name,
				"month": label,
			})
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	effective := cfg.ExcludedGrouping == config.GroupingEffective
	for _, day := range aggregate.ExcludedByDay(txns, effective) {
		date := day.Date.Format("2006-01-02")
		if err := engine.UpsertExcludedEntry(date, day.Total, day.Message); err != nil {
			if common.IsFatal(err) {
				return err
			}
			common.LogError(err, "skipping excluded entry", common.Fields{"date": date})
		}
	}

	if err := store.Save(); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	fmt.Println(cli.FormatSuccess("ledger updated"))
	return nil
}
