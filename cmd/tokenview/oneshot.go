package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/tokenview/internal/export"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/rovshanmuradov/tokenview/internal/ui"
	"github.com/rovshanmuradov/tokenview/internal/ui/component"
	"github.com/rovshanmuradov/tokenview/internal/ui/screen"
)

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := cliLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	network, err := tokenview.ParseNetwork(cfg.DefaultNetwork)
	if err != nil {
		return err
	}
	q := tokenview.NewQuery(args[0], network)
	if q.Text == "" {
		return fmt.Errorf("query is empty")
	}

	ctx, cancel := signalContext(cmd, cfg.RequestTimeout)
	defer cancel()

	pairs, gas := sources(cfg, log)
	o := tokenview.NewOrchestrator(pairs, gas, ui.OrchestratorOptions(cfg), log, nil)

	log.Info("looking up token",
		zap.String("query", q.Text),
		zap.Stringer("network", q.Network),
		zap.Stringer("strategy", tokenview.Classify(q.Text)))

	state := o.Submit(ctx, tokenview.SearchTrigger(q))
	if !state.HasData() {
		return reportEmpty(cmd.OutOrStdout(), state, screen.SearchPlaceholder)
	}

	printCard(cmd.OutOrStdout(), tokenview.NewCard(*state.Pair), state.Series)
	return exportSeries(cmd, log, state.Series, state.Pair.BaseToken.Symbol)
}

func runGas(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := cliLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, cancel := signalContext(cmd, cfg.RequestTimeout)
	defer cancel()

	pairs, gas := sources(cfg, log)
	o := tokenview.NewOrchestrator(pairs, gas, ui.OrchestratorOptions(cfg), log, nil)

	state := o.Submit(ctx, tokenview.PollTrigger())
	if !state.HasData() {
		return reportEmpty(cmd.OutOrStdout(), state, screen.GasPlaceholder)
	}

	printGas(cmd.OutOrStdout(), state.Series)
	return exportSeries(cmd, log, state.Series, "")
}

// exportSeries writes series to --out when it is set
func exportSeries(cmd *cobra.Command, log *zap.Logger, series tokenview.Series, subject string) error {
	dir, _ := cmd.Flags().GetString("out")
	if dir == "" {
		return nil
	}
	name, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	path, err := export.NewSeriesExporter(log).ExportSeries(series, export.ExportOptions{
		Format:    format,
		OutputDir: dir,
		Subject:   subject,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// reportEmpty prints the placeholder and turns failures into an exit error.
func reportEmpty(w io.Writer, state tokenview.ViewState, placeholder string) error {
	fmt.Fprintln(w, placeholder)
	if state.Reason == tokenview.ReasonEmptyResult {
		return nil
	}
	return fmt.Errorf("%s", tokenview.Describe(state))
}

func printCard(w io.Writer, card tokenview.Card, changes tokenview.Series) {
	fmt.Fprintln(w, card.Title)
	fmt.Fprintf(w, "%s · %s\n\n", card.Chain, card.DEX)

	for _, fields := range [][]tokenview.Field{card.Fields, card.Changes} {
		for _, f := range fields {
			fmt.Fprintf(w, "%-26s%s\n", f.Label, f.Value)
		}
		fmt.Fprintln(w)
	}

	spark := component.NewSparkline(changes.Len()).SetData(changes.Values()).ShowText(true)
	fmt.Fprintf(w, "Trend %s\n", spark.View())
	if card.URL != "" {
		fmt.Fprintln(w, card.URL)
	}
}

func printGas(w io.Writer, series tokenview.Series) {
	values := series.Values()
	if len(values) >= 2 {
		fmt.Fprintln(w, asciigraph.Plot(values,
			asciigraph.Height(10),
			asciigraph.Precision(2),
			asciigraph.Caption("Avg Gas (Gwei)")))
		fmt.Fprintln(w)
	}

	for _, p := range series.Points {
		tip := tokenview.Tooltip(series.Kind, p)
		fmt.Fprintf(w, "%-16s%s\n", tip.Title, strings.TrimPrefix(tip.Body, "Avg Gas: "))
	}
}
