package main

import (
	"bytes"
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/tokenview/internal/config"
	"github.com/rovshanmuradov/tokenview/internal/logger"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/rovshanmuradov/tokenview/internal/ui"
	"github.com/rovshanmuradov/tokenview/internal/ui/screen"
)

type nopServices struct {
	cfg *config.Config
}

func (s nopServices) GetLogger() *zap.Logger          { return zap.NewNop() }
func (s nopServices) GetConfig() *config.Config       { return s.cfg }
func (s nopServices) GetContext() context.Context     { return context.Background() }
func (s nopServices) GetLogBuffer() *logger.LogBuffer { return nil }

func (s nopServices) NewOrchestrator() *tokenview.Orchestrator {
	return tokenview.NewOrchestrator(nil, nil, ui.OrchestratorOptions(s.cfg), zap.NewNop(), nil)
}

func TestAppModelStartsOnConfiguredScreen(t *testing.T) {
	m := NewAppModel(nopServices{cfg: &config.Config{RequestTimeout: time.Second}}, ui.RouteSearch)
	assert.Equal(t, "Initializing...", m.View())

	cmd := m.Init()
	require.NotNil(t, cmd)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	for _, msg := range flatten(cmd) {
		m.Update(msg)
	}

	require.Equal(t, 2, m.router.Depth())
	assert.IsType(t, &screen.SearchScreen{}, m.router.Current())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.IsType(t, &screen.MainMenuScreen{}, m.router.Current())
}

func TestAppModelMainMenuStart(t *testing.T) {
	m := NewAppModel(nopServices{cfg: &config.Config{}}, ui.RouteMainMenu)
	m.Init()
	assert.Equal(t, 1, m.router.Depth())
	assert.Nil(t, m.newScreen(ui.Route(99)))
}

func flatten(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, flatten(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestPrintGas(t *testing.T) {
	series := tokenview.Series{
		Kind: tokenview.SeriesGasPrice,
		Points: []tokenview.Point{
			{Label: "100", Value: 2},
			{Label: "101", Value: 3.5},
		},
	}

	var out bytes.Buffer
	printGas(&out, series)
	assert.Contains(t, out.String(), "Avg Gas (Gwei)")
	assert.Contains(t, out.String(), "Block 100")
	assert.Contains(t, out.String(), "2.00 Gwei")
	assert.Contains(t, out.String(), "3.50 Gwei")
}

func TestPrintCard(t *testing.T) {
	card := tokenview.Card{
		Title:   "Pepe (PEPE)",
		Chain:   "ethereum",
		DEX:     "uniswap",
		URL:     "https://dexscreener.com/ethereum/0xpair",
		Fields:  []tokenview.Field{{Label: "Price", Value: "$1.500000"}},
		Changes: []tokenview.Field{{Label: "6h Change", Value: "NaN"}},
	}
	series := tokenview.Series{Kind: tokenview.SeriesPriceChange, Points: []tokenview.Point{
		{Label: "5m", Value: 1}, {Label: "1h", Value: 2}, {Label: "6h", Value: math.NaN()}, {Label: "24h", Value: 3},
	}}

	var out bytes.Buffer
	printCard(&out, card, series)
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Pepe (PEPE)\n"))
	assert.Contains(t, text, "ethereum · uniswap")
	assert.Contains(t, text, "$1.500000")
	assert.Contains(t, text, "6h Change")
	assert.Contains(t, text, "Trend ")
	assert.Contains(t, text, card.URL)
}

func TestReportEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, reportEmpty(&out, tokenview.ViewState{Phase: tokenview.PhaseEmpty, Reason: tokenview.ReasonEmptyResult}, "No gas data"))
	assert.Equal(t, "No gas data\n", out.String())

	err := reportEmpty(&out, tokenview.ViewState{Phase: tokenview.PhaseEmpty, Reason: tokenview.ReasonTimeout}, "No gas data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func newTestRoot(t *testing.T, run func(*cobra.Command, []string) error, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: run, SilenceUsage: true}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("log-level", "error", "")
	cmd.Flags().Duration("timeout", time.Second, "")
	cmd.Flags().String("network", "", "")
	addExportFlags(cmd)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	return cmd, &out
}

func TestRunGasCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"blockNumber":100,"avgGasPrice":"2000000000"}]}`))
	}))
	defer server.Close()
	t.Setenv("TOKENVIEW_GAS_URL", server.URL)

	dir := t.TempDir()
	cmd, out := newTestRoot(t, runGas, "--out", dir, "--format", "json")
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Block 100")
	assert.Contains(t, out.String(), "2.00 Gwei")
	assert.Contains(t, out.String(), "Exported to "+dir)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0].Name(), "gas_price_"))
	assert.True(t, strings.HasSuffix(files[0].Name(), ".json"))
}

func TestRunLookupCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/", r.URL.Path)
		assert.Equal(t, "doge", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"schemaVersion":"1.0.0","pairs":[]}`))
	}))
	defer server.Close()
	t.Setenv("TOKENVIEW_DEXSCREENER_URL", server.URL)

	cmd, out := newTestRoot(t, func(cmd *cobra.Command, _ []string) error {
		return runLookup(cmd, []string{"doge"})
	})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, screen.SearchPlaceholder+"\n", out.String())
}
