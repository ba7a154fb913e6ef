package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ParseFormat accepts csv or json, case-insensitive
func ParseFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format    ExportFormat
	OutputDir string
	Subject   string // token symbol or "gas", used in the filename
}

// SeriesExporter writes a fetched series to disk
type SeriesExporter struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewSeriesExporter creates a new series exporter
func NewSeriesExporter(logger *zap.Logger) *SeriesExporter {
	return &SeriesExporter{
		logger: logger.Named("export"),
		now:    time.Now,
	}
}

// ExportSeries writes series in the requested format and returns the file path.
func (se *SeriesExporter) ExportSeries(series tokenview.Series, options ExportOptions) (string, error) {
	if series.Len() == 0 {
		return "", fmt.Errorf("no points to export")
	}

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(options.OutputDir, se.generateFilename(series, options))

	var err error
	switch options.Format {
	case FormatCSV:
		err = se.exportToCSV(series, outputPath)
	case FormatJSON:
		err = se.exportToJSON(series, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}
	if err != nil {
		return "", err
	}

	se.logger.Info("Series exported",
		zap.String("file", outputPath),
		zap.Int("points", series.Len()),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

func (se *SeriesExporter) generateFilename(series tokenview.Series, options ExportOptions) string {
	timestamp := se.now().Format("20060102_150405")

	prefix := series.Kind.String()
	if subject := sanitize(options.Subject); subject != "" {
		prefix += "_" + subject
	}

	return fmt.Sprintf("%s_%s.%s", prefix, timestamp, options.Format)
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
	if len(s) > 16 {
		s = s[:16]
	}
	return s
}

// exportToCSV writes label,value rows; undefined values are written as NaN.
func (se *SeriesExporter) exportToCSV(series tokenview.Series, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"label", "value"}); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range series.Points {
		value := tokenview.NaNText
		if !math.IsNaN(p.Value) {
			value = strconv.FormatFloat(p.Value, 'f', -1, 64)
		}
		if err := writer.Write([]string{p.Label, value}); err != nil {
			return fmt.Errorf("failed to write point: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

type jsonPoint struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// exportToJSON writes the points with summary metadata. NaN has no JSON
// form, undefined values become null.
func (se *SeriesExporter) exportToJSON(series tokenview.Series, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	points := make([]jsonPoint, 0, series.Len())
	for _, p := range series.Points {
		jp := jsonPoint{Label: p.Label}
		if !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0) {
			v := p.Value
			jp.Value = &v
		}
		points = append(points, jp)
	}

	exportData := struct {
		ExportTime time.Time     `json:"export_time"`
		Kind       string        `json:"kind"`
		Points     []jsonPoint   `json:"points"`
		Summary    ExportSummary `json:"summary"`
	}{
		ExportTime: se.now(),
		Kind:       series.Kind.String(),
		Points:     points,
		Summary:    CalculateSummary(series),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ExportSummary contains summary statistics of the defined points
type ExportSummary struct {
	Points  int      `json:"points"`
	Defined int      `json:"defined"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Mean    *float64 `json:"mean"`
	First   string   `json:"first_label"`
	Last    string   `json:"last_label"`
}

// CalculateSummary ignores undefined points; Min, Max and Mean stay nil when
// no point is defined.
func CalculateSummary(series tokenview.Series) ExportSummary {
	summary := ExportSummary{Points: series.Len()}
	if series.Len() == 0 {
		return summary
	}
	summary.First = series.Points[0].Label
	summary.Last = series.Points[series.Len()-1].Label

	var min, max, sum float64
	for _, p := range series.Points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		if summary.Defined == 0 || p.Value < min {
			min = p.Value
		}
		if summary.Defined == 0 || p.Value > max {
			max = p.Value
		}
		sum += p.Value
		summary.Defined++
	}

	if summary.Defined > 0 {
		mean := sum / float64(summary.Defined)
		summary.Min, summary.Max, summary.Mean = &min, &max, &mean
	}
	return summary
}
