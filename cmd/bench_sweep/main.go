// bench_sweep runs the encoding benchmark across a range of data sizes and
// renders the timings as an interactive HTML page plus a JSON report, for
// tuning graph degree and expansion degree against throughput targets.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"drg-porep/harness"
	"drg-porep/measure"
)

type sweepPoint struct {
	SizeKB         int     `json:"size_kb"`
	EncodingMillis float64 `json:"encoding_ms"`
	PerGiBSeconds  float64 `json:"per_gib_seconds"`
}

func main() {
	sizes := flag.String("sizes", "1,2,4,8,16", "comma-separated data sizes in KB")
	m := flag.Int("m", 5, "the size of m")
	expansion := flag.Int("expansion", 6, "expansion degree")
	outDir := flag.String("out", "Measure_Reports", "output directory for reports")
	flag.Parse()

	sizeList, err := parseSizes(*sizes)
	if err != nil {
		log.Fatalf("-sizes: %v", err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	points := make([]sweepPoint, 0, len(sizeList))
	for _, kb := range sizeList {
		log.Printf("[sweep] size %d KB", kb)
		report, err := harness.RunEncoding(&harness.EncodingConfig{
			DataSize:        kb * 1024,
			M:               *m,
			ExpansionDegree: *expansion,
		})
		if err != nil {
			log.Fatalf("size %d KB: %v", kb, err)
		}
		points = append(points, sweepPoint{
			SizeKB:         kb,
			EncodingMillis: float64(report.EncodingTime) / float64(time.Millisecond),
			PerGiBSeconds:  report.PerGiB.Seconds(),
		})
	}

	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("encoding_sweep_%s.json", ts))
	if err := saveJSON(jsonPath, points); err != nil {
		log.Printf("warn: save sweep: %v", err)
	}

	htmlPath := filepath.Join(*outDir, fmt.Sprintf("encoding_sweep_%s.html", ts))
	if err := renderPage(htmlPath, points, *m, *expansion); err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Println("Sweep page:", htmlPath)
	fmt.Println("Sweep JSON:", jsonPath)
}

func parseSizes(csv string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kb, err := strconv.Atoi(part)
		if err != nil || kb <= 0 {
			return nil, fmt.Errorf("invalid size %q", part)
		}
		out = append(out, kb)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return out, nil
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func renderPage(path string, points []sweepPoint, m, expansion int) error {
	page := components.NewPage()

	xLabels := make([]string, len(points))
	timeItems := make([]opts.LineData, len(points))
	rateItems := make([]opts.LineData, len(points))
	for i, p := range points {
		xLabels[i] = measure.Human(int64(p.SizeKB) * 1024)
		timeItems[i] = opts.LineData{Value: p.EncodingMillis}
		rateItems[i] = opts.LineData{Value: p.PerGiBSeconds}
	}

	timeLine := charts.NewLine()
	timeLine.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Delay Encoding Sweep", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Encoding time vs. data size",
			Subtitle: fmt.Sprintf("m=%d, expansion=%d", m, expansion),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "encoding time (ms)", Type: "value"}),
	)
	timeLine.SetXAxis(xLabels).AddSeries("encoding time", timeItems)

	rateLine := charts.NewLine()
	rateLine.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Delay Encoding Sweep", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Normalized per-GiB cost"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "seconds per GiB", Type: "value"}),
	)
	rateLine.SetXAxis(xLabels).AddSeries("time/GiB", rateItems)

	page.AddCharts(timeLine, rateLine)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
