package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	n3rgy "github.com/mgazza/go-n3rgy"
)

// envOrString returns the environment variable value if set, otherwise returns the default value.
func envOrString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func parseEnergies(s string) ([]n3rgy.EnergyType, error) {
	switch strings.ToLower(s) {
	case "electricity":
		return []n3rgy.EnergyType{n3rgy.Electricity}, nil
	case "gas":
		return []n3rgy.EnergyType{n3rgy.Gas}, nil
	case "all", "":
		return []n3rgy.EnergyType{n3rgy.Electricity, n3rgy.Gas}, nil
	}
	return nil, fmt.Errorf("unknown energy %q (want electricity, gas or all)", s)
}

func parseReading(s string) (n3rgy.ReadingType, error) {
	switch strings.ToLower(s) {
	case "consumption", "":
		return n3rgy.Consumption, nil
	case "tariff":
		return n3rgy.Tariff, nil
	}
	return 0, fmt.Errorf("unknown reading %q (want consumption or tariff)", s)
}

// parseDay parses a YYYY-MM-DD flag, falling back to def when empty.
func parseDay(name, s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	d, err := n3rgy.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format (expected YYYY-MM-DD): %w", name, err)
	}
	return time.Time(d), nil
}

func parseConfig(args []string, now time.Time) (*Config, error) {
	fs := flag.NewFlagSet("n3rgy-export", flag.ContinueOnError)
	configFile := fs.String("config", envOrString("N3RGY_EXPORT_CONFIG", ""), "YAML config file (optional)")
	apiKey := fs.String("apikey", "", "n3rgy API key (IHD MAC address); read from $"+n3rgy.APIKeyEnv+" when empty")
	baseURL := fs.String("baseURL", envOrString("N3RGY_BASE_URL", n3rgy.DefaultBaseURL), "n3rgy API base URL")
	energy := fs.String("energy", "all", "Energy to export: electricity, gas or all")
	reading := fs.String("reading", "consumption", "Reading to export: consumption or tariff")
	start := fs.String("start", "", "First day to export (YYYY-MM-DD, default yesterday)")
	end := fs.String("end", "", "Last day to export (YYYY-MM-DD, default today)")
	outCSV := fs.String("out", envOrString("OUTPUT_CSV", "output.csv"), "Output CSV file")
	dumpDir := fs.String("dump", envOrString("DUMP_DIR", "disable"), "Directory to record raw API responses ('disable' to disable, empty for temporary directory)")
	metricsFile := fs.String("metrics", envOrString("METRICS_FILE", ""), "Write request metrics to this Prometheus textfile (optional)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *configFile != "" {
		fc, err := loadFileConfig(*configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		for name, v := range fc.flagValues() {
			if set[name] || v == "" {
				continue
			}
			if err := fs.Set(name, v); err != nil {
				return nil, err
			}
		}
	}

	energies, err := parseEnergies(*energy)
	if err != nil {
		return nil, err
	}
	readingType, err := parseReading(*reading)
	if err != nil {
		return nil, err
	}

	today := truncateToMidnight(now)
	startDay, err := parseDay("start", *start, today.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	endDay, err := parseDay("end", *end, today)
	if err != nil {
		return nil, err
	}

	return &Config{
		APIKey:        *apiKey,
		BaseURL:       *baseURL,
		Energies:      energies,
		Reading:       readingType,
		StartTime:     startDay,
		EndTime:       endDay,
		OutputCSV:     *outCSV,
		DumpDirectory: *dumpDir,
		MetricsFile:   *metricsFile,
	}, nil
}

func main() {
	config, err := parseConfig(os.Args[1:], time.Now())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, err := NewApp(config, http.DefaultTransport)
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
