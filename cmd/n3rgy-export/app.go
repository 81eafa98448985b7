package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	n3rgy "github.com/mgazza/go-n3rgy"
)

// Config contains configuration for the application.
type Config struct {
	APIKey        string
	BaseURL       string
	Energies      []n3rgy.EnergyType
	Reading       n3rgy.ReadingType
	StartTime     time.Time
	EndTime       time.Time
	OutputCSV     string
	DumpDirectory string
	MetricsFile   string
}

// App manages application dependencies and logic.
type App struct {
	Config  *Config
	Client  *n3rgy.Client
	Metrics *Metrics
}

// NewApp wires the transport chain and the n3rgy client on top of base.
func NewApp(config *Config, base http.RoundTripper) (*App, error) {
	rt := base
	if rt == nil {
		rt = http.DefaultTransport
	}

	if config.DumpDirectory != "disable" {
		dumpDir := config.DumpDirectory
		if dumpDir == "" {
			dumpDir = os.TempDir()
		}
		if err := os.MkdirAll(dumpDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create dump dir: %w", err)
		}

		rt = &RecordingRoundTripper{
			UnderlyingTransport: rt, Dir: path.Clean(dumpDir),
		}

		log.Printf("Recording raw responses in directory: %s", dumpDir)
	}

	metrics := NewMetrics()
	rt = metrics.InstrumentRoundTripper(rt)

	var auth n3rgy.AuthorizationProvider = n3rgy.EnvironmentAuthorization{}
	if config.APIKey != "" {
		auth = n3rgy.StaticAuthorization(config.APIKey)
	}

	client := n3rgy.NewClient(auth,
		n3rgy.WithBaseURL(config.BaseURL),
		n3rgy.WithTransport(rt))

	return &App{
		Config:  config,
		Client:  client,
		Metrics: metrics,
	}, nil
}

func (app *App) Run(ctx context.Context) error {
	log.Println("Starting export...")
	log.Printf("Using date range %s - %s", app.Config.StartTime.Format(csvDateLayout), app.Config.EndTime.Format(csvDateLayout))

	if app.Config.MetricsFile != "" {
		defer func() {
			if err := app.Metrics.WriteTextfile(app.Config.MetricsFile); err != nil {
				log.Printf("Failed to write metrics to %s: %v", app.Config.MetricsFile, err)
			}
		}()
	}

	var data []ExportRow
	for _, energy := range app.Config.Energies {
		log.Printf("Getting %s %s data...", energy, app.Config.Reading)
		rows, err := app.fetch(ctx, energy)
		if err != nil {
			return fmt.Errorf("failed to fetch %s %s: %w", energy, app.Config.Reading, err)
		}
		log.Printf("Fetched %d %s rows", len(rows), energy)
		data = append(data, rows...)
	}

	if err := writeCSV(app.Config.OutputCSV, data); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	log.Printf("Wrote CSV to %s", app.Config.OutputCSV)

	app.Metrics.LastSuccess.SetToCurrentTime()
	return nil
}

// fetch retrieves one energy type and flattens it to CSV rows.
func (app *App) fetch(ctx context.Context, energy n3rgy.EnergyType) ([]ExportRow, error) {
	start, end := app.Config.StartTime, app.Config.EndTime
	records := app.Metrics.Records.WithLabelValues(energy.String(), app.Config.Reading.String())

	switch app.Config.Reading {
	case n3rgy.Consumption:
		get := app.Client.GetElectricityConsumption
		if energy == n3rgy.Gas {
			get = app.Client.GetGasConsumption
		}
		readings, err := get(ctx, start, end)
		if err != nil {
			return nil, err
		}
		records.Set(float64(len(readings)))
		return consumptionRows(energy, readings), nil

	case n3rgy.Tariff:
		get := app.Client.GetElectricityTariff
		if energy == n3rgy.Gas {
			get = app.Client.GetGasTariff
		}
		tariffs, err := get(ctx, start, end)
		if err != nil {
			return nil, err
		}
		records.Set(float64(len(tariffs)))
		return tariffRows(energy, tariffs), nil
	}
	return nil, fmt.Errorf("unsupported reading type %s", app.Config.Reading)
}

func truncateToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
