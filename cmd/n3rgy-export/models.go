package main

import (
	"time"

	n3rgy "github.com/mgazza/go-n3rgy"
)

// Row kinds written to the CSV.
const (
	KindConsumption    = "consumption"
	KindPrice          = "price"
	KindStandingCharge = "standing_charge"
)

// ExportRow is one line of the output CSV.
type ExportRow struct {
	Energy    n3rgy.EnergyType
	Kind      string
	Timestamp time.Time
	// DateOnly rows are standing charges, which carry no time of day.
	DateOnly bool
	Value    float64
}

func consumptionRows(energy n3rgy.EnergyType, records []n3rgy.ConsumptionRecord) []ExportRow {
	rows := make([]ExportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ExportRow{
			Energy:    energy,
			Kind:      KindConsumption,
			Timestamp: r.Timestamp,
			Value:     r.Value,
		})
	}
	return rows
}

// tariffRows flattens each tariff into its standing charges followed by its prices.
func tariffRows(energy n3rgy.EnergyType, records []n3rgy.TariffRecord) []ExportRow {
	var rows []ExportRow
	for _, t := range records {
		for _, sc := range t.StandingCharges {
			rows = append(rows, ExportRow{
				Energy:    energy,
				Kind:      KindStandingCharge,
				Timestamp: time.Time(sc.StartDate),
				DateOnly:  true,
				Value:     sc.Value,
			})
		}
		for _, p := range t.Prices {
			rows = append(rows, ExportRow{
				Energy:    energy,
				Kind:      KindPrice,
				Timestamp: p.Timestamp,
				Value:     p.Value,
			})
		}
	}
	return rows
}
