package main

import (
	"encoding/csv"
	"fmt"
	"os"
)

const (
	csvDateLayout     = "2006-01-02"
	csvDateTimeLayout = "2006-01-02 15:04"
)

// Helper function to format float64 values with precision
func formatFloat(val float64, precision int) string {
	formatStr := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(formatStr, val)
}

func formatTimestamp(row ExportRow) string {
	if row.DateOnly {
		return row.Timestamp.Format(csvDateLayout)
	}
	// provider wall clock, no zone
	return row.Timestamp.Format(csvDateTimeLayout)
}

// Write data to a CSV file
func writeCSV(filename string, data []ExportRow) error {
	if len(data) == 0 {
		return fmt.Errorf("no data to write CSV")
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"Energy",
		"Kind",
		"Timestamp",
		"Value",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range data {
		record := []string{
			row.Energy.String(),
			row.Kind,
			formatTimestamp(row),
			formatFloat(row.Value, 4),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
