package n3rgy

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
)

// ConsumptionRecord is one sampling interval of electricity or gas consumption.
type ConsumptionRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TariffRecord is the tariff schedule reported for the requested window.
type TariffRecord struct {
	StandingCharges []StandingCharge   `json:"standingCharges"`
	Prices          []TimestampedValue `json:"prices"`
}

// StandingCharge applies from StartDate until superseded.
type StandingCharge struct {
	StartDate strfmt.Date `json:"startDate"`
	Value     float64     `json:"value"`
}

// TimestampedValue is a single price point.
type TimestampedValue struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// ConsumptionDTO mirrors a consumption element of the "values" array.
type ConsumptionDTO struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// TariffDTO mirrors a tariff element of the "values" array.
type TariffDTO struct {
	StandingCharges []StandingChargeDTO   `json:"standingCharges"`
	Prices          []TimestampedValueDTO `json:"prices"`
}

type StandingChargeDTO struct {
	StartDate string  `json:"startDate"`
	Value     float64 `json:"value"`
}

type TimestampedValueDTO struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// WireRecord is the set of shapes FetchRecords can decode.
type WireRecord interface {
	ConsumptionDTO | TariffDTO
}

// The provider omits or nulls fields on broken readings. encoding/json would
// zero-fill those, so every DTO insists its fields are present.

func (d *ConsumptionDTO) UnmarshalJSON(b []byte) error {
	var raw struct {
		Timestamp *string  `json:"timestamp"`
		Value     *float64 `json:"value"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Timestamp == nil {
		return missingField("timestamp")
	}
	if raw.Value == nil {
		return missingField("value")
	}
	*d = ConsumptionDTO{Timestamp: *raw.Timestamp, Value: *raw.Value}
	return nil
}

func (d *TariffDTO) UnmarshalJSON(b []byte) error {
	var raw struct {
		StandingCharges *[]StandingChargeDTO   `json:"standingCharges"`
		Prices          *[]TimestampedValueDTO `json:"prices"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.StandingCharges == nil {
		return missingField("standingCharges")
	}
	if raw.Prices == nil {
		return missingField("prices")
	}
	*d = TariffDTO{StandingCharges: *raw.StandingCharges, Prices: *raw.Prices}
	return nil
}

func (d *StandingChargeDTO) UnmarshalJSON(b []byte) error {
	var raw struct {
		StartDate *string  `json:"startDate"`
		Value     *float64 `json:"value"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.StartDate == nil {
		return missingField("startDate")
	}
	if raw.Value == nil {
		return missingField("value")
	}
	*d = StandingChargeDTO{StartDate: *raw.StartDate, Value: *raw.Value}
	return nil
}

func (d *TimestampedValueDTO) UnmarshalJSON(b []byte) error {
	var raw struct {
		Timestamp *string  `json:"timestamp"`
		Value     *float64 `json:"value"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Timestamp == nil {
		return missingField("timestamp")
	}
	if raw.Value == nil {
		return missingField("value")
	}
	*d = TimestampedValueDTO{Timestamp: *raw.Timestamp, Value: *raw.Value}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}

// Record converts the DTO, failing if its timestamp does not parse.
func (d ConsumptionDTO) Record() (ConsumptionRecord, error) {
	ts, err := ParseDateTime(d.Timestamp)
	if err != nil {
		return ConsumptionRecord{}, err
	}
	return ConsumptionRecord{Timestamp: ts, Value: d.Value}, nil
}

// Record converts the DTO. A single bad standing charge or price fails the
// whole tariff.
func (d TariffDTO) Record() (TariffRecord, error) {
	charges, err := convertAll(d.StandingCharges, StandingChargeDTO.Record)
	if err != nil {
		return TariffRecord{}, err
	}
	prices, err := convertAll(d.Prices, TimestampedValueDTO.Record)
	if err != nil {
		return TariffRecord{}, err
	}
	return TariffRecord{StandingCharges: charges, Prices: prices}, nil
}

func (d StandingChargeDTO) Record() (StandingCharge, error) {
	date, err := ParseDate(d.StartDate)
	if err != nil {
		return StandingCharge{}, err
	}
	return StandingCharge{StartDate: date, Value: d.Value}, nil
}

func (d TimestampedValueDTO) Record() (TimestampedValue, error) {
	ts, err := ParseDateTime(d.Timestamp)
	if err != nil {
		return TimestampedValue{}, err
	}
	return TimestampedValue{Timestamp: ts, Value: d.Value}, nil
}

// convertAll converts every element in order and stops at the first failure.
func convertAll[D, R any](in []D, convert func(D) (R, error)) ([]R, error) {
	out := make([]R, 0, len(in))
	for _, d := range in {
		r, err := convert(d)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
