package n3rgy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
)

// EnergyType selects the first path segment of a request.
type EnergyType int

const (
	Electricity EnergyType = iota + 1
	Gas
)

func (e EnergyType) String() string {
	switch e {
	case Electricity:
		return "electricity"
	case Gas:
		return "gas"
	}
	return fmt.Sprintf("EnergyType(%d)", int(e))
}

// ReadingType selects the second path segment of a request.
type ReadingType int

const (
	Consumption ReadingType = iota + 1
	Tariff
)

func (r ReadingType) String() string {
	switch r {
	case Consumption:
		return "consumption"
	case Tariff:
		return "tariff"
	}
	return fmt.Sprintf("ReadingType(%d)", int(r))
}

func requestPath(energy EnergyType, reading ReadingType) string {
	return "/" + energy.String() + "/" + reading.String() + "/1"
}

// FetchRecords issues one GET for the energy and reading type over [start, end]
// and decodes each element of the response's "values" array into T.
//
// Elements that fail to decode are dropped without error, so a response whose
// elements are all malformed yields an empty result. Timestamps are not parsed
// here; see the Client methods for conversion.
func FetchRecords[T WireRecord](ctx context.Context, c *Client, energy EnergyType, reading ReadingType, start, end time.Time) ([]T, error) {
	op := requestPath(energy, reading)
	if energy != Electricity && energy != Gas {
		return nil, &Error{Kind: ErrURLConstruction, Op: op, Err: fmt.Errorf("unknown energy type %d", int(energy))}
	}
	if reading != Consumption && reading != Tariff {
		return nil, &Error{Kind: ErrURLConstruction, Op: op, Err: fmt.Errorf("unknown reading type %d", int(reading))}
	}

	rt, err := c.newRuntime()
	if err != nil {
		return nil, &Error{Kind: ErrURLConstruction, Op: op, Err: err}
	}

	result, err := rt.Submit(&runtime.ClientOperation{
		ID:                 "getRecords",
		Method:             http.MethodGet,
		PathPattern:        "/{energyType}/{readingType}/1",
		ProducesMediaTypes: []string{runtime.JSONMime},
		ConsumesMediaTypes: []string{runtime.JSONMime},
		Params:             rangeParams(energy, reading, start, end),
		AuthInfo:           c.authInfo(ctx, op),
		Reader:             envelopeReader[T](op),
		Context:            ctx,
	})
	if err != nil {
		var fe *Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, &Error{Kind: ErrTransport, Op: op, Err: err}
	}
	return result.([]T), nil
}

func rangeParams(energy EnergyType, reading ReadingType, start, end time.Time) runtime.ClientRequestWriter {
	return runtime.ClientRequestWriterFunc(func(req runtime.ClientRequest, _ strfmt.Registry) error {
		// timeouts belong to the caller's transport or context
		if err := req.SetTimeout(0); err != nil {
			return err
		}
		if err := req.SetPathParam("energyType", energy.String()); err != nil {
			return err
		}
		if err := req.SetPathParam("readingType", reading.String()); err != nil {
			return err
		}
		if err := req.SetQueryParam("start", formatQueryDate(start)); err != nil {
			return err
		}
		if err := req.SetQueryParam("end", formatQueryDate(end)); err != nil {
			return err
		}
		return req.SetQueryParam("output", "json")
	})
}

func (c *Client) authInfo(ctx context.Context, op string) runtime.ClientAuthInfoWriter {
	return runtime.ClientAuthInfoWriterFunc(func(req runtime.ClientRequest, _ strfmt.Registry) error {
		key, err := c.auth.Authorization(ctx)
		if err != nil {
			return &Error{Kind: ErrCredential, Op: op, Err: err}
		}
		return req.SetHeaderParam("Authorization", key)
	})
}

func envelopeReader[T WireRecord](op string) runtime.ClientResponseReader {
	return runtime.ClientResponseReaderFunc(func(resp runtime.ClientResponse, _ runtime.Consumer) (interface{}, error) {
		body, err := io.ReadAll(resp.Body())
		if err != nil {
			return nil, &Error{Kind: ErrTransport, Op: op, StatusCode: resp.Code(), Err: err}
		}

		values, err := decodeEnvelope(body)
		if err != nil {
			var fe *Error
			if errors.As(err, &fe) {
				fe.Op = op
				fe.StatusCode = resp.Code()
			}
			return nil, err
		}
		return decodeEach[T](values), nil
	})
}

// decodeEnvelope returns the raw elements of the top-level "values" array.
func decodeEnvelope(body []byte) ([]json.RawMessage, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &Error{Kind: ErrDecode, Err: err}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(doc, &envelope); err != nil {
		return nil, &Error{Kind: ErrMissingEnvelope}
	}
	raw, ok := envelope["values"]
	if !ok {
		return nil, &Error{Kind: ErrMissingEnvelope}
	}
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return nil, &Error{Kind: ErrMissingEnvelope}
	}
	return values, nil
}

func decodeEach[T WireRecord](values []json.RawMessage) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		var rec T
		if err := json.Unmarshal(v, &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out
}
