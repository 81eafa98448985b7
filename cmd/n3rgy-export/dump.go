package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// recordedResponse is what RecordingRoundTripper writes for each response.
type recordedResponse struct {
	Method     string              `json:"method"`
	URL        string              `json:"url"`
	Status     string              `json:"status"`
	StatusCode int                 `json:"status_code"`
	Proto      string              `json:"proto"`
	Header     map[string][]string `json:"header"`
	Body       string              `json:"body"`
}

// RecordingRoundTripper implements http.RoundTripper.
//
// Every response is written to Dir before being handed back, so readings the
// client drops as malformed can still be inspected. Stored responses are never
// replayed.
type RecordingRoundTripper struct {
	// UnderlyingTransport performs the request.
	// If nil, http.DefaultTransport will be used.
	UnderlyingTransport http.RoundTripper

	// Dir is the directory where response files are stored.
	Dir string
}

func (c *RecordingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	next := c.UnderlyingTransport
	if next == nil {
		next = http.DefaultTransport
	}

	resp, err := next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Read response body into memory so we can save it.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// The Authorization header is a request header and is never recorded.
	rr := recordedResponse{
		Method:     req.Method,
		URL:        req.URL.String(),
		Status:     resp.Status,
		StatusCode: resp.StatusCode,
		Proto:      resp.Proto,
		Header:     resp.Header.Clone(),
		Body:       string(body),
	}
	if err := saveRecordedResponse(c.recordPath(recordKey(req.Method, req.URL.String())), &rr); err != nil {
		return nil, err
	}

	return rebuildResponse(req, resp, body), nil
}

// recordKey builds a SHA-256 hash string from method and url.
func recordKey(method, url string) string {
	hash := sha256.New()
	hash.Write([]byte(method))
	hash.Write([]byte(url))
	return hex.EncodeToString(hash.Sum(nil))
}

// recordPath returns the path to the record file for the given key.
func (c *RecordingRoundTripper) recordPath(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// saveRecordedResponse saves the response struct to a file in JSON format.
func saveRecordedResponse(path string, rr *recordedResponse) error {
	data, err := json.MarshalIndent(rr, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// rebuildResponse returns a copy of resp whose body can be read again.
func rebuildResponse(req *http.Request, resp *http.Response, body []byte) *http.Response {
	return &http.Response{
		Status:        resp.Status,
		StatusCode:    resp.StatusCode,
		Proto:         resp.Proto,
		ProtoMajor:    resp.ProtoMajor,
		ProtoMinor:    resp.ProtoMinor,
		Header:        resp.Header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
