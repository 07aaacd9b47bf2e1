package events

import (
	"fmt"

	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	startJSON = []byte(`{"type":"request_start"}`)
	tokenJSON = []byte(`{"type":"new_token"}`)
	endJSON   = []byte(`{"type":"request_end"}`)
)

// Event is the closed set of lifecycle notifications a model client
// delivers to hooks.
type Event interface {
	event()
}

// RequestStart is delivered once per request, before any output is
// produced. Prompts holds every prompt string submitted with the request.
type RequestStart struct {
	RunID     uuid.UUID       `json:"run_id"`
	Model     string          `json:"model,omitempty"`
	Prompts   []string        `json:"prompts"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
	Meta      gjson.Result    `json:"meta,omitempty"`
}

func (RequestStart) event() {}

// NewToken is delivered once per streamed output token as it arrives.
type NewToken struct {
	RunID     uuid.UUID       `json:"run_id"`
	Token     string          `json:"token"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
	Meta      gjson.Result    `json:"meta,omitempty"`
}

func (NewToken) event() {}

// RequestEnd is delivered once per request after the final token.
type RequestEnd struct {
	RunID     uuid.UUID       `json:"run_id"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
	Meta      gjson.Result    `json:"meta,omitempty"`
}

func (RequestEnd) event() {}

// MarshalJSON implements custom JSON marshaling for RequestStart
func (r RequestStart) MarshalJSON() ([]byte, error) {
	result := startJSON

	var err error
	result, err = sjson.SetBytes(result, "run_id", r.RunID.String())
	if err != nil {
		return nil, err
	}

	if r.Model != "" {
		result, err = sjson.SetBytes(result, "model", r.Model)
		if err != nil {
			return nil, err
		}
	}

	prompts, err := json.Marshal(r.Prompts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prompts: %w", err)
	}
	result, err = sjson.SetRawBytes(result, "prompts", prompts)
	if err != nil {
		return nil, err
	}

	return finishEventJSON(result, r.Timestamp, r.Meta)
}

// UnmarshalJSON implements custom JSON unmarshaling for RequestStart
func (r *RequestStart) UnmarshalJSON(data []byte) error {
	if err := checkEventJSON(data, "request_start", &r.RunID); err != nil {
		return err
	}

	r.Model = gjson.GetBytes(data, "model").String()

	prompts := gjson.GetBytes(data, "prompts")
	if !prompts.Exists() {
		return fmt.Errorf("missing required field 'prompts'")
	}
	if err := json.Unmarshal([]byte(prompts.Raw), &r.Prompts); err != nil {
		return fmt.Errorf("invalid prompts: %w", err)
	}

	return readEventJSON(data, &r.Timestamp, &r.Meta)
}

// MarshalJSON implements custom JSON marshaling for NewToken
func (n NewToken) MarshalJSON() ([]byte, error) {
	result := tokenJSON

	var err error
	result, err = sjson.SetBytes(result, "run_id", n.RunID.String())
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "token", n.Token)
	if err != nil {
		return nil, err
	}

	return finishEventJSON(result, n.Timestamp, n.Meta)
}

// UnmarshalJSON implements custom JSON unmarshaling for NewToken
func (n *NewToken) UnmarshalJSON(data []byte) error {
	if err := checkEventJSON(data, "new_token", &n.RunID); err != nil {
		return err
	}

	token := gjson.GetBytes(data, "token")
	if !token.Exists() {
		return fmt.Errorf("missing required field 'token'")
	}
	n.Token = token.String()

	return readEventJSON(data, &n.Timestamp, &n.Meta)
}

// MarshalJSON implements custom JSON marshaling for RequestEnd
func (e RequestEnd) MarshalJSON() ([]byte, error) {
	result := endJSON

	result, err := sjson.SetBytes(result, "run_id", e.RunID.String())
	if err != nil {
		return nil, err
	}

	return finishEventJSON(result, e.Timestamp, e.Meta)
}

// UnmarshalJSON implements custom JSON unmarshaling for RequestEnd
func (e *RequestEnd) UnmarshalJSON(data []byte) error {
	if err := checkEventJSON(data, "request_end", &e.RunID); err != nil {
		return err
	}
	return readEventJSON(data, &e.Timestamp, &e.Meta)
}

// finishEventJSON appends the optional timestamp and meta fields shared by
// all event types.
func finishEventJSON(result []byte, ts strfmt.DateTime, meta gjson.Result) ([]byte, error) {
	var err error
	if !ts.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", ts.String())
		if err != nil {
			return nil, err
		}
	}

	if meta.Exists() {
		result, err = sjson.SetRawBytes(result, "meta", []byte(meta.Raw))
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// checkEventJSON validates the envelope shared by all event types: valid
// JSON, the expected type marker and a parseable run id.
func checkEventJSON(data []byte, typ string, runID *uuid.UUID) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	msgType := gjson.GetBytes(data, "type")
	if !msgType.Exists() || msgType.String() != typ {
		return fmt.Errorf("missing or invalid type, expected %q", typ)
	}

	id := gjson.GetBytes(data, "run_id")
	if !id.Exists() {
		return fmt.Errorf("missing required field 'run_id'")
	}
	if err := runID.UnmarshalText([]byte(id.String())); err != nil {
		return fmt.Errorf("invalid run_id: %w", err)
	}

	return nil
}

// readEventJSON extracts the optional timestamp and meta fields shared by
// all event types.
func readEventJSON(data []byte, ts *strfmt.DateTime, meta *gjson.Result) error {
	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := ts.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}

	if m := gjson.GetBytes(data, "meta"); m.Exists() {
		*meta = m
	}

	return nil
}
