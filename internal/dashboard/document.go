package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/loadtestlab/panelpatch/internal/fileutil"
)

const (
	panelsKey = "panels"
	indent    = "  "
)

// Dashboard is a dashboard document loaded fully into memory.
//
// Top-level keys keep their original order and raw values. Each existing panel
// is kept as the raw JSON it was decoded from, so appending panels never
// changes the ones already present.
type Dashboard struct {
	keys    []string
	fields  map[string]json.RawMessage
	panels  []json.RawMessage
	headers []PanelHeader
}

// Decode parses a dashboard document.
func Decode(data []byte) (*Dashboard, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, &MalformedDocumentError{Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &MalformedDocumentError{Err: errors.New("top-level value is not an object")}
	}

	d := &Dashboard{fields: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &MalformedDocumentError{Err: err}
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &MalformedDocumentError{Err: fmt.Errorf("unexpected token %v", tok)}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &MalformedDocumentError{Err: fmt.Errorf("key %q: %w", key, err)}
		}
		if _, seen := d.fields[key]; !seen {
			d.keys = append(d.keys, key)
		}
		d.fields[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return nil, &MalformedDocumentError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &MalformedDocumentError{Err: errors.New("unexpected data after top-level object")}
	}

	if err := d.decodePanels(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dashboard) decodePanels() error {
	raw, ok := d.fields[panelsKey]
	if !ok || isNull(raw) {
		return nil
	}

	var panels []json.RawMessage
	if err := json.Unmarshal(raw, &panels); err != nil {
		return &MalformedDocumentError{Err: fmt.Errorf("panels: %w", err)}
	}

	headers := make([]PanelHeader, 0, len(panels))
	for i, panel := range panels {
		if !isObject(panel) {
			return &MalformedDocumentError{Err: fmt.Errorf("panels[%d] is not an object", i)}
		}
		var header PanelHeader
		if err := json.Unmarshal(panel, &header); err != nil {
			return &MalformedDocumentError{Err: fmt.Errorf("panels[%d]: %w", i, err)}
		}
		headers = append(headers, header)
	}

	d.panels = panels
	d.headers = headers
	return nil
}

// Panels returns the headers of every top-level panel in display order.
func (d *Dashboard) Panels() []PanelHeader {
	out := make([]PanelHeader, len(d.headers))
	copy(out, d.headers)
	return out
}

// RawPanel returns panel i exactly as it will be written.
func (d *Dashboard) RawPanel(i int) json.RawMessage {
	return d.panels[i]
}

// Append adds panels after the existing ones.
func (d *Dashboard) Append(panels ...Panel) error {
	for _, panel := range panels {
		raw, err := fileutil.MarshalJSON(panel)
		if err != nil {
			return fmt.Errorf("failed to encode panel %d: %w", panel.ID, err)
		}
		d.panels = append(d.panels, raw)
		d.headers = append(d.headers, panel.header())
	}
	return nil
}

// HasPanelTitled reports whether a top-level panel carries title.
func (d *Dashboard) HasPanelTitled(title string) bool {
	for _, header := range d.headers {
		if header.Title == title {
			return true
		}
	}
	return false
}

// Encode serializes the dashboard with two-space indentation and a trailing
// newline.
func (d *Dashboard) Encode() ([]byte, error) {
	keys := d.keys
	if _, ok := d.fields[panelsKey]; !ok && len(d.panels) > 0 {
		keys = append(append([]string(nil), keys...), panelsKey)
	}

	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		compact.Write(name)
		compact.WriteByte(':')
		if key == panelsKey && (len(d.panels) > 0 || !isNull(d.fields[key])) {
			d.writePanels(&compact)
			continue
		}
		compact.Write(d.fields[key])
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("failed to format dashboard: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func (d *Dashboard) writePanels(buf *bytes.Buffer) {
	buf.WriteByte('[')
	for i, panel := range d.panels {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(panel)
	}
	buf.WriteByte(']')
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
