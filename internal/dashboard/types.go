package dashboard

// GridWidth is the number of columns in a Grafana dashboard row.
const GridWidth = 24

// GridPos locates a panel on the dashboard grid.
type GridPos struct {
	H int `json:"h"`
	W int `json:"w"`
	X int `json:"x"`
	Y int `json:"y"`
}

// Bottom returns the first free row below the panel.
func (g GridPos) Bottom() int {
	return g.Y + g.H
}

type Datasource struct {
	Type string `json:"type"`
	UID  string `json:"uid"`
}

// Target is one query of a panel. The query text is opaque to the patcher.
type Target struct {
	Datasource *Datasource `json:"datasource,omitempty"`
	Query      string      `json:"query"`
	RefID      string      `json:"refId"`
}

// Panel is a panel created by the patcher. Field order follows the key order
// Grafana uses when it exports a dashboard.
type Panel struct {
	Datasource    *Datasource    `json:"datasource,omitempty"`
	FieldConfig   FieldConfig    `json:"fieldConfig"`
	GridPos       GridPos        `json:"gridPos"`
	ID            int            `json:"id"`
	Options       map[string]any `json:"options,omitempty"`
	PluginVersion string         `json:"pluginVersion,omitempty"`
	Targets       []Target       `json:"targets"`
	Title         string         `json:"title"`
	Type          string         `json:"type"`
}

type FieldConfig struct {
	Defaults  FieldDefaults `json:"defaults"`
	Overrides []Override    `json:"overrides"`
}

// FieldDefaults holds the field options applied to every series. Custom is
// visualization specific and passed through untouched.
type FieldDefaults struct {
	Color      FieldColor     `json:"color"`
	Custom     map[string]any `json:"custom,omitempty"`
	Mappings   []any          `json:"mappings"`
	Thresholds Thresholds     `json:"thresholds"`
	Unit       string         `json:"unit,omitempty"`
}

type FieldColor struct {
	FixedColor string `json:"fixedColor,omitempty"`
	Mode       string `json:"mode"`
}

type Thresholds struct {
	Mode  string          `json:"mode"`
	Steps []ThresholdStep `json:"steps"`
}

// ThresholdStep with a nil Value is the base step and serializes as null.
type ThresholdStep struct {
	Color string   `json:"color"`
	Value *float64 `json:"value"`
}

type Override struct {
	Matcher    Matcher    `json:"matcher"`
	Properties []Property `json:"properties"`
}

type Matcher struct {
	ID      string `json:"id"`
	Options string `json:"options"`
}

type Property struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

// PanelHeader is the part of an existing panel the patcher reads. Everything
// else in the panel stays as raw JSON.
type PanelHeader struct {
	ID      *int          `json:"id,omitempty"`
	Type    string        `json:"type,omitempty"`
	Title   string        `json:"title,omitempty"`
	GridPos *GridPos      `json:"gridPos,omitempty"`
	Panels  []PanelHeader `json:"panels,omitempty"`
}

func (p Panel) header() PanelHeader {
	id := p.ID
	pos := p.GridPos
	return PanelHeader{
		ID:      &id,
		Type:    p.Type,
		Title:   p.Title,
		GridPos: &pos,
	}
}
