package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Envelope types.
const (
	TypeChartData = "CHART_DATA"
	TypeDashboard = "DASHBOARD"
)

// ChartType is a drawable chart kind.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
	ChartLine ChartType = "line"
)

// Supported reports whether t can be drawn.
func (t ChartType) Supported() bool {
	switch t {
	case ChartBar, ChartPie, ChartLine:
		return true
	}
	return false
}

// Envelope is a decoded structured answer: *ChartEnvelope or
// *DashboardEnvelope.
type Envelope interface {
	envelope()
}

// DataPoint is one labelled value of a chart.
type DataPoint struct {
	Label       string  `json:"label"`
	Value       float64 `json:"value"`
	Description string  `json:"description,omitempty"`
}

// ChartEnvelope carries a single chart.
type ChartEnvelope struct {
	ChartType string      `json:"chartType"`
	Title     string      `json:"title,omitempty"`
	Data      []DataPoint `json:"data"`
	Insights  string      `json:"insights,omitempty"`
}

// DashboardEnvelope carries a titled, ordered list of components.
type DashboardEnvelope struct {
	Title      string
	Components []Component
}

func (*ChartEnvelope) envelope()     {}
func (*DashboardEnvelope) envelope() {}

// Component is one dashboard entry. The set is closed.
type Component interface {
	component()
}

type SummaryComponent struct {
	Title   string
	Content string
}

type ChartComponent struct {
	Chart ChartEnvelope
}

type InsightsComponent struct {
	Title string
	Items []string
}

type RecommendationsComponent struct {
	Title string
	Items []string
}

// UnknownComponent keeps a component whose type is not recognized, or
// whose body could not be decoded, so it can still be shown.
type UnknownComponent struct {
	Type  string
	Title string
	Raw   json.RawMessage
}

func (SummaryComponent) component()         {}
func (ChartComponent) component()           {}
func (InsightsComponent) component()        {}
func (RecommendationsComponent) component() {}
func (UnknownComponent) component()         {}

// envelopeSchema accepts the two envelope shapes. Components are only
// required to carry a type; each is decoded leniently on its own.
const envelopeSchema = `{
  "oneOf": [
    {
      "type": "object",
      "required": ["type", "chartType", "data"],
      "properties": {
        "type": {"const": "CHART_DATA"},
        "chartType": {"type": "string"},
        "title": {"type": "string"},
        "insights": {"type": "string"},
        "data": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["label", "value"],
            "properties": {
              "label": {"type": "string"},
              "value": {"type": "number"},
              "description": {"type": "string"}
            }
          }
        }
      }
    },
    {
      "type": "object",
      "required": ["type", "components"],
      "properties": {
        "type": {"const": "DASHBOARD"},
        "title": {"type": "string"},
        "components": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["type"],
            "properties": {"type": {"type": "string"}}
          }
        }
      }
    }
  ]
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func envelopeValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(envelopeSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse envelope schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://envelope.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// DecodeEnvelope decodes body as a chart or dashboard envelope. It reports
// false for anything that is not valid JSON or does not match either
// shape; it never panics.
func DecodeEnvelope(body string) (Envelope, bool) {
	var parsed any
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, false
	}
	schema, err := envelopeValidator()
	if err != nil {
		return nil, false
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, false
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(body), &head); err != nil {
		return nil, false
	}

	switch head.Type {
	case TypeChartData:
		var c ChartEnvelope
		if err := json.Unmarshal([]byte(body), &c); err != nil {
			return nil, false
		}
		return &c, true
	case TypeDashboard:
		var raw struct {
			Title      string            `json:"title"`
			Components []json.RawMessage `json:"components"`
		}
		if err := json.Unmarshal([]byte(body), &raw); err != nil {
			return nil, false
		}
		d := &DashboardEnvelope{Title: raw.Title}
		for _, rc := range raw.Components {
			d.Components = append(d.Components, decodeComponent(rc))
		}
		return d, true
	}
	return nil, false
}

func decodeComponent(raw json.RawMessage) Component {
	var c struct {
		Type      string      `json:"type"`
		Title     string      `json:"title"`
		Content   any         `json:"content"`
		Items     []string    `json:"items"`
		ChartType string      `json:"chartType"`
		Data      []DataPoint `json:"data"`
		Insights  string      `json:"insights"`
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		var head struct {
			Type  string `json:"type"`
			Title string `json:"title"`
		}
		_ = json.Unmarshal(raw, &head)
		return UnknownComponent{Type: head.Type, Title: head.Title, Raw: raw}
	}

	switch strings.ToLower(c.Type) {
	case "summary":
		if s, ok := c.Content.(string); ok {
			return SummaryComponent{Title: c.Title, Content: s}
		}
	case "chart":
		return ChartComponent{Chart: ChartEnvelope{
			ChartType: c.ChartType,
			Title:     c.Title,
			Data:      c.Data,
			Insights:  c.Insights,
		}}
	case "insights":
		return InsightsComponent{Title: c.Title, Items: c.Items}
	case "recommendations":
		return RecommendationsComponent{Title: c.Title, Items: c.Items}
	}
	return UnknownComponent{Type: c.Type, Title: c.Title, Raw: raw}
}
