package renderer

import (
	"AssetWatch/internal/registry"
)

// Trace is one plotly line trace.
type Trace struct {
	Type string    `json:"type"`
	Mode string    `json:"mode"`
	Name string    `json:"name"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
}

// Traces maps each series to a line trace on its own dates.
func Traces(series []registry.Series) []Trace {
	traces := make([]Trace, 0, len(series))
	for _, s := range series {
		t := Trace{
			Type: "scatter",
			Mode: "lines",
			Name: s.Label,
			X:    make([]string, len(s.X)),
			Y:    make([]float64, len(s.Y)),
		}
		for i, d := range s.X {
			t.X[i] = d.String()
		}
		for i, v := range s.Y {
			t.Y[i] = v.InexactFloat64()
		}
		traces = append(traces, t)
	}
	return traces
}
