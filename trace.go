package params

import (
	"encoding/json"
)

// Trace captures provenance for one flat parameter path across the layers
// of a Stack.
type Trace struct {
	Path   string       `json:"path"`
	Layers []Provenance `json:"layers"`
}

// Provenance details how a layer contributed to a traced path.
type Provenance struct {
	Layer    string `json:"layer"`
	Priority int    `json:"priority"`
	Source   string `json:"source,omitempty"`
	Path     string `json:"path"`
	Value    any    `json:"value,omitempty"`
	Found    bool   `json:"found"`
}

// Effective returns the provenance entry that supplied the merged value.
func (t Trace) Effective() (Provenance, bool) {
	for _, p := range t.Layers {
		if p.Found {
			return p, true
		}
	}
	return Provenance{}, false
}

// ToJSON serialises the trace for logging.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload produced by ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
