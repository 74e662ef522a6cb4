// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// OverrideSet holds the three independent per-section override layers.
// A missing key means "use the default". Lifetime is one request.
type OverrideSet struct {
	Images  map[SectionID]string
	Texts   map[SectionID]string
	Heights map[SectionID]int
}

// rawOverrides is the wire shape produced by the editing UI.
type rawOverrides struct {
	Images  map[string]string  `json:"images,omitempty"`
	Texts   map[string]string  `json:"texts,omitempty"`
	Heights map[string]float64 `json:"heights,omitempty"`
}

// UnmarshalJSON decodes the editor's string-keyed maps. Keys that do not name
// a known section are dropped; they cannot address any renderable slot.
// When several spellings address one section, the canonical kebab-case key
// wins, then the lexically smallest key.
func (o *OverrideSet) UnmarshalJSON(data []byte) error {
	var raw rawOverrides
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode overrides: %w", err)
	}

	out := OverrideSet{}
	for id, key := range sectionKeysOf(raw.Images) {
		if out.Images == nil {
			out.Images = make(map[SectionID]string)
		}
		out.Images[id] = raw.Images[key]
	}
	for id, key := range sectionKeysOf(raw.Texts) {
		if out.Texts == nil {
			out.Texts = make(map[SectionID]string)
		}
		out.Texts[id] = raw.Texts[key]
	}
	for id, key := range sectionKeysOf(raw.Heights) {
		v := raw.Heights[key]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if out.Heights == nil {
			out.Heights = make(map[SectionID]int)
		}
		out.Heights[id] = clampHeight(v)
	}

	*o = out
	return nil
}

// sectionKeysOf picks, for every section addressed in m, the one key whose
// value applies.
func sectionKeysOf[V any](m map[string]V) map[SectionID]string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	picked := make(map[SectionID]string, len(keys))
	for _, key := range keys {
		id, ok := ParseSectionID(key)
		if !ok {
			continue
		}
		prev, seen := picked[id]
		if !seen || (key == id.String() && prev != key) {
			picked[id] = key
		}
	}
	return picked
}

// maxDecodedHeight bounds heights before the float-to-int conversion; anything
// larger is capped downstream anyway.
const maxDecodedHeight = 1 << 20

func clampHeight(v float64) int {
	switch {
	case v > maxDecodedHeight:
		return maxDecodedHeight
	case v < -maxDecodedHeight:
		return -maxDecodedHeight
	}
	return int(math.Round(v))
}

// MarshalJSON encodes the set back into the editor's wire shape.
func (o OverrideSet) MarshalJSON() ([]byte, error) {
	raw := rawOverrides{}
	if len(o.Images) > 0 {
		raw.Images = make(map[string]string, len(o.Images))
		for id, v := range o.Images {
			raw.Images[id.String()] = v
		}
	}
	if len(o.Texts) > 0 {
		raw.Texts = make(map[string]string, len(o.Texts))
		for id, v := range o.Texts {
			raw.Texts[id.String()] = v
		}
	}
	if len(o.Heights) > 0 {
		raw.Heights = make(map[string]float64, len(o.Heights))
		for id, v := range o.Heights {
			raw.Heights[id.String()] = float64(v)
		}
	}
	return json.Marshal(raw)
}
