// Package leveldata decodes level and pool documents shared by every
// frontend. It has no dependencies on ebiten or donburi.
package leveldata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Level is the raw, unvalidated content of one level document.
type Level struct {
	Name     string          `json:"-"`
	Surfaces []SurfaceRecord `json:"surfaces"`
	Features []string        `json:"features,omitempty"`
}

// SurfaceRecord is one [startX, startY, length, facing, virtual?] entry.
type SurfaceRecord struct {
	StartX, StartY float64
	Length         float64
	Facing         float64
	Virtual        bool
}

// Pool lists level refs a sequence is sampled from.
type Pool struct {
	Values []string `json:"values"`
}

func (r *SurfaceRecord) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("surface must be an array: %w", err)
	}
	if len(raw) != 4 && len(raw) != 5 {
		return fmt.Errorf("surface must have 4 or 5 elements, got %d", len(raw))
	}

	nums := [4]*float64{&r.StartX, &r.StartY, &r.Length, &r.Facing}
	for i, dst := range nums {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return fmt.Errorf("surface element %d: %w", i, err)
		}
	}

	r.Virtual = false
	if len(raw) == 5 && !bytes.Equal(bytes.TrimSpace(raw[4]), []byte("null")) {
		if err := json.Unmarshal(raw[4], &r.Virtual); err != nil {
			return fmt.Errorf("surface element 4: %w", err)
		}
	}
	return nil
}

func (r SurfaceRecord) MarshalJSON() ([]byte, error) {
	if r.Virtual {
		return json.Marshal([]any{r.StartX, r.StartY, r.Length, r.Facing, true})
	}
	return json.Marshal([]float64{r.StartX, r.StartY, r.Length, r.Facing})
}
