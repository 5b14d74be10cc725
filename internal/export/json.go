package export

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/san-kum/galaxy/internal/galaxy"
)

// Document is the JSON export of one galaxy.
type Document struct {
	ID         string            `json:"id,omitempty"`
	Seed       int64             `json:"seed"`
	Generation uint64            `json:"generation"`
	Params     galaxy.Parameters `json:"params"`
	Count      int               `json:"count"`
	Positions  []float32         `json:"positions"`
	Colors     []float32         `json:"colors"`
}

func WriteJSON(w io.Writer, id string, seed int64, b *galaxy.Buffers) error {
	if b == nil || b.Released() {
		return errors.New("export: buffers already released")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{
		ID:         id,
		Seed:       seed,
		Generation: b.Generation,
		Params:     b.Params,
		Count:      b.Len(),
		Positions:  b.Positions,
		Colors:     b.Colors,
	})
}
