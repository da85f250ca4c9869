package combos

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Character is a playable character as discovered on the landing page.
type Character struct {
	Name        string
	ListingPath string
}

type MoveKind string

const (
	MoveImage MoveKind = "img"
	MoveText  MoveKind = "text"
)

// MoveStep is one unit of a combo's input sequence. Icon is only set
// for MoveImage steps and holds the basename of the downloaded icon.
type MoveStep struct {
	Kind MoveKind `json:"type"`
	Name string   `json:"name"`
	Icon string   `json:"img,omitempty"`
}

func ImageStep(name, icon string) MoveStep {
	return MoveStep{Kind: MoveImage, Name: name, Icon: icon}
}

func TextStep(name string) MoveStep {
	return MoveStep{Kind: MoveText, Name: name}
}

// ComboRecord is a single normalized combo listing. Hits and Damage are
// kept as they appear on the site ("10 hits", "55 damages").
type ComboRecord struct {
	ID     *string    `json:"id"`
	Hits   string     `json:"hits"`
	Damage string     `json:"damage"`
	Moves  []MoveStep `json:"moves"`
	Text   string     `json:"text"`
}

// ResultSet maps character names to their combos, preserving the order
// in which characters were inserted.
type ResultSet struct {
	keys   []string
	values map[string][]ComboRecord
}

func NewResultSet() *ResultSet {
	return &ResultSet{values: map[string][]ComboRecord{}}
}

// Set inserts or replaces the combos of a character. Replacing keeps the
// original position.
func (r *ResultSet) Set(character string, records []ComboRecord) {
	if r.values == nil {
		r.values = map[string][]ComboRecord{}
	}
	if _, exists := r.values[character]; !exists {
		r.keys = append(r.keys, character)
	}
	if records == nil {
		records = []ComboRecord{}
	}
	r.values[character] = records
}

func (r *ResultSet) Get(character string) ([]ComboRecord, bool) {
	records, ok := r.values[character]
	return records, ok
}

func (r *ResultSet) Characters() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *ResultSet) Len() int {
	return len(r.keys)
}

func (r *ResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		records, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(records)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *ResultSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	r.keys = nil
	r.values = map[string][]ComboRecord{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected character name, got %v", tok)
		}
		var records []ComboRecord
		err = dec.Decode(&records)
		if err != nil {
			return fmt.Errorf("decode combos of %s: %w", key, err)
		}
		r.Set(key, records)
	}
	_, err = dec.Token()
	return err
}
