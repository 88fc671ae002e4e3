package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type entry struct {
	key   string
	value any
}

// Payload is a JSON object whose keys keep insertion order.
type Payload struct {
	entries []entry
}

func (p *Payload) set(key string, value any) {
	for i := range p.entries {
		if p.entries[i].key == key {
			p.entries[i].value = value
			return
		}
	}
	p.entries = append(p.entries, entry{key: key, value: value})
}

// Get returns the value stored under key.
func (p Payload) Get(key string) (any, bool) {
	for _, e := range p.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// Keys returns the keys in encoding order.
func (p Payload) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.key
	}
	return keys
}

func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, e := range p.entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := json.Marshal(e.value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", e.key, err)
		}
		buf.Write(v)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
