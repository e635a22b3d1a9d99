package normalize

import (
	"strings"

	"github.com/tidwall/sjson"
)

// Payload builds an outgoing JSON object. The backend's accepted field
// naming is not fixed, so values can be written under several aliases.
// The first error encountered is retained and reported by Bytes.
type Payload struct {
	data []byte
	err  error
}

// NewPayload returns an empty JSON object payload.
func NewPayload() *Payload {
	return &Payload{data: []byte("{}")}
}

// Set writes value under key.
func (p *Payload) Set(key string, value any) *Payload {
	return p.SetAliased(value, key)
}

// SetAliased writes value under every key.
func (p *Payload) SetAliased(value any, keys ...string) *Payload {
	for _, k := range keys {
		if p.err != nil {
			return p
		}
		p.data, p.err = sjson.SetBytes(p.data, escape(k), value)
	}
	return p
}

// SetTrimmed writes the trimmed value under every key. A nil value or one
// that is blank after trimming is left absent.
func (p *Payload) SetTrimmed(value *string, keys ...string) *Payload {
	if value == nil {
		return p
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return p
	}
	return p.SetAliased(v, keys...)
}

// SetNonEmpty writes value under every key unless it is empty.
func (p *Payload) SetNonEmpty(value string, keys ...string) *Payload {
	if value == "" {
		return p
	}
	return p.SetAliased(value, keys...)
}

// Bytes returns the encoded object.
func (p *Payload) Bytes() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.data, nil
}
