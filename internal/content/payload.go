package content

import "encoding/json"

// Payload is the arbitrary nested record stored for one screen slug.
// Field values are any mix of scalars, lists of item records and nested
// objects; no shape is agreed ahead of time.
type Payload map[string]Value

// ParsePayload deserializes a payload from its stored text form.
func ParsePayload(raw []byte) (Payload, error) {
	var value Value
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	if value.Kind() != KindObject {
		// Stored payloads are always objects; tolerate anything else by
		// wrapping it so a malformed row cannot take the whole list down.
		return Payload{"value": value}, nil
	}
	return Payload(value.Fields()), nil
}

// Encode serializes the payload for storage or the wire.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(Object(map[string]Value(p)))
}

// MarshalJSON implements json.Marshaler.
func (p Payload) MarshalJSON() ([]byte, error) {
	return p.Encode()
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Payload) UnmarshalJSON(data []byte) error {
	parsed, err := ParsePayload(data)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Clone returns a deep copy of the payload.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	copied := make(Payload, len(p))
	for name, value := range p {
		copied[name] = value.Clone()
	}
	return copied
}

// Merge returns a copy of p with the fields of partial laid over it.
// The merge is shallow at the top level: a field present in partial
// replaces the previous value wholesale, matching the whole-payload
// replace contract of the transport API.
func (p Payload) Merge(partial Payload) Payload {
	merged := p.Clone()
	if merged == nil {
		merged = Payload{}
	}
	for name, value := range partial {
		merged[name] = value.Clone()
	}
	return merged
}

// FieldNames returns the payload's field names in sorted order.
func (p Payload) FieldNames() []string {
	return Object(map[string]Value(p)).FieldNames()
}
