package data

import "encoding/json"

// Ref is a lightweight handle on a related record. Only the name is
// serialized.
type Ref struct {
	ID   int64
	Name string
}

// Refs serializes as a flat JSON array of names, never null.
type Refs []Ref

func (r Refs) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(r))
	for _, ref := range r {
		names = append(names, ref.Name)
	}

	return json.Marshal(names)
}

func (r Refs) Names() []string {
	names := make([]string, len(r))
	for i, ref := range r {
		names[i] = ref.Name
	}

	return names
}
