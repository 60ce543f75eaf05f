package docdex

import "encoding/json"

// FacetValue holds one facet's value: either a single string or a set of
// strings. On the wire it serializes as a bare string or a string array.
type FacetValue struct {
	Value  string
	Values []string
}

// IsSet reports whether the facet holds a set of strings.
func (v FacetValue) IsSet() bool {
	return v.Values != nil
}

// MarshalJSON encodes the facet as a string or a string array.
func (v FacetValue) MarshalJSON() ([]byte, error) {
	if v.IsSet() {
		return json.Marshal(v.Values)
	}
	return json.Marshal(v.Value)
}

// UnmarshalJSON decodes either wire form. Non-string array elements are
// dropped; scalar non-strings are stringified by the sanitizer, not here.
func (v *FacetValue) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err == nil {
		v.Values = values
		v.Value = ""
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	v.Value = value
	v.Values = nil
	return nil
}

// StringFacet returns a FacetValue holding a single string.
func StringFacet(s string) FacetValue {
	return FacetValue{Value: s}
}

// SetFacet returns a FacetValue holding a set of strings.
func SetFacet(values ...string) FacetValue {
	return FacetValue{Values: values}
}
