package docdex

import "encoding/json"

// RawRecord is an undecoded candidate record as it appeared on the wire.
// The loader treats the artifact as untrusted input, so fields are coerced
// individually by SanitizeRecord rather than decoded into typed fields.
type RawRecord map[string]any

// DecodeArtifact normalizes the three accepted wire shapes of an index
// artifact into a uniform record sequence, preserving original order:
//
//	DocumentRecord[]                  current format
//	{ "children": DocumentRecord[] }  legacy wrapper
//	DocumentRecord                    single-document fallback
//
// All shape tolerance lives here; nothing downstream inspects the wire
// shape again. Non-object elements inside a collection become nil records
// so the validity filter drops them and the drop stays observable in
// store statistics. Invalid JSON or a non-object, non-array payload
// returns EINVALID.
func DecodeArtifact(data []byte) ([]RawRecord, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, Errorf(EINVALID, "invalid index artifact JSON: %v", err)
	}

	switch v := payload.(type) {
	case []any:
		return collectRecords(v), nil
	case map[string]any:
		if children, ok := v["children"]; ok {
			list, ok := children.([]any)
			if !ok {
				return nil, nil
			}
			return collectRecords(list), nil
		}
		return []RawRecord{RawRecord(v)}, nil
	default:
		return nil, Errorf(EINVALID, "index artifact must be an object or array, got %T", payload)
	}
}

func collectRecords(list []any) []RawRecord {
	records := make([]RawRecord, len(list))
	for i, item := range list {
		if obj, ok := item.(map[string]any); ok {
			records[i] = RawRecord(obj)
		}
	}
	return records
}
