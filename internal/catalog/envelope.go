package catalog

import "encoding/json"

// decodeFlexibleList tolerates the historical list envelopes the upstream
// has shipped for category and brand endpoints: a bare array, {data:[...]},
// {data:{docs:[...]}}, and {docs:[...]}. All normalize to a plain slice; an
// unrecognized shape yields an empty one.
func decodeFlexibleList[T any](payload []byte) []T {
	var bare []T
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
		Docs json.RawMessage `json:"docs"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return []T{}
	}

	if len(envelope.Data) > 0 {
		var list []T
		if err := json.Unmarshal(envelope.Data, &list); err == nil {
			return list
		}

		var nested struct {
			Docs []T `json:"docs"`
		}
		if err := json.Unmarshal(envelope.Data, &nested); err == nil && nested.Docs != nil {
			return nested.Docs
		}
	}

	if len(envelope.Docs) > 0 {
		var list []T
		if err := json.Unmarshal(envelope.Docs, &list); err == nil {
			return list
		}
	}

	return []T{}
}
