package catalog

import (
	"bytes"
	"encoding/json"
	"regexp"
)

var objectIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// IsObjectID reports whether s is shaped like an opaque database identifier:
// exactly 24 hexadecimal characters, case-insensitive.
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}

// RefKind classifies an ambiguous reference field.
type RefKind int

const (
	// RefUnresolved means the field was absent or carried nothing usable.
	RefUnresolved RefKind = iota
	// RefID means only an opaque identifier survived classification.
	RefID
	// RefNamed means a displayable name was found; an identifier may also
	// be present alongside it.
	RefNamed
)

// Ref is the decoded form of a field that may arrive as a bare identifier
// string, a plain name string, or a populated object.
type Ref struct {
	Kind RefKind
	Name string
	ID   string
}

// refObject covers the populated-object wire shape for brands and categories.
type refObject struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// DecodeRef classifies a raw reference field. When slugFallback is true an
// object's slug stands in for a missing name, which matches how upstream
// category objects are labeled; brand objects use the name alone.
func DecodeRef(raw json.RawMessage, slugFallback bool) Ref {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Ref{Kind: RefUnresolved}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return Ref{Kind: RefUnresolved}
		}
		if IsObjectID(s) {
			return Ref{Kind: RefID, ID: s}
		}
		return Ref{Kind: RefNamed, Name: s}
	}

	var obj refObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Ref{Kind: RefUnresolved}
	}

	label := obj.Name
	if label == "" && slugFallback {
		label = obj.Slug
	}

	id := ""
	if IsObjectID(obj.ID) {
		id = obj.ID
	}

	if label != "" && !IsObjectID(label) {
		return Ref{Kind: RefNamed, Name: label, ID: id}
	}
	if id != "" {
		return Ref{Kind: RefID, ID: id}
	}
	return Ref{Kind: RefUnresolved}
}
