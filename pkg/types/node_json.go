package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// nodeFields has Node's layout without its JSON methods.
type nodeFields Node

// nodeKeys are the JSON fields Node maps to struct fields. Anything else
// is kept in Extra.
var nodeKeys = map[string]bool{
	"id": true, "type": true, "parentId": true, "title": true,
	"subtitle": true, "content": true, "tags": true, "updatedAt": true,
}

// timestampLayouts are tried in order when decoding updatedAt strings.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// UnmarshalJSON decodes a stored node. updatedAt is read leniently: an
// empty, unparseable or missing value yields the zero time, and a number is
// taken as Unix milliseconds. Unknown fields are kept in Extra.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w struct {
		nodeFields
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*n = Node(w.nodeFields)
	n.UpdatedAt = parseTimestamp(w.UpdatedAt)
	n.Extra = nil
	for k, v := range fields {
		if nodeKeys[k] {
			continue
		}
		if n.Extra == nil {
			n.Extra = make(map[string]json.RawMessage)
		}
		n.Extra[k] = v
	}
	return nil
}

// MarshalJSON writes the node fields followed by any Extra fields.
func (n Node) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(nodeFields(n))
	if err != nil || len(n.Extra) == 0 {
		return data, err
	}
	merged := make(map[string]json.RawMessage, len(nodeKeys)+len(n.Extra))
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range n.Extra {
		if nodeKeys[k] || !json.Valid(v) {
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

func parseTimestamp(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}
	if raw[0] != '"' {
		ms, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return time.Time{}
		}
		return time.UnixMilli(int64(ms)).UTC()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
