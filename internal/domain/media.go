package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MediaCandidate describes one asset row for one record, as supplied by the
// asset-tracking backend. Multiple candidates may exist per record; the
// headshot resolver picks exactly one as canonical.
type MediaCandidate struct {
	RecordID string `json:"record_id"`

	// Kind discriminates asset types. Matching is case and separator
	// insensitive: "headshot", "head_shot", and "head-shot" all count.
	Kind string `json:"kind"`

	// FileID identifies an asset in upstream file storage. A candidate
	// carries a FileID, an ExternalURL, or both.
	FileID      string `json:"file_id,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`

	// UploadedAt is an upstream timestamp string. Unparseable values are
	// treated as epoch 0, never as errors.
	UploadedAt string `json:"uploaded_at,omitempty"`

	// IsCurrent and SortIndex arrive loosely typed from the asset backend;
	// LooseValue preserves whatever JSON shape was sent.
	IsCurrent LooseValue `json:"is_current,omitempty"`
	SortIndex LooseValue `json:"sort_index,omitempty"`
}

// LooseValue accepts a JSON string, number, boolean, or null and keeps its
// text form. Upstream asset rows are inconsistent about types ("true" vs
// true, "2" vs 2), and the engine degrades rather than rejects.
type LooseValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *LooseValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = LooseValue(s)
		return nil
	}
	// Numbers and booleans keep their literal text.
	*v = LooseValue(b)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v LooseValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

// String returns the text form.
func (v LooseValue) String() string {
	return string(v)
}

// Int parses the value as an integer.
func (v LooseValue) Int() (int, bool) {
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return 0, false
	}
	return n, true
}
