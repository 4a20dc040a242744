package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexID absorbs the store API's loose identifier encoding: numeric ids on
// products and orders, string ids elsewhere. It always renders as a string.
type FlexID string

func (f FlexID) String() string { return string(f) }

func (f FlexID) IsZero() bool { return f == "" }

func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f *FlexID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}
