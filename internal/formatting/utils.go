package formatting

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PrettyJSON formats any value as indented JSON for human-readable display.
// HTML characters are left as they are. Marshaling errors fall back to
// fmt.Sprintf.
//
// Example:
//
//	data := map[string]interface{}{"name": "test", "value": 42}
//	fmt.Println(formatting.PrettyJSON(data))
//	// Output:
//	// {
//	//   "name": "test",
//	//   "value": 42
//	// }
func PrettyJSON(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// Readable renders a remote value as displayable content: a string is
// returned unchanged, anything else as indented JSON.
func Readable(v interface{}) []byte {
	if s, ok := v.(string); ok {
		return []byte(s)
	}
	return []byte(PrettyJSON(v))
}
