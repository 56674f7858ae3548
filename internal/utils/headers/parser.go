package headers

import (
	"fmt"
	"strings"
)

// ParseHeaders converts header strings ("Key: Value") into a map. An entry
// without a colon or with an empty name is an error. Later entries win.
func ParseHeaders(h []string) (map[string]string, error) {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		name, value, ok := strings.Cut(hdr, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: expected \"Name: value\"", hdr)
		}
		if strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("invalid header name %q", name)
		}
		m[name] = strings.TrimSpace(value)
	}
	return m, nil
}
