package http

import (
	"sort"
	"strconv"
)

// appendCRLF appends \r\n to buf.
func appendCRLF(buf []byte) []byte {
	return append(buf, '\r', '\n')
}

// appendRequestLine appends "METHOD TARGET HTTP/VERSION\r\n" to buf.
func appendRequestLine(buf []byte, method, target, version string) []byte {
	buf = append(buf, method...)
	buf = append(buf, ' ')
	buf = append(buf, target...)
	buf = append(buf, " HTTP/"...)
	buf = append(buf, version...)
	return appendCRLF(buf)
}

// appendStatusLine appends "HTTP/VERSION CODE REASON\r\n" to buf.
func appendStatusLine(buf []byte, version string, st Status) []byte {
	buf = append(buf, "HTTP/"...)
	buf = append(buf, version...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(st.code), 10)
	buf = append(buf, ' ')
	buf = append(buf, st.reason...)
	return appendCRLF(buf)
}

// appendHeaders appends one "Name: v1, v2\r\n" line per logical header.
func appendHeaders(buf []byte, h Headers) []byte {
	for _, k := range h.keys {
		f := h.fields[k]
		buf = append(buf, f.Name...)
		buf = append(buf, ':', ' ')
		for i, v := range f.Values {
			if i > 0 {
				buf = append(buf, ',', ' ')
			}
			buf = append(buf, v...)
		}
		buf = appendCRLF(buf)
	}
	return buf
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
