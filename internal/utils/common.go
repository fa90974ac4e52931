// Package utils holds small string helpers shared by config and store.
package utils

import (
	"strconv"
	"strings"
)

// SplitAndTrim splits s on sep, trims each part and drops empty parts. The
// result is never nil.
func SplitAndTrim(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// pointerUnescaper undoes RFC 6901 escaping; ~1 must be replaced first.
var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// JSONPointerToPath turns a JSON Pointer (RFC 6901), optionally in URI
// fragment form, into the dotted path used in error messages:
// "#/items/2/due_date" becomes "items[2].due_date".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")

	var b strings.Builder
	for _, token := range strings.Split(ptr, "/") {
		token = pointerUnescaper.Replace(token)
		switch {
		case token == "":
		case isIndex(token):
			b.WriteString("[" + token + "]")
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(token)
		}
	}
	return b.String()
}

func isIndex(token string) bool {
	_, err := strconv.Atoi(token)
	return err == nil
}
