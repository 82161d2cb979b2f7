package profile

import "strings"

// Resolve walks a dot-delimited path from root. A missing key or a
// non-mapping intermediate yields Null rather than an error.
func Resolve(root Value, path string) Value {
	cur := root
	for _, part := range strings.Split(path, ".") {
		if cur.kind != Map {
			return Value{}
		}
		next, ok := cur.m[part]
		if !ok {
			return Value{}
		}
		cur = next
	}
	return cur
}
