package profile

// indicatorKeys are checked in this order before falling back to the
// non-empty rule for maps.
var indicatorKeys = [...]string{"exists", "enabled", "conducted", "documented"}

// Truthy reports whether evidence counts as present.
//
// Numbers are always present, zero included. A map carrying one of the
// indicator keys is decided by that key alone, so {"exists": false, ...}
// fails no matter what else it holds.
func (v Value) Truthy() bool {
	switch v.kind {
	case Null:
		return false
	case Bool:
		return v.b
	case Map:
		for _, k := range indicatorKeys {
			if x, ok := v.m[k]; ok {
				return x.Bool()
			}
		}
		return len(v.m) > 0
	case List, String:
		return v.Len() > 0
	case Int, Float:
		return true
	default:
		return v.Bool()
	}
}

// Bool is the plain boolean cast: zero numbers, empty strings and empty
// containers are false.
func (v Value) Bool() bool {
	switch v.kind {
	case Bool:
		return v.b
	case Int:
		return v.i != 0
	case Float:
		return v.f != 0
	case String:
		return v.s != ""
	case List:
		return len(v.list) > 0
	case Map:
		return len(v.m) > 0
	default:
		return false
	}
}
