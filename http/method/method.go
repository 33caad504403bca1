// Package method holds the fixed, ordered table of HTTP method tokens.
// Rather than carrying a string around, the rest of the module identifies
// a request's method by its index into List.
package method

// Index identifies a method by its position in List.
type Index int

// Unknown is returned by Parse when the token doesn't match any entry.
const Unknown Index = -1

// List is the canonical, ordered method table. Its order is part of the
// external ABI: callers are handed indexes into this exact slice, so
// entries must never be reordered, only appended to.
var List = []string{
	"DELETE",
	"GET",
	"HEAD",
	"POST",
	"PUT",
	"CONNECT",
	"OPTIONS",
	"TRACE",
	"COPY",
	"LOCK",
	"MKCOL",
	"MOVE",
	"PROPFIND",
	"PROPPATCH",
	"SEARCH",
	"UNLOCK",
	"BIND",
	"REBIND",
	"UNBIND",
	"ACL",
	"REPORT",
	"MKACTIVITY",
	"CHECKOUT",
	"MERGE",
	"M-SEARCH",
	"NOTIFY",
	"SUBSCRIBE",
	"UNSUBSCRIBE",
	"PATCH",
	"PURGE",
	"MKCALENDAR",
	"LINK",
	"UNLINK",
}

// Connect is the only method the framing resolver treats specially: it
// implies an upgrade even without an explicit Upgrade header.
const Connect = "CONNECT"

// Parse does a case-sensitive linear scan over List. 33 entries is short
// enough that a perfect hash or trie buys nothing over a plain scan.
func Parse(token string) Index {
	for i, name := range List {
		if name == token {
			return Index(i)
		}
	}

	return Unknown
}

// Name returns the canonical spelling for idx, or "" if out of range.
func Name(idx Index) string {
	if idx < 0 || int(idx) >= len(List) {
		return ""
	}

	return List[idx]
}
