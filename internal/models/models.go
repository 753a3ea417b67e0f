package models

// Kind identifies which variant a JSONValue holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// JSONValue is a parsed JSON value. Exactly one payload field is meaningful,
// selected by Kind. Object members keep the order in which their keys first
// appeared in the source document.
type JSONValue struct {
	Kind    Kind
	Bool    bool
	Number  string // literal text as it appeared in the input
	String  string
	Array   []JSONValue
	Members []Member
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value JSONValue
}

// NullValue returns the JSON null value.
func NullValue() JSONValue { return JSONValue{Kind: Null} }

// BoolValue wraps a boolean.
func BoolValue(b bool) JSONValue { return JSONValue{Kind: Bool, Bool: b} }

// NumberValue wraps the literal text of a number.
func NumberValue(text string) JSONValue { return JSONValue{Kind: Number, Number: text} }

// StringValue wraps a string.
func StringValue(s string) JSONValue { return JSONValue{Kind: String, String: s} }

// ArrayValue wraps a list of elements.
func ArrayValue(elems ...JSONValue) JSONValue {
	if elems == nil {
		elems = []JSONValue{}
	}
	return JSONValue{Kind: Array, Array: elems}
}

// ObjectValue wraps an ordered list of members.
func ObjectValue(members ...Member) JSONValue {
	if members == nil {
		members = []Member{}
	}
	return JSONValue{Kind: Object, Members: members}
}

// Get returns the value stored under key and whether it exists.
func (v JSONValue) Get(key string) (JSONValue, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return JSONValue{}, false
}

// Keys returns the object's keys in document order.
func (v JSONValue) Keys() []string {
	keys := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	return keys
}

