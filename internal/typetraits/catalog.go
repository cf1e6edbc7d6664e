// Package typetraits holds the build-time catalog mapping IDL primitive types
// to their native C++ and N-API representations.
package typetraits

// Entry describes how one IDL type crosses the JavaScript/C++ boundary.
type Entry struct {
	// IDLType is the type as spelled in the schema, e.g. "unsigned long".
	IDLType string
	// NativeType is the C++ value type.
	NativeType string
	// ArgType is the C++ type used for by-reference arguments.
	ArgType string
	// NapiType is the napi_valuetype the JavaScript value must have.
	NapiType string
	// JSType is the JavaScript type name used in error messages.
	JSType string
	// Numeric reports whether the value is converted through a JS number.
	Numeric bool
}

// catalog is the central source of truth for type properties. Order is
// significant: it is the order of the generated trait table.
var catalog = []Entry{
	{IDLType: "boolean", NativeType: "bool", ArgType: "bool", NapiType: "napi_boolean", JSType: "boolean"},
	{IDLType: "byte", NativeType: "int8_t", ArgType: "int8_t", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "octet", NativeType: "uint8_t", ArgType: "uint8_t", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "short", NativeType: "int16_t", ArgType: "int16_t", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "unsigned short", NativeType: "uint16_t", ArgType: "uint16_t", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "long", NativeType: "int32_t", ArgType: "int32_t", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "unsigned long", NativeType: "uint32_t", ArgType: "uint32_t", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "long long", NativeType: "int64_t", ArgType: "int64_t", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "unsigned long long", NativeType: "uint64_t", ArgType: "uint64_t", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "float", NativeType: "float", ArgType: "float", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "double", NativeType: "double", ArgType: "double", NapiType: "napi_number", JSType: "number", Numeric: true},
	{IDLType: "DOMString", NativeType: "std::string", ArgType: "const std::string&", NapiType: "napi_string", JSType: "string"},
	{IDLType: "object", NativeType: "Napi::Object", ArgType: "const Napi::Object&", NapiType: "napi_object", JSType: "object"},
}

// aliases maps IDL spellings that share a representation with a catalog
// entry. They do not get their own trait specialization.
var aliases = map[string]string{
	"unrestricted float":  "float",
	"unrestricted double": "double",
	"ByteString":          "DOMString",
	"USVString":           "DOMString",
}

var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, e := range catalog {
		m[e.IDLType] = i
	}
	return m
}()

// Entries returns a copy of the catalog in table order.
func Entries() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the entry for an IDL type name, following aliases.
func Lookup(idlType string) (Entry, bool) {
	if target, ok := aliases[idlType]; ok {
		idlType = target
	}
	i, ok := index[idlType]
	if !ok {
		return Entry{}, false
	}
	return catalog[i], true
}

// NativeType returns the C++ value type for an IDL type name. Unknown names
// (interfaces, enums, dictionaries) are returned unchanged.
func NativeType(idlType string) string {
	if e, ok := Lookup(idlType); ok {
		return e.NativeType
	}
	return idlType
}

// ArgType returns the C++ argument type for an IDL type name. Unknown names
// are passed by const reference.
func ArgType(idlType string) string {
	if e, ok := Lookup(idlType); ok {
		return e.ArgType
	}
	return "const " + idlType + "&"
}

// JSType returns the JavaScript type label for an IDL type name.
func JSType(idlType string) string {
	if e, ok := Lookup(idlType); ok {
		return e.JSType
	}
	return "object"
}
