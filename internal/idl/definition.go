// Package idl parses the WebIDL subset understood by idlbridge into
// top-level Definitions.
package idl

import (
	"strings"
)

// Kind is the kind of a top-level declaration.
type Kind string

const (
	KindInterface        Kind = "interface"
	KindPartialInterface Kind = "partial interface"
	KindDictionary       Kind = "dictionary"
	KindEnum             Kind = "enum"
	KindCallback         Kind = "callback"
	KindTypedef          Kind = "typedef"
	KindNamespace        Kind = "namespace"
	KindMixin            Kind = "interface mixin"
	KindImplements       Kind = "implements"
	KindIncludes         Kind = "includes"
)

// partial returns the kind of a partial declaration of k.
func partial(k Kind) Kind {
	return "partial " + k
}

// Definition is one parsed top-level schema declaration.
type Definition struct {
	// Name is the declared identifier.
	Name string
	// Kind is the declaration kind.
	Kind Kind
	// IDLDirName is the slash-separated directory of the declaring file
	// relative to the root directory ("." for the root itself).
	IDLDirName string
	// Body is the declaration content. The generator passes it to templates
	// without looking at it.
	Body Body
}

// IsInterface reports whether d is a full (non-partial) interface. This is
// the only predicate deciding whether a definition gets bridge files.
func (d Definition) IsInterface() bool {
	return d.Kind == KindInterface
}

// Body holds everything declared inside a definition. Which fields are set
// depends on the definition kind.
type Body struct {
	ExtAttrs     []ExtendedAttribute
	Inherits     string
	Constructors []Constructor
	Operations   []Operation
	Attributes   []Attribute
	Constants    []Constant
	EnumValues   []string
	Members      []DictionaryMember
	// SpecialOperations holds getters, setters and deleters, named or not.
	// Named ones also appear in Operations.
	SpecialOperations []Operation
	// Collections holds iterable, async iterable, maplike and setlike
	// declarations, e.g. Type{Name: "maplike", Params: [K, V]}.
	Collections []Type
	// Stringifier is set when the interface declares a stringifier.
	Stringifier bool
	// Target is the right-hand interface of an implements or includes
	// statement; the left-hand one is the definition name.
	Target string
	// Callback is the signature of a callback function.
	Callback *Operation
	// Typedef is the aliased type of a typedef.
	Typedef *Type
}

// StaticOperations returns the static operations in declaration order.
func (b Body) StaticOperations() []Operation {
	return filterOps(b.Operations, true)
}

// InstanceOperations returns the non-static operations in declaration order.
func (b Body) InstanceOperations() []Operation {
	return filterOps(b.Operations, false)
}

func filterOps(ops []Operation, static bool) []Operation {
	var out []Operation
	for _, op := range ops {
		if op.Static == static {
			out = append(out, op)
		}
	}
	return out
}

// Type is a reference to an IDL type.
type Type struct {
	// Name is the type name, e.g. "unsigned long", "DOMString", "sequence".
	Name string
	// Params holds the parameters of generic types such as sequence<T> and
	// the members of a union.
	Params []Type
	// Union is set for (A or B) types.
	Union    bool
	Nullable bool
}

// String renders t in IDL syntax.
func (t Type) String() string {
	var b strings.Builder
	switch {
	case t.Union:
		b.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(" or ")
			}
			b.WriteString(p.String())
		}
		b.WriteByte(')')
	case len(t.Params) > 0:
		b.WriteString(t.Name)
		b.WriteByte('<')
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteByte('>')
	default:
		b.WriteString(t.Name)
	}
	if t.Nullable {
		b.WriteByte('?')
	}
	return b.String()
}

// IsVoid reports whether t is void or undefined.
func (t Type) IsVoid() bool {
	return !t.Nullable && (t.Name == "void" || t.Name == "undefined")
}

// ExtendedAttribute is a bracketed annotation such as [Constructor(long x)]
// or [NamedConstructor=Image].
type ExtendedAttribute struct {
	Name      string
	Value     string
	Arguments []Argument
	// HasArgs distinguishes [Foo()] from [Foo].
	HasArgs bool
}

// Argument is an operation or constructor parameter.
type Argument struct {
	Name     string
	Type     Type
	Optional bool
	Variadic bool
	Default  string
}

// Constructor is one constructor overload.
type Constructor struct {
	Arguments []Argument
}

// Operation is a regular or static method.
type Operation struct {
	Name       string
	ReturnType Type
	Arguments  []Argument
	Static     bool
	// Special is "getter", "setter" or "deleter" for special operations.
	Special string
}

// Attribute is a regular or static attribute.
type Attribute struct {
	Name     string
	Type     Type
	ReadOnly bool
	Static   bool
}

// Constant is a const member.
type Constant struct {
	Name  string
	Type  Type
	Value string
}

// DictionaryMember is a dictionary field.
type DictionaryMember struct {
	Name     string
	Type     Type
	Required bool
	Default  string
}
