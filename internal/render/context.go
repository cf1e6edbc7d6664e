package render

import (
	"strings"
	"unicode"

	"github.com/idlbridge/idlbridge/internal/idl"
	"github.com/idlbridge/idlbridge/internal/naming"
	"github.com/idlbridge/idlbridge/internal/typetraits"
)

// TypeTraitsContext is the data of the type-trait table template.
type TypeTraitsContext struct {
	Types        []typetraits.Entry
	IncludeGuard string
}

// InterfaceContext is the data of the bridge header and implementation
// templates. Paths are slash-separated and relative to the output root.
type InterfaceContext struct {
	Name       string
	SnakeName  string
	IDLDirName string
	// HeaderPath is the generated bridge header.
	HeaderPath string
	// ImplPath is the generated bridge implementation.
	ImplPath string
	// NativeHeaderPath is the hand-written class the bridge wraps.
	NativeHeaderPath string
	// TypeTraitsHeader is the generated trait table.
	TypeTraitsHeader string
	IncludeGuard     string
	Body             idl.Body
}

// RegistrationContext is the data of the aggregate registration template.
type RegistrationContext struct {
	ModuleName string
	Interfaces []InterfaceContext
}

// Names returns the interface names in registration order.
func (c RegistrationContext) Names() []string {
	names := make([]string, len(c.Interfaces))
	for i, iface := range c.Interfaces {
		names[i] = iface.Name
	}
	return names
}

// NewTypeTraitsContext builds the trait table context for the header at
// headerPath.
func NewTypeTraitsContext(types []typetraits.Entry, headerPath string) TypeTraitsContext {
	return TypeTraitsContext{
		Types:        types,
		IncludeGuard: IncludeGuard(headerPath),
	}
}

// NewInterfaceContext builds the bridge context of def. The definition is
// copied, never modified.
func NewInterfaceContext(def idl.Definition, headerPath, implPath, nativeHeaderPath, typeTraitsHeader string) InterfaceContext {
	return InterfaceContext{
		Name:             def.Name,
		SnakeName:        naming.SnakeCase(def.Name),
		IDLDirName:       def.IDLDirName,
		HeaderPath:       headerPath,
		ImplPath:         implPath,
		NativeHeaderPath: nativeHeaderPath,
		TypeTraitsHeader: typeTraitsHeader,
		IncludeGuard:     IncludeGuard(headerPath),
		Body:             def.Body,
	}
}

// NewRegistrationContext builds the registration context.
func NewRegistrationContext(moduleName string, interfaces []InterfaceContext) RegistrationContext {
	return RegistrationContext{ModuleName: moduleName, Interfaces: interfaces}
}

// IncludeGuard derives a C preprocessor guard from a header path, e.g.
// "ui/widget_bridge.h" -> "UI_WIDGET_BRIDGE_H_".
func IncludeGuard(headerPath string) string {
	var b strings.Builder
	for _, r := range strings.TrimPrefix(headerPath, "./") {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteByte('_')
	return b.String()
}
