// Package templates embeds the default template set.
package templates

import (
	"embed"
	"io/fs"
)

// Names of the templates bound to generated artifacts.
const (
	TypeTraits      = "type_traits.h.tmpl"
	InterfaceHeader = "interface_header.h.tmpl"
	InterfaceImpl   = "interface_impl.cc.tmpl"
	Registration    = "registration.cc.tmpl"

	// Config is the template `idlbridge init` writes; it is not part of a
	// generation run.
	Config = "idlbridge.yaml.tmpl"
)

//go:embed *.tmpl
var templatesFS embed.FS

// Required returns the templates every generation run loads.
func Required() []string {
	return []string{TypeTraits, InterfaceHeader, InterfaceImpl, Registration}
}

// FS returns the embedded template set.
func FS() fs.FS {
	return templatesFS
}
