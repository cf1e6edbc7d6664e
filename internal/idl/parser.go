package idl

import (
	"regexp"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/idlbridge/idlbridge/internal/errors"
	"github.com/idlbridge/idlbridge/internal/loader"
)

// identPattern restricts definition names to ASCII identifiers so every
// name stays a valid C++ identifier after case conversion.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parser turns schema sources into Definitions.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses every source in order and returns the definitions in source
// order, then declaration order. The first syntax error aborts the parse.
func (p *Parser) Parse(sources []loader.Source) ([]Definition, error) {
	var defs []Definition
	for _, src := range sources {
		parsed, err := ParseFile(src.RelPath, src.Dir(), src.Text)
		if err != nil {
			return nil, err
		}
		defs = append(defs, parsed...)
	}
	return defs, nil
}

// ParseFile parses the text of a single schema file. filename is used in
// error positions only; dir becomes the IDLDirName of every definition.
func ParseFile(filename, dir, text string) ([]Definition, error) {
	fp := &fileParser{lex: newLexer(filename, text), dir: dir}
	return fp.parse()
}

type fileParser struct {
	lex *lexer
	dir string
}

func (p *fileParser) parse() ([]Definition, error) {
	var defs []Definition
	for p.lex.tok != scanner.EOF {
		def, err := p.definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if p.lex.err != nil {
		return nil, p.lex.err
	}
	return defs, nil
}

func (p *fileParser) definition() (Definition, error) {
	l := p.lex

	attrs, err := p.extAttrs()
	if err != nil {
		return Definition{}, err
	}

	def := Definition{IDLDirName: p.dir, Body: Body{ExtAttrs: attrs}}
	for _, a := range attrs {
		if a.Name == "Constructor" {
			def.Body.Constructors = append(def.Body.Constructors, Constructor{Arguments: a.Arguments})
		}
	}

	switch {
	case l.accept("interface"):
		def.Kind = KindInterface
		if l.accept("mixin") {
			def.Kind = KindMixin
		}
		err = p.interfaceDef(&def)
	case l.accept("partial"):
		err = p.partialDef(&def)
	case l.accept("namespace"):
		def.Kind = KindNamespace
		err = p.interfaceDef(&def)
	case l.accept("dictionary"):
		def.Kind = KindDictionary
		err = p.dictionaryDef(&def)
	case l.accept("enum"):
		def.Kind = KindEnum
		err = p.enumDef(&def)
	case l.accept("callback"):
		def.Kind = KindCallback
		err = p.callbackDef(&def)
	case l.accept("typedef"):
		def.Kind = KindTypedef
		err = p.typedefDef(&def)
	case l.tok == scanner.Ident:
		err = p.statement(&def)
	default:
		return Definition{}, l.errorf("expected definition")
	}
	if err != nil {
		return Definition{}, err
	}
	if err := l.expect(";"); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// name consumes a definition name and checks it is a plain ASCII identifier.
func (p *fileParser) name() (string, error) {
	pos := p.lex.pos
	name, err := p.lex.ident()
	if err != nil {
		return "", err
	}
	if !identPattern.MatchString(name) {
		return "", errors.Parse(nil, "%s: definition name %q is not an ASCII identifier", pos, name)
	}
	return name, nil
}

// partialDef parses the declaration following "partial".
func (p *fileParser) partialDef(def *Definition) error {
	l := p.lex
	switch {
	case l.accept("interface"):
		def.Kind = KindPartialInterface
		if l.accept("mixin") {
			def.Kind = partial(KindMixin)
		}
		return p.interfaceDef(def)
	case l.accept("dictionary"):
		def.Kind = partial(KindDictionary)
		return p.dictionaryDef(def)
	case l.accept("namespace"):
		def.Kind = partial(KindNamespace)
		return p.interfaceDef(def)
	default:
		return l.errorf("expected \"interface\", \"dictionary\" or \"namespace\" after \"partial\"")
	}
}

// statement parses "A implements B" and "A includes B".
func (p *fileParser) statement(def *Definition) error {
	l := p.lex
	name, err := p.name()
	if err != nil {
		return err
	}
	switch {
	case l.accept("implements"):
		def.Kind = KindImplements
	case l.accept("includes"):
		def.Kind = KindIncludes
	default:
		return l.errorf("expected definition")
	}
	def.Name = name
	def.Body.Target, err = l.ident()
	return err
}

func (p *fileParser) interfaceDef(def *Definition) error {
	l := p.lex
	name, err := p.name()
	if err != nil {
		return err
	}
	def.Name = name

	if l.accept(":") {
		if def.Body.Inherits, err = l.ident(); err != nil {
			return err
		}
	}
	if err := l.expect("{"); err != nil {
		return err
	}
	for !l.accept("}") {
		if l.tok == scanner.EOF {
			return l.errorf("unterminated %s %s", def.Kind, def.Name)
		}
		if err := p.interfaceMember(&def.Body); err != nil {
			return err
		}
	}
	return nil
}

func (p *fileParser) interfaceMember(body *Body) error {
	l := p.lex

	// Member-level extended attributes carry no meaning for the bridge.
	if _, err := p.extAttrs(); err != nil {
		return err
	}

	if l.accept("const") {
		return p.constant(body)
	}
	if l.accept("constructor") {
		args, err := p.argumentList()
		if err != nil {
			return err
		}
		body.Constructors = append(body.Constructors, Constructor{Arguments: args})
		return l.expect(";")
	}

	if l.accept("stringifier") {
		body.Stringifier = true
		if l.accept(";") {
			return nil
		}
	}
	if special := p.special(); special != "" {
		return p.specialOperation(body, special)
	}

	static := l.accept("static")
	l.accept("inherit")
	readOnly := l.accept("readonly")
	if l.is("iterable") || l.is("async") || l.is("maplike") || l.is("setlike") {
		return p.collection(body)
	}
	if l.accept("attribute") {
		typ, err := p.typ()
		if err != nil {
			return err
		}
		name, err := l.ident()
		if err != nil {
			return err
		}
		body.Attributes = append(body.Attributes, Attribute{Name: name, Type: typ, ReadOnly: readOnly, Static: static})
		return l.expect(";")
	}
	if readOnly {
		return l.errorf("expected \"attribute\" after \"readonly\"")
	}

	ret, err := p.typ()
	if err != nil {
		return err
	}
	name, err := l.ident()
	if err != nil {
		return err
	}
	args, err := p.argumentList()
	if err != nil {
		return err
	}
	body.Operations = append(body.Operations, Operation{Name: name, ReturnType: ret, Arguments: args, Static: static})
	return l.expect(";")
}

// special consumes a getter, setter or deleter qualifier.
func (p *fileParser) special() string {
	for _, kw := range []string{"getter", "setter", "deleter"} {
		if p.lex.accept(kw) {
			return kw
		}
	}
	return ""
}

// specialOperation parses the rest of a getter, setter or deleter. The
// operation name is optional; a named one is also a regular operation.
func (p *fileParser) specialOperation(body *Body, special string) error {
	l := p.lex
	ret, err := p.typ()
	if err != nil {
		return err
	}
	op := Operation{ReturnType: ret, Special: special}
	if l.tok == scanner.Ident {
		op.Name = l.text
		l.next()
	}
	if op.Arguments, err = p.argumentList(); err != nil {
		return err
	}
	body.SpecialOperations = append(body.SpecialOperations, op)
	if op.Name != "" {
		body.Operations = append(body.Operations, op)
	}
	return l.expect(";")
}

// collection parses iterable<V>, iterable<K, V>, async iterable<V>,
// maplike<K, V> and setlike<V> declarations.
func (p *fileParser) collection(body *Body) error {
	l := p.lex
	async := l.accept("async")
	typ, err := p.typ()
	if err != nil {
		return err
	}
	switch typ.Name {
	case "iterable":
	case "maplike", "setlike":
		if async {
			return l.errorf("expected \"iterable\" after \"async\"")
		}
	default:
		return l.errorf("expected \"iterable\", \"maplike\" or \"setlike\"")
	}
	if async {
		typ.Name = "async iterable"
		if l.is("(") {
			if _, err := p.argumentList(); err != nil {
				return err
			}
		}
	}
	body.Collections = append(body.Collections, typ)
	return l.expect(";")
}

func (p *fileParser) constant(body *Body) error {
	l := p.lex
	typ, err := p.typ()
	if err != nil {
		return err
	}
	name, err := l.ident()
	if err != nil {
		return err
	}
	if err := l.expect("="); err != nil {
		return err
	}
	value, err := p.value()
	if err != nil {
		return err
	}
	body.Constants = append(body.Constants, Constant{Name: name, Type: typ, Value: value})
	return l.expect(";")
}

func (p *fileParser) dictionaryDef(def *Definition) error {
	l := p.lex
	name, err := p.name()
	if err != nil {
		return err
	}
	def.Name = name

	if l.accept(":") {
		if def.Body.Inherits, err = l.ident(); err != nil {
			return err
		}
	}
	if err := l.expect("{"); err != nil {
		return err
	}
	for !l.accept("}") {
		if l.tok == scanner.EOF {
			return l.errorf("unterminated dictionary %s", def.Name)
		}
		if _, err := p.extAttrs(); err != nil {
			return err
		}
		member := DictionaryMember{Required: l.accept("required")}
		if member.Type, err = p.typ(); err != nil {
			return err
		}
		if member.Name, err = l.ident(); err != nil {
			return err
		}
		if l.accept("=") {
			if member.Default, err = p.value(); err != nil {
				return err
			}
		}
		def.Body.Members = append(def.Body.Members, member)
		if err := l.expect(";"); err != nil {
			return err
		}
	}
	return nil
}

func (p *fileParser) enumDef(def *Definition) error {
	l := p.lex
	name, err := p.name()
	if err != nil {
		return err
	}
	def.Name = name

	if err := l.expect("{"); err != nil {
		return err
	}
	for !l.accept("}") {
		if l.tok != scanner.String {
			return l.errorf("expected enum value string")
		}
		value, err := strconv.Unquote(l.text)
		if err != nil {
			return l.errorf("invalid enum value")
		}
		def.Body.EnumValues = append(def.Body.EnumValues, value)
		l.next()
		if !l.accept(",") && !l.is("}") {
			return l.errorf("expected \",\" or \"}\"")
		}
	}
	return nil
}

func (p *fileParser) callbackDef(def *Definition) error {
	l := p.lex
	if l.accept("interface") {
		def.Kind = KindCallback
		return p.interfaceDef(def)
	}

	name, err := p.name()
	if err != nil {
		return err
	}
	def.Name = name

	if err := l.expect("="); err != nil {
		return err
	}
	ret, err := p.typ()
	if err != nil {
		return err
	}
	args, err := p.argumentList()
	if err != nil {
		return err
	}
	def.Body.Callback = &Operation{Name: name, ReturnType: ret, Arguments: args}
	return nil
}

func (p *fileParser) typedefDef(def *Definition) error {
	if _, err := p.extAttrs(); err != nil {
		return err
	}
	typ, err := p.typ()
	if err != nil {
		return err
	}
	name, err := p.name()
	if err != nil {
		return err
	}
	def.Name = name
	def.Body.Typedef = &typ
	return nil
}

// extAttrs parses an optional [A, B=c, D(long x)] list.
func (p *fileParser) extAttrs() ([]ExtendedAttribute, error) {
	l := p.lex
	if !l.accept("[") {
		return nil, nil
	}

	var attrs []ExtendedAttribute
	for {
		name, err := l.ident()
		if err != nil {
			return nil, err
		}
		attr := ExtendedAttribute{Name: name}
		if l.accept("=") {
			if l.is("(") {
				attr.Value, err = p.identList()
			} else {
				attr.Value, err = p.value()
			}
			if err != nil {
				return nil, err
			}
		}
		if l.is("(") {
			if attr.Arguments, err = p.argumentList(); err != nil {
				return nil, err
			}
			attr.HasArgs = true
		}
		attrs = append(attrs, attr)

		if l.accept("]") {
			return attrs, nil
		}
		if err := l.expect(","); err != nil {
			return nil, err
		}
	}
}

// identList parses "(" Ident {"," Ident} ")" as used by [Exposed=(A,B)] and
// returns the identifiers comma-joined.
func (p *fileParser) identList() (string, error) {
	l := p.lex
	if err := l.expect("("); err != nil {
		return "", err
	}
	var list []string
	for {
		name, err := l.ident()
		if err != nil {
			return "", err
		}
		list = append(list, name)
		if l.accept(")") {
			return strings.Join(list, ","), nil
		}
		if err := l.expect(","); err != nil {
			return "", err
		}
	}
}

// argumentList parses "(" [Argument {"," Argument}] ")".
func (p *fileParser) argumentList() ([]Argument, error) {
	l := p.lex
	if err := l.expect("("); err != nil {
		return nil, err
	}

	var args []Argument
	if l.accept(")") {
		return args, nil
	}
	for {
		arg, err := p.argument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if l.accept(")") {
			return args, nil
		}
		if err := l.expect(","); err != nil {
			return nil, err
		}
	}
}

func (p *fileParser) argument() (Argument, error) {
	l := p.lex
	if _, err := p.extAttrs(); err != nil {
		return Argument{}, err
	}

	var (
		arg Argument
		err error
	)
	arg.Optional = l.accept("optional")
	if arg.Type, err = p.typ(); err != nil {
		return Argument{}, err
	}
	if l.is(".") {
		for i := 0; i < 3; i++ {
			if err := l.expect("."); err != nil {
				return Argument{}, err
			}
		}
		arg.Variadic = true
	}
	if arg.Name, err = l.ident(); err != nil {
		return Argument{}, err
	}
	if l.accept("=") {
		if arg.Default, err = p.value(); err != nil {
			return Argument{}, err
		}
	}
	return arg, nil
}

// typ parses a type, including multi-word primitives, generics, unions and
// the nullable suffix.
func (p *fileParser) typ() (Type, error) {
	l := p.lex
	var t Type

	switch {
	case l.is("("):
		l.next()
		t.Union = true
		for {
			member, err := p.typ()
			if err != nil {
				return Type{}, err
			}
			t.Params = append(t.Params, member)
			if l.accept(")") {
				break
			}
			if err := l.expect("or"); err != nil {
				return Type{}, err
			}
		}
	case l.accept("unsigned"):
		base, err := p.integerType()
		if err != nil {
			return Type{}, err
		}
		t.Name = "unsigned " + base
	case l.is("short") || l.is("long"):
		base, err := p.integerType()
		if err != nil {
			return Type{}, err
		}
		t.Name = base
	case l.accept("unrestricted"):
		if !l.is("float") && !l.is("double") {
			return Type{}, l.errorf("expected \"float\" or \"double\" after \"unrestricted\"")
		}
		t.Name = "unrestricted " + l.text
		l.next()
	default:
		name, err := l.ident()
		if err != nil {
			return Type{}, l.errorf("expected type")
		}
		t.Name = name
		if l.accept("<") {
			for {
				param, err := p.typ()
				if err != nil {
					return Type{}, err
				}
				t.Params = append(t.Params, param)
				if l.accept(">") {
					break
				}
				if err := l.expect(","); err != nil {
					return Type{}, err
				}
			}
		}
	}

	t.Nullable = l.accept("?")
	return t, nil
}

func (p *fileParser) integerType() (string, error) {
	l := p.lex
	switch {
	case l.accept("short"):
		return "short", nil
	case l.accept("long"):
		if l.accept("long") {
			return "long long", nil
		}
		return "long", nil
	default:
		return "", l.errorf("expected \"short\" or \"long\"")
	}
}

// value parses a constant or default value and returns its source text.
// String literals are returned without quotes.
func (p *fileParser) value() (string, error) {
	l := p.lex
	switch {
	case l.tok == scanner.String:
		v, err := strconv.Unquote(l.text)
		if err != nil {
			return "", l.errorf("invalid string literal")
		}
		l.next()
		return v, nil
	case l.tok == scanner.Int || l.tok == scanner.Float || l.tok == scanner.Ident:
		v := l.text
		l.next()
		return v, nil
	case l.accept("-"):
		if l.tok != scanner.Int && l.tok != scanner.Float && !l.is("Infinity") {
			return "", l.errorf("expected number after \"-\"")
		}
		v := "-" + l.text
		l.next()
		return v, nil
	case l.accept("["):
		return "[]", l.expect("]")
	case l.accept("{"):
		return "{}", l.expect("}")
	default:
		return "", l.errorf("expected value")
	}
}
