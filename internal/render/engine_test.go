package render

import (
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlbridge/idlbridge/internal/errors"
	"github.com/idlbridge/idlbridge/internal/idl"
	"github.com/idlbridge/idlbridge/internal/templates"
	"github.com/idlbridge/idlbridge/internal/typetraits"
)

func TestNewEnvironment_MissingTemplate(t *testing.T) {
	files := fstest.MapFS{
		"a.tmpl": {Data: []byte("a")},
	}

	_, err := NewEnvironment(files, "a.tmpl", "b.tmpl")
	require.Error(t, err)
	assert.Equal(t, "TemplateLoadError", errors.KindOf(err))
	assert.Contains(t, err.Error(), "b.tmpl")
}

func TestNewEnvironment_InvalidTemplate(t *testing.T) {
	files := fstest.MapFS{
		"bad.tmpl": {Data: []byte("{{ range .X }}")},
	}

	_, err := NewEnvironment(files, "bad.tmpl")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTemplateLoad))
}

func TestNewEnvironment_NilFS(t *testing.T) {
	_, err := NewEnvironment(nil, "a.tmpl")
	assert.True(t, errors.Is(err, errors.ErrTemplateLoad))
}

func TestRender_IncompatibleContext(t *testing.T) {
	files := fstest.MapFS{
		"x.tmpl": {Data: []byte("{{ .Missing }}")},
	}
	env, err := NewEnvironment(files, "x.tmpl")
	require.NoError(t, err)

	_, err = env.Render("x.tmpl", RegistrationContext{})
	require.Error(t, err)
	assert.Equal(t, "RenderError", errors.KindOf(err))
}

func TestRender_NotLoaded(t *testing.T) {
	env, err := NewEnvironment(fstest.MapFS{})
	require.NoError(t, err)

	_, err = env.Render("nope.tmpl", nil)
	assert.True(t, errors.Is(err, errors.ErrTemplateLoad))
	assert.Contains(t, err.Error(), "nope.tmpl")
}

func TestFilters_IdenticalAcrossTemplates(t *testing.T) {
	files := fstest.MapFS{
		"one.tmpl": {Data: []byte("{{ . | snakecase }} {{ . | titlecase }}")},
		"two.tmpl": {Data: []byte("{{ titlecase . }} {{ snakecase . }}")},
	}
	env, err := NewEnvironment(files, "one.tmpl", "two.tmpl")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		one, err := env.Render("one.tmpl", "HTTPRequest")
		require.NoError(t, err)
		two, err := env.Render("two.tmpl", "HTTPRequest")
		require.NoError(t, err)

		assert.Equal(t, "http_request HTTPRequest", one)
		assert.Equal(t, "HTTPRequest http_request", two)
	}
}

// Separate environments own separate function maps.
func TestFuncMap_IsFreshPerCall(t *testing.T) {
	a := FuncMap()
	a["titlecase"] = strings.ToLower

	b := FuncMap()
	fn, ok := b["titlecase"].(func(string) string)
	require.True(t, ok)
	assert.Equal(t, "FooBar", fn("foo bar"))
}

func TestIncludeGuard(t *testing.T) {
	assert.Equal(t, "UI_WIDGET_BRIDGE_H_", IncludeGuard("ui/widget_bridge.h"))
	assert.Equal(t, "JS_TYPE_TRAITS_H_", IncludeGuard("js_type_traits.h"))
	assert.Equal(t, "NET_HTTP_HTTP_REQUEST_BRIDGE_H_", IncludeGuard("./net/http/http_request_bridge.h"))
}

func embeddedEnv(t *testing.T) *Environment {
	t.Helper()
	env, err := NewEnvironment(templates.FS(), templates.Required()...)
	require.NoError(t, err)
	return env
}

func widgetContext(t *testing.T) InterfaceContext {
	t.Helper()
	defs, err := idl.ParseFile("ui/widget.idl", "ui", `
[Constructor(DOMString id)]
interface Widget {
  static Widget fromId(DOMString id);
  void setVisible(boolean visible);
  double getWidth();
  attribute DOMString title;
  readonly attribute long childCount;
};`)
	require.NoError(t, err)
	return NewInterfaceContext(defs[0], "ui/widget_bridge.h", "ui/widget_bridge.cc", "ui/widget.h", "js_type_traits.h")
}

func TestEmbeddedTemplates_InterfaceBridge(t *testing.T) {
	env := embeddedEnv(t)
	ctx := widgetContext(t)

	header, err := env.Render(templates.InterfaceHeader, ctx)
	require.NoError(t, err)
	assert.Contains(t, header, "#ifndef UI_WIDGET_BRIDGE_H_")
	assert.Contains(t, header, `#include "ui/widget.h"`)
	assert.Contains(t, header, "class WidgetBridge : public Napi::ObjectWrap<WidgetBridge> {")
	assert.Contains(t, header, "static Napi::Value FromId(const Napi::CallbackInfo& info);")
	assert.Contains(t, header, "Napi::Value SetVisible(const Napi::CallbackInfo& info);")
	assert.Contains(t, header, "void SetTitle(const Napi::CallbackInfo& info, const Napi::Value& value);")
	assert.NotContains(t, header, "SetChildCount")

	impl, err := env.Render(templates.InterfaceImpl, ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(impl, "// Generated by idlbridge"), impl[:40])
	assert.Contains(t, impl, `#include "ui/widget_bridge.h"`)
	assert.Contains(t, impl, `#include "js_type_traits.h"`)
	assert.Contains(t, impl, `StaticMethod("fromId", &WidgetBridge::FromId),`)
	assert.Contains(t, impl, `InstanceAccessor("childCount", &WidgetBridge::GetChildCount, nullptr),`)
	assert.Contains(t, impl, `InstanceAccessor("title", &WidgetBridge::GetTitle, &WidgetBridge::SetTitle),`)
	assert.Contains(t, impl, "const std::string& id = JSTypeTraits<std::string>::FromJS(info[0]);")
	assert.Contains(t, impl, "bool visible = JSTypeTraits<bool>::FromJS(info[0]);")
	assert.Contains(t, impl, "impl_.reset(new Widget(id));")
	assert.Contains(t, impl, "impl_->SetVisible(visible);")
	assert.Contains(t, impl, "double result = impl_->GetWidth();")
	assert.Contains(t, impl, "Widget result = Widget::FromId(id);")
}

func TestEmbeddedTemplates_NoConstructor(t *testing.T) {
	env := embeddedEnv(t)
	defs, err := idl.ParseFile("a.idl", ".", "interface Plain { void run(); };")
	require.NoError(t, err)
	ctx := NewInterfaceContext(defs[0], "plain_bridge.h", "plain_bridge.cc", "plain.h", "js_type_traits.h")

	impl, err := env.Render(templates.InterfaceImpl, ctx)
	require.NoError(t, err)
	assert.Contains(t, impl, "impl_.reset(new Plain());")
}

func TestEmbeddedTemplates_TypeTraits(t *testing.T) {
	env := embeddedEnv(t)

	out, err := env.Render(templates.TypeTraits, NewTypeTraitsContext(typetraits.Entries(), "js_type_traits.h"))
	require.NoError(t, err)

	assert.Contains(t, out, "#ifndef JS_TYPE_TRAITS_H_")
	for _, e := range typetraits.Entries() {
		assert.Contains(t, out, "struct JSTypeTraits<"+e.NativeType+"> {")
	}
	assert.Contains(t, out, "return value.As<Napi::String>().Utf8Value();")
}

func TestEmbeddedTemplates_Registration(t *testing.T) {
	env := embeddedEnv(t)
	ctx := NewRegistrationContext("idlbridge", []InterfaceContext{widgetContext(t)})

	out, err := env.Render(templates.Registration, ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "#include <napi.h>\n#include \"ui/widget_bridge.h\"\n")
	assert.Contains(t, out, "  WidgetBridge::Init(env, exports);")
	assert.Contains(t, out, "NODE_API_MODULE(idlbridge, Init)")
	assert.Equal(t, []string{"Widget"}, ctx.Names())

	empty, err := env.Render(templates.Registration, NewRegistrationContext("idlbridge", nil))
	require.NoError(t, err)
	assert.Contains(t, empty, "#include <napi.h>\n\nnamespace {")
	assert.NotContains(t, empty, "Bridge::Init")
}

// One context rendered concurrently into several templates gives the same
// output as rendering it sequentially.
func TestRender_ConcurrentSharedContext(t *testing.T) {
	env := embeddedEnv(t)
	ctx := widgetContext(t)

	wantHeader, err := env.Render(templates.InterfaceHeader, ctx)
	require.NoError(t, err)
	wantImpl, err := env.Render(templates.InterfaceImpl, ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			header, err := env.Render(templates.InterfaceHeader, ctx)
			assert.NoError(t, err)
			assert.Equal(t, wantHeader, header)
			impl, err := env.Render(templates.InterfaceImpl, ctx)
			assert.NoError(t, err)
			assert.Equal(t, wantImpl, impl)
		}()
	}
	wg.Wait()
}
