package toast_test

import (
	"strings"
	"testing"

	"github.com/vango-dev/folio/pkg/render"
	"github.com/vango-dev/folio/pkg/toast"
)

// mockNotifier captures notifications for verification.
type mockNotifier struct {
	shown []shown
}

type shown struct {
	message string
	kind    toast.Kind
}

func (m *mockNotifier) Notify(message string, kind toast.Kind) {
	m.shown = append(m.shown, shown{message, kind})
}

func TestHelpers(t *testing.T) {
	n := &mockNotifier{}

	toast.Success(n, "saved")
	toast.Error(n, "failed")
	toast.Info(n, "hello")
	toast.Show(n, toast.Kind("warning"), "odd")
	toast.Show(n, "", "empty")

	want := []shown{
		{"saved", toast.KindSuccess},
		{"failed", toast.KindError},
		{"hello", toast.KindInfo},
		{"odd", toast.KindInfo},
		{"empty", toast.KindInfo},
	}
	if len(n.shown) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(n.shown))
	}
	for i, w := range want {
		if n.shown[i] != w {
			t.Errorf("notification %d = %+v, want %+v", i, n.shown[i], w)
		}
	}
}

func TestInlineStyle(t *testing.T) {
	tests := []struct {
		kind   toast.Kind
		accent string
	}{
		{toast.KindInfo, ""},
		{toast.KindSuccess, "var(--color-success)"},
		{toast.KindError, "var(--color-error)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			style := toast.InlineStyle(tt.kind)
			if !strings.HasPrefix(style, "position: fixed; top: 100px") {
				t.Errorf("unexpected base style: %s", style)
			}
			hasAccent := strings.Contains(style, "border-left-width: 4px")
			if hasAccent != (tt.accent != "") {
				t.Errorf("accent present = %v, want %v", hasAccent, tt.accent != "")
			}
			if tt.accent != "" && !strings.Contains(style, "border-left-color: "+tt.accent) {
				t.Errorf("missing accent color %s in %s", tt.accent, style)
			}
		})
	}
}

func TestBannerMarkup(t *testing.T) {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(toast.Banner(toast.KindError, `<img src=x onerror="alert(1)">`))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		`class="notification notification--error"`,
		`class="notification-message"`,
		`class="notification-close"`,
		`&lt;img src=x onerror=&quot;alert(1)&quot;&gt;`,
		"\u00d7</button>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("banner markup missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<img") {
		t.Error("message markup must not be interpreted")
	}
}

func TestStyles(t *testing.T) {
	for _, rule := range []string{"@keyframes slideInRight", "@keyframes slideOutRight", ".notification-close:hover", ".navbar.scrolled"} {
		if !strings.Contains(toast.Styles, rule) {
			t.Errorf("styles missing %q", rule)
		}
	}
}
