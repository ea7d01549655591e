package toast

import (
	"strings"

	"github.com/vango-dev/folio/pkg/vdom"
)

// Kind represents the notification kind.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Class names used by banners.
const (
	ClassNotification = "notification"
	ClassContent      = "notification-content"
	ClassMessage      = "notification-message"
	ClassClose        = "notification-close"
)

// Normalize maps unknown or empty kinds to KindInfo.
func Normalize(k Kind) Kind {
	switch k {
	case KindSuccess, KindError:
		return k
	default:
		return KindInfo
	}
}

// Notifier shows a notification.
type Notifier interface {
	Notify(message string, kind Kind)
}

// Show displays a notification of the given kind.
func Show(n Notifier, kind Kind, message string) {
	n.Notify(message, Normalize(kind))
}

// Success shows a success notification.
//
//	toast.Success(ctrl, "Thank you for your message!")
func Success(n Notifier, message string) {
	Show(n, KindSuccess, message)
}

// Error shows an error notification.
//
//	toast.Error(ctrl, "Please enter a valid email address")
func Error(n Notifier, message string) {
	Show(n, KindError, message)
}

// Info shows an info notification.
func Info(n Notifier, message string) {
	Show(n, KindInfo, message)
}

// baseStyle positions every banner in the top right corner.
var baseStyle = []string{
	"position: fixed",
	"top: 100px",
	"right: 20px",
	"background: var(--color-surface)",
	"border: 1px solid var(--color-border)",
	"border-radius: var(--radius-base)",
	"padding: var(--space-16)",
	"box-shadow: var(--shadow-lg)",
	"z-index: 10000",
	"max-width: 400px",
	"animation: slideInRight 0.3s ease",
}

// accents maps kinds with a colored left border to their color variable.
var accents = map[Kind]string{
	KindSuccess: "var(--color-success)",
	KindError:   "var(--color-error)",
}

// InlineStyle returns the inline style of a banner of kind k.
func InlineStyle(k Kind) string {
	decls := append([]string(nil), baseStyle...)
	if color, ok := accents[Normalize(k)]; ok {
		decls = append(decls,
			"border-color: "+color,
			"border-left-width: 4px",
			"border-left-color: "+color,
		)
	}
	return strings.Join(decls, "; ")
}

// Banner builds a dismissible notification element.
func Banner(kind Kind, message string) *vdom.VNode {
	kind = Normalize(kind)
	return vdom.Div(
		vdom.Class(ClassNotification, ClassNotification+"--"+string(kind)),
		vdom.Role("status"),
		vdom.StyleAttr(InlineStyle(kind)),
		vdom.Div(vdom.Class(ClassContent),
			vdom.Span(vdom.Class(ClassMessage), vdom.Text(message)),
			vdom.Button(vdom.Class(ClassClose), vdom.TypeAttr("button"), vdom.AriaLabel("Close"), "\u00d7"),
		),
	)
}

// ExitAnimation is applied to a banner before it is detached.
const ExitAnimation = "slideOutRight 0.3s ease forwards"
