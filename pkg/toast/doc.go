// Package toast builds the page's transient notification banners.
//
// A banner is an ordinary element appended to the document body. The
// notification center in package page owns its lifecycle (replacement,
// close button, auto-dismiss); this package only knows how a banner of a
// given kind looks and which style rules it relies on.
//
// # Usage
//
//	banner := toast.Banner(toast.KindSuccess, "Message sent")
//	ref := v.Append(body, banner)
//
// Anything implementing Notifier can be handed the convenience helpers:
//
//	toast.Error(ctrl, "Please fill in all fields")
//
// Message text is always rendered as text. Markup in a message is shown
// literally, never interpreted.
package toast
