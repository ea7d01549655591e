// Package protocol implements the binary wire protocol between the folio
// thin client and a live page session.
//
// Every WebSocket message is one frame: a 4-byte header (type, flags,
// big-endian payload length) followed by the payload. Integers inside
// payloads are varints (zigzag for signed values), strings are
// length-prefixed UTF-8, floats are IEEE 754 big-endian.
//
// # Frames
//
//	Handshake  client hello / server hello
//	Event      client → server DOM events (click, scroll, submit, ...)
//	Patches    server → client DOM mutations, batched with a sequence number
//	Control    ping, pong and close
//	Error      error reports
//
// # Events
//
// The client forwards the event target's data-hid. Bubbling is resolved on
// the server against the DOM mirror, so the client stays ignorant of which
// listeners exist apart from the ones it must wire natively (hover and
// intersection), which the server requests with Listen and Observe patches.
//
// # Limits
//
// Decoding enforces allocation and collection limits so a malicious length
// prefix cannot make the server allocate unbounded memory.
package protocol
