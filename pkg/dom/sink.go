package dom

import "github.com/vango-dev/folio/pkg/protocol"

// Sink receives the patches a Document produces.
type Sink interface {
	Emit(p protocol.Patch)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(p protocol.Patch)

// Emit calls f(p).
func (f SinkFunc) Emit(p protocol.Patch) { f(p) }

// Recorder is a Sink that buffers patches.
type Recorder struct {
	patches []protocol.Patch
}

// Emit appends p.
func (r *Recorder) Emit(p protocol.Patch) {
	r.patches = append(r.patches, p)
}

// Patches returns the buffered patches without draining them.
func (r *Recorder) Patches() []protocol.Patch {
	return r.patches
}

// Take returns the buffered patches and empties the buffer.
func (r *Recorder) Take() []protocol.Patch {
	p := r.patches
	r.patches = nil
	return p
}

// Len returns the number of buffered patches.
func (r *Recorder) Len() int {
	return len(r.patches)
}

type discard struct{}

func (discard) Emit(protocol.Patch) {}
