package client

import (
	"context"

	"visor/internal/media"
)

// Pair is one element of an inference stream: the frame that was pulled and
// its normalized result.
type Pair struct {
	Frame  media.Frame
	Result Result
}

// Stream lazily couples a frame source with repeated single-frame inference
// calls. Each Next pulls one frame, runs one blocking inference call and
// yields the pair; nothing is buffered or reordered, and the stream is single
// pass. The session configuration is snapshotted when the stream is created,
// so later reconfiguration of the client does not affect it.
type Stream struct {
	client *Client
	source media.FrameSource
	opts   InferOptions
	done   bool
}

// InferStream creates a fresh, single-pass stream over source. Cancellation
// is cooperative: stop calling Next, or cancel the context passed to it.
func (c *Client) InferStream(source media.FrameSource, opts *InferOptions) *Stream {
	snapshot := *c
	if opts == nil {
		opts = &InferOptions{}
	}
	return &Stream{client: &snapshot, source: source, opts: *opts}
}

// Next pulls the next frame and runs one inference call for it. It returns
// false once the source is exhausted or after an error; a finite source of K
// frames yields exactly K pairs, in source order.
func (s *Stream) Next(ctx context.Context) (Pair, bool, error) {
	if s.done {
		return Pair{}, false, nil
	}
	frame, ok, err := s.source.Next(ctx)
	if err != nil {
		s.done = true
		return Pair{}, false, err
	}
	if !ok {
		s.done = true
		return Pair{}, false, nil
	}
	prediction, err := s.client.Infer(ctx, []media.Input{frame.Input()}, &s.opts)
	if err != nil {
		s.done = true
		return Pair{}, false, err
	}
	// One input in, therefore one bare result out.
	return Pair{Frame: frame, Result: *prediction.Single}, true, nil
}
