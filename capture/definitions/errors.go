package definitions

import "fmt"

// PreconditionError reports a caller mistake detected before any side effect
// (empty device list, scenario name carrying the image extension). It is
// never retried internally.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// NoMatchError reports a selector that resolved to zero elements.
type NoMatchError struct {
	Selector string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("selector %s matched no elements", e.Selector)
}

// NoRenderSurfaceError reports that neither the selected element nor any of
// its ancestors can rasterize to an offscreen bitmap.
type NoRenderSurfaceError struct {
	Element string
}

func (e *NoRenderSurfaceError) Error() string {
	return fmt.Sprintf("no paint boundary above element %s", e.Element)
}

// EncodingError reports a bitmap that could not be serialized to PNG.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return "encoding screenshot failed: " + e.Reason
}
