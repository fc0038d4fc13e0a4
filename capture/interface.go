// Package capture drives app-store screenshot generation: it applies a device
// profile's simulated display characteristics to a render surface, settles
// pending visual work, rasterizes the selected paint boundary and writes the
// PNG to a deterministic store-compliant path.
package capture

import (
	"context"
	"image"
	"time"

	"github.com/appdeploy/storeshots/capture/definitions"
)

// Element is one mounted node of the visual tree hosted by a Surface.
type Element interface {
	// Key identifies the element for selector matching and error messages.
	Key() string
	// Parent returns the enclosing element, or nil at the root.
	Parent() Element
	// IsPaintBoundary reports whether the element can rasterize its subtree
	// to an offscreen bitmap independently of the rest of the tree.
	IsPaintBoundary() bool
	// Render rasterizes the element's subtree at the surface's current
	// physical resolution. Only valid on paint boundaries.
	Render(ctx context.Context) (image.Image, error)
}

// Surface is the simulated display a capture run renders against. There is
// exactly one per process; its overridable state is shared by every capture,
// which is why device iterations are strictly sequential.
type Surface interface {
	PhysicalSize() (width, height int)
	SetPhysicalSize(width, height int)
	PixelRatio() float64
	SetPixelRatio(ratio float64)
	TextScale() float64
	SetTextScale(scale float64)
	Brightness() definitions.Brightness
	SetBrightness(b definitions.Brightness)
	SafeArea() definitions.EdgeInsets
	SetSafeArea(insets definitions.EdgeInsets)

	// Elements returns the mounted elements in traversal order.
	Elements() []Element
	// Settle drives pending layout and animation work to quiescence.
	Settle(ctx context.Context) error
	// Pump advances the surface by a fixed duration without waiting for
	// quiescence, freezing mid-animation states.
	Pump(ctx context.Context, d time.Duration) error
	// PrimeAssets blocks until images referenced by mounted elements have
	// finished decoding.
	PrimeAssets(ctx context.Context) error
}

// Selector picks the element to capture. A nil Selector selects the first
// element in traversal order, i.e. the whole surface.
type Selector func(Element) bool

// ByKey matches elements by their key.
func ByKey(key string) Selector {
	return func(e Element) bool {
		return e.Key() == key
	}
}

// SettleStrategy brings the surface to the state a capture should sample.
type SettleStrategy func(ctx context.Context, s Surface) error

// SettleToQuiescence is the default strategy: run the surface's settle loop
// until no layout or animation work remains.
func SettleToQuiescence() SettleStrategy {
	return func(ctx context.Context, s Surface) error {
		return s.Settle(ctx)
	}
}

// FixedPump advances the surface by exactly d, which freezes repeating
// animations at a stable frame instead of waiting them out.
func FixedPump(d time.Duration) SettleStrategy {
	return func(ctx context.Context, s Surface) error {
		return s.Pump(ctx, d)
	}
}

// SettleSequence runs several strategies in order, stopping at the first error.
func SettleSequence(steps ...SettleStrategy) SettleStrategy {
	return func(ctx context.Context, s Surface) error {
		for _, step := range steps {
			if err := step(ctx, s); err != nil {
				return err
			}
		}
		return nil
	}
}
