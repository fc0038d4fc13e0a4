package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/appdeploy/storeshots/capture/definitions"
)

// renderAndPersist runs the settle/resolve/render/encode/write sequence for a
// surface whose viewport override is already in place. The write only starts
// once a fully encoded bitmap exists in memory, so a failing capture never
// leaves a partial file behind.
func (c *Capturer) renderAndPersist(ctx context.Context, path string, opts CaptureOptions) error {
	if !opts.SkipAssetWait {
		if err := c.surface.PrimeAssets(ctx); err != nil {
			return fmt.Errorf("prime assets: %w", err)
		}
	}

	settle := opts.Settle
	if settle == nil {
		settle = SettleToQuiescence()
	}
	if err := settle(ctx, c.surface); err != nil {
		return fmt.Errorf("settle: %w", err)
	}

	target, err := resolveElement(c.surface, opts.Selector)
	if err != nil {
		return err
	}
	boundary, err := paintBoundaryFor(target)
	if err != nil {
		return err
	}

	img, err := boundary.Render(ctx)
	if err != nil {
		return fmt.Errorf("render %s: %w", boundary.Key(), err)
	}

	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// resolveElement applies the selector to the mounted tree; a nil selector
// picks the first element in traversal order.
func resolveElement(s Surface, sel Selector) (Element, error) {
	elements := s.Elements()
	if sel == nil {
		if len(elements) == 0 {
			return nil, &definitions.NoMatchError{Selector: "<surface root>"}
		}
		return elements[0], nil
	}
	for _, e := range elements {
		if sel(e) {
			return e, nil
		}
	}
	return nil, &definitions.NoMatchError{Selector: "<custom selector>"}
}

// paintBoundaryFor walks from e up to the nearest ancestor able to rasterize
// its subtree.
func paintBoundaryFor(e Element) (Element, error) {
	for cur := e; cur != nil; cur = cur.Parent() {
		if cur.IsPaintBoundary() {
			return cur, nil
		}
	}
	return nil, &definitions.NoRenderSurfaceError{Element: e.Key()}
}

func encodePNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, &definitions.EncodingError{Reason: "render produced an empty bitmap"}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &definitions.EncodingError{Reason: err.Error()}
	}
	if buf.Len() == 0 {
		return nil, &definitions.EncodingError{Reason: "encoder produced no data"}
	}
	return buf.Bytes(), nil
}

// writeAtomic creates the parent directories, writes to a uuid-named temp
// file in the same directory and renames it over the target, so a concurrent
// reader never observes a half-written screenshot.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp", uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
