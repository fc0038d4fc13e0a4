package capture_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdeploy/storeshots/capture"
	"github.com/appdeploy/storeshots/capture/definitions"
	"github.com/appdeploy/storeshots/capture/surface"
	"github.com/appdeploy/storeshots/devices"
)

func newTestCapturer(t *testing.T) (*capture.Capturer, *surface.Memory, string) {
	t.Helper()
	root := t.TempDir()
	mem := surface.NewMemory()
	capturer := capture.NewCapturer(mem, &capture.Config{OutputRoot: root})
	return capturer, mem, root
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, rel)
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func mustProfile(t *testing.T, name string) definitions.DeviceProfile {
	t.Helper()
	p, ok := devices.Lookup(name)
	require.True(t, ok, "unknown profile %s", name)
	return p
}

func TestCaptureRejectsExtensionInScenarioName(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)

	err := capturer.CaptureScreens(context.Background(), "home.png",
		[]definitions.DeviceProfile{mustProfile(t, "iphone_6_9in")}, capture.CaptureOptions{})

	var pre *definitions.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Empty(t, listFiles(t, root))
	assert.Zero(t, mem.SettleCalls(), "no override cycle should have started")
}

func TestCaptureRejectsEmptyDeviceList(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)

	err := capturer.CaptureScreens(context.Background(), "home", nil, capture.CaptureOptions{})

	var pre *definitions.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Empty(t, listFiles(t, root))
	assert.Zero(t, mem.SettleCalls())
}

func TestCaptureEndToEndGroupedLayout(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)
	mem.MountLabel("home")

	profiles := []definitions.DeviceProfile{
		mustProfile(t, "iphone_6_9in"),
		mustProfile(t, "android_phone_9_16"),
	}
	require.NoError(t, capturer.CaptureScreens(context.Background(), "home", profiles, capture.CaptureOptions{}))

	want := []string{
		filepath.Join("android", "6.1_android_phone_9_16", "home.png"),
		filepath.Join("ios", "6.9_iphone_6_9in", "home.png"),
	}
	assert.Equal(t, want, listFiles(t, root))

	for i, p := range []definitions.DeviceProfile{profiles[1], profiles[0]} {
		data, err := os.ReadFile(filepath.Join(root, want[i]))
		require.NoError(t, err)
		require.NotEmpty(t, data)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, p.PhysicalWidth(), img.Bounds().Dx(), p.Name)
		assert.Equal(t, p.PhysicalHeight(), img.Bounds().Dy(), p.Name)
	}
}

func TestCaptureIsIdempotent(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)
	mem.MountLabel("home")

	profiles := []definitions.DeviceProfile{
		mustProfile(t, "iphone_5_5in"),
		mustProfile(t, "android_tablet"),
	}

	require.NoError(t, capturer.CaptureScreens(context.Background(), "home", profiles, capture.CaptureOptions{}))
	firstFiles := listFiles(t, root)
	firstSizes := map[string]int64{}
	for _, f := range firstFiles {
		info, err := os.Stat(filepath.Join(root, f))
		require.NoError(t, err)
		firstSizes[f] = info.Size()
	}

	require.NoError(t, capturer.CaptureScreens(context.Background(), "home", profiles, capture.CaptureOptions{}))
	assert.Equal(t, firstFiles, listFiles(t, root), "second run must overwrite, not accumulate")
	for _, f := range listFiles(t, root) {
		info, err := os.Stat(filepath.Join(root, f))
		require.NoError(t, err)
		assert.Equal(t, firstSizes[f], info.Size(), f)
	}
}

func TestCaptureSkipAssetWait(t *testing.T) {
	capturer, mem, _ := newTestCapturer(t)
	profile := mustProfile(t, "iphone_4_7in")

	require.NoError(t, capturer.CaptureScreen(context.Background(), "home", profile,
		capture.CaptureOptions{SkipAssetWait: true}))
	assert.Zero(t, mem.PrimeAssetCalls(), "asset settle must not run when skipped")

	require.NoError(t, capturer.CaptureScreen(context.Background(), "home", profile, capture.CaptureOptions{}))
	assert.Equal(t, 1, mem.PrimeAssetCalls())
}

func TestCaptureNoMatchAbortsBatch(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)
	mem.MountEmpty()

	profiles := []definitions.DeviceProfile{
		mustProfile(t, "iphone_6_5in"),
		mustProfile(t, "android_phone_18_9"),
	}
	err := capturer.CaptureScreens(context.Background(), "home", profiles, capture.CaptureOptions{})

	var noMatch *definitions.NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Empty(t, listFiles(t, root), "a failing selector must not leave files behind")
}

func TestCaptureNoRenderSurface(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)
	mem.MountWithoutPaintBoundary()

	err := capturer.CaptureScreen(context.Background(), "home", mustProfile(t, "ipad_11in"), capture.CaptureOptions{})

	var noSurface *definitions.NoRenderSurfaceError
	require.ErrorAs(t, err, &noSurface)
	assert.Empty(t, listFiles(t, root))
}

func TestCaptureSelectorWalksUpToPaintBoundary(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)
	mem.MountLabel("detail")

	err := capturer.CaptureScreen(context.Background(), "detail", mustProfile(t, "iphone_6_3in"),
		capture.CaptureOptions{Selector: capture.ByKey("content")})
	require.NoError(t, err)
	assert.Len(t, listFiles(t, root), 1)
}

func TestCaptureSelectorNoMatch(t *testing.T) {
	capturer, _, _ := newTestCapturer(t)

	err := capturer.CaptureScreen(context.Background(), "home", mustProfile(t, "iphone_6_3in"),
		capture.CaptureOptions{Selector: capture.ByKey("missing")})

	var noMatch *definitions.NoMatchError
	assert.ErrorAs(t, err, &noMatch)
}

func TestPerDeviceSetupSeesOverriddenViewport(t *testing.T) {
	capturer, mem, _ := newTestCapturer(t)

	var order []string
	var sizes [][2]int
	profiles := []definitions.DeviceProfile{
		mustProfile(t, "iphone_6_9in"),
		mustProfile(t, "android_phone_20_9"),
	}

	err := capturer.CaptureScreens(context.Background(), "home", profiles, capture.CaptureOptions{
		PerDeviceSetup: func(ctx context.Context, p definitions.DeviceProfile) error {
			w, h := mem.PhysicalSize()
			order = append(order, p.Name)
			sizes = append(sizes, [2]int{w, h})
			return nil
		},
	})
	require.NoError(t, err)

	// Hooks run strictly in list order, each with its device's viewport applied.
	assert.Equal(t, []string{"iphone_6_9in", "android_phone_20_9"}, order)
	assert.Equal(t, [2]int{1320, 2868}, sizes[0])
	assert.Equal(t, [2]int{1080, 2400}, sizes[1])
}

func TestPerDeviceSetupErrorAbortsAndRestores(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)
	before := snap(mem)

	boom := errors.New("setup failed")
	err := capturer.CaptureScreens(context.Background(), "home",
		[]definitions.DeviceProfile{mustProfile(t, "iphone_6_9in"), mustProfile(t, "ipad_13in")},
		capture.CaptureOptions{
			PerDeviceSetup: func(ctx context.Context, p definitions.DeviceProfile) error {
				return boom
			},
		})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, listFiles(t, root))
	assert.Equal(t, before, snap(mem), "viewport must be restored after a failed capture")
}

func TestCaptureAllPlatformsPartition(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)
	mem.MountLabel("home")

	require.NoError(t, capturer.CaptureAllPlatforms(context.Background(), "home", capture.CaptureOptions{}))

	files := listFiles(t, root)
	require.Len(t, files, len(devices.All()))
	for _, f := range files {
		first := strings.Split(f, string(filepath.Separator))[0]
		assert.Contains(t, []string{"ios", "android"}, first, f)
	}

	// Every iOS profile lands under ios/, every Android one under android/.
	for _, p := range devices.All() {
		dir := string(p.Platform)
		expected := filepath.Join(dir, capture.DisplayLabel(p.DisplayClass)+"_"+p.Name, "home.png")
		assert.Contains(t, files, expected)
	}
}

func TestCaptureAllPlatformsIgnoresConfiguredFlatResolver(t *testing.T) {
	root := t.TempDir()
	mem := surface.NewMemory()
	capturer := capture.NewCapturer(mem, &capture.Config{
		OutputRoot: root,
		Resolver:   capture.FlatPath(root),
	})
	mem.MountLabel("home")

	require.NoError(t, capturer.CaptureAllPlatforms(context.Background(), "home", capture.CaptureOptions{}))

	files := listFiles(t, root)
	require.Len(t, files, len(devices.All()))
	for _, f := range files {
		first := strings.Split(f, string(filepath.Separator))[0]
		assert.Contains(t, []string{"ios", "android"}, first, f)
	}
}

func TestCaptureScreenToExplicitPath(t *testing.T) {
	capturer, mem, _ := newTestCapturer(t)
	mem.MountLabel("home")
	target := filepath.Join(t.TempDir(), "custom", "shot.png")

	require.NoError(t, capturer.CaptureScreenTo(context.Background(), target,
		mustProfile(t, "android_tv"), capture.CaptureOptions{}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1920, img.Bounds().Dx())
	assert.Equal(t, 1080, img.Bounds().Dy())
}

func TestCaptureScreenToEmptyPath(t *testing.T) {
	capturer, _, _ := newTestCapturer(t)

	err := capturer.CaptureScreenTo(context.Background(), "", mustProfile(t, "android_tv"), capture.CaptureOptions{})

	var pre *definitions.PreconditionError
	assert.ErrorAs(t, err, &pre)
}

func TestCaptureCustomResolverMustReturnPath(t *testing.T) {
	capturer, _, _ := newTestCapturer(t)

	err := capturer.CaptureScreens(context.Background(), "home",
		[]definitions.DeviceProfile{mustProfile(t, "iphone_6_9in")},
		capture.CaptureOptions{
			Resolver: func(scenario string, p definitions.DeviceProfile) string { return "" },
		})

	var pre *definitions.PreconditionError
	assert.ErrorAs(t, err, &pre)
}

func TestCaptureFlatResolverOptIn(t *testing.T) {
	root := t.TempDir()
	mem := surface.NewMemory()
	mem.MountLabel("home")
	capturer := capture.NewCapturer(mem, &capture.Config{
		OutputRoot: root,
		Resolver:   capture.FlatPath(root),
	})

	require.NoError(t, capturer.CaptureScreen(context.Background(), "home",
		mustProfile(t, "iphone_6_9in"), capture.CaptureOptions{}))

	assert.Equal(t, []string{"iphone_6_9in.home.png"}, listFiles(t, root))
}

func TestCaptureFailedSettleSurfacesError(t *testing.T) {
	capturer, mem, root := newTestCapturer(t)
	boom := errors.New("layout never settled")
	mem.SettleErr = boom

	err := capturer.CaptureScreen(context.Background(), "home",
		mustProfile(t, "iphone_6_9in"), capture.CaptureOptions{})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, listFiles(t, root))
}

func TestCaptureFixedPumpStrategy(t *testing.T) {
	capturer, mem, _ := newTestCapturer(t)
	mem.MountLabel("mid_animation")

	require.NoError(t, capturer.CaptureScreen(context.Background(), "mid_animation",
		mustProfile(t, "iphone_6_9in"),
		capture.CaptureOptions{Settle: capture.FixedPump(200 * time.Millisecond)}))

	assert.Equal(t, 1, mem.PumpCalls())
}
