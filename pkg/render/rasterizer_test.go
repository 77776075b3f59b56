package render

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// createTestRasterizer creates a rasterizer with identity matrices, so batch
// positions are NDC.
func createTestRasterizer(t testing.TB, width, height int, opts ...Option) *Rasterizer {
	t.Helper()
	r, err := New(width, height, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", width, height, err)
	}
	return r
}

// pixel reads the back buffer.
func pixel(r *Rasterizer, x, y int) Color {
	return pixelAt(r.BackBuffer(), x, y)
}

// shaded returns the coordinates of every back buffer pixel that is not
// opaque black.
func shaded(r *Rasterizer) [][2]int {
	var out [][2]int
	for y := range r.Height() {
		for x := range r.Width() {
			if pixel(r, x, y) != ColorBlack {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

func TestNewInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {1 << 20, 1 << 20}} {
		_, err := New(size[0], size[1])
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestNewClearsBuffers(t *testing.T) {
	r := createTestRasterizer(t, 8, 4)
	for _, buf := range []PixelBuffer{r.BackBuffer(), r.FrontBuffer()} {
		for i, c := range buf.Pix() {
			if c != ColorBlack {
				t.Fatalf("pixel %d = %v, want opaque black", i, c)
			}
		}
	}
	if got := r.Depth().At(3, 3); got != MaxDepth {
		t.Errorf("depth = %d, want %d", got, MaxDepth)
	}
}

func TestClearBuffersIdempotent(t *testing.T) {
	r := createTestRasterizer(t, 10, 10)
	r.SetPixel(2, 3, ColorRed)
	r.DepthTest(2, 3, 100)

	r.ClearBuffers()
	once := append([]Color(nil), r.BackBuffer().Pix()...)
	onceDepth := append([]uint16(nil), r.Depth().Values...)
	r.ClearBuffers()

	for i, c := range r.BackBuffer().Pix() {
		if c != once[i] || c != ColorBlack {
			t.Fatalf("pixel %d = %v after second clear, want %v", i, c, ColorBlack)
		}
	}
	for i, d := range r.Depth().Values {
		if d != onceDepth[i] || d != MaxDepth {
			t.Fatalf("depth %d = %d after second clear, want %d", i, d, MaxDepth)
		}
	}
}

func TestSwapBuffers(t *testing.T) {
	var presented PixelBuffer
	r := createTestRasterizer(t, 4, 4, WithPresenter(PresenterFunc(func(buf PixelBuffer) error {
		presented = buf
		return nil
	})))

	back := r.BackBuffer()
	r.SetPixel(1, 1, ColorGreen)
	r.SwapBuffers()

	if presented != back {
		t.Error("presenter did not receive the back buffer")
	}
	if r.FrontBuffer() != back {
		t.Error("front buffer should be the old back buffer")
	}
	if r.BackBuffer() == back {
		t.Error("back buffer did not flip")
	}
	if got := pixelAt(r.FrontBuffer(), 1, 1); got != ColorGreen {
		t.Errorf("front pixel = %v, want %v", got, ColorGreen)
	}
}

func TestSwapBuffersLogsPresentError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := createTestRasterizer(t, 4, 4,
		WithLogger(logger),
		WithPresenter(PresenterFunc(func(PixelBuffer) error { return errors.New("tty gone") })),
	)
	back := r.BackBuffer()
	r.SwapBuffers()

	if r.FrontBuffer() != back {
		t.Error("swap should happen even when presenting fails")
	}
	if !strings.Contains(logs.String(), "tty gone") {
		t.Errorf("expected present error in log, got %q", logs.String())
	}
}

func TestSetPixelOutOfBounds(t *testing.T) {
	r := createTestRasterizer(t, 5, 5)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {100, 100}} {
		r.SetPixel(p[0], p[1], ColorRed) // Should not panic
	}
	if got := shaded(r); len(got) != 0 {
		t.Errorf("out of bounds writes changed pixels %v", got)
	}
	r.SetPixel(4, 4, ColorRed)
	if got := pixel(r, 4, 4); got != ColorRed {
		t.Errorf("pixel = %v, want %v", got, ColorRed)
	}
}

func TestRasterizerDepthTest(t *testing.T) {
	r := createTestRasterizer(t, 10, 10)

	if !r.DepthTest(5, 5, 10) {
		t.Fatal("first write should pass a cleared buffer")
	}
	if !r.DepthTest(5, 5, 10) {
		t.Error("equal depth should pass")
	}
	if r.DepthTest(5, 5, 11) {
		t.Error("farther depth should fail")
	}
	if got := r.Depth().At(5, 5); got != 10 {
		t.Errorf("failed test wrote depth %d", got)
	}
	if !r.DepthTest(5, 5, 3) || r.Depth().At(5, 5) != 3 {
		t.Error("nearer depth should pass and be stored")
	}
	if r.DepthTest(-1, 0, 0) || r.DepthTest(10, 0, 0) {
		t.Error("out of bounds depth tests should fail")
	}
}

func TestResizeViewport(t *testing.T) {
	r := createTestRasterizer(t, 10, 10)
	if err := r.Resize(40, 30); err != nil {
		t.Fatal(err)
	}

	lo, ok := r.Project(math3d.Identity(), models.Vertex{Position: math3d.V4(-1, -1, -1, 1)})
	if !ok || lo.X != 0 || lo.Y != 0 || lo.Z != 0 {
		t.Errorf("NDC (-1,-1,-1) = %+v, want (0,0,0)", lo)
	}
	hi, ok := r.Project(math3d.Identity(), models.Vertex{Position: math3d.V4(1, 1, 1, 1)})
	if !ok || hi.X != 39 || hi.Y != 29 || hi.Z != MaxDepth {
		t.Errorf("NDC (1,1,1) = %+v, want (39,29,%d)", hi, MaxDepth)
	}
	if w, h := r.BackBuffer().Size(); w != 40 || h != 30 {
		t.Errorf("back buffer = %dx%d, want 40x30", w, h)
	}
	if r.Depth().Width != 40 || len(r.Depth().Values) != 40*30 {
		t.Error("depth buffer not reallocated")
	}
}

func TestResizeFailureKeepsBuffers(t *testing.T) {
	small := ProviderFunc(func(w, h int) (PixelBuffer, error) {
		if w > 20 {
			return NewFramebuffer(w-1, h), nil
		}
		return NewFramebuffer(w, h), nil
	})
	r := createTestRasterizer(t, 10, 10, WithBufferProvider(small))
	back := r.BackBuffer()

	if err := r.Resize(30, 10); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("Resize error = %v, want ErrBufferSize", err)
	}
	if err := r.Resize(0, 10); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Resize error = %v, want ErrInvalidSize", err)
	}
	if r.Width() != 10 || r.Height() != 10 || r.BackBuffer() != back {
		t.Error("failed resize replaced the buffers")
	}
}

func TestProjectZeroW(t *testing.T) {
	r := createTestRasterizer(t, 10, 10)
	if _, ok := r.Project(math3d.Identity(), models.Vertex{Position: math3d.V4(1, 1, 1, 0)}); ok {
		t.Error("w = 0 should not project")
	}
}

func TestEncodeDepth(t *testing.T) {
	tests := []struct {
		z    float64
		want uint32
	}{
		{0, 0},
		{-5, 0},
		{10.9, 10},
		{65535, 65535},
		{70000, 70000},
		{1e12, math.MaxUint32},
		{math.NaN(), math.MaxUint32},
	}
	for _, tt := range tests {
		if got := EncodeDepth(tt.z); got != tt.want {
			t.Errorf("EncodeDepth(%v) = %d, want %d", tt.z, got, tt.want)
		}
	}
}

func TestDepthTestBeyondFarPlane(t *testing.T) {
	r := createTestRasterizer(t, 10, 10)
	if r.DepthTest(2, 2, 70000) {
		t.Error("depth beyond MaxDepth should fail on a cleared buffer")
	}
	if !r.DepthTest(2, 2, MaxDepth) {
		t.Error("depth at MaxDepth should pass on a cleared buffer")
	}
	if r.DepthTest(3, 3, math.NaN()) {
		t.Error("NaN depth should fail")
	}
}

func TestDrawTriangleBeyondFarPlane(t *testing.T) {
	r := createTestRasterizer(t, 20, 20)
	c := RGB(200, 100, 50)
	r.DrawTriangle(
		ScreenVertex{X: 0, Y: 0, Z: 70000, Color: c},
		ScreenVertex{X: 19, Y: 0, Z: 70000, Color: c},
		ScreenVertex{X: 0, Y: 19, Z: 70000, Color: c},
	)
	if got := shaded(r); len(got) != 0 {
		t.Errorf("triangle beyond the far plane shaded %d pixels", len(got))
	}
	if got := r.Depth().At(1, 1); got != MaxDepth {
		t.Errorf("depth = %d, want %d", got, MaxDepth)
	}
}

// Benchmark tests
func BenchmarkDrawTriangle(b *testing.B) {
	r := createTestRasterizer(b, 200, 200)
	v0 := ScreenVertex{X: 10, Y: 10, Color: ColorRed}
	v1 := ScreenVertex{X: 190, Y: 30, Color: ColorGreen}
	v2 := ScreenVertex{X: 90, Y: 190, Color: ColorBlue}

	for b.Loop() {
		r.ClearBuffers()
		r.DrawTriangle(v0, v1, v2)
	}
}

func BenchmarkDrawObject(b *testing.B) {
	r := createTestRasterizer(b, 200, 200)
	r.SetProjectionMatrix(math3d.Perspective(0.8, 1, 1, 100))
	obj := Object{
		Model: math3d.Translate(math3d.V3(0, 0, -5)),
		Batch: models.GenerateDisc(math3d.Zero3(), 2, 64, models.Yellow, models.Red),
	}

	for b.Loop() {
		r.ClearBuffers()
		r.DrawObject(obj)
	}
}

func BenchmarkClearBuffers(b *testing.B) {
	r := createTestRasterizer(b, 320, 200)
	for b.Loop() {
		r.ClearBuffers()
	}
}
