package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// ScreenVertex is a vertex after the viewport transform. X and Y are pixel
// coordinates with integers at pixel centres, Z is in [0, MaxDepth] for
// geometry between the near and far planes.
type ScreenVertex struct {
	X, Y, Z float64
	Color   Color
	UV      math3d.Vec2
}

// XY returns the screen position as a Vec2.
func (v ScreenVertex) XY() math3d.Vec2 {
	return math3d.V2(v.X, v.Y)
}

// ToClip transforms a model-space position into clip space.
func ToClip(mvp math3d.Mat4, p math3d.Vec4) math3d.Vec4 {
	return mvp.MulVec4(p)
}

// ToNDC performs the perspective divide. ok is false when w is zero, in which
// case the vertex cannot be placed on screen.
func ToNDC(clip math3d.Vec4) (ndc math3d.Vec4, ok bool) {
	return clip.PerspectiveDivide()
}

// ToScreen applies a viewport matrix to a normalised device position.
func ToScreen(port math3d.Mat4, ndc math3d.Vec4) math3d.Vec3 {
	return port.MulVec4(ndc).Vec3()
}

// Viewport returns the matrix mapping NDC [-1,1] onto pixels [0,width-1],
// [0,height-1] and depth [0,MaxDepth].
func Viewport(width, height int) math3d.Mat4 {
	return math3d.Viewport(width, height, DepthScale)
}

// Project runs a model-space vertex through clip, NDC and screen space using
// the combined model-view-projection matrix. ok is false for vertices with
// clip w of zero.
func (r *Rasterizer) Project(mvp math3d.Mat4, v models.Vertex) (ScreenVertex, bool) {
	ndc, ok := ToNDC(ToClip(mvp, v.Position))
	if !ok {
		return ScreenVertex{}, false
	}
	s := ToScreen(r.port, ndc)
	return ScreenVertex{X: s.X, Y: s.Y, Z: s.Z, Color: v.Color, UV: v.UV}, true
}
