package app

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"figment/internal/field"
)

// Input translates glfw events into the core's pointer/scroll/click
// surface: a 3D cursor on the z=0 plane, a normalized scroll progress, and
// one-shot click detection.
type Input struct {
	prevMouse  map[glfw.MouseButton]bool
	prevKeys   map[glfw.Key]bool
	prevWorldX float64
	prevWorldY float64
	prevTime   float64
	havePrev   bool

	scrollAccum float64
}

// One scroll wheel notch moves this much normalized progress.
const scrollNotch = 0.06

func NewInput(window *glfw.Window) *Input {
	in := &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		in.scrollAccum -= yoff * scrollNotch
		if in.scrollAccum < 0 {
			in.scrollAccum = 0
		}
		if in.scrollAccum > 1 {
			in.scrollAccum = 1
		}
	})
	return in
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

// ScrollProgress returns the accumulated normalized scroll in [0,1].
func (in *Input) ScrollProgress() float64 { return in.scrollAccum }

// Pointer samples the cursor and produces the core's pointer state: world
// position on the z=0 plane, button state, viewport containment, and speed
// in world units per second.
func (in *Input) Pointer(window *glfw.Window, camZ float64, fbW, fbH int, now float64) field.Pointer {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	if winW <= 0 || winH <= 0 {
		return field.Pointer{}
	}

	inside := cx >= 0 && cy >= 0 && cx < float64(winW) && cy < float64(winH)

	// Unproject onto the z=0 plane: pixels to world units at that depth.
	scaleX := float64(fbW) / float64(winW)
	scaleY := float64(fbH) / float64(winH)
	fx := cx * scaleX
	fy := cy * scaleY
	worldPerPx := camZ / float64(focalPixels(fbH))
	wx := (fx - float64(fbW)*0.5) * worldPerPx
	wy := -(fy - float64(fbH)*0.5) * worldPerPx

	speed := 0.0
	if in.havePrev && now > in.prevTime {
		speed = math.Hypot(wx-in.prevWorldX, wy-in.prevWorldY) / (now - in.prevTime)
	}
	in.prevWorldX, in.prevWorldY = wx, wy
	in.prevTime = now
	in.havePrev = true

	return field.Pointer{
		Pos:    field.Vec3{X: wx, Y: wy},
		Down:   window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press,
		Inside: inside,
		Speed:  speed,
	}
}
