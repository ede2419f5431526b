package app

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"figment/internal/field"
)

const (
	// Vertical field of view for the perspective projection.
	fovY = 45.0 * math.Pi / 180.0

	// Glow sprites render larger than the body disc.
	glowSizeScale = 3.0

	// floats per particle in the streaming buffer: x, y, z, size,
	// brightness, glow.
	vertexStride = 6
)

// glOffset converts a byte offset to unsafe.Pointer for VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws the particle field as two point-sprite passes over a
// shared streaming VBO: an alpha-blended body pass and an additive glow
// pass.
type Renderer struct {
	bodyProg uint32
	glowProg uint32
	vao      uint32
	vbo      uint32
	vboCap   int

	bodyUCamZ  int32
	bodyUFocal int32
	bodyURes   int32
	bodyUScale int32

	glowUCamZ  int32
	glowUFocal int32
	glowURes   int32
	glowUScale int32

	buf []float32
}

func NewRenderer(maxParticles int) (*Renderer, error) {
	bodyProg, err := linkProgram(particleVertSrc, bodyFragSrc)
	if err != nil {
		return nil, fmt.Errorf("body program: %w", err)
	}
	glowProg, err := linkProgram(particleVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(bodyProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{bodyProg: bodyProg, glowProg: glowProg, vboCap: maxParticles}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(vertexStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxParticles*int(stride), nil, gl.STREAM_DRAW)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(3*4))
	// aBright (float)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, stride, glOffset(4*4))
	// aGlow (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(5*4))

	gl.UseProgram(bodyProg)
	r.bodyUCamZ = gl.GetUniformLocation(bodyProg, gl.Str("uCamZ\x00"))
	r.bodyUFocal = gl.GetUniformLocation(bodyProg, gl.Str("uFocal\x00"))
	r.bodyURes = gl.GetUniformLocation(bodyProg, gl.Str("uResolution\x00"))
	r.bodyUScale = gl.GetUniformLocation(bodyProg, gl.Str("uSizeScale\x00"))

	gl.UseProgram(glowProg)
	r.glowUCamZ = gl.GetUniformLocation(glowProg, gl.Str("uCamZ\x00"))
	r.glowUFocal = gl.GetUniformLocation(glowProg, gl.Str("uFocal\x00"))
	r.glowURes = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))
	r.glowUScale = gl.GetUniformLocation(glowProg, gl.Str("uSizeScale\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	for _, id := range []uint32{r.bodyProg, r.glowProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// focalPixels converts the field of view into a focal length in pixels for
// the framebuffer height.
func focalPixels(fbH int) float32 {
	return float32(float64(fbH) / 2 / math.Tan(fovY/2))
}

// Draw streams the field's attribute arrays and renders both passes.
func (r *Renderer) Draw(f *field.Field, fbW, fbH int) {
	s := f.S
	n := s.Len()
	if n > r.vboCap {
		n = r.vboCap
	}
	if n == 0 {
		return
	}

	r.buf = r.buf[:0]
	for i := 0; i < n; i++ {
		r.buf = append(r.buf,
			float32(s.Pos[i].X), float32(s.Pos[i].Y), float32(s.Pos[i].Z),
			float32(s.Size[i]), float32(s.Bright[i]), float32(s.Glow[i]),
		)
	}

	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, n*vertexStride*4, gl.Ptr(r.buf), gl.STREAM_DRAW)

	camZ := float32(f.Cfg.CameraZ)
	focal := focalPixels(fbH)

	gl.Enable(gl.BLEND)

	// Glow pass first so the discs sit on top of their halos.
	gl.UseProgram(r.glowProg)
	gl.Uniform1f(r.glowUCamZ, camZ)
	gl.Uniform1f(r.glowUFocal, focal)
	gl.Uniform2f(r.glowURes, float32(fbW), float32(fbH))
	gl.Uniform1f(r.glowUScale, glowSizeScale)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.DrawArrays(gl.POINTS, 0, int32(n))

	gl.UseProgram(r.bodyProg)
	gl.Uniform1f(r.bodyUCamZ, camZ)
	gl.Uniform1f(r.bodyUFocal, focal)
	gl.Uniform2f(r.bodyURes, float32(fbW), float32(fbH))
	gl.Uniform1f(r.bodyUScale, 1.0)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.POINTS, 0, int32(n))

	gl.Disable(gl.BLEND)
}
