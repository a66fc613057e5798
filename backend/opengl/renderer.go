// Package opengl presents ui frames with OpenGL 4.1 and feeds GLFW input
// into a ui.InputTranslator.
package opengl

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	ui "github.com/go-theft-auto/ui"
)

// Renderer implements ui.Presenter. It owns a shader, one streaming
// vertex/index buffer pair and the textures uploaded through it. All methods
// must be called on the thread that owns the GL context.
type Renderer struct {
	shader    uint32
	vao, vbo  uint32
	ebo       uint32
	projLoc   int32
	texLoc    int32
	useTexLoc int32
	rgbaLoc   int32
	width     int
	height    int
	scale     float32 // framebuffer pixels per logical pixel

	textures map[uint32]bool // texture id -> RGBA (false: single channel)
}

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

// Single-channel textures hold glyph coverage in R and take their colour
// from the vertex. RGBA textures are modulated by it.
const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D tex;
uniform bool useTexture;
uniform bool rgbaTexture;

void main() {
    if (!useTexture) {
        FragColor = Color;
    } else if (rgbaTexture) {
        FragColor = texture(tex, TexCoord) * Color;
    } else {
        FragColor = vec4(Color.rgb, Color.a * texture(tex, TexCoord).r);
    }
}
` + "\x00"

// NewRenderer compiles the UI shader and allocates buffers for a
// width x height framebuffer.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{
		width:    width,
		height:   height,
		scale:    1,
		textures: make(map[uint32]bool),
	}

	var err error
	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("create ui shader: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))
	r.texLoc = gl.GetUniformLocation(r.shader, gl.Str("tex\x00"))
	r.useTexLoc = gl.GetUniformLocation(r.shader, gl.Str("useTexture\x00"))
	r.rgbaLoc = gl.GetUniformLocation(r.shader, gl.Str("rgbaTexture\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	stride := int32(unsafe.Sizeof(ui.Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(ui.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(ui.Vertex{}.Color))
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	return r, nil
}

// SetFramebufferScale sets how many framebuffer pixels one logical pixel
// covers, for scissor rectangles on HiDPI displays.
func (r *Renderer) SetFramebufferScale(s float32) {
	if s <= 0 {
		s = 1
	}
	r.scale = s
}

// Resize implements ui.Presenter. Sizes are logical pixels.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// UploadAlphaTexture uploads single-channel coverage, such as a glyph atlas,
// and returns its texture id.
func (r *Renderer) UploadAlphaTexture(img *image.Alpha) uint32 {
	b := img.Bounds()
	tex := r.newTexture(gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.textures[tex] = false
	return tex
}

// UploadRGBATexture uploads a colour image for DrawImage and returns its
// texture id.
func (r *Renderer) UploadRGBATexture(img *image.RGBA) uint32 {
	b := img.Bounds()
	tex := r.newTexture(gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.textures[tex] = true
	return tex
}

// DeleteTexture releases a texture uploaded through this renderer.
func (r *Renderer) DeleteTexture(id uint32) {
	if _, ok := r.textures[id]; !ok {
		return
	}
	gl.DeleteTextures(1, &id)
	delete(r.textures, id)
}

func (r *Renderer) newTexture(filter int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}

// Present implements ui.Presenter: it uploads the frame buffers and issues
// one indexed draw per batch, scissored to the batch clip. Caller GL state is
// restored afterwards.
func (r *Renderer) Present(f *ui.Frame) error {
	if f == nil || len(f.Indices) == 0 {
		return nil
	}

	saved := saveState()
	defer saved.restore()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.shader)
	proj := orthoMatrix(0, float32(r.width), float32(r.height), 0, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.texLoc, 0)

	gl.BindVertexArray(r.vao)
	defer gl.BindVertexArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(f.Vertices)*int(unsafe.Sizeof(ui.Vertex{})),
		gl.Ptr(f.Vertices), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(f.Indices)*2,
		gl.Ptr(f.Indices), gl.STREAM_DRAW)

	for _, b := range f.Batches {
		if b.ElemCount == 0 {
			continue
		}
		x, y, w, h, ok := r.scissor(b.Clip)
		if !ok {
			continue
		}
		gl.Scissor(x, y, w, h)

		if b.TextureID != 0 {
			gl.BindTexture(gl.TEXTURE_2D, b.TextureID)
			gl.Uniform1i(r.useTexLoc, 1)
			gl.Uniform1i(r.rgbaLoc, boolToInt(r.textures[b.TextureID]))
		} else {
			gl.Uniform1i(r.useTexLoc, 0)
			gl.Uniform1i(r.rgbaLoc, 0)
		}

		gl.DrawElementsBaseVertexWithOffset(
			gl.TRIANGLES,
			int32(b.ElemCount),
			gl.UNSIGNED_SHORT,
			uintptr(b.IndexOffset)*2,
			int32(b.VertexOffset),
		)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl error 0x%x", code)
	}
	return nil
}

// scissor converts a top-left logical clip into a bottom-left framebuffer
// rectangle clamped to the screen.
func (r *Renderer) scissor(clip ui.Rect) (x, y, w, h int32, ok bool) {
	clip = clip.Intersect(ui.Rect{W: float32(r.width), H: float32(r.height)})
	if clip.IsEmpty() {
		return 0, 0, 0, 0, false
	}
	s := r.scale
	x = int32(clip.X * s)
	y = int32((float32(r.height) - clip.Y - clip.H) * s)
	w = int32(clip.W * s)
	h = int32(clip.H * s)
	return x, y, w, h, w > 0 && h > 0
}

// Close releases every GL object the renderer created.
func (r *Renderer) Close() error {
	for id := range r.textures {
		gl.DeleteTextures(1, &id)
	}
	clear(r.textures)
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
		r.shader = 0
	}
	return nil
}

// glState is the subset of GL state Present changes.
type glState struct {
	program            int32
	blendSrc, blendDst int32
	scissorBox         [4]int32
	blend, depth, cull bool
	scissor            bool
}

func saveState() glState {
	var s glState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissorBox[0])
	s.blend = gl.IsEnabled(gl.BLEND)
	s.depth = gl.IsEnabled(gl.DEPTH_TEST)
	s.cull = gl.IsEnabled(gl.CULL_FACE)
	s.scissor = gl.IsEnabled(gl.SCISSOR_TEST)
	return s
}

func (s glState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BlendFunc(uint32(s.blendSrc), uint32(s.blendDst))
	setEnabled(gl.BLEND, s.blend)
	setEnabled(gl.DEPTH_TEST, s.depth)
	setEnabled(gl.CULL_FACE, s.cull)
	setEnabled(gl.SCISSOR_TEST, s.scissor)
	gl.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
}

func setEnabled(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func compileShader(kind uint32, source string) (uint32, error) {
	sh := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetShaderInfoLog(sh, n, nil, &log[0])
		gl.DeleteShader(sh)
		return 0, errors.New(string(log[:n]))
	}
	return sh, nil
}

func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetProgramInfoLog(program, n, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link shader program: %s", log[:n])
	}
	return program, nil
}

// orthoMatrix returns a column-major orthographic projection.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

var _ ui.Presenter = (*Renderer)(nil)
