// Command gen renders every widget in a sample tree, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	ui "github.com/go-theft-auto/ui"
	"github.com/go-theft-auto/ui/backend/opengl"
	"github.com/go-theft-auto/ui/text"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single widget screenshot to capture.
type screenshot struct {
	name   string              // filename without extension
	width  int                 // viewport width
	height int                 // viewport height
	build  func() ui.Component // root of the tree
	// drive runs after the first frame, once the tree is laid out.
	drive  func(eng *ui.Engine, in *ui.InputTranslator)
	frames int // frames to render after drive (0 = default 2)
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	presenter, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("ui renderer: %w", err)
	}
	defer presenter.Close()

	fonts, err := text.NewDefaultService(16)
	if err != nil {
		return fmt.Errorf("font atlas: %w", err)
	}
	defer fonts.Close()
	fonts.SetTextureID(presenter.UploadAlphaTexture(fonts.Atlas().Image))

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(presenter, fonts, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(presenter *opengl.Renderer, fonts ui.TextService, s screenshot, outDir string) error {
	// The hidden window stays at 800x600 (larger than every screenshot), so
	// only the presenter projection changes.
	eng := ui.New(s.build(), ui.WithTextService(fonts), ui.WithPresenter(presenter))
	eng.Resize(s.width, s.height)
	in := ui.NewInputTranslator()

	frame := func() error {
		gl.Viewport(0, 0, int32(s.width), int32(s.height))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		eng.PostAll(in.Drain())
		_, err := eng.Frame(1.0 / 60.0)
		return err
	}

	if err := frame(); err != nil {
		return err
	}
	if s.drive != nil {
		s.drive(eng, in)
	}
	frames := 2
	if s.frames > 0 {
		frames = s.frames
	}
	for range frames {
		if err := frame(); err != nil {
			return err
		}
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// padded wraps children in a VStack with the usual screenshot margin.
func padded(children ...ui.Component) ui.Component {
	s := ui.NewVStack(ui.Padding(12), ui.Gap(8))
	s.Add(children...)
	return s
}

// buildScreenshots returns the list of all widget screenshots to generate.
func buildScreenshots() []screenshot {
	var (
		card = ui.NewCard("card", "Fix login", "CARD:1")
		zone = ui.NewDropZone("zone", "Drop cards here", "CARD:")
		menu = ui.NewMenu("menu",
			ui.MenuItem{Label: "Open"},
			ui.MenuItem{Label: "Save"},
			ui.MenuItem{Label: "Disabled", Disabled: true},
		)
		toasts = ui.NewToaster("toasts")
	)

	return []screenshot{
		{
			name: "label", width: 400, height: 140,
			build: func() ui.Component {
				wrapped := ui.NewLabel("Wrapped text breaks across lines when it reaches the edge of the available width.")
				wrapped.Style.Wrap = ui.WrapModeWord
				return padded(ui.NewLabel("Plain text"), wrapped)
			},
		},
		{
			name: "button", width: 400, height: 80,
			build: func() ui.Component {
				row := ui.NewHStack(ui.Gap(8))
				disabled := ui.NewButton("disabled", "Disabled")
				disabled.Disabled = true
				row.Add(ui.NewButton("save", "Save"), ui.NewButton("cancel", "Cancel"), disabled)
				return padded(row)
			},
		},
		{
			name: "panel", width: 350, height: 220,
			build: func() ui.Component {
				p := ui.NewPanel("settings", "Settings")
				p.Add(ui.NewLabel("Volume: 80%"), ui.NewLabel("Brightness: 100%"), ui.NewButton("apply", "Apply"))
				return padded(p)
			},
		},
		{
			name: "drag_and_drop", width: 500, height: 200, frames: 3,
			build: func() ui.Component {
				row := ui.NewHStack(ui.Gap(60))
				row.Add(card, zone)
				return padded(row)
			},
			drive: func(_ *ui.Engine, in *ui.InputTranslator) {
				from, to := card.Bounds().Center(), zone.Bounds().Center()
				in.CursorMoved(from.X, from.Y)
				in.Button(ui.MouseButtonLeft, true)
				in.CursorMoved(to.X, to.Y)
			},
		},
		{
			name: "menu", width: 300, height: 200,
			build: func() ui.Component {
				return padded(ui.NewLabel("Right-click menu"))
			},
			drive: func(eng *ui.Engine, _ *ui.InputTranslator) {
				menu.Open(eng.Context(), ui.Vec2{X: 40, Y: 50})
			},
		},
		{
			name: "toast", width: 400, height: 200,
			build: func() ui.Component {
				return padded(ui.NewLabel("Notifications"))
			},
			drive: func(eng *ui.Engine, _ *ui.InputTranslator) {
				eng.Context().PushOverlay(toasts)
				toasts.Info("Board loaded")
				toasts.Success("Card moved")
				toasts.Error("Save failed")
			},
			frames: 20,
		},
	}
}
