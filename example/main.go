// Example opens a window with a declarative layout: a kanban-style board
// where cards are dragged between drop zones, plus a button that opens a
// context menu.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/ -v      # run this example with debug logging
package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	ui "github.com/go-theft-auto/ui"
	"github.com/go-theft-auto/ui/backend/opengl"
	"github.com/go-theft-auto/ui/text"
)

const (
	windowWidth  = 960
	windowHeight = 600
	windowTitle  = "ui example"
	fontSize     = 16
)

//go:embed layout.json
var layoutJSON []byte

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()
	ui.SetVerbose(*verbose)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
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

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	presenter, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("ui renderer: %w", err)
	}

	fonts, err := text.NewDefaultService(fontSize)
	if err != nil {
		return fmt.Errorf("font atlas: %w", err)
	}
	defer fonts.Close()
	fonts.SetTextureID(presenter.UploadAlphaTexture(fonts.Atlas().Image))

	input := opengl.NewInput(window)
	defer input.Close()

	var node ui.ComponentNode
	if err := json.Unmarshal(layoutJSON, &node); err != nil {
		return fmt.Errorf("decode layout: %w", err)
	}

	var eng *ui.Engine
	reset := false
	toasts := ui.NewToaster("toasts")
	menu := ui.NewMenu("actions",
		ui.MenuItem{Label: "Reset board", Action: func(*ui.Context) { reset = true }},
		ui.MenuItem{Label: "Clear log", Action: func(*ui.Context) {
			ui.Logger().Info("log cleared")
			toasts.Info("Log cleared")
		}},
		ui.MenuItem{Label: "Disabled", Disabled: true},
	)

	sink := func(id, event string) {
		ui.Logger().Info("ui event", "id", id, "event", event)
		if id == "menu" && event == "click" {
			pos := input.Translator().CursorPos()
			menu.Open(eng.Context(), pos)
		}
		if event == "drop" {
			toasts.Success("Moved to " + id)
		}
	}
	root, err := ui.NewDynamicRoot(ui.NewFactory(ui.WithEventSink(sink)), node)
	if err != nil {
		// The tree still renders, with placeholders for the failed nodes.
		ui.Logger().Warn("layout has errors", "err", err)
	}

	eng = ui.New(root,
		ui.WithTextService(fonts),
		ui.WithPresenter(presenter),
		ui.WithClipboard(opengl.NewClipboard(window)),
	)
	defer eng.Close()
	eng.Context().PushOverlay(toasts)

	w, h := window.GetSize()
	eng.Resize(w, h)
	window.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		eng.Resize(w, h)
	})

	last := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()

		fw, fh := window.GetFramebufferSize()
		lw, _ := window.GetSize()
		if lw > 0 {
			presenter.SetFramebufferScale(float32(fw) / float32(lw))
		}
		gl.Viewport(0, 0, int32(fw), int32(fh))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		eng.PostAll(input.Translator().Drain())

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		if _, err := eng.Frame(dt); err != nil {
			return fmt.Errorf("frame: %w", err)
		}
		input.ApplyCursor(eng.Context().Cursor())

		if reset {
			reset = false
			if err := root.Replace(eng.Context(), node); err != nil {
				ui.Logger().Warn("reset board", "err", err)
				toasts.Error("Board has errors")
			} else {
				toasts.Info("Board reset")
			}
			eng.Invalidate()
		}

		window.SwapBuffers()
	}
	return nil
}

