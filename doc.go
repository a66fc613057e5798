/*
Package ui is a retained-mode scene-graph UI runtime. A tree of components
is built once, mutated in place, and driven by an Engine that routes input,
lays the tree out, and renders it into a backend-neutral Frame.

# Overview

Every frame the Engine runs the same pipeline:

	Tick -> queued input -> Update -> Layout -> Render -> Present

Input arrives as semantic Events. The Router hit-tests pointer events
against overlays first (topmost first) and then the main tree (deepest,
last-drawn child first); keyboard events go to the focused component.
Focus, drag-and-drop, the overlay queue, the clipboard and the cursor live
in a Context that every event handler receives.

Rendering is batched: primitives are collected per z-layer into DrawLists,
merged into one vertex/index buffer, and split into Batches that share a
clip rectangle and texture. A Presenter (see backend/opengl) submits them.

# Quick Start

	root := ui.NewVStack(ui.Gap(ui.SpaceMD), ui.Padding(ui.SpaceLG))
	save := ui.NewButton("save", "Save")
	save.OnClick = func(ctx *ui.Context) { ctx.Logger().Info("saved") }
	root.Add(ui.NewLabel("Document"), save)

	eng := ui.New(root,
	    ui.WithTextService(fonts),
	    ui.WithPresenter(glRenderer),
	)
	eng.Resize(1280, 720)
	for !window.ShouldClose() {
	    glfw.PollEvents()
	    eng.PostAll(input.Translator().Drain())
	    if _, err := eng.Frame(dt); err != nil {
	        return err
	    }
	    window.SwapBuffers()
	}

# Declarative Trees

A Factory turns ComponentNode trees (JSON-friendly) into components:

	{"type": "vstack", "props": {"gap": 8}, "children": [
	    {"type": "label", "props": {"text": "Hello"}},
	    {"type": "button", "id": "ok", "props": {"label": "OK"}, "events": ["click"]}
	]}

Built-in types: vstack, hstack, zstack, panel, label, button, spacer, card,
dropzone. Type names are case-insensitive and Register adds more. Nodes
with an unknown type or invalid props become visible placeholders and the
error returned by Build joins every failure, so a broken node never hides
the rest of the tree. Colors are "#rrggbb" or "#rrggbbaa" strings.

DynamicRoot hosts a built tree and swaps it with Replace.

# Component Interface

Components embed Base and override what they need:

	Render(r)             draw the component itself (children are drawn by the runtime)
	Layout(available)     position children, return the natural size
	OnEvent(e, ctx)       handle an event, report whether it was consumed
	IsFocusable()         take part in Tab navigation
	IsDraggable()         may start a drag (OnDragStart returns the payload)
	IsDropTarget()        may receive drops (OnDrop accepts or rejects)
	ChildCount/Child      expose children for routing and rendering

Optional interfaces: TabOrderer (tab position), Disposer (cleanup when an
overlay or subtree is dropped), Styled (schema styles), TextAware (text
service injection before layout).

# Keyboard

	Tab              Focus the next focusable component
	Shift+Tab        Focus the previous focusable component
	Enter / Space    Activate the focused button or menu item
	Up / Down        Move the menu selection
	Home / End       First / last menu item
	Escape           Close the top menu, or cancel an active drag

Keyboard events with nothing focused are not consumed, except inside a
modal overlay.

# Drag and Drop

A left press on a draggable component arms a drag. Once the pointer moves
more than the threshold (5px by default, see WithDragThreshold) the source's
OnDragStart supplies a payload and the source receives DragStart. While
dragging, the source gets DragMove and the target under the pointer gets
DragOver. Release calls OnDrop on that target, then every component that
took part receives exactly one DragEnd carrying the payload and whether the
drop was accepted.

# Overlays

Menus, popups and modals are pushed onto the overlay queue with
Context.PushOverlay. Overlays are laid out over the whole viewport, drawn
after the main tree, and hit-tested before it. A Modal overlay blocks
pointer and keyboard input to everything beneath it;
DismissOnOutsideClick closes it when the pointer goes down outside.

# Layout Options Reference

Stack options:

	Gap(px)              space between children
	Padding(px)          space around the children
	Align(a)             cross-axis alignment: AlignStart, AlignCenter, AlignEnd, AlignStretch
	Constrain(c)         min/max size; zero fields are unconstrained
	WithBackground(c)    fill color behind the stack
	WithID(id)           component id

Anchored places a single child at one of nine anchors or fills the area.

# Spacing Constants

	SpaceNone  = 0
	SpaceXS    = 2
	SpaceSM    = 4
	SpaceMD    = 8   // default gap
	SpaceLG    = 12  // default panel padding
	SpaceXL    = 16

# Text

TextService measures and rasterises text. MonoTextService is a fixed
advance implementation for tests; package text provides an atlas-backed
one with optional HarfBuzz shaping. WrapText, MeasureWrappedText and
TruncateText work with either.

# Logging

The package logs through log/slog. SetVerbose(true) enables debug output
(focus changes, drag lifecycle, overlay pushes); SetLogger or WithLogger
replaces the handler.

# Testing

Package uitest drives an Engine without a window:

	h := uitest.New(t, root, 800, 600)
	h.Click(40, 20)
	h.Tab()
	require.Equal(t, "save", h.Context().FocusedID())
*/
package ui
