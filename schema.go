package ui

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var (
	// ErrUnknownType is returned when a node names a type with no builder.
	ErrUnknownType = errors.New("unknown component type")

	// ErrInvalidProps is returned when a node's props cannot be decoded.
	ErrInvalidProps = errors.New("invalid props")
)

// ComponentNode is the declarative description of a component and its
// subtree.
type ComponentNode struct {
	Type     string          `json:"type"`
	ID       string          `json:"id,omitempty"`
	Props    map[string]any  `json:"props,omitempty"`
	Events   []string        `json:"events,omitempty"`
	Children []ComponentNode `json:"children,omitempty"`
}

// HasEvent reports whether the node declares the named event.
func (n ComponentNode) HasEvent(name string) bool {
	for _, e := range n.Events {
		if strings.EqualFold(e, name) {
			return true
		}
	}
	return false
}

// BuildFunc creates a component from a node. Children are already built, in
// node order; leaf builders ignore them.
type BuildFunc func(node ComponentNode, children []Component) (Component, error)

// EventSink receives declared events, e.g. ("save", "click").
type EventSink func(id, event string)

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithEventSink routes declared node events to sink.
func WithEventSink(sink EventSink) FactoryOption {
	return func(f *Factory) { f.sink = sink }
}

// Factory turns ComponentNode trees into components.
//
// Usage:
//
//	f := ui.NewFactory(ui.WithEventSink(func(id, ev string) {
//	    log.Printf("%s: %s", id, ev)
//	}))
//	root, err := f.Build(node) // root is usable even when err != nil
type Factory struct {
	builders map[string]BuildFunc
	sink     EventSink
}

// NewFactory creates a factory with the built-in types registered.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{builders: make(map[string]BuildFunc)}
	f.Register("vstack", buildVStack)
	f.Register("hstack", buildHStack)
	f.Register("zstack", buildZStack)
	f.Register("panel", buildPanel)
	f.Register("label", buildLabel)
	f.Register("button", buildButton)
	f.Register("spacer", buildSpacer)
	f.Register("card", buildCard)
	f.Register("dropzone", buildDropZone)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Register adds or replaces the builder for typeName. Type names are
// matched case-insensitively.
func (f *Factory) Register(typeName string, fn BuildFunc) {
	f.builders[strings.ToLower(typeName)] = fn
}

// Types returns the registered type names.
func (f *Factory) Types() []string {
	names := make([]string, 0, len(f.builders))
	for name := range f.builders {
		names = append(names, name)
	}
	return names
}

// Build creates the component tree for node. It always returns a usable
// tree: nodes that fail become visible placeholders, and the returned error
// joins every failure.
func (f *Factory) Build(node ComponentNode) (Component, error) {
	var errs []error
	c := f.build(node, &errs)
	err := errors.Join(errs...)
	if err != nil {
		Logger().Debug("schema build finished with errors", "root", node.Type, "errors", len(errs))
	}
	return c, err
}

func (f *Factory) build(node ComponentNode, errs *[]error) Component {
	children := make([]Component, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, f.build(child, errs))
	}

	fn, ok := f.builders[strings.ToLower(node.Type)]
	if !ok {
		Logger().Warn("unknown component type", "type", node.Type, "id", node.ID)
		*errs = append(*errs, fmt.Errorf("%w: %q", ErrUnknownType, node.Type))
		return placeholder("[Unknown: "+node.Type+"]", node.ID)
	}

	c, err := fn(node, children)
	if err != nil || c == nil {
		if err == nil {
			err = fmt.Errorf("%w: builder returned nil", ErrInvalidProps)
		}
		if !errors.Is(err, ErrInvalidProps) {
			err = fmt.Errorf("%w: %w", ErrInvalidProps, err)
		}
		Logger().Debug("component build failed", "type", node.Type, "id", node.ID, "err", err)
		*errs = append(*errs, fmt.Errorf("build %s %q: %w", node.Type, node.ID, err))
		return placeholder("[Invalid: "+node.Type+"]", node.ID)
	}
	f.bindEvents(c, node)
	return c
}

// bindEvents connects declared events to the sink.
func (f *Factory) bindEvents(c Component, node ComponentNode) {
	if f.sink == nil || len(node.Events) == 0 {
		return
	}
	sink, id := f.sink, node.ID
	switch w := c.(type) {
	case *Button:
		if node.HasEvent("click") {
			w.OnClick = func(*Context) { sink(id, "click") }
		}
	case *DropZone:
		if node.HasEvent("drop") {
			w.OnDropped = func(string, *Context) { sink(id, "drop") }
		}
	}
}

func placeholder(text, id string) *Label {
	l := NewLabel(text)
	l.SetID(id)
	l.Style.Color = ColorError
	return l
}

// DecodeProps decodes props into out (a pointer to a struct with json tags).
// Numbers convert weakly between kinds and "#rrggbb[aa]" strings decode into
// uint32 color fields.
func DecodeProps(props map[string]any, out any) error {
	if len(props) == 0 {
		return nil
	}
	dconfig := &mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       colorHook,
	}
	decoder, err := mapstructure.NewDecoder(dconfig)
	if err != nil {
		return err
	}
	if err := decoder.Decode(props); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProps, err)
	}
	return nil
}

func colorHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Uint32 {
		return data, nil
	}
	return ParseHexColor(reflect.ValueOf(data).String())
}

type styleProps struct {
	Background  uint32  `json:"background"`
	TextColor   uint32  `json:"text_color"`
	TextSize    float32 `json:"text_size"`
	BorderColor uint32  `json:"border_color"`
	BorderWidth float32 `json:"border_width"`
}

func (p *styleProps) style() Style {
	if p == nil {
		return Style{}
	}
	return Style{
		Background: p.Background,
		TextColor:  p.TextColor,
		TextSize:   p.TextSize,
		Border:     Border{Color: p.BorderColor, Width: p.BorderWidth},
	}
}

type interactiveProps struct {
	Style    *styleProps `json:"style"`
	Hover    *styleProps `json:"hover"`
	Pressed  *styleProps `json:"pressed"`
	Disabled *styleProps `json:"disabled"`
}

// applyStyle decodes style props onto a Styled component. Components keep
// their default style when the node has none.
func applyStyle(c Styled, props map[string]any) error {
	var p interactiveProps
	if err := DecodeProps(props, &p); err != nil {
		return err
	}
	if p.Style == nil {
		return nil
	}
	c.SetStyle(InteractiveStyle{
		Idle:     p.Style.style(),
		Hover:    p.Hover.style(),
		Pressed:  p.Pressed.style(),
		Disabled: p.Disabled.style(),
	})
	return nil
}

type stackProps struct {
	Gap        float32 `json:"gap"`
	Spacing    float32 `json:"spacing"`
	Padding    float32 `json:"padding"`
	Align      string  `json:"align"`
	Background uint32  `json:"background"`
	MinWidth   float32 `json:"min_width"`
	MinHeight  float32 `json:"min_height"`
	MaxWidth   float32 `json:"max_width"`
	MaxHeight  float32 `json:"max_height"`
}

func (p stackProps) options(id string) ([]StackOption, error) {
	align, ok := ParseAlignment(p.Align)
	if !ok {
		return nil, fmt.Errorf("%w: align %q", ErrInvalidProps, p.Align)
	}
	gap := p.Gap
	if gap == 0 {
		gap = p.Spacing
	}
	return []StackOption{
		WithID(id),
		Gap(gap),
		Padding(p.Padding),
		Align(align),
		WithBackground(p.Background),
		Constrain(SizeConstraint{
			Min: Vec2{X: p.MinWidth, Y: p.MinHeight},
			Max: Vec2{X: p.MaxWidth, Y: p.MaxHeight},
		}),
	}, nil
}

func buildVStack(node ComponentNode, children []Component) (Component, error) {
	var p stackProps
	if err := DecodeProps(node.Props, &p); err != nil {
		return nil, err
	}
	opts, err := p.options(node.ID)
	if err != nil {
		return nil, err
	}
	s := NewVStack(opts...)
	s.Add(children...)
	return s, nil
}

func buildHStack(node ComponentNode, children []Component) (Component, error) {
	var p stackProps
	if err := DecodeProps(node.Props, &p); err != nil {
		return nil, err
	}
	opts, err := p.options(node.ID)
	if err != nil {
		return nil, err
	}
	s := NewHStack(opts...)
	s.Add(children...)
	return s, nil
}

func buildZStack(node ComponentNode, children []Component) (Component, error) {
	var p stackProps
	if err := DecodeProps(node.Props, &p); err != nil {
		return nil, err
	}
	z := NewZStack(p.Padding)
	z.SetID(node.ID)
	z.SetBackground(p.Background)
	z.Add(children...)
	return z, nil
}

func buildPanel(node ComponentNode, children []Component) (Component, error) {
	var p struct {
		Title   string  `json:"title"`
		Padding float32 `json:"padding"`
		Gap     float32 `json:"gap"`
	}
	p.Padding, p.Gap = SpaceLG, SpaceMD
	if err := DecodeProps(node.Props, &p); err != nil {
		return nil, err
	}
	panel := NewPanel(node.ID, p.Title, Gap(p.Gap))
	panel.Padding = maxf(p.Padding, 0)
	if err := applyStyle(panel, node.Props); err != nil {
		return nil, err
	}
	panel.Add(children...)
	return panel, nil
}

func parseWrap(s string) (TextWrapMode, bool) {
	switch strings.ToLower(s) {
	case "", "none":
		return WrapModeNone, true
	case "word":
		return WrapModeWord, true
	case "char":
		return WrapModeChar, true
	case "auto":
		return WrapModeAuto, true
	}
	return WrapModeNone, false
}

func buildLabel(node ComponentNode, _ []Component) (Component, error) {
	var p struct {
		Text  string  `json:"text"`
		Size  float32 `json:"size"`
		Color uint32  `json:"color"`
		Wrap  string  `json:"wrap"`
	}
	if err := DecodeProps(node.Props, &p); err != nil {
		return nil, err
	}
	wrap, ok := parseWrap(p.Wrap)
	if !ok {
		return nil, fmt.Errorf("%w: wrap %q", ErrInvalidProps, p.Wrap)
	}
	l := NewLabel(p.Text)
	l.SetID(node.ID)
	l.Style.Size = p.Size
	l.Style.Wrap = wrap
	if p.Color != 0 {
		l.Style.Color = p.Color
	}
	return l, nil
}

func buildButton(node ComponentNode, _ []Component) (Component, error) {
	var p struct {
		Label    string  `json:"label"`
		Text     string  `json:"text"`
		TextSize float32 `json:"text_size"`
		Disabled bool    `json:"disabled"`
		Order    int     `json:"order"`
	}
	if err := DecodeProps(node.Props, &p); err != nil {
		return nil, err
	}
	label := p.Label
	if label == "" {
		label = p.Text
	}
	b := NewButton(node.ID, label)
	b.TextSize = p.TextSize
	b.Disabled = p.Disabled
	b.Order = p.Order
	if err := applyStyle(b, node.Props); err != nil {
		return nil, err
	}
	return b, nil
}

func buildSpacer(node ComponentNode, _ []Component) (Component, error) {
	var p struct {
		Width  float32 `json:"width"`
		Height float32 `json:"height"`
		Size   float32 `json:"size"`
	}
	if err := DecodeProps(node.Props, &p); err != nil {
		return nil, err
	}
	if p.Width == 0 && p.Height == 0 {
		p.Width, p.Height = p.Size, p.Size
	}
	s := NewSpacer(p.Width, p.Height)
	s.SetID(node.ID)
	return s, nil
}

func buildCard(node ComponentNode, _ []Component) (Component, error) {
	var p struct {
		Title   string  `json:"title"`
		Payload string  `json:"payload"`
		Color   uint32  `json:"color"`
		Width   float32 `json:"width"`
		Height  float32 `json:"height"`
	}
	if err := DecodeProps(node.Props, &p); err != nil {
		return nil, err
	}
	c := NewCard(node.ID, p.Title, p.Payload)
	if p.Color != 0 {
		c.Color = p.Color
	}
	if p.Width > 0 {
		c.Size.X = p.Width
	}
	if p.Height > 0 {
		c.Size.Y = p.Height
	}
	return c, nil
}

func buildDropZone(node ComponentNode, _ []Component) (Component, error) {
	var p struct {
		Label  string  `json:"label"`
		Accept string  `json:"accept"`
		Width  float32 `json:"width"`
		Height float32 `json:"height"`
	}
	if err := DecodeProps(node.Props, &p); err != nil {
		return nil, err
	}
	d := NewDropZone(node.ID, p.Label, p.Accept)
	if p.Width > 0 {
		d.Size.X = p.Width
	}
	if p.Height > 0 {
		d.Size.Y = p.Height
	}
	return d, nil
}

// DynamicRoot hosts a schema-built tree and stretches it over the whole
// available area. Replace swaps the tree in place.
type DynamicRoot struct {
	container
	factory *Factory
}

// NewDynamicRoot builds node with f. The root is usable even when the
// returned error is non-nil.
func NewDynamicRoot(f *Factory, node ComponentNode) (*DynamicRoot, error) {
	d := &DynamicRoot{factory: f}
	c, err := f.Build(node)
	d.Add(c)
	return d, err
}

// Tree returns the hosted tree.
func (d *DynamicRoot) Tree() Component {
	if len(d.children) == 0 {
		return nil
	}
	return d.children[0]
}

// Replace rebuilds the hosted tree from node and disposes the old one.
// Focus survives when the new tree still has the focused id; otherwise it is
// cleared. ctx may be nil. The new tree needs a layout before it is drawn.
func (d *DynamicRoot) Replace(ctx *Context, node ComponentNode) error {
	c, err := d.factory.Build(node)
	d.RemoveAll()
	d.Add(c)
	if ctx != nil {
		if id := ctx.FocusedID(); id != "" && FindByID(c, id) == nil {
			ctx.Blur()
		}
	}
	return err
}

// Layout gives the hosted tree the whole available rect.
func (d *DynamicRoot) Layout(available Rect) Vec2 {
	available = available.Sanitize()
	d.Base.SetBounds(available)
	if tree := d.Tree(); tree != nil {
		tree.Layout(available)
		tree.SetPosition(available.X, available.Y)
		tree.SetSize(available.W, available.H)
	}
	return available.Size()
}
