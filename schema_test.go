package ui

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_BuildTree(t *testing.T) {
	var node ComponentNode
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "vstack",
		"id": "root",
		"props": {"gap": 8, "padding": "4", "align": "stretch"},
		"children": [
			{"type": "label", "id": "title", "props": {"text": "Board", "wrap": "word"}},
			{"type": "button", "id": "save", "props": {"label": "Save", "order": 2}}
		]
	}`), &node))

	c, err := NewFactory().Build(node)
	require.NoError(t, err)

	root, ok := c.(*VStack)
	require.True(t, ok, "got %T", c)
	assert.Equal(t, "root", root.ID())
	assert.Equal(t, Spacing{Padding: 4, Gap: 8}, root.Spacing())
	assert.Equal(t, AlignStretch, root.Alignment())
	require.Equal(t, 2, root.ChildCount())

	title := root.Child(0).(*Label)
	assert.Equal(t, "Board", title.Text)
	assert.Equal(t, WrapModeWord, title.Style.Wrap)

	save := root.Child(1).(*Button)
	assert.Equal(t, "Save", save.Label)
	assert.Equal(t, 2, save.Order)
}

func TestFactory_TypesAreCaseInsensitive(t *testing.T) {
	c, err := NewFactory().Build(ComponentNode{Type: "HStack", Children: []ComponentNode{{Type: "Spacer"}}})
	require.NoError(t, err)
	_, ok := c.(*HStack)
	assert.True(t, ok)
}

func TestFactory_UnknownTypeBecomesPlaceholder(t *testing.T) {
	c, err := NewFactory().Build(ComponentNode{
		Type:     "vstack",
		Children: []ComponentNode{{Type: "slider", ID: "volume"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), `"slider"`)

	require.Equal(t, 1, c.ChildCount())
	ph, ok := c.Child(0).(*Label)
	require.True(t, ok)
	assert.Equal(t, "[Unknown: slider]", ph.Text)
	assert.Equal(t, "volume", ph.ID())
	assert.Equal(t, ColorError, ph.Style.Color)
}

func TestFactory_InvalidPropsBecomePlaceholder(t *testing.T) {
	tests := []struct {
		name string
		node ComponentNode
	}{
		{"bad wrap", ComponentNode{Type: "label", Props: map[string]any{"wrap": "diagonal"}}},
		{"bad align", ComponentNode{Type: "vstack", Props: map[string]any{"align": "sideways"}}},
		{"wrong kind", ComponentNode{Type: "button", Props: map[string]any{"label": []any{1, 2}}}},
		{"bad color", ComponentNode{Type: "card", Props: map[string]any{"color": "#zzz"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewFactory().Build(tt.node)
			assert.ErrorIs(t, err, ErrInvalidProps)
			ph, ok := c.(*Label)
			require.True(t, ok, "got %T", c)
			assert.Equal(t, "[Invalid: "+tt.node.Type+"]", ph.Text)
		})
	}
}

func TestFactory_JoinsEveryFailure(t *testing.T) {
	c, err := NewFactory().Build(ComponentNode{
		Type: "vstack",
		Children: []ComponentNode{
			{Type: "gauge"},
			{Type: "label", Props: map[string]any{"wrap": "spiral"}},
			{Type: "label", Props: map[string]any{"text": "ok"}},
		},
	})
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.ErrorIs(t, err, ErrInvalidProps)
	assert.Equal(t, 3, c.ChildCount(), "the good sibling survives")
}

func TestFactory_HexColors(t *testing.T) {
	c, err := NewFactory().Build(ComponentNode{
		Type:  "card",
		ID:    "c1",
		Props: map[string]any{"color": "#ff000080", "payload": "CARD:1", "width": 100},
	})
	require.NoError(t, err)
	card := c.(*Card)
	assert.Equal(t, RGBA(255, 0, 0, 0x80), card.Color)
	assert.Equal(t, float32(100), card.Size.X)

	c, err = NewFactory().Build(ComponentNode{Type: "label", Props: map[string]any{"color": "#00ff00"}})
	require.NoError(t, err)
	assert.Equal(t, RGBA(0, 255, 0, 255), c.(*Label).Style.Color)
}

func TestParseHexColor_Errors(t *testing.T) {
	for _, s := range []string{"", "#fff", "#12345", "#gggggg"} {
		_, err := ParseHexColor(s)
		assert.ErrorIs(t, err, ErrBadColor, s)
	}
}

func TestFactory_EventsReachSink(t *testing.T) {
	type fired struct{ id, event string }
	var got []fired
	f := NewFactory(WithEventSink(func(id, event string) {
		got = append(got, fired{id, event})
	}))

	c, err := f.Build(ComponentNode{
		Type: "hstack",
		Children: []ComponentNode{
			{Type: "button", ID: "save", Events: []string{"Click"}},
			{Type: "button", ID: "quiet"},
			{Type: "dropzone", ID: "done", Events: []string{"drop"}, Props: map[string]any{"accept": "CARD:"}},
		},
	})
	require.NoError(t, err)

	save := c.Child(0).(*Button)
	require.NotNil(t, save.OnClick)
	save.OnClick(nil)
	assert.Nil(t, c.Child(1).(*Button).OnClick)

	zone := c.Child(2).(*DropZone)
	assert.True(t, zone.OnDrop("CARD:3", nil))
	assert.False(t, zone.OnDrop("TASK:3", nil))

	assert.Equal(t, []fired{{"save", "click"}, {"done", "drop"}}, got)
}

func TestFactory_RegisterCustomType(t *testing.T) {
	f := NewFactory()
	f.Register("Box", func(node ComponentNode, children []Component) (Component, error) {
		return newBox(node.ID, 10, 10).add(children...), nil
	})
	assert.Contains(t, f.Types(), "box")

	c, err := f.Build(ComponentNode{Type: "box", ID: "b", Children: []ComponentNode{{Type: "spacer"}}})
	require.NoError(t, err)
	assert.Equal(t, "b", c.ID())
	assert.Equal(t, 1, c.ChildCount())
}

func TestFactory_NilBuilderResult(t *testing.T) {
	f := NewFactory()
	f.Register("void", func(ComponentNode, []Component) (Component, error) { return nil, nil })
	_, err := f.Build(ComponentNode{Type: "void"})
	assert.ErrorIs(t, err, ErrInvalidProps)

	f.Register("broken", func(ComponentNode, []Component) (Component, error) { return nil, errors.New("boom") })
	_, err = f.Build(ComponentNode{Type: "broken"})
	assert.ErrorIs(t, err, ErrInvalidProps)
	assert.Contains(t, err.Error(), "boom")
}

func TestDynamicRoot_ReplaceKeepsOrClearsFocus(t *testing.T) {
	ctx := NewContext(nil, nil, 0)
	withSave := ComponentNode{Type: "vstack", Children: []ComponentNode{{Type: "button", ID: "save"}}}
	withoutSave := ComponentNode{Type: "vstack", Children: []ComponentNode{{Type: "button", ID: "load"}}}

	root, err := NewDynamicRoot(NewFactory(), withSave)
	require.NoError(t, err)
	ctx.RequestFocus("save")

	require.NoError(t, root.Replace(ctx, withSave))
	assert.Equal(t, "save", ctx.FocusedID())

	require.NoError(t, root.Replace(ctx, withoutSave))
	assert.Equal(t, "", ctx.FocusedID())
	assert.NotNil(t, FindByID(root, "load"))
	assert.Nil(t, FindByID(root, "save"))
}

func TestDynamicRoot_ReplaceWithErrorsStillSwaps(t *testing.T) {
	root, err := NewDynamicRoot(NewFactory(), ComponentNode{Type: "label"})
	require.NoError(t, err)

	err = root.Replace(nil, ComponentNode{Type: "mystery", ID: "m"})
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, "[Unknown: mystery]", root.Tree().(*Label).Text)
}

func TestDynamicRoot_LayoutFillsAvailable(t *testing.T) {
	root, err := NewDynamicRoot(NewFactory(), ComponentNode{Type: "vstack", ID: "body"})
	require.NoError(t, err)

	assert.Equal(t, Vec2{X: 800, Y: 600}, root.Layout(Rect{W: 800, H: 600}))
	assert.Equal(t, Rect{W: 800, H: 600}, root.Tree().Bounds())
}
