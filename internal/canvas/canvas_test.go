package canvas_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/vitalchart/internal/canvas"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want canvas.Color
		ok   bool
	}{
		{"#abc", canvas.Color{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}, true},
		{"#10b981", canvas.Color{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}, true},
		{"11223344", canvas.Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, true},
		{"#zzzzzz", canvas.Color{A: 0xff}, false},
		{"#12345", canvas.Color{A: 0xff}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := canvas.ParseHex(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#10b981", canvas.MustHex("#10b981").Hex())
	assert.Equal(t, "#10b98180", canvas.MustHex("#10b981").WithAlpha(0x80).Hex())
	assert.Panics(t, func() { canvas.MustHex("nope") })
}

func TestColorJSON(t *testing.T) {
	in := canvas.MustHex("#ef4444").WithAlpha(0x40)

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `"#ef444440"`, string(data))

	var out canvas.Color
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`"#xyz1"`), &out))
	assert.Error(t, json.Unmarshal([]byte(`12`), &out))
}

func TestRectContains(t *testing.T) {
	r := canvas.Rect{X: 10, Y: 20, W: 100, H: 50}
	assert.Equal(t, 110.0, r.Right())
	assert.Equal(t, 70.0, r.Bottom())
	assert.True(t, r.Contains(canvas.Point{X: 10, Y: 20}))
	assert.True(t, r.Contains(canvas.Point{X: 110, Y: 70}))
	assert.False(t, r.Contains(canvas.Point{X: 9, Y: 30}))
}

func TestRecorderReplay(t *testing.T) {
	red := canvas.MustHex("#ff0000")

	var first canvas.Recorder
	first.FillRect(canvas.Rect{X: 1, Y: 2, W: 3, H: 4}, red)
	first.StrokePath([]canvas.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, canvas.Stroke{Color: red, Width: 2, Dash: []float64{2, 3}})
	first.Dot(canvas.Point{X: 3, Y: 3}, 2.5, red)
	first.Text("hello", canvas.Point{X: 4, Y: 4}, canvas.TextStyle{Color: red, Size: 12, Anchor: canvas.AnchorMiddle})
	require.Len(t, first.Commands, 4)

	var second canvas.Recorder
	canvas.Replay(&second, first.Commands)
	assert.Equal(t, first.Commands, second.Commands)
}

func TestCommandString(t *testing.T) {
	red := canvas.MustHex("#ff0000")

	fill := canvas.Command{Op: canvas.OpFillRect, Layer: "plot", Rect: canvas.Rect{X: 1, Y: 2, W: 3, H: 4}, Fill: red}
	assert.Equal(t, "plot      fill   rect=(1.00,2.00 3.00x4.00) fill=#ff0000", fill.String())

	stroke := canvas.Command{
		Op:     canvas.OpStrokePath,
		Layer:  "line",
		Points: []canvas.Point{{X: 0, Y: 0}, {X: 1.5, Y: 2}},
		Stroke: canvas.Stroke{Color: red, Width: 2, Dash: []float64{4, 4}},
	}
	assert.Equal(t, "line      stroke color=#ff0000 width=2.0 dash=[4 4] points=(0.00,0.00) (1.50,2.00)", stroke.String())

	text := canvas.Command{
		Op:     canvas.OpText,
		Layer:  "axis",
		Points: []canvas.Point{{X: 10, Y: 20}},
		Text:   "08:00",
		Style:  canvas.TextStyle{Color: red, Size: 11, Anchor: canvas.AnchorEnd, Vertical: true},
	}
	assert.Equal(t, `axis      text   at=(10.00,20.00) anchor=2 size=11 color=#ff0000 vertical "08:00"`, text.String())

	assert.Equal(t, "unknown", canvas.Op(42).String())
}
