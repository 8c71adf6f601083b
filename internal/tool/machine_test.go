package tool_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Tiliavir/daysketch/internal/bus"
	"github.com/Tiliavir/daysketch/internal/canvas"
	"github.com/Tiliavir/daysketch/internal/model"
	"github.com/Tiliavir/daysketch/internal/tool"
)

func pt(x, y float64) model.Point { return model.Point{X: x, Y: y} }

type pointerEvent struct {
	phase tool.Phase
	p     model.Point
}

type recordingViewport struct {
	events []pointerEvent
}

func (v *recordingViewport) Pointer(phase tool.Phase, p model.Point) {
	v.events = append(v.events, pointerEvent{phase, p})
}

func newMachine(opts ...tool.Option) (*canvas.Store, *tool.Machine) {
	s := canvas.NewStore(canvas.WithMinPointDistance(0))
	return s, tool.NewMachine(s, opts...)
}

func TestPenGesture(t *testing.T) {
	s, m := newMachine()
	if err := m.Begin(pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := m.Continue(pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.End(); err != nil {
		t.Fatal(err)
	}

	all := s.All()
	if len(all) != 1 {
		t.Fatalf("store has %d elements, want 1", len(all))
	}
	if all[0].Type != model.ElementPen {
		t.Errorf("type = %q", all[0].Type)
	}
	if want := []model.Point{pt(0, 0), pt(5, 5)}; !reflect.DeepEqual(all[0].Points, want) {
		t.Errorf("points = %v, want %v", all[0].Points, want)
	}
	if _, ok := m.Current(); ok {
		t.Error("current element still set after End")
	}
}

func TestPenPointsFollowInputExactly(t *testing.T) {
	inputs := [][]model.Point{
		{pt(1, 1)},
		{pt(0, 0), pt(0, 0), pt(3, -2)},
		{pt(-1.25, 7), pt(2, 2), pt(9.5, 0.125), pt(4, 4)},
	}
	for _, in := range inputs {
		s, m := newMachine()
		if err := m.Begin(in[0]); err != nil {
			t.Fatal(err)
		}
		for _, p := range in[1:] {
			if err := m.Continue(p); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := m.End(); err != nil {
			t.Fatal(err)
		}
		if got := s.All()[0].Points; !reflect.DeepEqual(got, in) {
			t.Errorf("points = %v, want %v", got, in)
		}
	}
}

func TestCustomizationAppliesToNewElementsOnly(t *testing.T) {
	s, m := newMachine()
	b := bus.New()
	b.Subscribe(m)

	_ = m.Begin(pt(0, 0))
	_, _ = m.End()

	if err := b.Publish(bus.ColorChanged{Color: "#4fa9cc"}); err != nil {
		t.Fatal(err)
	}
	if err := b.Publish(bus.StrokeWidthChanged{Width: 7}); err != nil {
		t.Fatal(err)
	}
	_ = m.Begin(pt(1, 1))
	_, _ = m.End()

	all := s.All()
	if all[0].StrokeColor != model.Palette[0] || all[0].StrokeWidth != tool.DefaultStrokeWidth {
		t.Errorf("first element changed retroactively: %+v", all[0])
	}
	if all[1].StrokeColor != "#4fa9cc" || all[1].StrokeWidth != 7 {
		t.Errorf("second element = %+v", all[1])
	}
}

func TestTextGesture(t *testing.T) {
	s, m := newMachine(tool.WithColor("#d7c44c"), tool.WithStrokeWidth(3))
	if _, err := m.SetTool(model.ToolText); err != nil {
		t.Fatal(err)
	}
	if err := m.Begin(pt(4, 2)); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("text element not created on begin")
	}
	id, ok := m.Current()
	if !ok {
		t.Fatal("no current element during text gesture")
	}
	if err := s.AttachText(id, "lunch"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.End(); err != nil {
		t.Fatal(err)
	}
	e := s.All()[0]
	if e.Type != model.ElementText || len(e.Points) != 1 || e.Position != pt(4, 2) || e.Text != "lunch" {
		t.Errorf("text element = %+v", e)
	}
	if e.StrokeColor != "#d7c44c" || e.StrokeWidth != 3 {
		t.Errorf("style = %s/%v", e.StrokeColor, e.StrokeWidth)
	}
}

func TestTextContinueIsProtocolViolation(t *testing.T) {
	s, m := newMachine()
	_, _ = m.SetTool(model.ToolText)
	_ = m.Begin(pt(0, 0))
	before := s.All()

	if err := m.Continue(pt(1, 1)); !errors.Is(err, tool.ErrInvalidGestureState) {
		t.Fatalf("err = %v, want ErrInvalidGestureState", err)
	}
	if !reflect.DeepEqual(s.All(), before) {
		t.Error("store mutated by rejected continue")
	}
	if m.InGesture() {
		t.Error("offending gesture not aborted")
	}
}

func TestEraserRemovesHitElementOnly(t *testing.T) {
	s, m := newMachine()
	_ = m.Begin(pt(0, 0))
	_ = m.Continue(pt(10, 0))
	_, _ = m.End()
	_ = m.Begin(pt(0, 100))
	_ = m.Continue(pt(10, 100))
	_, _ = m.End()
	b := s.All()[1]

	if _, err := m.SetTool(model.ToolEraser); err != nil {
		t.Fatal(err)
	}
	if err := m.Begin(pt(5, 1)); err != nil {
		t.Fatal(err)
	}
	if got := s.All()[0]; !got.CrossedOut || got.Selected {
		t.Errorf("hit element flags: %+v", got)
	}
	removed, err := m.End()
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || removed[0].ID != 1 {
		t.Fatalf("removed = %+v", removed)
	}
	all := s.All()
	if len(all) != 1 || !reflect.DeepEqual(all[0], b) {
		t.Errorf("remaining = %+v, want %+v", all, b)
	}
}

func TestEraserContinueHitsTraversedElements(t *testing.T) {
	s, m := newMachine(tool.WithEraserRadius(1))
	for _, x := range []float64{0, 20, 40} {
		_ = m.Begin(pt(x, 0))
		_, _ = m.End()
	}
	_, _ = m.SetTool(model.ToolEraser)
	_ = m.Begin(pt(0, 0))
	_ = m.Continue(pt(20, 0))
	removed, _ := m.End()
	if len(removed) != 2 {
		t.Fatalf("removed %d elements, want 2", len(removed))
	}
	if s.Len() != 1 || s.All()[0].Position != pt(40, 0) {
		t.Errorf("remaining = %+v", s.All())
	}
}

func TestEraserCancelRestoresMarks(t *testing.T) {
	s, m := newMachine()
	_ = m.Begin(pt(0, 0))
	_, _ = m.End()
	_, _ = m.SetTool(model.ToolEraser)
	_ = m.Begin(pt(0, 0))
	m.Cancel()

	if all := s.All(); len(all) != 1 || all[0].CrossedOut {
		t.Errorf("after cancel: %+v", all)
	}
	if m.InGesture() {
		t.Error("gesture still active after cancel")
	}
}

func TestHandNeverTouchesStore(t *testing.T) {
	vp := &recordingViewport{}
	s, m := newMachine(tool.WithViewport(vp))
	_ = m.Begin(pt(0, 0))
	_, _ = m.End()
	before := s.All()

	_, _ = m.SetTool(model.ToolHand)
	_ = m.Begin(pt(1, 1))
	_ = m.Continue(pt(2, 3))
	if _, err := m.End(); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(s.All(), before) {
		t.Error("hand tool mutated the store")
	}
	want := []pointerEvent{
		{tool.PhaseBegin, pt(1, 1)},
		{tool.PhaseContinue, pt(2, 3)},
		{tool.PhaseEnd, pt(2, 3)},
	}
	if !reflect.DeepEqual(vp.events, want) {
		t.Errorf("viewport events = %+v, want %+v", vp.events, want)
	}
}

func TestProtocolViolations(t *testing.T) {
	s, m := newMachine()
	if err := m.Continue(pt(1, 1)); !errors.Is(err, tool.ErrInvalidGestureState) {
		t.Errorf("continue without begin: %v", err)
	}
	if _, err := m.End(); !errors.Is(err, tool.ErrInvalidGestureState) {
		t.Errorf("end without begin: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("store mutated: %d elements", s.Len())
	}

	_ = m.Begin(pt(0, 0))
	if err := m.Begin(pt(1, 1)); !errors.Is(err, tool.ErrInvalidGestureState) {
		t.Errorf("begin during gesture: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("second begin created an element")
	}
	if m.InGesture() {
		t.Error("offending gesture still active")
	}
}

func TestSetToolDoesNotMutateStore(t *testing.T) {
	s, m := newMachine()
	_ = m.Begin(pt(0, 0))
	_ = m.Continue(pt(3, 3))
	_, _ = m.End()
	before := s.All()

	for _, tl := range model.Tools {
		if _, err := m.SetTool(tl); err != nil {
			t.Fatalf("SetTool(%s): %v", tl, err)
		}
		if m.Tool() != tl {
			t.Errorf("tool = %s, want %s", m.Tool(), tl)
		}
		if !reflect.DeepEqual(s.All(), before) {
			t.Fatalf("SetTool(%s) mutated the store", tl)
		}
	}
	if _, err := m.SetTool(model.Tool("lasso")); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestSetToolAutoFinalizesGesture(t *testing.T) {
	s, m := newMachine()
	_ = m.Begin(pt(0, 0))
	_ = m.Continue(pt(2, 2))
	if _, err := m.SetTool(model.ToolText); err != nil {
		t.Fatal(err)
	}
	if m.InGesture() {
		t.Fatal("gesture still active after tool switch")
	}
	all := s.All()
	if len(all) != 1 || len(all[0].Points) != 2 {
		t.Fatalf("pen stroke not kept as drawn: %+v", all)
	}

	_, _ = m.SetTool(model.ToolEraser)
	_ = m.Begin(pt(1, 1))
	removed, err := m.SetTool(model.ToolPen)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || s.Len() != 0 {
		t.Errorf("eraser gesture not committed on switch: removed=%d len=%d", len(removed), s.Len())
	}
}
