package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestCenteredRect(t *testing.T) {
	got := CenteredRect(NewRect(0, 0, 80, 24), 20, 10)
	want := NewRect(30, 7, 20, 10)
	if got != want {
		t.Errorf("CenteredRect() = %+v, expected %+v", got, want)
	}
}

func TestInputFrame(t *testing.T) {
	f := FrameOf(ActionLeft, ActionPause)

	if !f.Has(ActionLeft) || !f.Has(ActionPause) {
		t.Fatalf("FrameOf should set all given actions, got %v", f.Actions)
	}
	if f.Has(ActionRight) {
		t.Error("Unset action should not be reported")
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("Clear should remove all actions, got %v", f.Actions)
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("Zero-value frame should report no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on zero-value frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionContinue.String() != "Continue" {
		t.Errorf("ActionContinue.String() = %q", ActionContinue.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
