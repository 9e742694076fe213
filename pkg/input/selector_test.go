package input

import "testing"

// stubSource 记录轮询次数的测试来源
type stubSource struct {
	polls int
	last  Pointer
}

func (s *stubSource) Poll(dt float64) Pointer {
	s.polls++
	return s.last
}

// TestSelectorStartsWithMouse 测试选择器初始使用鼠标
func TestSelectorStartsWithMouse(t *testing.T) {
	mouse := &stubSource{last: Pointer{X: 100, Y: 200}}
	hand := &stubSource{}
	sel := NewSelector(mouse, hand)

	if sel.Mode() != ModeMouse {
		t.Errorf("初始模式应为 ModeMouse，实际 %v", sel.Mode())
	}

	p := sel.Poll(1.0 / 60)
	if p.X != 100 || p.Y != 200 {
		t.Errorf("应返回鼠标来源的快照，实际 (%v, %v)", p.X, p.Y)
	}
	if mouse.polls != 1 || hand.polls != 0 {
		t.Errorf("只应轮询鼠标：mouse=%d hand=%d", mouse.polls, hand.polls)
	}
}

// TestSelectorMutualExclusion 测试同一时间只有一个来源被轮询
func TestSelectorMutualExclusion(t *testing.T) {
	mouse := &stubSource{}
	hand := &stubSource{last: Pointer{X: 640, Y: 360, Triggered: true}}
	sel := NewSelector(mouse, hand)

	sel.Use(ModeHand)
	for i := 0; i < 5; i++ {
		sel.Poll(1.0 / 60)
	}
	if hand.polls != 5 {
		t.Errorf("手部来源应被轮询 5 次，实际 %d", hand.polls)
	}
	if mouse.polls != 0 {
		t.Errorf("手部模式下鼠标不应被轮询，实际 %d 次", mouse.polls)
	}

	p := sel.Poll(1.0 / 60)
	if !p.Triggered {
		t.Error("应透传手部来源的敲击")
	}

	sel.Use(ModeMouse)
	handPolls := hand.polls
	for i := 0; i < 5; i++ {
		sel.Poll(1.0 / 60)
	}
	if mouse.polls != 5 {
		t.Errorf("切回鼠标后应轮询鼠标 5 次，实际 %d", mouse.polls)
	}
	if hand.polls != handPolls {
		t.Errorf("鼠标模式下手部来源不应被轮询")
	}
}

// TestSelectorIgnoresHandWithoutSource 测试没有手部来源时切换请求被忽略
func TestSelectorIgnoresHandWithoutSource(t *testing.T) {
	mouse := &stubSource{}
	sel := NewSelector(mouse, nil)

	sel.Use(ModeHand)
	if sel.Mode() != ModeMouse {
		t.Errorf("没有手部来源时应保持 ModeMouse，实际 %v", sel.Mode())
	}

	sel.Poll(1.0 / 60)
	if mouse.polls != 1 {
		t.Errorf("应继续轮询鼠标，实际 %d 次", mouse.polls)
	}
}

// TestSelectorToggle 测试模式切换往返
func TestSelectorToggle(t *testing.T) {
	mouse := &stubSource{}
	hand := &stubSource{}
	sel := NewSelector(mouse, hand)

	if got := sel.Toggle(); got != ModeHand {
		t.Errorf("第一次切换应得到 ModeHand，实际 %v", got)
	}
	if got := sel.Toggle(); got != ModeMouse {
		t.Errorf("第二次切换应回到 ModeMouse，实际 %v", got)
	}
}

// TestSelectorToggleWithoutHand 测试没有手部来源时切换保持鼠标
func TestSelectorToggleWithoutHand(t *testing.T) {
	sel := NewSelector(&stubSource{}, nil)

	if got := sel.Toggle(); got != ModeMouse {
		t.Errorf("没有手部来源时切换应保持 ModeMouse，实际 %v", got)
	}
}

// TestModeString 测试模式名用于日志和成绩上报
func TestModeString(t *testing.T) {
	if got := ModeMouse.String(); got != "mouse" {
		t.Errorf("ModeMouse 应为 %q，实际 %q", "mouse", got)
	}
	if got := ModeHand.String(); got != "hand" {
		t.Errorf("ModeHand 应为 %q，实际 %q", "hand", got)
	}
}
