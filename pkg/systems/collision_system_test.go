package systems

import (
	"testing"

	"github.com/gonewx/skywhack/pkg/config"
	"github.com/gonewx/skywhack/pkg/entities"
	"github.com/gonewx/skywhack/pkg/game"
	"github.com/gonewx/skywhack/pkg/types"
	"github.com/gonewx/skywhack/pkg/world"
)

func newCollisionFixture(t *testing.T) (*world.World, *game.Round, *IndicatorSystem, *CollisionSystem) {
	t.Helper()
	w := world.NewWorld()
	w.SetSize(1280, 720) // 基准宽度，命中半径 = 32
	round := newRunningRound(60)
	ind := NewIndicatorSystem()
	cs := NewCollisionSystem(w, round, ind, nil)
	return w, round, ind, cs
}

func TestResolveHitAtExactCenter(t *testing.T) {
	w, round, ind, cs := newCollisionFixture(t)

	tg := entities.NewTarget(w, types.SpeciesBee, 300, 300, 150, 0)

	hits := cs.ResolveHit(300, 300)
	if hits != 1 {
		t.Fatalf("ResolveHit = %d, want 1", hits)
	}
	if tg.Status != world.StatusHit {
		t.Error("target status should be StatusHit")
	}
	if tg.VX != 0 || tg.VY != config.HitFallInitialSpeed {
		t.Errorf("hit velocity = (%v, %v), want (0, %v)", tg.VX, tg.VY, config.HitFallInitialSpeed)
	}
	if ind.Count() != 1 {
		t.Errorf("indicator count = %d, want 1", ind.Count())
	}
	if round.Hits() != 1 {
		t.Fatalf("round hits = %d, want 1", round.Hits())
	}
	rec := round.History()[0]
	if rec.Species != "bee" || rec.Points != types.SpeciesBee.Points() {
		t.Errorf("history record = %+v", rec)
	}
	if rec.TimestampMs <= 0 {
		t.Error("hit timestamp should be set")
	}
	if round.Score() != types.SpeciesBee.Points() {
		t.Errorf("score = %d, want %d", round.Score(), types.SpeciesBee.Points())
	}
}

func TestResolveHitIsIdempotentPerTarget(t *testing.T) {
	w, round, ind, cs := newCollisionFixture(t)

	entities.NewTarget(w, types.SpeciesButterfly, 300, 300, 150, 0)

	if hits := cs.ResolveHit(300, 300); hits != 1 {
		t.Fatalf("first trigger hits = %d, want 1", hits)
	}
	// 同一目标再次触发不得重复命中
	if hits := cs.ResolveHit(300, 300); hits != 0 {
		t.Errorf("second trigger hits = %d, want 0", hits)
	}
	if round.Hits() != 1 {
		t.Errorf("round hits = %d, want 1", round.Hits())
	}
	if ind.Count() != 1 {
		t.Errorf("indicator count = %d, want 1", ind.Count())
	}
}

func TestResolveHitMultipleTargetsInRadius(t *testing.T) {
	w, round, _, cs := newCollisionFixture(t)

	a := entities.NewTarget(w, types.SpeciesBee, 300, 300, 150, 0)
	b := entities.NewTarget(w, types.SpeciesFly, 320, 310, -120, 0) // 距触发点约 22
	c := entities.NewTarget(w, types.SpeciesAva, 360, 300, 100, 0)  // 距触发点 60，在邻域但超半径

	hits := cs.ResolveHit(300, 300)
	if hits != 2 {
		t.Fatalf("ResolveHit = %d, want 2", hits)
	}
	if a.Status != world.StatusHit || b.Status != world.StatusHit {
		t.Error("both in-radius targets should be hit")
	}
	if c.Status != world.StatusFlying {
		t.Error("out-of-radius target should stay flying")
	}
	wantScore := types.SpeciesBee.Points() + types.SpeciesFly.Points()
	if round.Score() != wantScore {
		t.Errorf("score = %d, want %d (sum over history)", round.Score(), wantScore)
	}
}

func TestResolveHitMissOutsideRadius(t *testing.T) {
	w, round, ind, cs := newCollisionFixture(t)

	tg := entities.NewTarget(w, types.SpeciesBee, 300, 300, 150, 0)

	// 半径 32，距离 33 应脱靶
	if hits := cs.ResolveHit(300+33, 300); hits != 0 {
		t.Errorf("hits = %d, want 0 just outside the radius", hits)
	}
	if tg.Status != world.StatusFlying {
		t.Error("missed target should stay flying")
	}
	if round.Hits() != 0 || ind.Count() != 0 {
		t.Error("miss must not record history or spawn indicators")
	}

	// 半径边缘以内命中
	if hits := cs.ResolveHit(300+31, 300); hits != 1 {
		t.Errorf("hits = %d, want 1 just inside the radius", hits)
	}
}

func TestResolveHitScaledRadius(t *testing.T) {
	w := world.NewWorld()
	w.SetSize(640, 360) // 半宽场地，半径缩放为 16
	round := newRunningRound(60)
	cs := NewCollisionSystem(w, round, NewIndicatorSystem(), nil)

	entities.NewTarget(w, types.SpeciesBee, 300, 200, 150, 0)

	if hits := cs.ResolveHit(300+20, 200); hits != 0 {
		t.Errorf("hits = %d, want 0 beyond the scaled radius", hits)
	}
	if hits := cs.ResolveHit(300+15, 200); hits != 1 {
		t.Errorf("hits = %d, want 1 within the scaled radius", hits)
	}
}

func TestResolveHitNoOpOutsideRunningPhase(t *testing.T) {
	w := world.NewWorld()
	w.SetSize(1280, 720)
	ind := NewIndicatorSystem()

	countdown := game.NewRound(60)
	cs := NewCollisionSystem(w, countdown, ind, nil)
	tg := entities.NewTarget(w, types.SpeciesBee, 300, 300, 150, 0)

	if hits := cs.ResolveHit(300, 300); hits != 0 {
		t.Errorf("hits during countdown = %d, want 0", hits)
	}
	if tg.Status != world.StatusFlying {
		t.Error("countdown trigger must not mutate target state")
	}

	over := newRunningRound(1)
	over.Tick(2.0)
	cs.SetRound(over)
	if hits := cs.ResolveHit(300, 300); hits != 0 {
		t.Errorf("hits after round over = %d, want 0", hits)
	}
}

func TestResolveHitNoOpWithoutPlaySize(t *testing.T) {
	w := world.NewWorld() // 半径为 0
	round := newRunningRound(60)
	cs := NewCollisionSystem(w, round, NewIndicatorSystem(), nil)

	if hits := cs.ResolveHit(100, 100); hits != 0 {
		t.Errorf("hits = %d, want 0 with zero-sized play area", hits)
	}
}
