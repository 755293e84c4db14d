package obj

import (
	"math"
	"strings"
	"testing"

	"github.com/milk9111/dreamless/common"
)

// tallRoom is a closed room with the player spawn one tile above the floor.
var tallRoom = strings.Join([]string{
	"#####",
	"#...#",
	"#...#",
	"#...#",
	"#...#",
	"#...#",
	"#...#",
	"#P..#",
	"#####",
}, "\n")

func settle(t *testing.T, lvl *Level, stats *WalkerStats) (Walker, Mover) {
	t.Helper()
	w := NewWalker()
	m := NewMover(lvl.SpawnPoints()[0].Pos)
	for i := 0; i < 30; i++ {
		w.Update(stats, lvl, &m, common.FVec{})
	}
	if w.Airborne() {
		t.Fatalf("walker still airborne after settling at %v", m.Pos())
	}
	return w, m
}

func TestMoverUpdateShifts(t *testing.T) {
	m := NewMover(common.IVec{X: 10, Y: 20})
	if m.Pos() != m.LastPos() {
		t.Fatalf("new mover should be at rest")
	}
	m.Update(common.FVec{X: 42, Y: 20})
	if m.LastPos() != (common.FVec{X: 10, Y: 20}) || m.Pos() != (common.FVec{X: 42, Y: 20}) {
		t.Fatalf("unexpected positions %v -> %v", m.LastPos(), m.Pos())
	}
	if got := m.DrawPos(16); got != (common.IVec{X: 26, Y: 20}) {
		t.Fatalf("expected halfway draw position, got %v", got)
	}
}

func TestWalkerRestIsIdempotent(t *testing.T) {
	lvl := mustParse(t, tallRoom)
	stats := DefaultStats().PlayerPhysical
	w, m := settle(t, lvl, &stats)
	rest := m.Pos()
	if rest.Y != 46 {
		t.Fatalf("expected to rest 14px above the floor at 46, got %v", rest.Y)
	}
	for i := 0; i < 100; i++ {
		flags := w.Update(&stats, lvl, &m, common.FVec{})
		if flags&FlagAirborne != 0 {
			t.Fatalf("tick %d: airborne while resting", i)
		}
		if m.Pos() != rest {
			t.Fatalf("tick %d: moved from %v to %v", i, rest, m.Pos())
		}
	}
}

func TestWalkerJumpPeak(t *testing.T) {
	defaults := DefaultStats()
	cases := []struct {
		name  string
		stats WalkerStats
		peak  float32
	}{
		{"physical", defaults.PlayerPhysical, 40.448},
		{"dream", defaults.PlayerDream, 98.560},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := mustParse(t, tallRoom)
			peak := func() (float32, int) {
				w, m := settle(t, lvl, &c.stats)
				rest := m.Pos().Y
				var top float32
				jumps := 0
				for i := 0; i < 120; i++ {
					flags := w.Update(&c.stats, lvl, &m, common.FVec{Y: 1})
					if flags&FlagJumped != 0 {
						jumps++
					}
					top = max(top, m.Pos().Y-rest)
				}
				if w.Airborne() {
					t.Fatalf("walker never landed")
				}
				return top, jumps
			}
			first, jumps := peak()
			if jumps != 1 {
				t.Fatalf("expected exactly 1 jump while holding, got %d", jumps)
			}
			if math.Abs(float64(first-c.peak)) > 0.05 {
				t.Fatalf("expected peak %v, got %v", c.peak, first)
			}
			if second, _ := peak(); second != first {
				t.Fatalf("jump is not deterministic: %v vs %v", first, second)
			}
		})
	}
}

func TestWalkerDoubleJump(t *testing.T) {
	lvl := mustParse(t, tallRoom)
	stats := DefaultStats().PlayerDream
	w, m := settle(t, lvl, &stats)

	var flags WalkerFlags
	flags = w.Update(&stats, lvl, &m, common.FVec{Y: 1})
	if flags&FlagJumped == 0 || flags&FlagDouble != 0 {
		t.Fatalf("expected a single jump, got %b", flags)
	}
	for i := 0; i < 5; i++ {
		w.Update(&stats, lvl, &m, common.FVec{})
	}
	flags = w.Update(&stats, lvl, &m, common.FVec{Y: 1})
	if flags&FlagDouble == 0 {
		t.Fatalf("expected a double jump, got %b", flags)
	}

	stats.JumpDouble = false
	w, m = settle(t, lvl, &stats)
	w.Update(&stats, lvl, &m, common.FVec{Y: 1})
	for i := 0; i < 5; i++ {
		w.Update(&stats, lvl, &m, common.FVec{})
	}
	if flags = w.Update(&stats, lvl, &m, common.FVec{Y: 1}); flags&FlagJumped != 0 {
		t.Fatalf("double jump without jump_double")
	}
}

func TestWalkerBlockedByWall(t *testing.T) {
	lvl := mustParse(t, "#####\n#...#\n#P..#\n#####\n")
	stats := DefaultStats().PlayerPhysical
	w, m := settle(t, lvl, &stats)

	// Full speed is 4.8px per tick. From x=48 the walker reaches 117.77
	// after tick 15, so tick 16 is the first whose full step would put
	// the wall probe past x=128.
	const wallX = 128
	const firstBlocked = 16
	step := stats.SpeedGround * common.Dt()

	blocked := -1
	for i := 0; i < 60; i++ {
		prev := m.Pos()
		flags := w.Update(&stats, lvl, &m, common.FVec{X: 1})
		pos := m.Pos()
		if lvl.HitTest(pos.Add(probeWallLow)) || lvl.HitTest(pos.Add(probeWallHigh)) {
			t.Fatalf("tick %d: walked into the wall at %v", i, pos)
		}
		if flags&FlagBlocked != 0 {
			if blocked < 0 {
				blocked = i
			}
			if pos.X < prev.X {
				t.Fatalf("tick %d: blocked walker moved backwards", i)
			}
		}
	}
	if blocked != firstBlocked {
		t.Fatalf("expected FlagBlocked first on tick %d, got %d", firstBlocked, blocked)
	}
	limit := float32(wallX) - probeWallLow.X
	if x := m.Pos().X; x >= limit || limit-x > step/walkerSteps {
		t.Fatalf("expected to stop within %v of %v, got x=%v", step/walkerSteps, limit, x)
	}
}

func TestWalkerCeiling(t *testing.T) {
	defaults := DefaultStats()
	cases := []struct {
		name    string
		level   string
		stats   WalkerStats
		ceiling float32
	}{
		{"tight physical", "#####\n#P..#\n#####", defaults.PlayerPhysical, 64},
		{"tight dream", "#####\n#P..#\n#####", defaults.PlayerDream, 64},
		{"low physical", "#####\n#...#\n#P..#\n#####", defaults.PlayerPhysical, 96},
		{"low dream", "#####\n#...#\n#P..#\n#####", defaults.PlayerDream, 96},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl := mustParse(t, tc.level)
			w, m := settle(t, lvl, &tc.stats)
			var top float32
			for i := 0; i < 80; i++ {
				drive := common.FVec{}
				if i < 30 {
					drive.Y = 1
				}
				w.Update(&tc.stats, lvl, &m, drive)
				pos := m.Pos()
				if lvl.HitTest(pos.Add(probeHead)) {
					t.Fatalf("tick %d: head inside the ceiling at %v", i, pos)
				}
				top = max(top, pos.Y)
			}
			limit := tc.ceiling - probeHead.Y
			if top >= limit || top < limit-1 {
				t.Fatalf("expected the jump to stop just under %v, got %v", limit, top)
			}
			if w.Airborne() || m.Pos().Y != 46 {
				t.Fatalf("expected to land back at 46, got %v", m.Pos())
			}
		})
	}
}

func TestWalkerFallsOffEdge(t *testing.T) {
	lvl := mustParse(t, strings.Join([]string{
		"######",
		"#....#",
		"#....#",
		"#P...#",
		"##...#",
		"######",
	}, "\n"))
	stats := DefaultStats().PlayerPhysical
	w, m := settle(t, lvl, &stats)
	if m.Pos().Y != 78 {
		t.Fatalf("expected to rest on the ledge at 78, got %v", m.Pos().Y)
	}

	left := -1
	for i := 0; i < 40; i++ {
		prev := m.Pos()
		flags := w.Update(&stats, lvl, &m, common.FVec{X: 1})
		if left < 0 && flags&FlagAirborne != 0 {
			left = i
			if prev.X >= 64 || m.Pos().X < 64 {
				t.Fatalf("expected to leave the ground crossing x=64, went %v -> %v", prev, m.Pos())
			}
			if !w.Airborne() {
				t.Fatal("expected the walker to be airborne")
			}
		}
	}
	if left != 4 {
		t.Fatalf("expected to leave the ledge on tick 4, got %d", left)
	}
	if w.Airborne() || m.Pos().Y != 46 {
		t.Fatalf("expected to land on the lower floor at 46, got %v", m.Pos())
	}
}

func TestWalkerRejectsSteepStep(t *testing.T) {
	lvl := mustParse(t, strings.Join([]string{
		"########",
		"#......#",
		"#......#",
		"#P.L.r.#",
		"########",
	}, "\n"))
	stats := DefaultStats().PlayerPhysical
	w, _ := settle(t, lvl, &stats)

	cases := []struct {
		name  string
		from  common.FVec
		to    common.FVec
		drive float32
	}{
		// Rising momentum lifts the wall probes over the half-tile step,
		// but the floor under the walker would jump 14.6px in one tick.
		{"right onto step", common.FVec{X: 90, Y: 26}, common.FVec{X: 94, Y: 46}, 1},
		{"left onto step", common.FVec{X: 198, Y: 26}, common.FVec{X: 194, Y: 46}, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			walker := w
			m := Mover{pos0: tc.from, pos1: tc.to}
			flags := walker.Update(&stats, lvl, &m, common.FVec{X: tc.drive})
			if got := m.Pos(); got != tc.to {
				t.Fatalf("expected to stay at %v, got %v", tc.to, got)
			}
			if flags&(FlagAirborne|FlagBlocked) != 0 {
				t.Fatalf("expected no airborne or blocked flags, got %b", flags)
			}
			if walker.Airborne() {
				t.Fatal("expected the walker to stay on the ground")
			}
		})
	}
}

func TestWalkerFootsteps(t *testing.T) {
	lvl := mustParse(t, "##########\n#........#\n#P.......#\n##########\n")
	stats := DefaultStats().PlayerPhysical
	w, m := settle(t, lvl, &stats)

	steps := 0
	for i := 0; i < 40; i++ {
		if w.Update(&stats, lvl, &m, common.FVec{X: 1})&FlagFootstep != 0 {
			steps++
		}
	}
	// About 180px at 24px per step.
	if steps < 5 || steps > 8 {
		t.Fatalf("expected 5 to 8 footsteps, got %d", steps)
	}
}

func TestWalkerWalksDownRamp(t *testing.T) {
	lvl := mustParse(t, strings.Join([]string{
		"#########",
		"#.......#",
		"#P......#",
		"##lL....#",
		"####lL..#",
		"#########",
	}, "\n"))
	stats := DefaultStats().PlayerPhysical
	w, m := settle(t, lvl, &stats)
	if m.Pos().Y != 110 {
		t.Fatalf("expected to rest on the plateau at 110, got %v", m.Pos().Y)
	}
	for i := 0; i < 60; i++ {
		if flags := w.Update(&stats, lvl, &m, common.FVec{X: 1}); flags&FlagAirborne != 0 {
			t.Fatalf("tick %d: left the ground at %v", i, m.Pos())
		}
	}
	if m.Pos().Y != 46 {
		t.Fatalf("expected to reach the bottom at 46, got %v", m.Pos())
	}
}
