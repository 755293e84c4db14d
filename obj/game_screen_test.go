package obj

import (
	"strings"
	"testing"

	"github.com/milk9111/dreamless/analytics"
	"github.com/milk9111/dreamless/common"
	"github.com/milk9111/dreamless/graphics"
	"github.com/milk9111/dreamless/sound"
)

type playCall struct {
	sfx    sound.Sfx
	volume float32
	pan    float32
}

type fakeSound struct{ plays []playCall }

func (f *fakeSound) Play(time uint32, sfx sound.Sfx, volume, pan float32) {
	f.plays = append(f.plays, playCall{sfx, volume, pan})
}

func (f *fakeSound) count(sfx sound.Sfx) int {
	n := 0
	for _, p := range f.plays {
		if p.sfx == sfx {
			n++
		}
	}
	return n
}

type fakeSink struct{ levels []analytics.Level }

func (f *fakeSink) Submit(l analytics.Level) { f.levels = append(f.levels, l) }

type fakeDirector struct{ loads []int }

func (f *fakeDirector) LoadLevel(n int) { f.loads = append(f.loads, n) }

type harness struct {
	ctx      *Context
	sound    *fakeSound
	sink     *fakeSink
	director *fakeDirector
	screen   *GameScreen
	time     uint32
}

func newHarness(t *testing.T, n int, rows ...string) *harness {
	t.Helper()
	h := &harness{
		sound:    &fakeSound{},
		sink:     &fakeSink{},
		director: &fakeDirector{},
		time:     1000,
	}
	h.ctx = &Context{
		Control:   &ControlState{},
		Sound:     h.sound,
		Analytics: h.sink,
		Director:  h.director,
		Stats:     DefaultStats(),
	}
	h.screen = NewGameScreen(h.ctx, n, mustParse(t, strings.Join(rows, "\n")), h.time)
	return h
}

// tick runs one simulation step the way the driver does.
func (h *harness) tick() {
	h.time += common.FrameTime
	h.screen.Update(h.time)
	h.ctx.Control.Update()
}

func (h *harness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.tick()
	}
}

func (h *harness) press(b Button) {
	h.ctx.Control.SetButton(b, true)
}

func (h *harness) release(b Button) {
	h.ctx.Control.SetButton(b, false)
}

func findKind[T Entity](s *GameScreen) []T {
	var out []T
	for _, e := range s.Entities() {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestGameScreenSpawns(t *testing.T) {
	h := newHarness(t, 1,
		"########",
		"#P M NX#",
		"########",
		"---",
	)
	s := h.screen
	if len(s.Entities()) != 0 {
		t.Fatalf("spawned entities should be staged until the first tick, got %d", len(s.Entities()))
	}
	if s.MinionsLeft() != 2 {
		t.Fatalf("expected 2 minions, got %d", s.MinionsLeft())
	}
	if s.IsDreaming() {
		t.Fatal("a level without a gateway starts awake")
	}
	h.tick()
	if len(s.Entities()) != 4 {
		t.Fatalf("expected 4 entities, got %d", len(s.Entities()))
	}
	kinds := []Kind{KindPlayer, KindMinion, KindMinion, KindItem}
	for i, e := range s.Entities() {
		if e.Kind() != kinds[i] {
			t.Fatalf("entity %d: expected kind %v, got %v", i, kinds[i], e.Kind())
		}
	}
	minions := findKind[*Minion](s)
	if minions[0].Direction() != 1 || minions[1].Direction() != -1 {
		t.Fatalf("unexpected minion directions %d, %d", minions[0].Direction(), minions[1].Direction())
	}
	ids := map[int]bool{}
	for _, e := range s.Entities() {
		if ids[e.ID()] {
			t.Fatalf("duplicate id %d", e.ID())
		}
		ids[e.ID()] = true
	}
}

func TestGameScreenStagingAndSweep(t *testing.T) {
	h := newHarness(t, 1,
		"#######",
		"#k D k#",
		"#######",
	)
	s := h.screen
	h.tick()
	items := findKind[*Item](s)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	added := NewItem(s, common.IVec{X: 80, Y: 48}, ItemKey)
	s.AddEntity(added)
	items[0].Destroy()
	if len(s.Entities()) != 3 {
		t.Fatal("entity list must not change outside a tick")
	}
	h.tick()

	got := s.Entities()
	want := []Entity{items[1], items[2], added}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entity %d out of order", i)
		}
	}
}

func TestGameScreenWakeUp(t *testing.T) {
	h := newHarness(t, 1,
		"#####",
		"#P G#",
		"#####",
	)
	s := h.screen
	if !s.IsDreaming() || s.World(0) != 1 {
		t.Fatal("a level with a gateway starts in the dream")
	}
	h.ticks(3)
	s.WakeUp()
	s.WakeUp()
	if h.sound.count(sound.SfxDream) != 1 {
		t.Fatalf("WakeUp should be idempotent, dream sound played %d times", h.sound.count(sound.SfxDream))
	}
	if s.Analytics().TimeWake != 3*common.FrameTime {
		t.Fatalf("expected wake time %d, got %d", 3*common.FrameTime, s.Analytics().TimeWake)
	}
	if w := s.World(0); w != 1 {
		t.Fatalf("expected full dream at the start of waking, got %v", w)
	}
	h.tick()
	if w := s.World(0); w <= 0 || w >= 1 {
		t.Fatalf("expected partial blend while waking, got %v", w)
	}
	h.ticks(WakeTime)
	if s.IsDreaming() || s.World(0) != 0 {
		t.Fatal("expected to be awake after the wake countdown")
	}
	s.WakeUp()
	if s.IsDreaming() {
		t.Fatal("WakeUp while awake must do nothing")
	}
}

func TestPlayerWakesAtGateway(t *testing.T) {
	h := newHarness(t, 1,
		"######",
		"#P.G.#",
		"######",
	)
	h.press(ButtonRight)
	for i := 0; i < 60 && h.screen.dream < 0; i++ {
		h.tick()
	}
	if h.screen.dream < 0 {
		t.Fatal("expected the player to reach the gateway")
	}
}

func TestGameScreenWin(t *testing.T) {
	h := newHarness(t, 4,
		"#####",
		"#M  #",
		"#####",
	)
	s := h.screen
	h.tick()
	s.CaptureMinion()
	if h.sound.count(sound.SfxWha) != 1 {
		t.Fatal("expected the win sound")
	}
	h.ticks(WinTime - 1)
	if len(h.director.loads) != 0 {
		t.Fatal("level advanced before the win countdown ended")
	}
	h.tick()
	if len(h.director.loads) != 1 || h.director.loads[0] != 5 {
		t.Fatalf("expected a request for level 5, got %v", h.director.loads)
	}
	if len(h.sink.levels) != 1 || h.sink.levels[0].Status != analytics.StatusSuccess {
		t.Fatalf("expected a success record, got %+v", h.sink.levels)
	}
	if !s.Finished() {
		t.Fatal("expected the screen to be finished")
	}
	h.ticks(5)
	if len(h.director.loads) != 1 {
		t.Fatal("finished screen must not request again")
	}
}

func TestGameScreenLevelKeys(t *testing.T) {
	cases := []struct {
		name   string
		button Button
		level  int
		want   int
		status analytics.Status
	}{
		{"restart", ButtonRestart, 3, 3, analytics.StatusRestart},
		{"next", ButtonNextLevel, 3, 4, analytics.StatusSkipNext},
		{"prev", ButtonPrevLevel, 3, 2, analytics.StatusSkipPrev},
		{"prev from first", ButtonPrevLevel, 1, 1, analytics.StatusSkipPrev},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, tc.level, "###", "#P#", "###")
			h.ticks(2)
			h.press(tc.button)
			h.tick()
			if len(h.director.loads) != 1 || h.director.loads[0] != tc.want {
				t.Fatalf("expected request for level %d, got %v", tc.want, h.director.loads)
			}
			rec := h.sink.levels[0]
			if rec.Status != tc.status || rec.Level != tc.level {
				t.Fatalf("unexpected record %+v", rec)
			}
			if rec.TimeEnd != 3*common.FrameTime {
				t.Fatalf("expected time end %d, got %d", 3*common.FrameTime, rec.TimeEnd)
			}
		})
	}
}

func TestGameScreenRestartOnce(t *testing.T) {
	h := newHarness(t, 2, "###", "#P#", "###")
	h.ticks(2)
	h.screen.Restart()
	h.screen.Restart()
	h.screen.Close()
	if len(h.director.loads) != 1 || h.director.loads[0] != 2 {
		t.Fatalf("expected one request for level 2, got %v", h.director.loads)
	}
	if len(h.sink.levels) != 1 || h.sink.levels[0].Status != analytics.StatusRestart {
		t.Fatalf("expected one restart record, got %+v", h.sink.levels)
	}
}

func TestGameScreenCloseSubmitsInProgress(t *testing.T) {
	h := newHarness(t, 2, "###", "#P#", "###")
	h.ticks(4)
	h.screen.Close()
	h.screen.Close()
	if len(h.sink.levels) != 1 || h.sink.levels[0].Status != analytics.StatusInProgress {
		t.Fatalf("expected one in-progress record, got %+v", h.sink.levels)
	}
	if h.sink.levels[0].TimeWake != -1 {
		t.Fatalf("expected no wake time, got %d", h.sink.levels[0].TimeWake)
	}
}

func TestAttemptIndexIncreases(t *testing.T) {
	h := newHarness(t, 1, "###", "#P#", "###")
	first := h.screen.Analytics().Index
	next := NewGameScreen(h.ctx, 1, h.screen.Level(), h.time)
	if next.Analytics().Index != first+1 {
		t.Fatalf("expected index %d, got %d", first+1, next.Analytics().Index)
	}
}

func TestPlaySoundPan(t *testing.T) {
	h := newHarness(t, 1, strings.Repeat("#", 60), "#P"+strings.Repeat(".", 57)+"#", strings.Repeat("#", 60))
	s := h.screen
	s.SetCamera(common.FVec{X: 1000, Y: 48}, true)
	s.Camera().Update()
	center := s.Camera().Center()

	cases := []struct {
		x    float32
		want float32
	}{
		{center.X, 0},
		{center.X + 160, 0.5},
		{center.X - 320, -1},
		{center.X + 5000, 1},
	}
	for _, tc := range cases {
		h.sound.plays = nil
		s.PlaySoundAt(sound.SfxBoot, -10, common.FVec{X: tc.x, Y: 48})
		if got := h.sound.plays[0].pan; got != tc.want {
			t.Fatalf("x=%v: expected pan %v, got %v", tc.x, tc.want, got)
		}
	}
	h.sound.plays = nil
	s.PlaySound(sound.SfxClick, -10)
	if h.sound.plays[0].pan != 0 {
		t.Fatal("unpositioned sounds are centered")
	}
}

func TestMinionOpensDoor(t *testing.T) {
	h := newHarness(t, 1,
		"######",
		"#M..D#",
		"######",
	)
	s := h.screen
	for i := 0; i < 80 && s.MinionsLeft() > 0; i++ {
		h.tick()
	}
	if s.MinionsLeft() != 0 {
		t.Fatal("expected the minion to reach the door")
	}
	h.tick()
	if len(findKind[*Minion](s)) != 0 {
		t.Fatal("captured minion should be removed")
	}
	doors := findKind[*Item](s)
	if len(doors) != 1 || doors[0].Type() != ItemDoorOpen {
		t.Fatalf("expected an open door, got %+v", doors)
	}
	if h.sound.count(sound.SfxOpen) != 1 || h.sound.count(sound.SfxWha) != 1 {
		t.Fatalf("unexpected sounds %+v", h.sound.plays)
	}
}

func TestMinionLockedDoorNeedsKey(t *testing.T) {
	h := newHarness(t, 1,
		"#######",
		"#M...X#",
		"#######",
	)
	s := h.screen
	h.ticks(80)
	if s.MinionsLeft() != 1 {
		t.Fatal("a minion without a key must not pass a locked door")
	}
	if n := h.sound.count(sound.SfxLocked); n != 1 {
		t.Fatalf("expected the locked sound once while remembered, got %d", n)
	}
	if h.sound.count(sound.SfxBoot) == 0 {
		t.Fatal("expected footsteps")
	}
}

func TestMinionCarriesKeyThroughLockedDoor(t *testing.T) {
	h := newHarness(t, 1,
		"########",
		"#M.k..X#",
		"########",
	)
	s := h.screen
	var minion *Minion
	for i := 0; i < 120 && s.MinionsLeft() > 0; i++ {
		h.tick()
		if m := findKind[*Minion](s); len(m) == 1 {
			minion = m[0]
		}
	}
	if s.MinionsLeft() != 0 {
		t.Fatal("expected the minion to unlock the door")
	}
	if !minion.HasKey() {
		t.Fatal("expected the minion to carry the key")
	}
	if h.sound.count(sound.SfxPlink) != 1 || h.sound.count(sound.SfxUnlock) != 1 {
		t.Fatalf("unexpected sounds %+v", h.sound.plays)
	}
}

func TestMinionIdleWhileDreaming(t *testing.T) {
	h := newHarness(t, 1,
		"#######",
		"#M...G#",
		"#######",
	)
	h.ticks(20)
	m := findKind[*Minion](h.screen)[0]
	if got := m.mover.Pos(); got != (common.FVec{X: 48, Y: 48}) {
		t.Fatalf("minion moved while dreaming: %v", got)
	}
}

func TestMinionTurnsAtWall(t *testing.T) {
	h := newHarness(t, 1,
		"#####",
		"#M..#",
		"#####",
	)
	h.tick()
	m := findKind[*Minion](h.screen)[0]
	for i := 0; i < 60 && m.Direction() == 1; i++ {
		h.tick()
	}
	if m.Direction() != -1 {
		t.Fatal("expected the minion to turn around at the wall")
	}
	h.ticks(8)
	if m.mover.Pos().X >= m.mover.LastPos().X {
		t.Fatal("expected the minion to walk back")
	}
}

func TestMinionActions(t *testing.T) {
	cases := []struct {
		name   string
		action Action
		check  func(t *testing.T, m *Minion, h *harness)
	}{
		{"turn", ActionTurn, func(t *testing.T, m *Minion, h *harness) {
			if m.Direction() != -1 || h.sound.count(sound.SfxHaa) != 1 {
				t.Fatalf("expected a turn, direction %d", m.Direction())
			}
		}},
		{"jump", ActionJump, func(t *testing.T, m *Minion, h *harness) {
			if h.sound.count(sound.SfxGrunt) != 1 {
				t.Fatal("expected a jump")
			}
		}},
		{"jump back", ActionJumpBack, func(t *testing.T, m *Minion, h *harness) {
			if m.Direction() != -1 || h.sound.count(sound.SfxGrunt) != 1 {
				t.Fatalf("expected a turn and a jump, direction %d", m.Direction())
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 1,
				"##########",
				"#........#",
				"#........#",
				"#M.......#",
				"##########",
			)
			s := h.screen
			h.tick()
			item := NewItem(s, common.IVec{X: 112, Y: 48}, ItemAction)
			item.SetAction(tc.action)
			s.AddEntity(item)
			m := findKind[*Minion](s)[0]
			for i := 0; i < 30 && len(m.memory) == 0; i++ {
				h.tick()
			}
			h.ticks(8)
			tc.check(t, m, h)
		})
	}
}

func TestMinionDropsKey(t *testing.T) {
	h := newHarness(t, 1,
		"##########",
		"#........#",
		"#Mk......#",
		"##########",
	)
	s := h.screen
	h.tick()
	drop := NewItem(s, common.IVec{X: 144, Y: 48}, ItemAction)
	drop.SetAction(ActionDrop)
	s.AddEntity(drop)
	m := findKind[*Minion](s)[0]
	for i := 0; i < 40 && drop.Team() != TeamDead; i++ {
		h.tick()
	}
	if m.HasKey() {
		t.Fatal("expected the key to be dropped")
	}
	h.tick()
	var keys int
	for _, it := range findKind[*Item](s) {
		if it.Type() == ItemKey {
			keys++
		}
	}
	if keys != 1 {
		t.Fatalf("expected the dropped key on the ground, found %d", keys)
	}
	h.ticks(5)
	if m.HasKey() {
		t.Fatal("minion picked the dropped key straight back up")
	}
}

func TestPlayerPlacesAction(t *testing.T) {
	h := newHarness(t, 1,
		"#######",
		"#P...G#",
		"#######",
		"---",
		"actions: tj",
	)
	s := h.screen
	h.ticks(10)
	p := findKind[*Player](s)[0]
	if a, ok := p.Selection(); !ok || a != ActionJump {
		t.Fatalf("expected the first allowed action selected, got %v %t", a, ok)
	}

	h.press(ButtonNext)
	h.tick()
	h.release(ButtonNext)
	if a, _ := p.Selection(); a != ActionTurn {
		t.Fatalf("expected next action, got %v", a)
	}
	h.press(ButtonNext)
	h.tick()
	h.release(ButtonNext)
	if a, _ := p.Selection(); a != ActionJump {
		t.Fatalf("expected selection to wrap, got %v", a)
	}
	if h.sound.count(sound.SfxClick) != 2 {
		t.Fatalf("expected 2 clicks, got %d", h.sound.count(sound.SfxClick))
	}

	h.press(ButtonAction)
	h.tick()
	h.release(ButtonAction)
	h.tick()
	var placed []*Item
	for _, it := range findKind[*Item](s) {
		if it.Type() == ItemAction {
			placed = append(placed, it)
		}
	}
	if len(placed) != 1 || placed[0].Action() != ActionJump {
		t.Fatalf("expected one jump action placed, got %+v", placed)
	}
	if s.Analytics().ActionCount != 1 || h.sound.count(sound.SfxWap) != 1 {
		t.Fatalf("expected the action to be counted, got %d", s.Analytics().ActionCount)
	}
}

func TestPlayerNoActionsWhenAwake(t *testing.T) {
	h := newHarness(t, 1,
		"#####",
		"#P  #",
		"#####",
		"---",
		"actions: j",
	)
	h.ticks(3)
	h.press(ButtonAction)
	h.tick()
	h.tick()
	if got := len(findKind[*Item](h.screen)); got != 0 {
		t.Fatalf("actions can only be placed in the dream, got %d items", got)
	}
}

func TestPlayerDialogue(t *testing.T) {
	h := newHarness(t, 1,
		"#######",
		"#PS..G#",
		"#######",
		"---",
		"---",
		"shadow: You again.",
		"girl: Let me through.",
	)
	s := h.screen
	h.tick()
	p := findKind[*Player](s)[0]
	h.press(ButtonRight)
	for i := 0; i < 30 && p.Dialogue() == 0; i++ {
		h.tick()
	}
	h.release(ButtonRight)
	if p.Dialogue() != 1 {
		t.Fatalf("expected the first line to show, got %d", p.Dialogue())
	}
	if !s.Analytics().TalkedToShadow {
		t.Fatal("expected talking to be recorded")
	}

	h.press(ButtonAction)
	h.tick()
	h.release(ButtonAction)
	if p.Dialogue() != 1 {
		t.Fatal("dialogue must not be dismissed before it sticks")
	}
	h.ticks(dialogueSticky)
	h.press(ButtonAction)
	h.tick()
	h.release(ButtonAction)
	if p.Dialogue() != 2 {
		t.Fatalf("expected the second line, got %d", p.Dialogue())
	}

	h.ticks(dialogueDismiss)
	if p.Dialogue() != -1 {
		t.Fatalf("expected the dialogue to time out and end, got %d", p.Dialogue())
	}
	h.ticks(5)
	if p.Dialogue() != -1 {
		t.Fatal("dialogue must not restart")
	}
}

func TestGameScreenDraw(t *testing.T) {
	h := newHarness(t, 1,
		"#######",
		"#PSk.G#",
		"#######",
		"---",
		"actions: jb",
		"---",
		"shadow: Hello.",
	)
	s := h.screen
	h.ticks(3)
	findKind[*Player](s)[0].showDialogue(1)

	var r fakeRenderer
	s.Draw(&r, 0)
	if len(r.clears) != 1 || !r.clears[0] {
		t.Fatal("first draw should clear everything")
	}
	if n := r.count(graphics.TileReal1, graphics.LayerTile); n != 16 {
		t.Fatalf("expected 16 wall tiles, got %d", n)
	}
	if r.count(graphics.SpriteGirl, graphics.LayerBoth) != 1 {
		t.Fatal("expected the girl on both layers")
	}
	if r.count(graphics.SpriteKey, graphics.LayerPhysical) != 1 {
		t.Fatal("expected the key in the physical world")
	}
	if r.count(graphics.SpritePortal, graphics.LayerDream) != 1 || r.count(graphics.SpriteAdversary, graphics.LayerDream) != 1 {
		t.Fatal("expected gateway and shadow in the dream")
	}
	if r.count(graphics.SpriteActionJump, graphics.LayerInterface) != 1 || r.count(graphics.SpriteSelection, graphics.LayerInterface) != 1 {
		t.Fatal("expected the action palette")
	}
	if r.count(graphics.SpriteDialog, graphics.LayerInterface) != 1 || len(r.texts) != 1 || r.texts[0].text != "Hello." {
		t.Fatalf("expected the dialogue box, got %+v", r.texts)
	}
	if r.world != 1 {
		t.Fatalf("expected full dream blend, got %v", r.world)
	}

	s.Draw(&r, 0)
	if len(r.clears) != 2 || r.clears[1] {
		t.Fatal("later draws keep the tile layer")
	}
	if r.count(graphics.TileReal1, graphics.LayerTile) != 0 {
		t.Fatal("tiles are queued only once")
	}

	s.WakeUp()
	h.ticks(WakeTime + 1)
	s.Draw(&r, 0)
	if r.count(graphics.SpritePortal, graphics.LayerDream) != 0 {
		t.Fatal("gateway vanishes once awake")
	}
	if r.count(graphics.SpriteActionJump, graphics.LayerInterface) != 0 {
		t.Fatal("action palette is hidden once awake")
	}
}
