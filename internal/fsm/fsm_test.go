package fsm

import (
	"context"
	"errors"
	"testing"
	"time"

	"slot_engine/internal/model"
)

func testOutcome() *model.SpinOutcome {
	grid := model.NewGrid(5, 3)
	for r := range grid {
		for row := range grid[r] {
			grid[r][row] = model.SymbolKing
		}
	}
	grid[0][1], grid[1][1], grid[2][1] = model.SymbolHigh1, model.SymbolHigh1, model.SymbolHigh1

	wins := []model.WinResult{{
		PaylineID:  1,
		Symbol:     model.SymbolHigh1,
		MatchCount: 3,
		WinAmount:  50,
		Multiplier: 1,
	}}
	return &model.SpinOutcome{Grid: grid, Wins: wins, TotalWin: 50}
}

func fixedCompute(outcome *model.SpinOutcome) ComputeFunc {
	return func(context.Context, model.BetContext) (*model.SpinOutcome, error) {
		return outcome, nil
	}
}

// collectEvents читает n событий либо падает по таймауту
func collectEvents(t *testing.T, events <-chan model.SpinEvent, n int, timeout time.Duration) []model.SpinEvent {
	t.Helper()
	out := make([]model.SpinEvent, 0, n)
	deadline := time.After(timeout)
	for len(out) < n {
		select {
		case ev := <-events:
			out = append(out, ev)
		case <-deadline:
			t.Fatalf("got %d events, want %d", len(out), n)
		}
	}
	return out
}

func TestSpinEventOrder(t *testing.T) {
	outcome := testOutcome()
	m := New(Config{}, nil)

	got, err := m.Spin(context.Background(), model.BetContext{Bet: 10}, fixedCompute(outcome))
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	if got != outcome {
		t.Fatal("spin must return the computed outcome synchronously")
	}

	// 5 стартов, 5 остановок, показ выигрыша, завершение
	events := collectEvents(t, m.Events(), 12, 2*time.Second)

	for i := 0; i < 5; i++ {
		if events[i].Type != model.EventReelStart || events[i].Reel != i {
			t.Fatalf("event %d = %+v, want reel:start %d", i, events[i], i)
		}
	}
	for i := 0; i < 5; i++ {
		ev := events[5+i]
		if ev.Type != model.EventReelStop || ev.Reel != i {
			t.Fatalf("event %d = %+v, want reel:stop %d", 5+i, ev, i)
		}
		if len(ev.Symbols) != 3 {
			t.Fatalf("reel:stop %d carries %d symbols, want 3", i, len(ev.Symbols))
		}
		for row, sym := range ev.Symbols {
			if sym != outcome.Grid[i][row] {
				t.Fatalf("reel:stop %d symbols differ from the decided grid", i)
			}
		}
	}

	reveal := events[10]
	if reveal.Type != model.EventWinReveal {
		t.Fatalf("event 10 = %+v, want win:reveal", reveal)
	}
	if reveal.TotalWin != 50 || len(reveal.Wins) != 1 {
		t.Fatalf("win:reveal payload = %+v", reveal)
	}

	complete := events[11]
	if complete.Type != model.EventSpinComplete {
		t.Fatalf("event 11 = %+v, want spin:complete", complete)
	}
	if complete.Outcome != outcome {
		t.Fatal("spin:complete must carry the unchanged outcome")
	}

	waitIdle(t, m)
}

func TestSpinRejectsWhileInProgress(t *testing.T) {
	release := make(chan struct{})
	compute := func(context.Context, model.BetContext) (*model.SpinOutcome, error) {
		<-release
		return testOutcome(), nil
	}
	m := New(Config{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := m.Spin(context.Background(), model.BetContext{Bet: 10}, compute)
		done <- err
	}()

	// Ждём, пока первый спин займёт автомат
	waitState(t, m, StateSpinning)

	if _, err := m.Spin(context.Background(), model.BetContext{Bet: 10}, fixedCompute(testOutcome())); !errors.Is(err, model.ErrSpinInProgress) {
		t.Fatalf("err = %v, want ErrSpinInProgress", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first spin: %v", err)
	}

	collectEvents(t, m.Events(), 12, 2*time.Second)
	waitIdle(t, m)
}

func TestSlamStopAllCollapsesPresentation(t *testing.T) {
	outcome := testOutcome()
	// Паузы заведомо дольше таймаута теста: без slam-стопа события не успеют
	m := New(Config{
		ReelStagger:    time.Minute,
		PresentTimeout: time.Minute,
	}, nil)

	if _, err := m.Spin(context.Background(), model.BetContext{Bet: 10}, fixedCompute(outcome)); err != nil {
		t.Fatalf("spin: %v", err)
	}

	starts := collectEvents(t, m.Events(), 5, 2*time.Second)
	for i, ev := range starts {
		if ev.Type != model.EventReelStart {
			t.Fatalf("event %d = %+v, want reel:start", i, ev)
		}
	}

	waitState(t, m, StateReelStopping)
	m.SlamStopAll()

	// Оставшиеся события приходят немедленно, исход не меняется
	rest := collectEvents(t, m.Events(), 7, 2*time.Second)
	for i := 0; i < 5; i++ {
		if rest[i].Type != model.EventReelStop || rest[i].Reel != i {
			t.Fatalf("event %d = %+v, want reel:stop %d", i, rest[i], i)
		}
	}
	if rest[5].Type != model.EventWinReveal {
		t.Fatalf("event = %+v, want win:reveal", rest[5])
	}
	if rest[6].Type != model.EventSpinComplete || rest[6].Outcome != outcome {
		t.Fatalf("event = %+v, want spin:complete with unchanged outcome", rest[6])
	}

	waitIdle(t, m)
}

func TestSlamStopReelReleasesPrefix(t *testing.T) {
	outcome := testOutcome()
	m := New(Config{
		ReelStagger: time.Minute,
	}, nil)

	if _, err := m.Spin(context.Background(), model.BetContext{Bet: 10}, fixedCompute(outcome)); err != nil {
		t.Fatalf("spin: %v", err)
	}
	collectEvents(t, m.Events(), 5, 2*time.Second) // reel:start

	waitState(t, m, StateReelStopping)

	// Остановка по второй барабан включительно
	m.SlamStopReel(1)
	stops := collectEvents(t, m.Events(), 2, 2*time.Second)
	for i, ev := range stops {
		if ev.Type != model.EventReelStop || ev.Reel != i {
			t.Fatalf("event %d = %+v, want reel:stop %d", i, ev, i)
		}
	}

	// Остальное добиваем полной остановкой
	m.SlamStopAll()
	rest := collectEvents(t, m.Events(), 5, 2*time.Second)
	if rest[4].Type != model.EventSpinComplete {
		t.Fatalf("last event = %+v, want spin:complete", rest[4])
	}

	waitIdle(t, m)
}

func TestSpinWithoutConsumerStaysLive(t *testing.T) {
	// События никто не читает, очередь заведомо меньше одного спина.
	// Спины обязаны проходить: показ не держит автомат
	m := New(Config{EventBuffer: 4}, nil)

	for i := 0; i < 10; i++ {
		if _, err := m.Spin(context.Background(), model.BetContext{Bet: 10}, fixedCompute(testOutcome())); err != nil {
			t.Fatalf("spin %d: %v", i, err)
		}
		waitIdle(t, m)
	}

	// В очереди остаётся хвост последнего спина, завершается spin:complete
	var last model.SpinEvent
	got := 0
loop:
	for {
		select {
		case ev := <-m.Events():
			last = ev
			got++
		default:
			break loop
		}
	}
	if got == 0 {
		t.Fatal("queue must keep the tail of the last spin")
	}
	if last.Type != model.EventSpinComplete {
		t.Fatalf("last queued event = %+v, want spin:complete", last)
	}
}

func TestSpinDropsStaleEventsOfPreviousSpin(t *testing.T) {
	first := testOutcome()
	m := New(Config{}, nil)

	// Первый спин отыгрывается без потребителя
	if _, err := m.Spin(context.Background(), model.BetContext{Bet: 10}, fixedCompute(first)); err != nil {
		t.Fatalf("first spin: %v", err)
	}
	waitIdle(t, m)

	second := testOutcome()
	second.TotalWin = 999
	second.Wins[0].WinAmount = 999

	if _, err := m.Spin(context.Background(), model.BetContext{Bet: 10}, fixedCompute(second)); err != nil {
		t.Fatalf("second spin: %v", err)
	}

	// Очередь начинается заново: ровно 12 событий нового спина
	events := collectEvents(t, m.Events(), 12, 2*time.Second)
	if events[0].Type != model.EventReelStart || events[0].Reel != 0 {
		t.Fatalf("event 0 = %+v, want reel:start 0", events[0])
	}
	if events[10].Type != model.EventWinReveal || events[10].TotalWin != 999 {
		t.Fatalf("event 10 = %+v, want win:reveal of the new spin", events[10])
	}
	if events[11].Type != model.EventSpinComplete || events[11].Outcome != second {
		t.Fatalf("event 11 = %+v, want spin:complete of the new spin", events[11])
	}

	waitIdle(t, m)
	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected stale event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSpinComputeErrorReturnsToIdle(t *testing.T) {
	wantErr := errors.New("compute failed")
	compute := func(context.Context, model.BetContext) (*model.SpinOutcome, error) {
		return nil, wantErr
	}
	m := New(Config{}, nil)

	if _, err := m.Spin(context.Background(), model.BetContext{Bet: 10}, compute); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if got := m.State(); got != StateIdle {
		t.Fatalf("state = %v, want idle after failed compute", got)
	}

	// Ошибка не оставляет событий в очереди
	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected event %+v after failed compute", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func waitState(t *testing.T, m *Machine, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state = %v, want %v", m.State(), want)
}

func waitIdle(t *testing.T, m *Machine) {
	waitState(t, m, StateIdle)
}
