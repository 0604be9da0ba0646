package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stsysd/kusa/activity"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 5, W: 20, H: 8}

	tests := []struct {
		x, y int
		want bool
	}{
		{10, 5, true},
		{29, 12, true},
		{30, 12, false},
		{29, 13, false},
		{9, 5, false},
		{15, 4, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestListeners_RegisterRelease(t *testing.T) {
	l := NewListeners()
	calls := 0
	release := l.Register(func(PointerEvent) { calls++ })

	l.Dispatch(PointerEvent{X: 1, Y: 1})
	if calls != 1 {
		t.Fatalf("Expected 1 call, got %d", calls)
	}

	release()
	release()
	l.Dispatch(PointerEvent{X: 1, Y: 1})
	if calls != 1 {
		t.Errorf("Expected no calls after release, got %d", calls)
	}
	if l.Len() != 0 {
		t.Errorf("Expected no listeners, got %d", l.Len())
	}
}

func TestWidget_OutsideClickClearsSelection(t *testing.T) {
	l := NewListeners()
	bounds := Rect{X: 0, Y: 0, W: 100, H: 50}
	w := NewWidget(staticSource(activity.Contributions{"2024-01-01": 15}), l, func() Rect { return bounds })

	w.Mount(context.Background())
	defer w.Unmount()
	<-w.Done()

	sel := w.State().SelectDay("2024-01-01")
	if sel != (Selection{Contributions: 15, Date: "2024-01-01"}) {
		t.Fatalf("Unexpected selection: %+v", sel)
	}

	// 領域内のクリックでは選択は維持される
	l.Dispatch(PointerEvent{X: 50, Y: 25})
	if _, ok := w.State().Selection(); !ok {
		t.Fatal("Click inside the widget must keep the selection")
	}

	l.Dispatch(PointerEvent{X: 150, Y: 25})
	if _, ok := w.State().Selection(); ok {
		t.Error("Click outside the widget must clear the selection")
	}
}

func TestWidget_UnmountReleasesListener(t *testing.T) {
	l := NewListeners()
	w := NewWidget(staticSource(nil), l, func() Rect { return Rect{W: 10, H: 10} })

	w.Mount(context.Background())
	w.Mount(context.Background())
	if l.Len() != 1 {
		t.Fatalf("Expected exactly one listener after double mount, got %d", l.Len())
	}
	if !w.Mounted() {
		t.Fatal("Expected widget to be mounted")
	}

	w.Unmount()
	if l.Len() != 0 {
		t.Errorf("Expected listener to be released, got %d", l.Len())
	}
	if w.Mounted() {
		t.Error("Expected widget to be unmounted")
	}

	// アンマウント後のクリックは状態に影響しない
	w.State().SelectDay("2024-01-01")
	l.Dispatch(PointerEvent{X: 100, Y: 100})
	if _, ok := w.State().Selection(); !ok {
		t.Error("Unmounted widget must not react to pointer events")
	}
}

func TestWidget_UnmountCancelsInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	src := SourceFunc(func(ctx context.Context) (activity.Contributions, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	w := NewWidget(src, NewListeners(), func() Rect { return Rect{} })
	w.Mount(context.Background())
	<-started

	finished := make(chan struct{})
	go func() {
		w.Unmount()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Unmount did not cancel the in-flight fetch")
	}

	if w.State().Loaded() {
		t.Error("Cancelled fetch must leave the state unloaded")
	}
}

func TestWidget_FetchFailure(t *testing.T) {
	w := NewWidget(failingSource(errors.New("boom")), NewListeners(), func() Rect { return Rect{} })
	w.Mount(context.Background())
	<-w.Done()
	defer w.Unmount()

	if w.State().Loaded() {
		t.Error("Expected failed fetch to leave the state unloaded")
	}
	if w.State().Level("2024-01-01") != activity.LevelNone {
		t.Error("Expected none after failed fetch")
	}
}

func TestWidget_Remount(t *testing.T) {
	calls := 0
	src := SourceFunc(func(ctx context.Context) (activity.Contributions, error) {
		calls++
		return activity.Contributions{"2024-01-01": calls}, nil
	})

	w := NewWidget(src, NewListeners(), func() Rect { return Rect{} })
	w.Mount(context.Background())
	<-w.Done()
	w.Unmount()

	w.Mount(context.Background())
	<-w.Done()
	w.Unmount()

	if calls != 2 {
		t.Errorf("Expected one fetch per mount, got %d", calls)
	}
	if w.State().Count("2024-01-01") != 2 {
		t.Errorf("Expected data from the second fetch, got %d", w.State().Count("2024-01-01"))
	}
}

func TestWidget_UnmountDiscardsLateResult(t *testing.T) {
	started := make(chan struct{})
	src := SourceFunc(func(ctx context.Context) (activity.Contributions, error) {
		close(started)
		<-ctx.Done()
		// キャンセル後にデータを返すソース
		return activity.Contributions{"2024-01-01": 15}, nil
	})

	w := NewWidget(src, NewListeners(), func() Rect { return Rect{} })
	w.Mount(context.Background())
	<-started
	w.Unmount()

	if w.State().Loaded() {
		t.Error("Result returned after Unmount must be discarded")
	}
	if w.State().Count("2024-01-01") != 0 {
		t.Errorf("Expected 0 after discarded fetch, got %d", w.State().Count("2024-01-01"))
	}
}
