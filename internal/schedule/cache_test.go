package schedule

import (
	"testing"

	"github.com/josephgoksu/RoadWing/models"
)

func TestCache_MemoizesUntilInvalidated(t *testing.T) {
	calls := 0
	tasks := []models.Task{{ID: "a", OrderIndex: 0}}
	cache, err := NewCache("", func() (Timeline, error) {
		calls++
		return Derive(tasks, DefaultConfig()), nil
	})
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer cache.Close()

	first, err := cache.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := cache.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if calls != 1 {
		t.Errorf("load calls = %d, want 1 before invalidation", calls)
	}

	tasks = append(tasks, models.Task{ID: "b", OrderIndex: 1})
	cache.Invalidate()

	second, err := cache.Get()
	if err != nil {
		t.Fatalf("Get after invalidate: %v", err)
	}
	if calls != 2 {
		t.Errorf("load calls = %d, want 2 after invalidation", calls)
	}
	if len(first.Slots) != 1 || len(second.Slots) != 2 {
		t.Errorf("slot counts = %d then %d, want 1 then 2", len(first.Slots), len(second.Slots))
	}
}

func TestCache_LoadErrorNotCached(t *testing.T) {
	calls := 0
	cache, err := NewCache("", func() (Timeline, error) {
		calls++
		if calls == 1 {
			return Timeline{}, errLoadFailed
		}
		return Derive(nil, DefaultConfig()), nil
	})
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer cache.Close()

	if _, err := cache.Get(); err == nil {
		t.Fatal("expected error from first load")
	}
	tl, err := cache.Get()
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if tl.TotalPeriods != DefaultConfig().MinHorizonPeriods {
		t.Errorf("TotalPeriods = %d, want horizon floor %d", tl.TotalPeriods, DefaultConfig().MinHorizonPeriods)
	}
}

var errLoadFailed = &loadError{}

type loadError struct{}

func (*loadError) Error() string { return "load failed" }
