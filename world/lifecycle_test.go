package world

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/organisms"
)

func TestSpawnInitialPopulation(t *testing.T) {
	s := newTestStore(t)
	cfg := s.Config()

	spawned := s.SpawnInitialPopulation(rand.New(rand.NewSource(1)))

	want := cfg.Population.Blue + cfg.Population.Red + cfg.Population.Plant
	if len(spawned) != want || s.Count() != want {
		t.Fatalf("spawned %d (store has %d), want %d", len(spawned), s.Count(), want)
	}

	counts := s.CountByType()
	for _, typ := range organisms.All() {
		if counts[typ] != cfg.Population.Initial(typ) {
			t.Errorf("%s count = %d, want %d", typ, counts[typ], cfg.Population.Initial(typ))
		}
	}

	for _, e := range spawned {
		p := s.Position(e)
		if p.X < 0 || p.X > cfg.Derived.WorldW32 || p.Y < 0 || p.Y > cfg.Derived.WorldH32 {
			t.Fatalf("entity %d spawned outside the world at %+v", e.ID(), *p)
		}
	}
}

func TestSpawnInitialPopulationDeterministic(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	ea := a.SpawnInitialPopulation(rand.New(rand.NewSource(7)))
	eb := b.SpawnInitialPopulation(rand.New(rand.NewSource(7)))

	for i := range ea {
		if *a.Position(ea[i]) != *b.Position(eb[i]) {
			t.Fatalf("entity %d differs between runs with the same seed", i)
		}
	}
}

func TestKill(t *testing.T) {
	s := newTestStore(t)
	e := s.Spawn(organisms.Blue, components.Position{})
	*s.Command(e) = components.MoveTo([2]float32{0, 1})
	s.Activity(e).SetActivity(components.ActivityMoving)

	if !s.Kill(e) {
		t.Fatal("Kill returned false for a living organism")
	}
	if HasMarker[components.Alive](s, e) || HasMarker[components.Newborn](s, e) {
		t.Error("dead organism kept Alive or Newborn")
	}
	if !HasMarker[components.Edible](s, e) {
		t.Error("corpse should be edible")
	}
	if s.Corpse(e) == nil {
		t.Error("corpse record missing")
	}
	if s.Command(e).IsMove() || s.Activity(e).Activity != components.ActivityResting {
		t.Error("corpse should rest")
	}

	if s.Kill(e) {
		t.Error("killing a corpse should be a no-op")
	}
	s.Despawn(e)
	if s.Kill(e) {
		t.Error("killing a removed entity should be a no-op")
	}
}
