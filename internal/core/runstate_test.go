package core

import (
	"sync"
	"testing"
	"time"
)

func TestRunStateInitial(t *testing.T) {
	s := NewRunState()
	if s.Phase() != PhaseNotRunning {
		t.Errorf("Phase() = %v, expected NotRunning", s.Phase())
	}
	if s.FruitsEaten() != 0 || s.Highscore() != 0 {
		t.Error("New state should have zero counters")
	}
}

func TestRunStateHighscoreIsMaxOfSessions(t *testing.T) {
	s := NewRunState()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, fruits := range []int{3, 7, 2, 9} {
		s.BeginSession("session", start)
		for j := 0; j < fruits; j++ {
			s.RecordFruitEaten()
		}
		if s.FruitsEaten() != fruits {
			t.Errorf("session %d: FruitsEaten() = %d, expected %d", i, s.FruitsEaten(), fruits)
		}
	}

	if s.Highscore() != 9 {
		t.Errorf("Highscore() = %d, expected 9", s.Highscore())
	}
}

func TestRunStateSeedHighscoreNeverLowers(t *testing.T) {
	s := NewRunState()
	s.SeedHighscore(5)
	s.SeedHighscore(2)
	if s.Highscore() != 5 {
		t.Errorf("Highscore() = %d, expected 5", s.Highscore())
	}
}

func TestRunStateElapsedSeconds(t *testing.T) {
	s := NewRunState()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.BeginSession("id", start)

	if got := s.ElapsedSeconds(start.Add(5 * time.Second)); got != 0 {
		t.Errorf("ElapsedSeconds while NotRunning = %d, expected 0", got)
	}

	s.SetPhase(PhaseRunning)
	if got := s.ElapsedSeconds(start.Add(65*time.Second + 900*time.Millisecond)); got != 65 {
		t.Errorf("ElapsedSeconds = %d, expected 65", got)
	}
	if got := s.ElapsedSeconds(start.Add(-time.Second)); got != 0 {
		t.Errorf("ElapsedSeconds before start = %d, expected 0", got)
	}
}

func TestRunStateObserversSeeEveryFruit(t *testing.T) {
	s := NewRunState()
	var got []ScoreChange
	s.OnScoreChange(func(c ScoreChange) {
		got = append(got, c)
	})

	s.BeginSession("id", time.Now())
	s.RecordFruitEaten()
	s.RecordFruitEaten()

	if len(got) != 2 {
		t.Fatalf("observer called %d times, expected 2", len(got))
	}
	if got[1] != (ScoreChange{FruitsEaten: 2, Highscore: 2}) {
		t.Errorf("last change = %+v, expected {2 2}", got[1])
	}
}

func TestRunStateConcurrentAccess(t *testing.T) {
	s := NewRunState()
	s.BeginSession("id", time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.RecordFruitEaten()
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	if s.FruitsEaten() != 800 {
		t.Errorf("FruitsEaten() = %d, expected 800", s.FruitsEaten())
	}
}
