package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// shellRace puts a at 0 and a fast b at 5.
func shellRace(t *testing.T) *State {
	s := registered(t, endlessConfig())
	s.Cars["b"].Position = 5
	s.Cars["b"].Speed = 10
	return s
}

func TestShell(t *testing.T) {
	t.Run("slows the nearest car ahead", func(t *testing.T) {
		s := shellRace(t)
		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeShelled, ev.Outcome)
		require.Equal(t, CarID("b"), ev.Target)
		require.Equal(t, uint64(1), next.Cars["b"].Speed)
		require.Equal(t, uint64(1), next.Sold[Shell])
	})

	t.Run("banana in between blocks it", func(t *testing.T) {
		s := shellRace(t)
		s.Hazards = []uint64{3}
		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeBlocked, ev.Outcome)
		require.Equal(t, uint64(3), ev.Position)
		require.Empty(t, next.Bananas())
		require.Equal(t, uint64(10), next.Cars["b"].Speed)
		require.Less(t, next.Cars["a"].Balance, s.Cars["a"].Balance)
	})

	t.Run("banana level with the target blocks it", func(t *testing.T) {
		s := shellRace(t)
		s.Hazards = []uint64{5}
		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeBlocked, ev.Outcome)
		require.Equal(t, uint64(10), next.Cars["b"].Speed)
	})

	t.Run("banana beyond the target is ignored", func(t *testing.T) {
		s := shellRace(t)
		s.Hazards = []uint64{6}
		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeShelled, ev.Outcome)
		require.Equal(t, []uint64{6}, next.Bananas())
	})

	t.Run("banana at the shooter is behind it", func(t *testing.T) {
		s := shellRace(t)
		s.Hazards = []uint64{0}
		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeShelled, ev.Outcome)
		require.Equal(t, []uint64{0}, next.Bananas())
	})

	t.Run("shield protects the target", func(t *testing.T) {
		s := shellRace(t)
		s.Cars["b"].Shield = 2
		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeShielded, ev.Outcome)
		require.Equal(t, uint64(10), next.Cars["b"].Speed)
	})

	t.Run("slow target is unaffected", func(t *testing.T) {
		s := shellRace(t)
		s.Cars["b"].Speed = 1
		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeMissed, ev.Outcome)
		require.Equal(t, uint64(1), next.Cars["b"].Speed)
	})

	t.Run("never hits cars behind or level", func(t *testing.T) {
		s := registered(t, endlessConfig())
		s.Cars["a"].Position = 5
		s.Cars["a"].Speed = 3
		s.Cars["b"].Speed = 10
		s.Cars["c"].Position = 5
		s.Cars["c"].Speed = 10

		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeMissed, ev.Outcome)
		require.Empty(t, ev.Target)
		require.Equal(t, uint64(10), next.Cars["b"].Speed)
		require.Equal(t, uint64(10), next.Cars["c"].Speed)
		require.Equal(t, uint64(3), next.Cars["a"].Speed)
		require.Equal(t, uint64(5), next.Cars["a"].Position)
	})

	t.Run("no car ahead still consumes a banana", func(t *testing.T) {
		s := registered(t, endlessConfig())
		s.Hazards = []uint64{2}
		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeBlocked, ev.Outcome)
		require.Empty(t, next.Bananas())
	})

	t.Run("ties go to roster order", func(t *testing.T) {
		s := shellRace(t)
		s.Cars["c"].Position = 5
		s.Cars["c"].Speed = 10
		next, ev, err := s.BuyShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, CarID("b"), ev.Target)
		require.Equal(t, uint64(10), next.Cars["c"].Speed)
	})
}

func TestSuperShell(t *testing.T) {
	t.Run("ignores shields", func(t *testing.T) {
		s := shellRace(t)
		s.Cars["b"].Shield = 2
		next, ev, err := s.BuySuperShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeShelled, ev.Outcome)
		require.Equal(t, uint64(1), next.Cars["b"].Speed)
	})

	t.Run("ignores bananas", func(t *testing.T) {
		s := shellRace(t)
		s.Hazards = []uint64{3}
		next, _, err := s.BuySuperShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, []uint64{3}, next.Bananas())
		require.Equal(t, uint64(1), next.Cars["b"].Speed)
	})

	t.Run("skips slow cars to the first fast one", func(t *testing.T) {
		s := shellRace(t)
		s.Cars["b"].Speed = 1
		s.Cars["c"].Position = 8
		s.Cars["c"].Speed = 4
		next, ev, err := s.BuySuperShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, CarID("c"), ev.Target)
		require.Equal(t, uint64(1), next.Cars["c"].Speed)
	})

	t.Run("misses when nobody is fast", func(t *testing.T) {
		s := registered(t, endlessConfig())
		_, ev, err := s.BuySuperShell("a", 1)
		require.NoError(t, err)
		require.Equal(t, OutcomeMissed, ev.Outcome)
	})
}
