package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "owner"

var roster = []CarID{"a", "b", "c"}

func endlessConfig() Config {
	cfg := DefaultConfig()
	cfg.FinishDistance = 0
	return cfg
}

func registered(t *testing.T, cfg Config) *State {
	t.Helper()
	s, _, err := NewState("race", owner, cfg).Register(nil, owner, roster)
	require.NoError(t, err)
	return s
}

func TestRegister(t *testing.T) {
	t.Run("initializes every car", func(t *testing.T) {
		s, ev, err := NewState("race", owner, DefaultConfig()).Register(nil, owner, roster)
		require.NoError(t, err)
		require.Equal(t, Active, s.Status)
		require.Equal(t, OpRegister, ev.Op)
		require.Equal(t, roster, s.Roster)

		for _, car := range s.CarData() {
			assert.Equal(t, uint64(17500), car.Balance)
			assert.Zero(t, car.Position)
			assert.Zero(t, car.Speed)
			assert.Zero(t, car.Shield)
		}
	})

	t.Run("rejects callers other than the owner", func(t *testing.T) {
		_, _, err := NewState("race", owner, DefaultConfig()).Register(nil, "mallory", roster)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("consults the authorizer", func(t *testing.T) {
		_, _, err := NewState("race", owner, DefaultConfig()).Register(Owner("admin"), "admin", roster)
		require.NoError(t, err)
	})

	t.Run("rejects a second roster", func(t *testing.T) {
		s := registered(t, DefaultConfig())
		_, _, err := s.Register(nil, owner, []CarID{"d", "e", "f"})
		require.ErrorIs(t, err, ErrLimitPlayers)
	})

	t.Run("rejects malformed rosters", func(t *testing.T) {
		tests := map[string][]CarID{
			"too few":   {"a", "b"},
			"too many":  {"a", "b", "c", "d"},
			"duplicate": {"a", "b", "a"},
			"empty id":  {"a", "", "c"},
		}
		for name, ids := range tests {
			t.Run(name, func(t *testing.T) {
				s := NewState("race", owner, DefaultConfig())
				_, _, err := s.Register(nil, owner, ids)
				require.ErrorIs(t, err, ErrInvalidRoster)
				require.Empty(t, s.Roster)
				require.Equal(t, Waiting, s.Status)
			})
		}
	})
}

func TestReset(t *testing.T) {
	s := registered(t, DefaultConfig())
	s, _, err := s.BuyAccelerate("a", 3)
	require.NoError(t, err)
	s, _, err = s.BuyBanana("b")
	require.NoError(t, err)
	s, _, err = s.Play(nil, 2)
	require.NoError(t, err)

	t.Run("owner only", func(t *testing.T) {
		_, _, err := s.Reset(nil, "a", nil)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("clears the race", func(t *testing.T) {
		next, ev, err := s.Reset(nil, owner, nil)
		require.NoError(t, err)
		require.Equal(t, OpReset, ev.Op)
		require.Equal(t, Waiting, next.Status)
		require.Zero(t, next.Turns)
		require.Empty(t, next.Roster)
		require.Empty(t, next.Cars)
		require.Empty(t, next.Bananas())
		for _, a := range ActionTypes {
			require.Zero(t, next.Sold[a])
		}
		require.Equal(t, s.ID, next.ID)
		require.Equal(t, s.Owner, next.Owner)

		_, _, err = next.Register(nil, owner, roster)
		require.NoError(t, err)
	})

	t.Run("replaces the config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PlayersRequired = 2
		next, _, err := s.Reset(nil, owner, &cfg)
		require.NoError(t, err)
		require.Equal(t, 2, next.Config.PlayersRequired)
	})

	t.Run("rejects an invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PlayersRequired = 0
		_, _, err := s.Reset(nil, owner, &cfg)
		require.Error(t, err)
	})
}

func TestBuy(t *testing.T) {
	t.Run("accelerate charges the curve price", func(t *testing.T) {
		s := registered(t, endlessConfig())
		price, err := s.PriceFor(Accelerate, 1)
		require.NoError(t, err)
		require.Equal(t, uint64(12), price)

		next, ev, err := s.BuyAccelerate("a", 1)
		require.NoError(t, err)
		require.Equal(t, uint64(1), next.Cars["a"].Speed)
		require.Equal(t, uint64(17500-12), next.Cars["a"].Balance)
		require.Equal(t, uint64(1), next.Sold[Accelerate])
		require.Equal(t, Event{Op: OpBuyAccelerate, Outcome: OutcomeBought, Car: "a", Amount: 1, Cost: 12}, ev)

		// receiver is untouched
		require.Zero(t, s.Cars["a"].Speed)
		require.Zero(t, s.Sold[Accelerate])
	})

	t.Run("shield covers the current turn", func(t *testing.T) {
		s := registered(t, endlessConfig())
		s, _, err := s.BuyShield("a", 2)
		require.NoError(t, err)
		require.Equal(t, uint64(3), s.Cars["a"].Shield)

		s, _, err = s.Play(nil, 1)
		require.NoError(t, err)
		require.Equal(t, uint64(2), s.Cars["a"].Shield)
	})

	t.Run("zero amount", func(t *testing.T) {
		s := registered(t, endlessConfig())
		_, _, err := s.BuyAccelerate("a", 0)
		require.ErrorIs(t, err, ErrZeroAmount)
	})

	t.Run("quantity cap", func(t *testing.T) {
		s := registered(t, endlessConfig())
		_, _, err := s.BuyAccelerate("a", MaxPurchase+1)
		require.ErrorIs(t, err, ErrQuantityTooLarge)
	})

	t.Run("unknown car", func(t *testing.T) {
		s := registered(t, endlessConfig())
		_, _, err := s.BuyShell("z", 1)
		require.ErrorIs(t, err, ErrUnknownCar)
	})

	t.Run("unknown action", func(t *testing.T) {
		s := registered(t, endlessConfig())
		_, _, err := s.Buy("a", Action{Type: ActionType(42), Amount: 1})
		require.ErrorIs(t, err, ErrUnknownAction)
		_, _, err = s.Buy("a", Action{Type: None, Amount: 1})
		require.ErrorIs(t, err, ErrUnknownAction)
	})

	t.Run("insufficient balance changes nothing", func(t *testing.T) {
		s := registered(t, endlessConfig())
		s.Cars["a"].Balance = 100
		s.Cars["b"].Position = 5
		s.Cars["b"].Speed = 10

		_, _, err := s.BuyShell("a", 1)
		require.ErrorIs(t, err, ErrInsufficientBalance)
		require.Equal(t, uint64(100), s.Cars["a"].Balance)
		require.Equal(t, uint64(10), s.Cars["b"].Speed)
		require.Zero(t, s.Sold[Shell])
	})
}

func TestPriceForIsAdditive(t *testing.T) {
	s := registered(t, endlessConfig())
	s.Turns = 7

	for _, a := range ActionTypes {
		for _, split := range [][2]uint64{{1, 1}, {2, 3}, {5, 1}, {4, 4}} {
			n, m := split[0], split[1]
			total, err := s.PriceFor(a, n+m)
			require.NoError(t, err)
			first, err := s.PriceFor(a, n)
			require.NoError(t, err)

			later := s.Copy()
			later.Sold[a] += n
			rest, err := later.PriceFor(a, m)
			require.NoError(t, err)

			require.Equal(t, total, first+rest, "%s %d+%d", a, n, m)
		}
	}
}

func TestBanana(t *testing.T) {
	s := registered(t, endlessConfig())
	s.Cars["a"].Position = 4

	s, ev, err := s.BuyBanana("a")
	require.NoError(t, err)
	require.Equal(t, OutcomePlaced, ev.Outcome)
	require.Equal(t, uint64(4), ev.Position)
	require.Equal(t, []uint64{4}, s.Bananas())
	balance := s.Cars["a"].Balance

	t.Run("duplicate is refunded", func(t *testing.T) {
		next, ev, err := s.BuyBanana("a")
		require.NoError(t, err)
		require.Equal(t, OutcomeDuplicateHazard, ev.Outcome)
		require.Zero(t, ev.Cost)
		require.Equal(t, []uint64{4}, next.Bananas())
		require.Equal(t, balance, next.Cars["a"].Balance)
		require.Equal(t, uint64(1), next.Sold[Banana])
	})

	t.Run("one banana per purchase", func(t *testing.T) {
		next := s.Copy()
		next.Cars["b"].Position = 7
		price, err := next.PriceFor(Banana, 1)
		require.NoError(t, err)

		_, _, err = next.Buy("b", Action{Type: Banana, Amount: 3})
		require.ErrorIs(t, err, ErrQuantityTooLarge)
		require.Equal(t, []uint64{4}, next.Bananas())
		require.Equal(t, uint64(1), next.Sold[Banana])

		// also rejected where a banana already sits
		_, _, err = next.Buy("a", Action{Type: Banana, Amount: 2})
		require.ErrorIs(t, err, ErrQuantityTooLarge)

		_, _, err = next.Buy("b", Action{Type: Banana})
		require.ErrorIs(t, err, ErrZeroAmount)

		after, ev, err := next.Buy("b", Action{Type: Banana, Amount: 1})
		require.NoError(t, err)
		require.Equal(t, price, ev.Cost)
		require.Equal(t, uint64(2), after.Sold[Banana])
		require.Equal(t, next.Cars["b"].Balance-price, after.Cars["b"].Balance)
	})

	t.Run("starting line position is reported", func(t *testing.T) {
		_, ev, err := s.BuyBanana("b")
		require.NoError(t, err)
		require.Equal(t, OutcomePlaced, ev.Outcome)

		b, err := json.Marshal(ev)
		require.NoError(t, err)
		require.Contains(t, string(b), `"position":0`)
	})

	t.Run("bananas stay sorted", func(t *testing.T) {
		next := s.Copy()
		next.Cars["b"].Position = 9
		next.Cars["c"].Position = 1
		next, _, err := next.BuyBanana("b")
		require.NoError(t, err)
		next, _, err = next.BuyBanana("c")
		require.NoError(t, err)
		require.Equal(t, []uint64{1, 4, 9}, next.Bananas())
	})
}
