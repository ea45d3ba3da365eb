package game

import (
	"errors"
	"fmt"
	"maps"

	"monaco/meta"
	"monaco/pricing"
)

// Config is fixed for the lifetime of a race and only replaced on reset.
type Config struct {
	PlayersRequired int                           `json:"players_required"`
	FinishDistance  uint64                        `json:"finish_distance"` // 0 disables finishing
	StartingBalance uint64                        `json:"starting_balance"`
	PostShellSpeed  uint64                        `json:"post_shell_speed"`
	Pricing         map[ActionType]pricing.Params `json:"pricing"`
}

func DefaultConfig() Config {
	return Config{
		PlayersRequired: meta.PLAYERS_REQUIRED,
		FinishDistance:  meta.FINISH_DISTANCE,
		StartingBalance: meta.STARTING_BALANCE,
		PostShellSpeed:  meta.POST_SHELL_SPEED,
		Pricing: map[ActionType]pricing.Params{
			Accelerate: {TargetPrice: meta.ACCELERATE_TARGET_PRICE, PerTurnDecrease: meta.ACCELERATE_PER_TURN_DECREASE, SellPerTurn: meta.ACCELERATE_SELL_PER_TURN},
			Shell:      {TargetPrice: meta.SHELL_TARGET_PRICE, PerTurnDecrease: meta.SHELL_PER_TURN_DECREASE, SellPerTurn: meta.SHELL_SELL_PER_TURN},
			SuperShell: {TargetPrice: meta.SUPER_SHELL_TARGET_PRICE, PerTurnDecrease: meta.SUPER_SHELL_PER_TURN_DECREASE, SellPerTurn: meta.SUPER_SHELL_SELL_PER_TURN},
			Banana:     {TargetPrice: meta.BANANA_TARGET_PRICE, PerTurnDecrease: meta.BANANA_PER_TURN_DECREASE, SellPerTurn: meta.BANANA_SELL_PER_TURN},
			Shield:     {TargetPrice: meta.SHIELD_TARGET_PRICE, PerTurnDecrease: meta.SHIELD_PER_TURN_DECREASE, SellPerTurn: meta.SHIELD_SELL_PER_TURN},
		},
	}
}

func (c Config) Validate() error {
	if c.PlayersRequired <= 0 {
		return errors.New("players required must be positive")
	}
	for _, a := range ActionTypes {
		p, ok := c.Pricing[a]
		if !ok {
			return fmt.Errorf("missing pricing for %s", a)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("pricing for %s: %w", a, err)
		}
	}
	return nil
}

func (c Config) clone() Config {
	c.Pricing = maps.Clone(c.Pricing)
	return c
}
