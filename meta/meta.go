// meta/meta.go
package meta

// PLAYERS_REQUIRED defines the roster size that starts a race.
const PLAYERS_REQUIRED = 3

// STARTING_BALANCE defines the coins each car is registered with.
const STARTING_BALANCE = 17500

// FINISH_DISTANCE defines the position a car must reach to end the race.
const FINISH_DISTANCE = 1000

// POST_SHELL_SPEED defines the speed a shelled car is clamped down to.
const POST_SHELL_SPEED = 1

// MAX_TURNS defines the cutoff for locally simulated races.
const MAX_TURNS = 3000

// WAD is the fixed-point unit used by pricing parameters.
const WAD = 1_000_000_000_000_000_000

// Pricing parameters per action. Target prices are whole coins, per turn
// decreases and sell rates are WAD fixed-point.
const (
	ACCELERATE_TARGET_PRICE      = 10
	ACCELERATE_PER_TURN_DECREASE = 330_000_000_000_000_000
	ACCELERATE_SELL_PER_TURN     = 2 * WAD

	SHELL_TARGET_PRICE      = 200
	SHELL_PER_TURN_DECREASE = 330_000_000_000_000_000
	SHELL_SELL_PER_TURN     = 200_000_000_000_000_000

	SUPER_SHELL_TARGET_PRICE      = 300
	SUPER_SHELL_PER_TURN_DECREASE = 350_000_000_000_000_000
	SUPER_SHELL_SELL_PER_TURN     = 200_000_000_000_000_000

	BANANA_TARGET_PRICE      = 300
	BANANA_PER_TURN_DECREASE = 330_000_000_000_000_000
	BANANA_SELL_PER_TURN     = 200_000_000_000_000_000

	SHIELD_TARGET_PRICE      = 150
	SHIELD_PER_TURN_DECREASE = 330_000_000_000_000_000
	SHIELD_SELL_PER_TURN     = 200_000_000_000_000_000
)
