package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"monaco/game"
	"monaco/pricing"
	"monaco/store"
)

type Config struct {
	Race    Race          `yaml:"race"`
	Storage store.Options `yaml:"storage"`
	Log     Log           `yaml:"log"`
	Metrics Metrics       `yaml:"metrics"`
}

type Race struct {
	Players         int                `yaml:"players"`
	FinishDistance  uint64             `yaml:"finish_distance"`
	StartingBalance uint64             `yaml:"starting_balance"`
	PostShellSpeed  uint64             `yaml:"post_shell_speed"`
	Pricing         map[string]Pricing `yaml:"pricing"` // keyed by action name
}

// Pricing holds the curve parameters as decimal strings such as "0.33".
type Pricing struct {
	TargetPrice     uint64 `yaml:"target_price"`
	PerTurnDecrease string `yaml:"per_turn_decrease"`
	SellPerTurn     string `yaml:"sell_per_turn"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Metrics struct {
	Dir string `yaml:"dir"` // empty disables CSV output
}

func Default() Config {
	defaults := game.DefaultConfig()
	prices := make(map[string]Pricing, len(defaults.Pricing))
	for action, p := range defaults.Pricing {
		prices[action.String()] = Pricing{
			TargetPrice:     p.TargetPrice,
			PerTurnDecrease: FromWad(p.PerTurnDecrease),
			SellPerTurn:     FromWad(p.SellPerTurn),
		}
	}

	return Config{
		Race: Race{
			Players:         defaults.PlayersRequired,
			FinishDistance:  defaults.FinishDistance,
			StartingBalance: defaults.StartingBalance,
			PostShellSpeed:  defaults.PostShellSpeed,
			Pricing:         prices,
		},
		Storage: store.Options{Dialect: store.DialectSQLite},
		Log:     Log{Level: "info"},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := Default()
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	r.ApplyDefaults()
	return &r, nil
}

// ApplyDefaults fills the log level and pricing fields a partial file left empty.
func (c *Config) ApplyDefaults() {
	defaults := Default()
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Race.Pricing == nil {
		c.Race.Pricing = defaults.Race.Pricing
		return
	}
	for name, d := range defaults.Race.Pricing {
		p := c.Race.Pricing[name]
		if p.TargetPrice == 0 {
			p.TargetPrice = d.TargetPrice
		}
		if p.PerTurnDecrease == "" {
			p.PerTurnDecrease = d.PerTurnDecrease
		}
		if p.SellPerTurn == "" {
			p.SellPerTurn = d.SellPerTurn
		}
		c.Race.Pricing[name] = p
	}
}

// Game converts the race section into a validated game config.
func (c Config) Game() (game.Config, error) {
	cfg := game.Config{
		PlayersRequired: c.Race.Players,
		FinishDistance:  c.Race.FinishDistance,
		StartingBalance: c.Race.StartingBalance,
		PostShellSpeed:  c.Race.PostShellSpeed,
		Pricing:         make(map[game.ActionType]pricing.Params, len(c.Race.Pricing)),
	}
	for name, p := range c.Race.Pricing {
		var action game.ActionType
		if err := action.UnmarshalText([]byte(name)); err != nil || !action.Purchasable() {
			return game.Config{}, fmt.Errorf("pricing: unknown action %q", name)
		}
		decrease, err := ToWad(p.PerTurnDecrease)
		if err != nil {
			return game.Config{}, fmt.Errorf("pricing %s per_turn_decrease: %w", name, err)
		}
		rate, err := ToWad(p.SellPerTurn)
		if err != nil {
			return game.Config{}, fmt.Errorf("pricing %s sell_per_turn: %w", name, err)
		}
		cfg.Pricing[action] = pricing.Params{
			TargetPrice:     p.TargetPrice,
			PerTurnDecrease: decrease,
			SellPerTurn:     rate,
		}
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

func (l Log) ZerologLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(l.Level)))
}

var wadExp = decimal.New(1, 18)

// ToWad converts a non-negative decimal string to 18-decimal fixed point
// without rounding.
func ToWad(s string) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, errors.New("must not be negative")
	}
	scaled := d.Mul(wadExp)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, errors.New("more than 18 decimal places")
	}
	n := scaled.BigInt()
	if !n.IsUint64() {
		return 0, errors.New("out of range")
	}
	return n.Uint64(), nil
}

func FromWad(v uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -18).String()
}
