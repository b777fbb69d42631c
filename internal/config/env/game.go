package env

import (
	"cases_backend/internal/config"
	"cases_backend/internal/model"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type tierYAML struct {
	Name     string  `yaml:"name"`
	Ladder   []int64 `yaml:"ladder"`
	Schedule []int   `yaml:"schedule"`
	MinBuyIn int64   `yaml:"min_buy_in"`
	MaxBuyIn int64   `yaml:"max_buy_in"`
}

type curveYAML struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

type gameYAML struct {
	Tiers         []tierYAML           `yaml:"tiers"`
	Personalities map[string]curveYAML `yaml:"personalities"`
	Retention     struct {
		MaxCompleted int `yaml:"max_completed"`
	} `yaml:"retention"`
}

type gameConfig struct {
	tiers        map[string]model.DifficultyTier
	tierNames    []string
	curves       map[model.Personality]model.PersonalityCurve
	maxCompleted int
}

// NewGameConfigFromYAML loads and validates the tier ladders, round
// schedules and banker personality curves.
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}

	var parsed gameYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse game config: %w", err)
	}

	cfg := &gameConfig{
		tiers:        make(map[string]model.DifficultyTier),
		curves:       make(map[model.Personality]model.PersonalityCurve),
		maxCompleted: parsed.Retention.MaxCompleted,
	}

	if cfg.maxCompleted <= 0 {
		return nil, fmt.Errorf("retention.max_completed must be positive")
	}

	if len(parsed.Tiers) == 0 {
		return nil, fmt.Errorf("no tiers configured")
	}
	for _, t := range parsed.Tiers {
		tier, err := buildTier(t)
		if err != nil {
			return nil, fmt.Errorf("tier %q: %w", t.Name, err)
		}
		if _, ok := cfg.tiers[tier.Name]; ok {
			return nil, fmt.Errorf("duplicate tier %q", tier.Name)
		}
		cfg.tiers[tier.Name] = tier
		cfg.tierNames = append(cfg.tierNames, tier.Name)
	}
	sort.Strings(cfg.tierNames)

	if err := buildCurves(parsed.Personalities, cfg.curves); err != nil {
		return nil, err
	}

	return cfg, nil
}

func buildTier(t tierYAML) (model.DifficultyTier, error) {
	if t.Name == "" {
		return model.DifficultyTier{}, fmt.Errorf("missing name")
	}
	if len(t.Ladder) < 3 {
		return model.DifficultyTier{}, fmt.Errorf("ladder needs at least 3 values")
	}
	seen := make(map[int64]bool, len(t.Ladder))
	for _, v := range t.Ladder {
		if v <= 0 {
			return model.DifficultyTier{}, fmt.Errorf("ladder value %d not positive", v)
		}
		if seen[v] {
			return model.DifficultyTier{}, fmt.Errorf("duplicate ladder value %d", v)
		}
		seen[v] = true
	}
	if len(t.Schedule) == 0 {
		return model.DifficultyTier{}, fmt.Errorf("empty schedule")
	}
	for _, n := range t.Schedule {
		if n <= 0 {
			return model.DifficultyTier{}, fmt.Errorf("schedule entry %d not positive", n)
		}
	}
	if t.MinBuyIn <= 0 || t.MaxBuyIn < t.MinBuyIn {
		return model.DifficultyTier{}, fmt.Errorf("invalid buy-in range [%d, %d]", t.MinBuyIn, t.MaxBuyIn)
	}

	ladder := make([]int64, len(t.Ladder))
	copy(ladder, t.Ladder)
	schedule := make([]int, len(t.Schedule))
	copy(schedule, t.Schedule)

	return model.DifficultyTier{
		Name:     t.Name,
		Ladder:   ladder,
		Schedule: schedule,
		MinBuyIn: t.MinBuyIn,
		MaxBuyIn: t.MaxBuyIn,
	}, nil
}

// buildCurves requires exactly the three personalities and checks the
// strict banding: conservative <= fair <= aggressive at both ends of
// the progress range, every curve non-decreasing.
func buildCurves(raw map[string]curveYAML, out map[model.Personality]model.PersonalityCurve) error {
	wanted := []model.Personality{
		model.PersonalityConservative,
		model.PersonalityFair,
		model.PersonalityAggressive,
	}
	for _, p := range wanted {
		c, ok := raw[string(p)]
		if !ok {
			return fmt.Errorf("personality %q not configured", p)
		}
		if c.Start <= 0 {
			return fmt.Errorf("personality %q: start must be positive", p)
		}
		if c.End < c.Start {
			return fmt.Errorf("personality %q: curve must be non-decreasing", p)
		}
		out[p] = model.PersonalityCurve{Start: c.Start, End: c.End}
	}

	cons := out[model.PersonalityConservative]
	fair := out[model.PersonalityFair]
	aggr := out[model.PersonalityAggressive]
	if fair.Start < cons.Start || fair.End < cons.End {
		return fmt.Errorf("fair curve must dominate conservative")
	}
	if aggr.Start < fair.Start || aggr.End < fair.End {
		return fmt.Errorf("aggressive curve must dominate fair")
	}

	return nil
}

func (cfg *gameConfig) Tier(name string) (model.DifficultyTier, bool) {
	t, ok := cfg.tiers[name]
	return t, ok
}

func (cfg *gameConfig) TierNames() []string {
	return cfg.tierNames
}

func (cfg *gameConfig) Curve(p model.Personality) (model.PersonalityCurve, bool) {
	c, ok := cfg.curves[p]
	return c, ok
}

func (cfg *gameConfig) MaxCompletedRounds() int {
	return cfg.maxCompleted
}
