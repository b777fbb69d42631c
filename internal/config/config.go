package config

import (
	"cases_backend/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// GameConfig exposes the difficulty tiers, banker personality curves
// and retention policy loaded from the YAML game config.
type GameConfig interface {
	Tier(name string) (model.DifficultyTier, bool)
	TierNames() []string
	Curve(p model.Personality) (model.PersonalityCurve, bool)
	MaxCompletedRounds() int
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
}

// SignerConfig holds the server secret for fairness signatures.
// The key is required configuration with no fallback.
type SignerConfig interface {
	SigningKey() []byte
}
