package env

import (
	"cases_backend/internal/config"
	"errors"
	"os"
)

const (
	signingKeyEnvName = "SIGNING_KEY"
)

type signerConfig struct {
	key string
}

// NewSignerConfig reads the outcome signing secret. There is no
// default: an unset key is a startup error, never a silent fallback.
func NewSignerConfig() (config.SignerConfig, error) {
	key := os.Getenv(signingKeyEnvName)
	if len(key) == 0 {
		return nil, errors.New("signing key not found")
	}

	return &signerConfig{
		key: key,
	}, nil
}

func (cfg *signerConfig) SigningKey() []byte {
	return []byte(cfg.key)
}
