package encryption

import (
	"fmt"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/config"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration type.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (xgp.Encryptor, error) {
	switch cfg.Type {
	case "age", "":
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
