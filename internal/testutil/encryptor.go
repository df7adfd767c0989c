package testutil

import (
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/encryption"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() xgp.Encryptor {
	return encryption.NewTestEncryptor()
}
