package xgp

import (
	"time"

	"github.com/google/uuid"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/wgs"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts container identifier generation so tests are
// deterministic.
type IDGenerator interface {
	New() wgs.ContainerID
}

// UUIDGenerator produces random identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) New() wgs.ContainerID { return wgs.ContainerID(uuid.New()) }
