package settings

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a setting key has never been saved. Callers
// translate it into their documented default rather than surfacing it.
var ErrNotFound = errors.New("setting not found")

// Store is the key-value persistence bridge. The engine treats writes as
// fire-and-forget: a failed Save degrades to "kept in memory only".
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	SaveMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
}

// Keys under which the engine persists its collections.
const (
	KeyTasks           = "tasks"
	KeyEnergyReadings  = "energyReadings"
	KeyAdaptationRules = "adaptationRules"
	KeyIntelligence    = "intelligence"
	KeyCurrentModel    = "currentModel"
	KeyDataSharing     = "dataSharing"
	KeyAdaptations     = "modelAdaptations"
	KeyCooldowns       = "adaptationCooldowns"
)
