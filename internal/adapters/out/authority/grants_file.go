package authority

import (
	"encoding/json"
	"fmt"
	"os"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/ports"
)

// grantRecord is the on-disk shape of one actor grant.
type grantRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
}

// LoadGrantsFile reads actor grants from a JSON file: an array of
// {id, name, capabilities} objects.
func LoadGrantsFile(path string) ([]ActorGrant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grants file %s: %w", path, err)
	}

	var records []grantRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("malformed grants file %s: %w", path, err)
	}

	grants := make([]ActorGrant, 0, len(records))
	for _, record := range records {
		id, err := kernel.UUIDFromString(record.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid actor id %q in grants file: %w", record.ID, err)
		}

		grants = append(grants, ActorGrant{
			Actor:        ports.Actor{ID: id, Name: record.Name},
			Capabilities: record.Capabilities,
		})
	}

	return grants, nil
}
