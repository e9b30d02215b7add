package catalogs

import (
	"context"
	"fmt"
	"os"

	"github.com/questline/questline/internal/entities"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a dungeon catalog
type catalogFile struct {
	Dungeons []entities.Dungeon `yaml:"dungeons"`
}

// LoadFile reads dungeon definitions from a YAML catalog file
func LoadFile(path string) ([]*entities.Dungeon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	dungeons := make([]*entities.Dungeon, 0, len(file.Dungeons))
	for i := range file.Dungeons {
		dungeon := &file.Dungeons[i]
		if dungeon.Slug == "" {
			return nil, fmt.Errorf("catalog file %s: dungeon %d has no slug", path, i)
		}
		if len(dungeon.Floors) == 0 {
			return nil, fmt.Errorf("catalog file %s: dungeon '%s' has no floors", path, dungeon.Slug)
		}
		dungeons = append(dungeons, dungeon)
	}

	return dungeons, nil
}

// SeedFromFile loads a YAML catalog file into a repository
func SeedFromFile(ctx context.Context, repo Repository, path string) error {
	dungeons, err := LoadFile(path)
	if err != nil {
		return err
	}

	for _, dungeon := range dungeons {
		if err := repo.Put(ctx, dungeon); err != nil {
			return fmt.Errorf("failed to seed dungeon '%s': %w", dungeon.Slug, err)
		}
	}

	return nil
}
