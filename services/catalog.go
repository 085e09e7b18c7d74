package services

import (
	_ "embed"
	"fmt"

	"fitness-rpg/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the fixed table of quests and achievements a character starts with
type Catalog struct {
	Quests       []models.Quest       `yaml:"quests"`
	Achievements []models.Achievement `yaml:"achievements"`
}

// DefaultCatalog is parsed once from the embedded catalog.yaml
var DefaultCatalog = mustLoadCatalog(catalogYAML)

// LoadCatalog parses a catalog document and checks every entry has a predicate
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]struct{})
	for _, q := range c.Quests {
		if _, ok := questRegistry[q.ID]; !ok {
			return nil, fmt.Errorf("quest %q has no progress predicate", q.ID)
		}
		if q.Target < 1 {
			return nil, fmt.Errorf("quest %q: target must be positive", q.ID)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	for _, a := range c.Achievements {
		if _, ok := achievementRegistry[a.ID]; !ok {
			return nil, fmt.Errorf("achievement %q has no unlock predicate", a.ID)
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return &c, nil
}

func mustLoadCatalog(data []byte) *Catalog {
	c, err := LoadCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// NewQuests returns fresh, zero-progress copies of the catalog quests
func (c *Catalog) NewQuests() []models.Quest {
	out := make([]models.Quest, len(c.Quests))
	copy(out, c.Quests)
	for i := range out {
		out[i].Progress = 0
		out[i].Completed = false
		out[i].CompletedAt = nil
	}
	return out
}

// NewAchievements returns fresh, locked copies of the catalog achievements
func (c *Catalog) NewAchievements() []models.Achievement {
	out := make([]models.Achievement, len(c.Achievements))
	copy(out, c.Achievements)
	for i := range out {
		out[i].Unlocked = false
		out[i].UnlockedAt = nil
	}
	return out
}
