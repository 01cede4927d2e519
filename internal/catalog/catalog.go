// Package catalog exposes the static content shipped with the app: the
// mission catalog, connection-moment suggestions, reaction emojis, default
// avatars and the fallback recommendation list.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"fambalance/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type missionDoc struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Points      int      `yaml:"points"`
	Type        string   `yaml:"type"`
	Premium     bool     `yaml:"premium"`
	MoodTrigger []string `yaml:"moodTrigger"`
}

type document struct {
	Missions                []missionDoc `yaml:"missions"`
	ConnectionSuggestions   []string     `yaml:"connectionSuggestions"`
	ReactionEmojis          []string     `yaml:"reactionEmojis"`
	DefaultAvatars          []string     `yaml:"defaultAvatars"`
	FallbackRecommendations []string     `yaml:"fallbackRecommendations"`
}

// Catalog is the parsed static content
type Catalog struct {
	Missions                []models.Mission
	ConnectionSuggestions   []string
	ReactionEmojis          []string
	DefaultAvatars          []string
	FallbackRecommendations []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, parsed once
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(catalogYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", defaultErr))
	}
	return defaultCatalog
}

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{
		ConnectionSuggestions:   doc.ConnectionSuggestions,
		ReactionEmojis:          doc.ReactionEmojis,
		DefaultAvatars:          doc.DefaultAvatars,
		FallbackRecommendations: doc.FallbackRecommendations,
	}

	seen := make(map[string]bool, len(doc.Missions))
	for _, md := range doc.Missions {
		if md.ID == "" {
			return nil, fmt.Errorf("mission without id: %q", md.Description)
		}
		if seen[md.ID] {
			return nil, fmt.Errorf("duplicate mission id %s", md.ID)
		}
		seen[md.ID] = true

		mission := models.Mission{
			ID:          md.ID,
			Description: md.Description,
			Points:      md.Points,
			IsPremium:   md.Premium,
			Type:        models.MissionType(md.Type),
		}
		for _, key := range md.MoodTrigger {
			emotion, ok := models.ParseEmotion(key)
			if !ok {
				return nil, fmt.Errorf("mission %s: unknown mood trigger %q", md.ID, key)
			}
			mission.MoodTrigger = append(mission.MoodTrigger, emotion)
		}
		c.Missions = append(c.Missions, mission)
	}

	if len(c.ConnectionSuggestions) == 0 {
		return nil, fmt.Errorf("catalog has no connection suggestions")
	}

	return c, nil
}

// Mission looks up a catalog mission by id
func (c *Catalog) Mission(id string) (models.Mission, bool) {
	i := slices.IndexFunc(c.Missions, func(m models.Mission) bool { return m.ID == id })
	if i < 0 {
		return models.Mission{}, false
	}
	return c.Missions[i], true
}

// IsReactionEmoji reports whether emoji is one of the offered reactions
func (c *Catalog) IsReactionEmoji(emoji string) bool {
	return slices.Contains(c.ReactionEmojis, emoji)
}
