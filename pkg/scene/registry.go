package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Built-in scene names
const (
	RandomSceneName   = "random"
	ShowcaseSceneName = "showcase"
)

// ErrUnknownScene is returned by Create for a name with no builder
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Seeded      bool   `json:"seeded"` // Whether the layout depends on the seed
}

type builder struct {
	info  SceneInfo
	build func(seed int64) *Scene
}

var builders = map[string]builder{
	RandomSceneName: {
		info: SceneInfo{
			Description: "Ground sphere with a grid of small random spheres and three large ones",
			Seeded:      true,
		},
		build: NewRandomScene,
	},
	ShowcaseSceneName: {
		info: SceneInfo{
			Description: "One sphere of each material including a hollow glass bubble",
		},
		build: func(int64) *Scene { return NewShowcaseScene() },
	},
}

// Create builds the named scene. The seed controls the layout of seeded
// scenes and the sampling seed of every scene.
func Create(name string, seed int64) (*Scene, error) {
	b, ok := builders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	s := b.build(seed)
	s.SamplingConfig.Seed = seed
	return s, nil
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns metadata for every built-in scene, sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builders))
	for _, name := range Names() {
		info := builders[name].info
		info.ID = name
		info.DisplayName = titleCase(name)
		scenes = append(scenes, info)
	}
	return scenes
}

// titleCase converts a filename-style string to title case
// e.g., "hollow-glass" -> "Hollow Glass"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
