package imagery

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// View is a single image within a modality.
type View struct {
	Name string `yaml:"name" json:"name"`
	Ref  string `yaml:"ref" json:"ref"`
}

// Modality groups the views produced by one imaging technique.
type Modality struct {
	Name  string `yaml:"name" json:"name"`
	Views []View `yaml:"views" json:"views"`
}

// ImageSet is the imagery available for one case.
type ImageSet struct {
	Key             string     `yaml:"key" json:"key"`
	Modalities      []Modality `yaml:"modalities" json:"modalities"`
	DefaultModality string     `yaml:"default_modality" json:"defaultModality"`
	DefaultView     string     `yaml:"default_view" json:"defaultView"`
}

// modality returns the named modality of the set.
func (s ImageSet) modality(name string) (Modality, bool) {
	for _, m := range s.Modalities {
		if m.Name == name {
			return m, true
		}
	}
	return Modality{}, false
}

//go:embed images.yaml
var imagesYAML []byte

// sets is the package-level image table, keyed by image-set key.
var sets map[string]ImageSet

func init() {
	s, err := parseSets(imagesYAML)
	if err != nil {
		panic(fmt.Sprintf("imagery: %v", err))
	}
	sets = s
}

func parseSets(data []byte) (map[string]ImageSet, error) {
	var list []ImageSet
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode image sets: %w", err)
	}
	out := make(map[string]ImageSet, len(list))
	for _, s := range list {
		if s.Key == "" {
			return nil, fmt.Errorf("image set without key")
		}
		if _, dup := out[s.Key]; dup {
			return nil, fmt.Errorf("duplicate image set %q", s.Key)
		}
		out[s.Key] = s
	}
	return out, nil
}

// Get returns the image set for key.
func Get(key string) (ImageSet, bool) {
	s, ok := sets[key]
	return s, ok
}

// Keys returns every registered image-set key, unordered.
func Keys() []string {
	out := make([]string, 0, len(sets))
	for k := range sets {
		out = append(out, k)
	}
	return out
}

// HasImages reports whether any view of the set has an image reference.
func HasImages(key string) bool {
	s, ok := sets[key]
	if !ok {
		return false
	}
	for _, m := range s.Modalities {
		for _, v := range m.Views {
			if v.Ref != "" {
				return true
			}
		}
	}
	return false
}

// Defaults returns the configured initial modality and view for key.
// Unknown keys yield empty strings.
func Defaults(key string) (modality, view string) {
	s, ok := sets[key]
	if !ok {
		return "", ""
	}
	return s.DefaultModality, s.DefaultView
}

// ImagePath resolves an image reference. An empty result means "no image
// available" and is not an error.
func ImagePath(key, modality, view string) string {
	s, ok := sets[key]
	if !ok {
		return ""
	}
	m, ok := s.modality(modality)
	if !ok {
		return ""
	}
	for _, v := range m.Views {
		if v.Name == view {
			return v.Ref
		}
	}
	return ""
}

// Modalities lists the modality names of key in authored order.
func Modalities(key string) []string {
	s, ok := sets[key]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(s.Modalities))
	for _, m := range s.Modalities {
		out = append(out, m.Name)
	}
	return out
}

// Views lists the view names of a modality in authored order.
func Views(key, modality string) []string {
	s, ok := sets[key]
	if !ok {
		return []string{}
	}
	m, ok := s.modality(modality)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(m.Views))
	for _, v := range m.Views {
		out = append(out, v.Name)
	}
	return out
}

// FirstView returns the first view of a modality, or "" if it has none.
func FirstView(key, modality string) string {
	views := Views(key, modality)
	if len(views) == 0 {
		return ""
	}
	return views[0]
}

// HasView reports whether view belongs to modality in the set.
func HasView(key, modality, view string) bool {
	for _, v := range Views(key, modality) {
		if v == view {
			return true
		}
	}
	return false
}
