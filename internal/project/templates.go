package project

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// DefaultTemplatePath returns the default file path for the color palette.
// This is located at ~/.toolcrib/templates.yaml.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.yaml")
}

// SaveTemplates writes the template set to a YAML file so palettes can be
// shared between installations.
func SaveTemplates(path string, set model.TemplateSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(set)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads a template set from a YAML file.
// If the file does not exist, returns the default templates. Pools missing
// from the file keep their defaults.
func LoadTemplates(path string) (model.TemplateSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultTemplates(), nil
		}
		return model.TemplateSet{}, err
	}
	var set model.TemplateSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return model.TemplateSet{}, err
	}
	defaults := model.DefaultTemplates()
	if len(set.RotatingTools) == 0 {
		set.RotatingTools = defaults.RotatingTools
	}
	if len(set.InsertTools) == 0 {
		set.InsertTools = defaults.InsertTools
	}
	if len(set.Holders) == 0 {
		set.Holders = defaults.Holders
	}
	if len(set.Adapters) == 0 {
		set.Adapters = defaults.Adapters
	}
	return set, nil
}
