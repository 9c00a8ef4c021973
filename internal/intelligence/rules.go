package intelligence

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type rulesFile struct {
	Stages     *Ruleset `yaml:"stages"`
	Categories *Ruleset `yaml:"categories"`
}

// LoadRules reads stage and category rulesets from a YAML file.
// A missing section keeps the built-in ruleset.
func LoadRules(path string) (Ruleset, Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Ruleset{}, Ruleset{}, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes YAML rulesets. Rule order in the document is kept.
func ParseRules(data []byte) (Ruleset, Ruleset, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Ruleset{}, Ruleset{}, fmt.Errorf("%w: %v", ErrInvalidRuleset, err)
	}

	stages := DefaultStageRules()
	if f.Stages != nil {
		stages = *f.Stages
		if stages.Default == "" {
			stages.Default = string(StageOther)
		}
	}
	categories := DefaultCategoryRules()
	if f.Categories != nil {
		categories = *f.Categories
		if categories.Default == "" {
			categories.Default = string(CategoryGeneral)
		}
	}

	if err := stages.Validate(); err != nil {
		return Ruleset{}, Ruleset{}, fmt.Errorf("stages: %w", err)
	}
	if err := categories.Validate(); err != nil {
		return Ruleset{}, Ruleset{}, fmt.Errorf("categories: %w", err)
	}
	return stages.normalized(), categories.normalized(), nil
}
