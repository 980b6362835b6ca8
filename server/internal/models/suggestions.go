package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GoalIdea is a ready-made goal offered on the goals page.
type GoalIdea struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	TargetDays  int    `yaml:"target_days"`
}

// GoalCategory groups goal ideas under a heading.
type GoalCategory struct {
	Name  string     `yaml:"name"`
	Ideas []GoalIdea `yaml:"ideas"`
}

// GoalCatalog is the full set of goal ideas.
type GoalCatalog struct {
	Categories []GoalCategory `yaml:"categories"`
}

// LoadGoalCatalog reads and parses the goal suggestions file.
func LoadGoalCatalog(path string) (*GoalCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read goal catalog: %w", err)
	}

	var catalog GoalCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal goal catalog YAML: %w", err)
	}

	for ci, cat := range catalog.Categories {
		for ii, idea := range cat.Ideas {
			if idea.Title == "" {
				return nil, fmt.Errorf("goal catalog: category %q idea %d has no title", cat.Name, ii)
			}
			if idea.TargetDays < 1 || idea.TargetDays > 7 {
				catalog.Categories[ci].Ideas[ii].TargetDays = 3
			}
		}
	}
	return &catalog, nil
}

// EmptyGoalCatalog is used when no catalogue file is configured.
func EmptyGoalCatalog() *GoalCatalog {
	return &GoalCatalog{}
}
