package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ChallengeTemplate is a title/description pair for one challenge type.
// Both fields may contain a single %s verb which is replaced with the
// sport name when the challenge is generated.
type ChallengeTemplate struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ChallengeTemplates holds the sport->types table and the per-type text
// templates used by the challenge generator. It is passed into the
// domain at construction so deployments can override it without code
// changes.
type ChallengeTemplates struct {
	SportTypes   map[string][]string          `toml:"sport_types"`
	DefaultTypes []string                     `toml:"default_types"`
	Templates    map[string]ChallengeTemplate `toml:"templates"`
}

func DefaultChallengeTemplates() ChallengeTemplates {
	return ChallengeTemplates{
		SportTypes: map[string][]string{
			"football":   {"skill_showcase", "team_collaboration", "knowledge_quiz"},
			"basketball": {"skill_showcase", "team_collaboration", "endurance"},
			"running":    {"endurance", "photo_contest", "creativity"},
			"cycling":    {"endurance", "photo_contest", "knowledge_quiz"},
			"swimming":   {"endurance", "skill_showcase", "photo_contest"},
			"tennis":     {"skill_showcase", "knowledge_quiz", "creativity"},
		},
		DefaultTypes: []string{"skill_showcase", "creativity", "photo_contest"},
		Templates: map[string]ChallengeTemplate{
			"skill_showcase": {
				Title:       "%s Skill Showcase",
				Description: "Record your best %s move and show the community what you can do.",
			},
			"endurance": {
				Title:       "%s Endurance Challenge",
				Description: "Push your limits in a week-long %s endurance run. Log your session to join.",
			},
			"creativity": {
				Title:       "Creative %s Challenge",
				Description: "Surprise us with the most creative take on %s you can come up with.",
			},
			"team_collaboration": {
				Title:       "%s Team Challenge",
				Description: "Team up with other athletes and complete a %s session together.",
			},
			"knowledge_quiz": {
				Title:       "%s Knowledge Quiz",
				Description: "How well do you know %s? Submit your answers before the window closes.",
			},
			"photo_contest": {
				Title:       "%s Photo Contest",
				Description: "Capture your best %s moment and share it with the community.",
			},
		},
	}
}

// LoadChallengeTemplates reads a TOML override file on top of the
// defaults. An empty path returns the defaults unchanged.
func LoadChallengeTemplates(path string) (ChallengeTemplates, error) {
	templates := DefaultChallengeTemplates()
	if path == "" {
		return templates, nil
	}

	override := ChallengeTemplates{}
	if _, err := toml.DecodeFile(path, &override); err != nil {
		return ChallengeTemplates{}, err
	}

	for sport, types := range override.SportTypes {
		templates.SportTypes[sport] = types
	}

	if len(override.DefaultTypes) > 0 {
		templates.DefaultTypes = override.DefaultTypes
	}

	for challengeType, tmpl := range override.Templates {
		templates.Templates[challengeType] = tmpl
	}

	return templates, nil
}

// TypesForSport returns the challenge types configured for a sport, or
// the default trio when the sport is unknown.
func (t ChallengeTemplates) TypesForSport(sport string) []string {
	if types, ok := t.SportTypes[strings.ToLower(sport)]; ok {
		return types
	}

	return t.DefaultTypes
}

func (t ChallengeTemplates) Render(challengeType, sport string) (string, string, error) {
	tmpl, ok := t.Templates[challengeType]
	if !ok {
		return "", "", fmt.Errorf("no template for challenge type %s", challengeType)
	}

	title := tmpl.Title
	if strings.Contains(title, "%s") {
		title = fmt.Sprintf(title, strings.Title(sport))
	}

	description := tmpl.Description
	if strings.Contains(description, "%s") {
		description = fmt.Sprintf(description, strings.ToLower(sport))
	}

	return title, description, nil
}
