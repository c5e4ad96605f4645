package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChallengeTemplates_TypesForSport(t *testing.T) {
	templates := DefaultChallengeTemplates()

	require.Equal(t,
		[]string{"skill_showcase", "team_collaboration", "knowledge_quiz"},
		templates.TypesForSport("football"))

	// Sport lookup ignores case.
	require.Equal(t,
		templates.TypesForSport("football"),
		templates.TypesForSport("Football"))

	// Unknown sports fall back to the default trio.
	require.Equal(t,
		[]string{"skill_showcase", "creativity", "photo_contest"},
		templates.TypesForSport("chessboxing"))
}

func TestChallengeTemplates_Render(t *testing.T) {
	templates := DefaultChallengeTemplates()

	title, description, err := templates.Render("skill_showcase", "football")
	require.NoError(t, err)
	require.Equal(t, "Football Skill Showcase", title)
	require.Contains(t, description, "football")

	_, _, err = templates.Render("unknown_type", "football")
	require.Error(t, err)
}

func TestChallengeTemplates_EveryTypeHasTemplate(t *testing.T) {
	templates := DefaultChallengeTemplates()

	seen := map[string]bool{}
	for _, types := range templates.SportTypes {
		for _, typeName := range types {
			seen[typeName] = true
		}
	}
	for _, typeName := range templates.DefaultTypes {
		seen[typeName] = true
	}

	for typeName := range seen {
		_, _, err := templates.Render(typeName, "football")
		require.NoError(t, err)
	}
}
