// internal/services/prompts_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
)

func TestRenderPromptInterpolatesFields(t *testing.T) {
	prompt, err := RenderPrompt(TemplateIdea, map[string]string{
		"input_content": "Genre: fantasy",
		"requirements":  "three ideas",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Genre: fantasy")
	assert.Contains(t, prompt, "three ideas")
	assert.Contains(t, prompt, "MangaMaster")
}

func TestRenderPromptMissingFieldsAreEmpty(t *testing.T) {
	prompt, err := RenderPrompt(TemplateScenario, map[string]string{
		"scenario_base": "chapter 1 outline",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "chapter 1 outline")
	assert.True(t, strings.HasSuffix(prompt, "Scene details: "),
		"missing field should render empty")
}

func TestRenderPromptUnknownKey(t *testing.T) {
	_, err := RenderPrompt("poetry", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestPromptTemplateKeysComplete(t *testing.T) {
	assert.ElementsMatch(t, []string{
		TemplateIdea, TemplateScenario, TemplateCharacter,
		TemplateWorld, TemplateManuscriptEval, TemplatePageEval,
	}, PromptTemplateKeys())
}
