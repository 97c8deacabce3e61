// internal/services/creative_service.go
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/models"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

// CreativeService drives the generation workshops: ideas, scenarios,
// characters and world settings. Generated content is returned to the
// caller; saving to the store is a separate explicit step except for
// characters, which the source flow saves on creation.
type CreativeService struct {
	LLM    *LLMService
	Store  *store.Store
	Logger *zap.Logger
}

func NewCreativeService(llmService *LLMService, st *store.Store, logger *zap.Logger) *CreativeService {
	return &CreativeService{LLM: llmService, Store: st, Logger: logger}
}

// IdeaRequest is the quick idea generation form.
type IdeaRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Genre    string `json:"genre"`
	Target   string `json:"target"`
	Theme    string `json:"theme"`
	Length   string `json:"length"`
}

// GenerateIdea produces three pitchable manga ideas from the quick form.
func (s *CreativeService) GenerateIdea(ctx context.Context, req IdeaRequest) (string, error) {
	return s.LLM.Generate(ctx, GenerateRequest{
		TemplateKey: TemplateIdea,
		Provider:    req.Provider,
		Model:       req.Model,
		Fields: map[string]string{
			"input_content": fmt.Sprintf("Genre: %s, Target: %s, Theme: %s, Scale: %s",
				req.Genre, req.Target, req.Theme, req.Length),
			"requirements": "Propose three fresh, commercially viable manga ideas, " +
				"each with a title, synopsis, main characters and selling points.",
		},
	})
}

// DetailedIdeaRequest is the detailed idea generation form.
type DetailedIdeaRequest struct {
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Genre       string `json:"genre"`
	Setting     string `json:"setting"`
	Protagonist string `json:"protagonist"`
	Antagonist  string `json:"antagonist"`
	PlotTwist   string `json:"plot_twist"`
}

// GenerateDetailedIdea builds a first-chapter outline from detailed
// requirements.
func (s *CreativeService) GenerateDetailedIdea(ctx context.Context, req DetailedIdeaRequest) (string, error) {
	return s.LLM.Generate(ctx, GenerateRequest{
		TemplateKey: TemplateIdea,
		Provider:    req.Provider,
		Model:       req.Model,
		Fields: map[string]string{
			"input_content": fmt.Sprintf(
				"Genre: %s, Setting: %s, Protagonist: %s, Antagonist: %s, Required element: %s",
				req.Genre, req.Setting, req.Protagonist, req.Antagonist, req.PlotTwist),
			"requirements": "Based on the above, propose a detailed synopsis for " +
				"chapter one of a compelling serialized manga and possible future arcs.",
		},
	})
}

// SaveIdea stores generated content in the idea bank.
func (s *CreativeService) SaveIdea(title, content string) models.IdeaEntry {
	return s.Store.AddIdea(title, content)
}

// ScenarioRequest is the scenario workshop form.
type ScenarioRequest struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	ScenarioBase string `json:"scenario_base"`
	SceneDetails string `json:"scene_details"`
}

// GenerateScenario writes a concrete scene script from a plot outline.
func (s *CreativeService) GenerateScenario(ctx context.Context, req ScenarioRequest) (string, error) {
	return s.LLM.Generate(ctx, GenerateRequest{
		TemplateKey: TemplateScenario,
		Provider:    req.Provider,
		Model:       req.Model,
		Fields: map[string]string{
			"scenario_base": req.ScenarioBase,
			"scene_details": req.SceneDetails,
		},
	})
}

// CharacterRequest is the character workshop form.
type CharacterRequest struct {
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
	Personality string `json:"personality"`
	Backstory   string `json:"backstory"`
	Abilities   string `json:"abilities"`
}

// GenerateCharacter builds a full character sheet and saves it to the
// character list.
func (s *CreativeService) GenerateCharacter(ctx context.Context, req CharacterRequest) (models.Character, error) {
	details, err := s.LLM.Generate(ctx, GenerateRequest{
		TemplateKey: TemplateCharacter,
		Provider:    req.Provider,
		Model:       req.Model,
		Fields: map[string]string{
			"character_info": fmt.Sprintf(
				"Name: %s, Age: %d, Gender: %s, Role: %s, Personality: %s, Background: %s, Abilities: %s",
				req.Name, req.Age, req.Gender, req.Role, req.Personality, req.Backstory, req.Abilities),
		},
	})
	if err != nil {
		return models.Character{}, err
	}
	return s.Store.AddCharacter(req.Name, details), nil
}

// WorldRequest is the world building form.
type WorldRequest struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Geography    string `json:"geography"`
	Technology   string `json:"technology"`
	Society      string `json:"society"`
	History      string `json:"history"`
	SpecialRules string `json:"special_rules"`
}

// GenerateWorld builds a world-setting document. Saving it to the archive
// is a separate step (SaveWorldSetting).
func (s *CreativeService) GenerateWorld(ctx context.Context, req WorldRequest) (string, error) {
	return s.LLM.Generate(ctx, GenerateRequest{
		TemplateKey: TemplateWorld,
		Provider:    req.Provider,
		Model:       req.Model,
		Fields: map[string]string{
			"world_base": fmt.Sprintf(
				"World name: %s, Type: %s, Geography: %s, Technology: %s, Society: %s, History: %s, Special rules: %s",
				req.Name, req.Type, req.Geography, req.Technology, req.Society, req.History, req.SpecialRules),
			"additional_requests": "Construct a consistent, appealing and original " +
				"world. Include settings that excite the reader.",
		},
	})
}

// SaveWorldSetting stores a generated world document in the archive.
func (s *CreativeService) SaveWorldSetting(name, content string) models.WorldSetting {
	return s.Store.AddWorldSetting(name, content)
}

// MapGuideRequest is the map-design support form.
type MapGuideRequest struct {
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Description string `json:"description"`
}

// GenerateMapGuide reuses the world template to turn a prose map
// description into concrete geographic suggestions.
func (s *CreativeService) GenerateMapGuide(ctx context.Context, req MapGuideRequest) (string, error) {
	return s.LLM.Generate(ctx, GenerateRequest{
		TemplateKey: TemplateWorld,
		Provider:    req.Provider,
		Model:       req.Model,
		Fields: map[string]string{
			"world_base": "Map idea: " + req.Description,
			"additional_requests": "From this description, suggest detailed " +
				"geographic features, concrete city and village locations, roads " +
				"and interesting places such as dungeons, as a bulleted list.",
		},
	})
}
