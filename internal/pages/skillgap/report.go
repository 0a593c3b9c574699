package skillgap

import (
	"encoding/json"
	"fmt"

	"github.com/careercraft/careercraft/internal/llm"

	"github.com/go-viper/mapstructure/v2"
)

// Report is the typed skill-gap analysis. The mapstructure tags match the
// envelope keys the model is instructed to emit.
type Report struct {
	RequiredSkills     []string        `json:"required_skills" mapstructure:"Required Skills"`
	CurrentSkills      []string        `json:"current_skills" mapstructure:"Current Skills"`
	MissingSkills      []string        `json:"missing_skills" mapstructure:"Missing Skills"`
	SuggestedResources []ResourceGroup `json:"suggested_resources" mapstructure:"Suggested Resources"`
}

// ResourceGroup lists learning resources for one missing skill.
type ResourceGroup struct {
	Skill     string         `json:"skill" mapstructure:"skill"`
	Resources []ResourceLink `json:"resources" mapstructure:"resources"`
}

type ResourceLink struct {
	Name string `json:"name" mapstructure:"name"`
	Link string `json:"link" mapstructure:"link"`
}

// ParseReport decodes the model's JSON envelope into a Report. The JSON is
// first unmarshaled loosely, then mapped with weak typing so minor drift
// (numbers as strings, single values for lists) does not fail the page.
func ParseReport(raw string) (*Report, error) {
	cleaned := llm.CleanJSON(raw)

	var loose map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &loose); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	report := &Report{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           report,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build report decoder: %w", err)
	}
	if err := decoder.Decode(loose); err != nil {
		return nil, fmt.Errorf("response JSON does not match the report shape: %w", err)
	}

	if len(report.RequiredSkills) == 0 && len(report.MissingSkills) == 0 {
		return nil, fmt.Errorf("report is missing the expected skill lists")
	}
	return report, nil
}
