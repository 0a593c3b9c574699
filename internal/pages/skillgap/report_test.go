package skillgap

import (
	"reflect"
	"testing"
)

func TestParseReport(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *Report
		wantErr bool
	}{
		{
			name: "plain JSON envelope",
			raw: `{
				"Required Skills": ["Go", "SQL"],
				"Current Skills": ["Go"],
				"Missing Skills": ["SQL"],
				"Suggested Resources": [
					{"skill": "SQL", "resources": [{"name": "SQLBolt", "link": "https://sqlbolt.com"}]}
				]
			}`,
			want: &Report{
				RequiredSkills: []string{"Go", "SQL"},
				CurrentSkills:  []string{"Go"},
				MissingSkills:  []string{"SQL"},
				SuggestedResources: []ResourceGroup{
					{Skill: "SQL", Resources: []ResourceLink{{Name: "SQLBolt", Link: "https://sqlbolt.com"}}},
				},
			},
		},
		{
			name: "fenced JSON is cleaned first",
			raw:  "```json\n{\"Required Skills\": [\"Go\"], \"Current Skills\": [], \"Missing Skills\": [\"Go\"], \"Suggested Resources\": []}\n```",
			want: &Report{
				RequiredSkills: []string{"Go"},
				CurrentSkills:  []string{},
				MissingSkills:  []string{"Go"},
				SuggestedResources: []ResourceGroup{},
			},
		},
		{
			name:    "not JSON at all",
			raw:     "Sorry, I cannot analyze that.",
			wantErr: true,
		},
		{
			name:    "valid JSON without the expected lists",
			raw:     `{"analysis": "looks fine"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReport(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseReport() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseReport() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
