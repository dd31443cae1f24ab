package models

import (
	"encoding/json"
)

// UnmarshalJSON decodes a project, accepting "tech" and "tags" as older
// spellings of "technologies".
func (p *Project) UnmarshalJSON(data []byte) error {
	type projectAlias Project
	aux := struct {
		*projectAlias
		Tech []string `json:"tech"`
		Tags []string `json:"tags"`
	}{projectAlias: (*projectAlias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(p.Technologies) == 0 {
		switch {
		case len(aux.Tech) > 0:
			p.Technologies = aux.Tech
		case len(aux.Tags) > 0:
			p.Technologies = aux.Tags
		}
	}
	return nil
}

// HasLinks reports whether the project card should render a links row.
func (p *Project) HasLinks() bool {
	return p.GitHubURL != "" || p.LiveURL != ""
}
