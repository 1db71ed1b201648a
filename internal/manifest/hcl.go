package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// hclProject mirrors ProjectManifest for gohcl decoding, which cannot
// flatten embedded structs.
//
//	group   = "com.acme"
//	name    = "app"
//	version = "1.0.0"
//
//	configuration "implementation" {
//	  extends_from = ["api"]
//	  dependencies = ["org.slf4j:slf4j-api:^1.7"]
//	  strategy {
//	    conflict = "fail"
//	  }
//	}
type hclProject struct {
	Group          string             `hcl:"group"`
	Name           string             `hcl:"name"`
	Version        string             `hcl:"version"`
	Status         string             `hcl:"status,optional"`
	Description    string             `hcl:"description,optional"`
	Configurations []hclConfiguration `hcl:"configuration,block"`
}

type hclConfiguration struct {
	Name         string       `hcl:"name,label"`
	Description  string       `hcl:"description,optional"`
	ExtendsFrom  []string     `hcl:"extends_from,optional"`
	Transitive   *bool        `hcl:"transitive,optional"`
	Visible      *bool        `hcl:"visible,optional"`
	Dependencies []string     `hcl:"dependencies,optional"`
	Strategy     *hclStrategy `hcl:"strategy,block"`
}

type hclStrategy struct {
	Conflict string   `hcl:"conflict,optional"`
	Force    []string `hcl:"force,optional"`
}

func parseHCLProject(path string) (*ProjectManifest, error) {
	var raw hclProject
	if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	m := &ProjectManifest{
		BaseManifest: BaseManifest{
			Type:        TypeProject,
			Group:       raw.Group,
			Name:        raw.Name,
			Version:     raw.Version,
			Status:      raw.Status,
			Description: raw.Description,
		},
	}
	for _, c := range raw.Configurations {
		block := ConfigurationBlock{
			Name:         c.Name,
			Description:  c.Description,
			ExtendsFrom:  c.ExtendsFrom,
			Transitive:   c.Transitive,
			Visible:      c.Visible,
			Dependencies: c.Dependencies,
		}
		if c.Strategy != nil {
			block.Strategy = &StrategyBlock{Conflict: c.Strategy.Conflict, Force: c.Strategy.Force}
		}
		m.Configurations = append(m.Configurations, block)
	}
	return m, nil
}
