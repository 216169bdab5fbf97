package plan

import (
	"gopkg.in/yaml.v3"
)

// Document is the YAML rendition of a Plan.
type Document struct {
	Mode        string             `yaml:"mode"`
	Source      string             `yaml:"source"`
	Target      string             `yaml:"target"`
	Guard       []string           `yaml:"guard"`
	Instantiate bool               `yaml:"instantiate,omitempty"`
	Fragments   []FragmentDocument `yaml:"fragments"`
	Return      bool               `yaml:"return,omitempty"`
	Diagnostics []string           `yaml:"diagnostics,omitempty"`
}

// FragmentDocument is the YAML rendition of a Fragment.
type FragmentDocument struct {
	Source     string `yaml:"source"`
	Target     string `yaml:"target"`
	SourceType string `yaml:"source_type"`
	TargetType string `yaml:"target_type"`
	Case       string `yaml:"case"`
	Strategy   string `yaml:"strategy"`
	Rule       string `yaml:"rule,omitempty"`
}

// ExportDocument converts a plan to its YAML document form.
func ExportDocument(p *Plan) Document {
	doc := Document{
		Mode:        p.Mode.String(),
		Source:      p.Source.String(),
		Target:      p.Target.String(),
		Guard:       []string{},
		Instantiate: p.Instantiate,
		Fragments:   make([]FragmentDocument, 0, len(p.Fragments)),
		Return:      p.Return,
	}

	if p.Guard.Source {
		doc.Guard = append(doc.Guard, "source")
	}

	if p.Guard.Target {
		doc.Guard = append(doc.Guard, "target")
	}

	for _, f := range p.Fragments {
		fd := FragmentDocument{
			Source:     f.Source.Path(),
			Target:     f.Target.Path(),
			SourceType: f.Source.Type.String(),
			TargetType: f.Target.Type.String(),
			Case:       f.Case.String(),
			Strategy:   f.Strategy.String(),
		}

		if f.Strategy == StrategyRule {
			fd.Rule = f.Rule.Name()
		}

		doc.Fragments = append(doc.Fragments, fd)
	}

	for _, d := range p.Diagnostics.All() {
		doc.Diagnostics = append(doc.Diagnostics, d.Severity.String()+": "+d.String())
	}

	return doc
}

// Export renders the plan as YAML.
func Export(p *Plan) ([]byte, error) {
	return yaml.Marshal(ExportDocument(p))
}
