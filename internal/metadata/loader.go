package metadata

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// catalogueFile is the YAML form of a catalogue:
//
//	relations:
//	  - name: A
//	    tuples: 100
//	    attributes:
//	      - name: a1
//	        distinct: 100
type catalogueFile struct {
	Relations []relationEntry `yaml:"relations"`
}

type relationEntry struct {
	Name       string           `yaml:"name"`
	Tuples     int              `yaml:"tuples"`
	Attributes []attributeEntry `yaml:"attributes"`
}

type attributeEntry struct {
	Name     string `yaml:"name"`
	Distinct int    `yaml:"distinct"`
}

// Load reads a YAML catalogue.
func Load(r io.Reader) (*Catalogue, error) {
	var file catalogueFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode catalogue")
	}

	cat := NewCatalogue()
	for _, rel := range file.Relations {
		if err := cat.CreateRelation(rel.Name, rel.Tuples); err != nil {
			return nil, err
		}
		for _, attr := range rel.Attributes {
			if err := cat.CreateAttribute(rel.Name, attr.Name, attr.Distinct); err != nil {
				return nil, err
			}
		}
	}
	return cat, nil
}

// LoadFile reads a YAML catalogue from path.
func LoadFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open catalogue %s", path)
	}
	defer f.Close()

	cat, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load catalogue %s", path)
	}
	return cat, nil
}
