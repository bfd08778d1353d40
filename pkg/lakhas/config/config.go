package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
)

// Stoplist adjusts the base English stopword list
type Stoplist struct {
	Add    []string `yaml:"add"`
	Remove []string `yaml:"remove"`
}

// LoadStoplist loads stopword adjustments from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: parse stoplist %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	return &sl, nil
}
