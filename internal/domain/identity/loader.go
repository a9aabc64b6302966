package identity

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrEmptyDictionary is returned when a dictionary file declares no teams.
var ErrEmptyDictionary = errors.New("dictionary has no teams")

// LoadDictionary reads alias tables from a YAML file of the form
//
//	teams:
//	  - alias: LAL
//	    nickname: Lakers
//	    full_name: Los Angeles Lakers
func LoadDictionary(path string) (*Dictionary, error) {
	const op = "identity.LoadDictionary"
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%s: load %s: %w", op, path, err)
	}
	var teams []Team
	if err := k.Unmarshal("teams", &teams); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyDictionary)
	}
	return NewDictionary(teams), nil
}
