package projection

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"

	"github.com/driftloom/photofs/pkg/errors"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// parseConfigErrTemplate is a template for when the CLI fails to parse a
// configuration file. The yaml library constructs errors in a way that loses
// context, so we can only pass the error message on.
const parseConfigErrTemplate = "Configuration file could not be parsed. " +
	"Please review %q.\n" +
	"Common pitfalls include:\n" +
	" - Using the wrong types for fields\n" +
	" - Having extra fields inside the config file\n\n" +
	"For reference, here is the error from the parser:\n" +
	"%s"

// LoadFile reads a projection configuration from a YAML or JSON file. The
// wire format the engine hands to Root is always JSON; this loader exists so
// people can keep their configuration in a file and feed it to the CLI.
func LoadFile(path string) (Configuration, error) {
	configBytes, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Configuration{}, errors.FileNotFound{Path: path}
		}
		return Configuration{}, errors.WithContext(err, "read file")
	}

	var config Configuration
	if err := yaml.Unmarshal(configBytes, &config); err != nil {
		return Configuration{}, errors.NewFriendlyError(parseConfigErrTemplate, path, err)
	}
	return config, nil
}
