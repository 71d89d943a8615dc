package yaml

import (
	"bytes"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Marshal renders value as yaml indented by two spaces, without the
// trailing newline.
func Marshal(value interface{}) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return bytes.TrimSpace(buf.Bytes()), nil
}

func LoadYaml(path string, out interface{}) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read expected to populate %T", out)
	}

	err = yaml.Unmarshal(b, out)
	if err != nil {
		return errors.Wrapf(err, "load into %T from %s", out, path)
	}

	return nil
}

// TryLoadYaml loads path into out if the file exists. It returns false,
// with no error, when there is no file.
func TryLoadYaml(path string, out interface{}) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := LoadYaml(path, out); err != nil {
		return false, err
	}
	return true, nil
}
