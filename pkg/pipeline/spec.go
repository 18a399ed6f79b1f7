package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/beeline/pkg/errors"
)

// DecodeSpec reads a TOML run file from r. Fields it omits keep the values of
// [DefaultSpec]; unknown keys are rejected.
func DecodeSpec(r io.Reader) (Spec, error) {
	spec := DefaultSpec()
	md, err := toml.NewDecoder(r).Decode(&spec)
	if err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode run file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Spec{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in run file: %s", strings.Join(keys, ", "))
	}
	return spec, nil
}

// LoadSpec reads the TOML run file at path.
func LoadSpec(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	spec, err := DecodeSpec(f)
	if err != nil {
		return Spec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}
