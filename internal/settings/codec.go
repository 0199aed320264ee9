package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported settings format")

type codec interface {
	Name() string
	Marshal(values map[string]any) ([]byte, error)
	Unmarshal(data []byte, values *map[string]any) error
}

type tomlCodec struct{}

func (tomlCodec) Name() string                            { return "toml" }
func (tomlCodec) Marshal(v map[string]any) ([]byte, error) { return toml.Marshal(v) }
func (tomlCodec) Unmarshal(data []byte, v *map[string]any) error {
	return toml.Unmarshal(data, v)
}

type yamlCodec struct{}

func (yamlCodec) Name() string                            { return "yaml" }
func (yamlCodec) Marshal(v map[string]any) ([]byte, error) { return yaml.Marshal(v) }
func (yamlCodec) Unmarshal(data []byte, v *map[string]any) error {
	return yaml.Unmarshal(data, v)
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }
func (jsonCodec) Marshal(v map[string]any) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(v, "", "  ")
}
func (jsonCodec) Unmarshal(data []byte, v *map[string]any) error {
	return sonic.ConfigStd.Unmarshal(data, v)
}

// codecFor picks a codec from the file extension
func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlCodec{}, nil
	case ".yaml", ".yml":
		return yamlCodec{}, nil
	case ".json":
		return jsonCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
