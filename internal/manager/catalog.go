package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"translatord/pkg/types"
)

// storageFormat is the on-disk format the converter produces.
const storageFormat = "ONNX"

// DescribeAvailableModels reports, for every supported pair whose bundle
// exists locally, the backing hub identifier and storage format. When
// includeConfig is set, the bundle's config.json is included if it parses;
// a corrupt config is logged and omitted without failing the listing.
func (m *Manager) DescribeAvailableModels(includeConfig bool) map[string]types.ModelDescription {
	models := make(map[string]types.ModelDescription)
	for _, pair := range m.pairs {
		modelID, ok := m.mappings[pair]
		if !ok || !m.bundleExists(pair) {
			continue
		}
		desc := types.ModelDescription{ModelName: modelID, FileType: storageFormat}
		if includeConfig {
			if raw, err := readModelConfig(m.bundleDir(pair)); err != nil {
				m.log.Error().Err(err).Str("pair", pair).
					Msg("failed to read model config, omitting from listing")
			} else if raw != nil {
				desc.Config = raw
			}
		}
		models[pair] = desc
	}
	return models
}

// readModelConfig loads and validates the bundle's structural config.
// A missing file is not an error; a present but unparsable one is.
func readModelConfig(dir string) (json.RawMessage, error) {
	path := filepath.Join(dir, "config.json")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("config %s: invalid json", path)
	}
	return json.RawMessage(b), nil
}
