package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"translatord/internal/hub"
	"translatord/internal/manager"
	"translatord/internal/seq2seq"
	"translatord/pkg/types"
)

// startSidecar runs an in-process stand-in for the inference sidecar. It
// tokenizes text to rune ids, "generates" by echoing the input sequence and
// detokenizes back, so a translation round-trip returns the original text.
func startSidecar(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("/models/load", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"ref": "model-1"})
	})
	mux.HandleFunc("/tokenizers/load", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"ref": "tokenizer-1"})
	})
	mux.HandleFunc("/models/unload", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{})
	})
	mux.HandleFunc("/tokenize", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ids := make([]int32, 0, len(req.Text))
		mask := make([]int32, 0, len(req.Text))
		for _, r := range req.Text {
			ids = append(ids, int32(r))
			mask = append(mask, 1)
		}
		writeJSON(w, map[string]any{"input_ids": ids, "attention_mask": mask})
	})
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			InputIDs []int32 `json:"input_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{"sequences": [][]int32{req.InputIDs}})
	})
	mux.HandleFunc("/detokenize", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDs []int32 `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		runes := make([]rune, 0, len(req.IDs))
		for _, id := range req.IDs {
			runes = append(runes, rune(id))
		}
		writeJSON(w, map[string]string{"text": string(runes)})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// writeConverterScript installs a shell script that fabricates a complete
// ONNX bundle, standing in for the real exporter.
func writeConverterScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.sh")
	script := `#!/bin/sh
dest="$2"
mkdir -p "$dest"
for f in encoder_model.onnx decoder_model.onnx decoder_with_past_model.onnx; do
  printf 'weights' > "$dest/$f"
done
printf '{"model_type":"marian","d_model":512}' > "$dest/config.json"
printf '{}' > "$dest/tokenizer_config.json"
`
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write converter script: %v", err)
	}
	return path
}

// newStack assembles a real manager over the fake sidecar and converter.
func newStack(t *testing.T, pairs []string) *manager.Manager {
	t.Helper()
	sidecar := startSidecar(t)

	mappings := make(map[string]string, len(pairs))
	for _, p := range pairs {
		mappings[p] = "Helsinki-NLP/opus-mt-" + p
	}
	log := zerolog.Nop()
	mgr, err := manager.NewWithConfig(manager.ManagerConfig{
		Pairs:       pairs,
		Mappings:    mappings,
		StorageMode: types.StorageLocal,
		BaseDir:     t.TempDir(),
		Converter:   hub.NewExecConverter(writeConverterScript(t), log),
		Runtime:     seq2seq.NewServerRuntime(sidecar.URL, 0, 0),
		Logger:      log,
	})
	if err != nil {
		t.Fatalf("build manager: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}
