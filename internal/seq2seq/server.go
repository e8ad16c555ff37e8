package seq2seq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"translatord/pkg/types"
)

// serverRuntime implements Runtime by talking to an ONNX inference sidecar
// over HTTP. The sidecar owns the heavy ML dependencies; this client only
// moves token ids and text across the wire.
type serverRuntime struct {
	baseURL    string
	httpClient *http.Client
	reqTimeout time.Duration
}

// NewServerRuntime constructs a sidecar-backed runtime.
func NewServerRuntime(baseURL string, reqTimeout, connectTimeout time.Duration) Runtime {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	// Timeout stays 0 on the client; per-request deadlines come from
	// contexts so long generations are bounded by reqTimeout alone.
	return &serverRuntime{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Transport: tr, Timeout: 0},
		reqTimeout: reqTimeout,
	}
}

func (rt *serverRuntime) postJSON(ctx context.Context, path string, in, out any) error {
	if rt.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.reqTimeout)
		defer cancel()
	}
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rt.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := rt.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("runtime %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("runtime %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type loadRequest struct {
	Path string `json:"path"`
}

type loadResponse struct {
	Ref string `json:"ref"`
}

func (rt *serverRuntime) LoadModel(ctx context.Context, absDir string) (Model, error) {
	var resp loadResponse
	if err := rt.postJSON(ctx, "/models/load", loadRequest{Path: absDir}, &resp); err != nil {
		return nil, err
	}
	return &serverModel{rt: rt, ref: resp.Ref}, nil
}

func (rt *serverRuntime) LoadTokenizer(ctx context.Context, absDir string) (Tokenizer, error) {
	var resp loadResponse
	if err := rt.postJSON(ctx, "/tokenizers/load", loadRequest{Path: absDir}, &resp); err != nil {
		return nil, err
	}
	return &serverTokenizer{rt: rt, ref: resp.Ref}, nil
}

type serverModel struct {
	rt  *serverRuntime
	ref string
}

type generateRequest struct {
	Model         string  `json:"model"`
	InputIDs      []int32 `json:"input_ids"`
	AttentionMask []int32 `json:"attention_mask,omitempty"`
	MaxLength     int     `json:"max_length"`
	NumBeams      int     `json:"num_beams"`
	EarlyStopping bool    `json:"early_stopping"`
}

type generateResponse struct {
	Sequences [][]int32 `json:"sequences"`
}

func (m *serverModel) Generate(ctx context.Context, enc Encoding, params types.GenerationParams) ([][]int32, error) {
	req := generateRequest{
		Model:         m.ref,
		InputIDs:      enc.InputIDs,
		AttentionMask: enc.AttentionMask,
		MaxLength:     params.MaxLength,
		NumBeams:      params.NumBeams,
		EarlyStopping: params.EarlyStopping,
	}
	var resp generateResponse
	if err := m.rt.postJSON(ctx, "/generate", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Sequences) == 0 {
		return nil, fmt.Errorf("runtime /generate: empty output")
	}
	return resp.Sequences, nil
}

func (m *serverModel) Close() error {
	return m.rt.postJSON(context.Background(), "/models/unload", loadRequest{Path: m.ref}, nil)
}

type serverTokenizer struct {
	rt  *serverRuntime
	ref string
}

type tokenizeRequest struct {
	Tokenizer  string `json:"tokenizer"`
	Text       string `json:"text"`
	Truncation bool   `json:"truncation"`
	Padding    bool   `json:"padding"`
}

type detokenizeRequest struct {
	Tokenizer         string  `json:"tokenizer"`
	IDs               []int32 `json:"ids"`
	SkipSpecialTokens bool    `json:"skip_special_tokens"`
}

type detokenizeResponse struct {
	Text string `json:"text"`
}

func (tk *serverTokenizer) Encode(ctx context.Context, text string) (Encoding, error) {
	req := tokenizeRequest{Tokenizer: tk.ref, Text: text, Truncation: true, Padding: true}
	var enc Encoding
	if err := tk.rt.postJSON(ctx, "/tokenize", req, &enc); err != nil {
		return Encoding{}, err
	}
	return enc, nil
}

func (tk *serverTokenizer) Decode(ctx context.Context, ids []int32, skipSpecialTokens bool) (string, error) {
	req := detokenizeRequest{Tokenizer: tk.ref, IDs: ids, SkipSpecialTokens: skipSpecialTokens}
	var resp detokenizeResponse
	if err := tk.rt.postJSON(ctx, "/detokenize", req, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}
