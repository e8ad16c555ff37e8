package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"translatord/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Resolve(pair string) (string, error)
	Predict(ctx context.Context, pair, text string, params types.GenerationParams, policy types.MissingModelPolicy) (string, error)
	DescribeAvailableModels(includeConfig bool) map[string]types.ModelDescription
	Status() types.StatusResponse
	Ready() bool
}

// Version is stamped at build time and reported by GET /.
var Version = "dev"

// missingModelPolicy governs on-demand fetching when a predict request
// names a pair whose bundle is not on disk yet.
var missingModelPolicy = types.PolicyLenient

// SetMissingModelPolicy configures predict behavior for absent bundles.
func SetMissingModelPolicy(p types.MissingModelPolicy) { missingModelPolicy = p }

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		includeConfig := parseQueryBool(r.URL.Query().Get("config"))
		writeJSON(w, types.ModelsResponse{Models: svc.DescribeAvailableModels(includeConfig)})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Status())
	})

	r.Post("/predict/{pair}", func(w http.ResponseWriter, r *http.Request) {
		handlePredict(svc, w, r)
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleRoot returns service identity.
//
// @Summary  Service info
// @Produce  json
// @Success  200 {object} types.RootResponse
// @Router   / [get]
func handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.RootResponse{
		Name:        "translatord",
		Version:     Version,
		Description: "API for text translation using pre-trained seq2seq models.",
	})
}

// handleHealth is the liveness probe.
//
// @Summary  Health check
// @Produce  json
// @Success  200 {object} types.HealthResponse
// @Router   /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.HealthResponse{Status: "ok"})
}

// handlePredict translates a batch of texts for one pair. Item failures are
// isolated: a bad text fails its own slot while the rest of the batch still
// translates. The request as a whole fails only when the pair is invalid,
// the payload is malformed, or every item fails.
//
// @Summary  Translate texts
// @Accept   json
// @Produce  json
// @Param    pair path string true "Translation pair, e.g. en-es"
// @Param    request body types.PredictRequest true "Texts to translate"
// @Success  200 {object} types.PredictResponse
// @Failure  400 {object} types.ErrorResponse
// @Failure  422 {object} types.ErrorResponse
// @Router   /predict/{pair} [post]
func handlePredict(svc Service, w http.ResponseWriter, r *http.Request) {
	pair := chi.URLParam(r, "pair")
	start := time.Now()

	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Items) == 0 {
		writeJSONError(w, http.StatusBadRequest, "items must be a non-empty list")
		return
	}

	// Reject unknown pairs before doing any per-item work.
	if _, err := svc.Resolve(pair); err != nil {
		status := statusForError(err)
		writeJSONError(w, status, err.Error())
		observePredict(pair, status, len(req.Items), start)
		return
	}

	// Join server base context with request context so shutdown cancels
	// in-flight work too.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	if predictTimeout > 0 {
		var tcancel context.CancelFunc
		ctx, tcancel = context.WithTimeout(ctx, time.Duration(predictTimeout)*time.Second)
		defer tcancel()
	}

	results := make([]types.PredictResult, 0, len(req.Items))
	failed := 0
	var firstErr error
	for i, item := range req.Items {
		out, err := svc.Predict(ctx, pair, item.Text, item.Params(), missingModelPolicy)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				// Client disconnected or server shutting down.
				return
			}
			if firstErr == nil {
				firstErr = err
			}
			failed++
			results = append(results, types.PredictResult{Position: i, Error: err.Error()})
			continue
		}
		results = append(results, types.PredictResult{Position: i, Result: out})
	}

	status := http.StatusOK
	if failed == len(req.Items) {
		status = statusForError(firstErr)
		writeJSONError(w, status, firstErr.Error())
	} else {
		writeJSON(w, types.PredictResponse{Results: results})
	}
	observePredict(pair, status, len(req.Items), start)
	logPredictEnd(r, pair, status, len(req.Items), failed, start)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

func parseQueryBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
