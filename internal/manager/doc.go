// Package manager owns the translation model lifecycle: resolving a
// translation pair to a model hub identifier, materializing artifact
// bundles on local disk, caching loaded model/tokenizer handles in memory,
// and driving generation. It is structured into small files by concern:
//
//   - manager.go: core Manager type, ManagerConfig, constructor.
//   - errors.go: error taxonomy and Is* helpers for boundary mapping.
//   - resolve.go: translation-pair to model-identifier resolution.
//   - fetch.go: artifact fetcher (hub conversion / storage download).
//   - cache.go: in-memory model cache with single-load guarantees.
//   - startup.go: bounded eager loading at process start.
//   - predict.go: the inference driver.
//   - catalog.go: catalog introspection for the /models surface.
//   - publish.go: provisioning and object-storage publication.
//   - status.go: status reporting for /status.
//
// External packages should treat this package as the orchestration layer
// and use public methods only (NewWithConfig, LoadStartupModels, Predict,
// DescribeAvailableModels, SaveOrPublish, Status). Internal types are
// subject to change.
package manager
