// Package project persists a feature tree to and from the on-disk
// project format: a versioned JSON document carrying the feature list,
// the rollback bar, and a digest of the build environment. Cached
// OpResults never enter the document; loading always requires a full
// rebuild to repopulate them.
package project

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"runtime"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/feature"
)

const (
	formatTag = "waffle-iron"
	schemaV1  = 1
)

// featureListDTO mirrors the "features" object in the persisted format:
// the ordered feature list plus the rollback bar.
type featureListDTO struct {
	Features    []feature.Feature `json:"features"`
	ActiveIndex *int              `json:"active_index"`
}

// Document is the top-level shape of a saved project file.
type Document struct {
	Format            string         `json:"format"`
	Schema            int            `json:"schema"`
	Features          featureListDTO `json:"features"`
	EnvironmentDigest string         `json:"environment_digest"`
}

// EnvironmentDigest fingerprints the Go toolchain and target platform
// that produced the running binary. It plays no part in rebuild
// correctness; it's recorded so a project that behaves differently on a
// different machine can be traced back to a toolchain mismatch.
func EnvironmentDigest() string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%s:%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return fmt.Sprintf("%016x", h.Sum64())
}

// Snapshot captures a FeatureTree's persisted state.
func Snapshot(tree *feature.FeatureTree) Document {
	features := make([]feature.Feature, len(tree.Features))
	for i, f := range tree.Features {
		features[i] = *f
	}
	return Document{
		Format: formatTag,
		Schema: schemaV1,
		Features: featureListDTO{
			Features:    features,
			ActiveIndex: tree.ActiveIndex,
		},
		EnvironmentDigest: EnvironmentDigest(),
	}
}

// Marshal renders tree as the canonical JSON project format.
func Marshal(tree *feature.FeatureTree) ([]byte, error) {
	return json.MarshalIndent(Snapshot(tree), "", "  ")
}

// Unmarshal parses a saved project and installs its feature list into a
// fresh FeatureTree; the caller runs the rebuild that repopulates the
// cache. A format or schema mismatch is reported as a ProjectError and
// leaves no tree behind.
func Unmarshal(data []byte) (*feature.FeatureTree, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &diag.ProjectError{Kind: diag.ParseFailed, Message: err.Error()}
	}
	if doc.Format != formatTag {
		return nil, &diag.ProjectError{
			Kind:    diag.UnsupportedSchema,
			Message: fmt.Sprintf("unrecognized project format %q", doc.Format),
		}
	}
	if doc.Schema != schemaV1 {
		return nil, &diag.ProjectError{
			Kind:    diag.UnsupportedSchema,
			Message: fmt.Sprintf("unsupported schema version %d", doc.Schema),
		}
	}

	tree := feature.NewTree()
	tree.Features = make([]*feature.Feature, len(doc.Features.Features))
	for i := range doc.Features.Features {
		f := doc.Features.Features[i]
		tree.Features[i] = &f
	}
	tree.ActiveIndex = doc.Features.ActiveIndex
	return tree, nil
}
