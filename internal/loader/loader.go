// Package loader turns GLB files on disk into a reconciled mesh pool
// ready for the morph scheduler.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/morphview/internal/logger"
	"github.com/Faultbox/morphview/pkg/geometry"
	"github.com/Faultbox/morphview/pkg/glb"
)

// ErrNoAssets is returned when the asset list is empty.
var ErrNoAssets = errors.New("loader: no asset paths given")

// Asset is one fully prepared model: named, normalized, de-indexed and
// padded to the pool-wide vertex count.
type Asset struct {
	Name     string
	Mesh     geometry.CanonicalMesh
	Fallback bool // geometry was substituted because the file failed to load
}

// LoadAll loads every path, substituting the procedural sphere for any
// file that cannot be parsed, then reconciles the whole pool to a shared
// vertex count. The returned assets are in path order and every
// Mesh.Positions has the same length.
func LoadAll(paths []string, targetSize float32) ([]Asset, error) {
	if len(paths) == 0 {
		return nil, ErrNoAssets
	}

	assets := make([]Asset, len(paths))
	pool := make([][]float32, len(paths))
	for i, path := range paths {
		positions, err := loadPositions(path, targetSize)
		if err != nil {
			logger.Warn("model failed to load, using fallback sphere",
				zap.String("path", path), zap.Error(err))
			positions = fallbackSphere(targetSize)
			assets[i].Fallback = true
		}
		assets[i].Name = assetName(path)
		pool[i] = positions
	}

	reconciled, err := geometry.Reconcile(pool)
	if err != nil {
		return nil, fmt.Errorf("reconciling mesh pool: %w", err)
	}
	for i := range assets {
		assets[i].Mesh = reconciled[i]
		logger.Info("model ready",
			zap.String("name", assets[i].Name),
			zap.Int("vertices", reconciled[i].OriginalVertexCount),
			zap.Int("padded", reconciled[i].VertexCount),
			zap.Bool("fallback", assets[i].Fallback))
	}
	return assets, nil
}

// Meshes returns just the canonical meshes of a loaded asset list, in
// the same order, for handing to the morph scheduler.
func Meshes(assets []Asset) []geometry.CanonicalMesh {
	out := make([]geometry.CanonicalMesh, len(assets))
	for i := range assets {
		out[i] = assets[i].Mesh
	}
	return out
}

// loadPositions parses one GLB file and returns its normalized flat
// triangle-list positions. All primitives of all meshes in the file are
// concatenated into a single vertex set.
func loadPositions(path string, targetSize float32) ([]float32, error) {
	container, err := glb.ParseContainerFile(path)
	if err != nil {
		return nil, err
	}

	prims, err := glb.ExtractMeshes(container)
	if err != nil {
		return nil, err
	}
	if len(prims) == 0 {
		return nil, geometry.ErrEmptyMesh
	}

	var positions []float32
	for i := range prims {
		positions = append(positions, prims[i].Deindexed()...)
	}

	if err := geometry.Normalize(positions, targetSize); err != nil {
		return nil, err
	}
	return positions, nil
}

// fallbackSphere returns the procedural sphere scaled to targetSize.
func fallbackSphere(targetSize float32) []float32 {
	positions := geometry.FallbackSphere()
	// The unit sphere has a non-zero extent, Normalize cannot fail here.
	_ = geometry.Normalize(positions, targetSize)
	return positions
}

// assetName derives a display name from the file path.
func assetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
