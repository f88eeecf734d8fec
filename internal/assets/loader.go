package assets

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/engine/model"
	"github.com/Faultbox/gridview/internal/logger"
)

// Load failure kinds.
var (
	ErrMissingFile        = errors.New("missing file")
	ErrMalformedGeometry  = errors.New("malformed geometry")
	ErrUnresolvedMaterial = errors.New("unresolved material")
)

// Loader decodes a model by resource name.
type Loader interface {
	Load(ctx context.Context, name string) (*model.Data, error)
}

// FileLoader decodes OBJ and glTF models from a Manager.
type FileLoader struct {
	files *Manager
	log   *zap.Logger
}

// NewFileLoader creates a loader reading from files.
func NewFileLoader(files *Manager) *FileLoader {
	return &FileLoader{
		files: files,
		log:   logger.Named("assets"),
	}
}

// Load decodes the named model, choosing the format by extension.
func (l *FileLoader) Load(ctx context.Context, name string) (*model.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !l.files.Exists(name) {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, name)
	}

	start := time.Now()

	var (
		data *model.Data
		err  error
	)
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".obj":
		data, err = l.loadOBJ(name)
	case ".gltf", ".glb":
		data, err = l.loadGLTF(name)
	default:
		err = fmt.Errorf("%w: unsupported model format %q", ErrMalformedGeometry, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	l.log.Debug("model decoded",
		zap.String("name", name),
		zap.Int("meshes", len(data.Meshes)),
		zap.Int("materials", len(data.Materials)),
		zap.Duration("took", time.Since(start)),
	)
	return data, nil
}

// LoadAll decodes every named model on a pool of workers. Results are in
// the order of names; the first failure aborts the rest.
func LoadAll(ctx context.Context, loader Loader, names []string, workers int) ([]*model.Data, error) {
	if workers < 1 {
		workers = 1
	}

	pool := pond.NewResultPool[*model.Data](workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for _, name := range names {
		name := name
		group.SubmitErr(func() (*model.Data, error) {
			return loader.Load(ctx, name)
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}

// resolve joins a reference found inside a model file to the model's directory.
func resolve(modelName, ref string) string {
	ref = strings.ReplaceAll(ref, "\\", "/")
	return path.Join(path.Dir(modelName), ref)
}
