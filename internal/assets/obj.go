package assets

import (
	"bufio"
	"bytes"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/engine/model"
	"github.com/Faultbox/gridview/internal/engine/texture"
)

// objVertexKey identifies a unique position/uv/normal combination.
type objVertexKey struct {
	v, uv, n int
}

// loadOBJ decodes a Wavefront OBJ file and its material library.
// Polygons are fan-triangulated and vertices shared per unique
// position/uv/normal triple. Texture V is flipped to a top-left origin.
func (l *FileLoader) loadOBJ(name string) (*model.Data, error) {
	raw, err := l.files.Load(name)
	if err != nil {
		return nil, err
	}

	mtlPath := ""
	if lib := objMaterialLib(raw); lib != "" {
		ref := resolve(name, lib)
		if !l.files.Exists(ref) {
			return nil, fmt.Errorf("%w: material library %s", ErrUnresolvedMaterial, ref)
		}
		mtlPath = l.files.Path(ref)
	}

	dec, err := obj.Decode(l.files.Path(name), mtlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeometry, err)
	}
	for _, w := range dec.Warnings {
		l.log.Debug("obj warning", zap.String("name", name), zap.String("warning", w))
	}

	data := &model.Data{Name: name}

	// Materials are indexed in name order so ids are stable across runs.
	matNames := make([]string, 0, len(dec.Materials))
	for n := range dec.Materials {
		matNames = append(matNames, n)
	}
	sort.Strings(matNames)

	matIndex := make(map[string]int, len(matNames))
	for i, n := range matNames {
		md, err := l.objMaterial(name, n, dec.Materials[n])
		if err != nil {
			return nil, err
		}
		matIndex[n] = i
		data.Materials = append(data.Materials, md)
	}
	if len(data.Materials) == 0 {
		data.Materials = append(data.Materials, defaultMaterial())
	}

	for _, o := range dec.Objects {
		meshes, err := objMeshes(dec, &o, matIndex)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", o.Name, err)
		}
		data.Meshes = append(data.Meshes, meshes...)
	}
	if len(data.Meshes) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrMalformedGeometry)
	}
	return data, nil
}

// objMeshes builds one mesh per material used by an object.
func objMeshes(dec *obj.Decoder, o *obj.Object, matIndex map[string]int) ([]model.MeshData, error) {
	type builder struct {
		mesh  model.MeshData
		index map[objVertexKey]uint32
	}
	var order []string
	builders := make(map[string]*builder)

	for fi := range o.Faces {
		f := &o.Faces[fi]
		if len(f.Vertices) < 3 {
			return nil, fmt.Errorf("%w: face %d has %d vertices", ErrMalformedGeometry, fi, len(f.Vertices))
		}

		mat := 0
		if f.Material != "" {
			idx, ok := matIndex[f.Material]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnresolvedMaterial, f.Material)
			}
			mat = idx
		}

		b, ok := builders[f.Material]
		if !ok {
			meshName := o.Name
			if f.Material != "" {
				meshName += "/" + f.Material
			}
			b = &builder{
				mesh:  model.MeshData{Name: meshName, Material: mat},
				index: make(map[objVertexKey]uint32),
			}
			builders[f.Material] = b
			order = append(order, f.Material)
		}

		corner := func(i int) (uint32, error) {
			key := objVertexKey{v: f.Vertices[i], uv: -1, n: -1}
			if i < len(f.Uvs) {
				key.uv = f.Uvs[i]
			}
			if i < len(f.Normals) {
				key.n = f.Normals[i]
			}
			if idx, ok := b.index[key]; ok {
				return idx, nil
			}
			v, err := objVertex(dec, key)
			if err != nil {
				return 0, err
			}
			idx := uint32(len(b.mesh.Vertices))
			b.mesh.Vertices = append(b.mesh.Vertices, v)
			b.index[key] = idx
			return idx, nil
		}

		for i := 1; i+1 < len(f.Vertices); i++ {
			for _, c := range [3]int{0, i, i + 1} {
				idx, err := corner(c)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", fi, err)
				}
				b.mesh.Indices = append(b.mesh.Indices, idx)
			}
		}
	}

	meshes := make([]model.MeshData, 0, len(order))
	for _, m := range order {
		meshes = append(meshes, builders[m].mesh)
	}
	return meshes, nil
}

// objVertex reads one vertex. Missing uv or normal references read as zero.
func objVertex(dec *obj.Decoder, key objVertexKey) (model.Vertex, error) {
	var v model.Vertex

	if key.v < 0 || 3*key.v+2 >= len(dec.Vertices) {
		return v, fmt.Errorf("%w: position %d out of range", ErrMalformedGeometry, key.v)
	}
	copy(v.Position[:], dec.Vertices[3*key.v:3*key.v+3])

	if key.uv >= 0 {
		if 2*key.uv+1 >= len(dec.Uvs) {
			return v, fmt.Errorf("%w: uv %d out of range", ErrMalformedGeometry, key.uv)
		}
		v.TexCoord = [2]float32{dec.Uvs[2*key.uv], 1 - dec.Uvs[2*key.uv+1]}
	}

	if key.n >= 0 {
		if 3*key.n+2 >= len(dec.Normals) {
			return v, fmt.Errorf("%w: normal %d out of range", ErrMalformedGeometry, key.n)
		}
		copy(v.Normal[:], dec.Normals[3*key.n:3*key.n+3])
	}
	return v, nil
}

func (l *FileLoader) objMaterial(modelName, name string, m *obj.Material) (model.MaterialData, error) {
	if m.MapKd == "" {
		return model.MaterialData{
			Name: name,
			Diffuse: texture.Solid(color.RGBA{
				R: unitToByte(m.Diffuse.R),
				G: unitToByte(m.Diffuse.G),
				B: unitToByte(m.Diffuse.B),
				A: 255,
			}),
		}, nil
	}

	ref := resolve(modelName, m.MapKd)
	raw, err := l.files.Load(ref)
	if err != nil {
		return model.MaterialData{}, fmt.Errorf("%w: material %s: %v", ErrUnresolvedMaterial, name, err)
	}
	img, err := texture.Decode(ref, raw)
	if err != nil {
		return model.MaterialData{}, fmt.Errorf("%w: material %s: %v", ErrUnresolvedMaterial, name, err)
	}
	return model.MaterialData{Name: name, Diffuse: img}, nil
}

// objMaterialLib returns the first mtllib reference in an OBJ file.
func objMaterialLib(raw []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if lib, ok := strings.CutPrefix(line, "mtllib"); ok && lib != "" && (lib[0] == ' ' || lib[0] == '\t') {
			return strings.TrimSpace(lib)
		}
	}
	return ""
}

func defaultMaterial() model.MaterialData {
	return model.MaterialData{
		Name:    "default",
		Diffuse: texture.Solid(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
	}
}

func unitToByte(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	default:
		return uint8(f*255 + 0.5)
	}
}
