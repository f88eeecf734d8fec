package assets

import (
	"fmt"
	"image"
	"image/color"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/gridview/internal/engine/model"
	"github.com/Faultbox/gridview/internal/engine/texture"
)

// loadGLTF decodes a glTF or GLB file. Every triangle primitive becomes a
// mesh; each material contributes its base color texture, or a solid
// texture of its base color factor.
func (l *FileLoader) loadGLTF(name string) (*model.Data, error) {
	doc, err := gltf.Open(l.files.Path(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeometry, err)
	}

	data := &model.Data{Name: name}
	for i, m := range doc.Materials {
		md, err := l.gltfMaterial(doc, name, i, m)
		if err != nil {
			return nil, err
		}
		data.Materials = append(data.Materials, md)
	}
	if len(data.Materials) == 0 {
		data.Materials = append(data.Materials, defaultMaterial())
	}

	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			md, err := gltfPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			md.Name = fmt.Sprintf("%s#%d", mesh.Name, pi)
			if prim.Material != nil {
				md.Material = *prim.Material
				if md.Material < 0 || md.Material >= len(doc.Materials) {
					return nil, fmt.Errorf("%w: mesh %d uses material %d", ErrUnresolvedMaterial, mi, md.Material)
				}
			}
			data.Meshes = append(data.Meshes, md)
		}
	}
	if len(data.Meshes) == 0 {
		return nil, fmt.Errorf("%w: no meshes", ErrMalformedGeometry)
	}
	return data, nil
}

func gltfPrimitive(doc *gltf.Document, prim *gltf.Primitive) (model.MeshData, error) {
	var md model.MeshData

	if prim.Mode != gltf.PrimitiveTriangles {
		return md, fmt.Errorf("%w: unsupported primitive mode %v", ErrMalformedGeometry, prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok || posIdx >= len(doc.Accessors) {
		return md, fmt.Errorf("%w: no POSITION attribute", ErrMalformedGeometry)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return md, fmt.Errorf("%w: positions: %v", ErrMalformedGeometry, err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok && idx < len(doc.Accessors) {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return md, fmt.Errorf("%w: normals: %v", ErrMalformedGeometry, err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok && idx < len(doc.Accessors) {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return md, fmt.Errorf("%w: texture coordinates: %v", ErrMalformedGeometry, err)
		}
	}

	md.Vertices = make([]model.Vertex, len(positions))
	for i, p := range positions {
		v := model.Vertex{Position: p}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.TexCoord = uvs[i]
		}
		md.Vertices[i] = v
	}

	if prim.Indices != nil {
		if *prim.Indices >= len(doc.Accessors) {
			return md, fmt.Errorf("%w: index accessor %d", ErrMalformedGeometry, *prim.Indices)
		}
		if md.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return md, fmt.Errorf("%w: indices: %v", ErrMalformedGeometry, err)
		}
	} else {
		md.Indices = make([]uint32, len(positions))
		for i := range md.Indices {
			md.Indices[i] = uint32(i)
		}
	}

	if len(md.Indices)%3 != 0 {
		return md, fmt.Errorf("%w: %d indices is not a triangle list", ErrMalformedGeometry, len(md.Indices))
	}
	for _, idx := range md.Indices {
		if int(idx) >= len(md.Vertices) {
			return md, fmt.Errorf("%w: index %d out of range", ErrMalformedGeometry, idx)
		}
	}
	return md, nil
}

func (l *FileLoader) gltfMaterial(doc *gltf.Document, modelName string, i int, m *gltf.Material) (model.MaterialData, error) {
	md := model.MaterialData{Name: m.Name}
	if md.Name == "" {
		md.Name = fmt.Sprintf("material%d", i)
	}

	pbr := m.PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil {
		c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		if pbr != nil && pbr.BaseColorFactor != nil {
			f := pbr.BaseColorFactor
			c = color.RGBA{
				R: unitToByte(float32(f[0])),
				G: unitToByte(float32(f[1])),
				B: unitToByte(float32(f[2])),
				A: unitToByte(float32(f[3])),
			}
		}
		md.Diffuse = texture.Solid(c)
		return md, nil
	}

	ti := pbr.BaseColorTexture.Index
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil || *doc.Textures[ti].Source >= len(doc.Images) {
		return md, fmt.Errorf("%w: material %s references texture %d", ErrUnresolvedMaterial, md.Name, ti)
	}

	img, err := l.gltfImage(doc, modelName, doc.Images[*doc.Textures[ti].Source])
	if err != nil {
		return md, fmt.Errorf("%w: material %s: %v", ErrUnresolvedMaterial, md.Name, err)
	}
	md.Diffuse = img
	return md, nil
}

func (l *FileLoader) gltfImage(doc *gltf.Document, modelName string, img *gltf.Image) (*image.RGBA, error) {
	hint := img.Name + mimeExt(img.MimeType)

	switch {
	case img.BufferView != nil:
		if *img.BufferView >= len(doc.BufferViews) {
			return nil, fmt.Errorf("buffer view %d out of range", *img.BufferView)
		}
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, err
		}
		return texture.Decode(hint, raw)
	case img.IsEmbeddedResource():
		raw, err := img.MarshalData()
		if err != nil {
			return nil, err
		}
		return texture.Decode(hint, raw)
	case img.URI != "":
		ref := resolve(modelName, img.URI)
		raw, err := l.files.Load(ref)
		if err != nil {
			return nil, err
		}
		return texture.Decode(ref, raw)
	default:
		return nil, fmt.Errorf("image has no data")
	}
}

func mimeExt(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	default:
		return ""
	}
}
