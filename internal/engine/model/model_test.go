package model

import (
	"encoding/binary"
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gridview/internal/engine/gpu"
	"github.com/Faultbox/gridview/internal/engine/gpu/gputest"
)

func testData(materials int) *Data {
	d := &Data{Name: "cube"}
	for i := 0; i < materials; i++ {
		d.Materials = append(d.Materials, MaterialData{
			Name:    string(rune('a' + i)),
			Diffuse: image.NewRGBA(image.Rect(0, 0, 1, 1)),
		})
	}
	d.Meshes = []MeshData{
		{
			Name: "top",
			Vertices: []Vertex{
				{Position: [3]float32{-1, 0, -1}},
				{Position: [3]float32{1, 0, -1}},
				{Position: [3]float32{0, 2, 1}},
			},
			Indices: []uint32{0, 1, 2},
		},
		{
			Name:     "bottom",
			Vertices: []Vertex{{}, {}, {}},
			Indices:  []uint32{0, 2, 1},
			Material: materials - 1,
		},
	}
	return d
}

func upload(t *testing.T, dev *gputest.Device, materials int) *Model {
	t.Helper()
	m, err := Upload(dev, testData(materials))
	require.NoError(t, err)
	return m
}

func float32At(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func TestInstanceMatrix(t *testing.T) {
	inst := Instance{
		Position: mgl32.Vec3{3, 0, -3},
		Rotation: ZRotation(90),
		Scale:    0.5,
	}

	p := inst.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, p.Vec3().ApproxEqualThreshold(mgl32.Vec3{3, 0.5, -3}, 1e-6), "got %v", p)
}

func TestInstanceBytes(t *testing.T) {
	insts := []Instance{
		{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent(), Scale: 1},
		{Position: mgl32.Vec3{4, 5, 6}, Rotation: mgl32.QuatIdent(), Scale: 2},
	}
	b := InstanceBytes(insts)
	require.Len(t, b, 2*InstanceSize)

	// Translation lives in the last column.
	assert.Equal(t, float32(1), float32At(b, 12))
	assert.Equal(t, float32(6), float32At(b, 16+14))
	assert.Equal(t, float32(2), float32At(b, 16+0), "scale on the diagonal")
}

func TestSetInstancesRebuildsMirror(t *testing.T) {
	dev := &gputest.Device{}
	m := upload(t, dev, 1)

	first := m.InstanceBuffer().(*gputest.Buffer)
	assert.Zero(t, first.Size())

	insts := []Instance{
		{Rotation: mgl32.QuatIdent(), Scale: 1},
		{Position: mgl32.Vec3{3, 0, 0}, Rotation: mgl32.QuatIdent(), Scale: 1},
	}
	m.SetInstances(insts)

	assert.True(t, first.Released, "old mirror is released")
	live := dev.Live(gpu.UsageInstance)
	require.Len(t, live, 1)
	assert.Equal(t, InstanceBytes(insts), live[0].Data)

	m.AddInstance(Instance{Position: mgl32.Vec3{0, 0, 3}, Rotation: mgl32.QuatIdent(), Scale: 1})
	live = dev.Live(gpu.UsageInstance)
	require.Len(t, live, 1)
	assert.Len(t, m.Instances(), 3)
	assert.Equal(t, InstanceBytes(m.Instances()), live[0].Data)
}

func TestChangeMaterialCycles(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		m := upload(t, &gputest.Device{}, n)
		start := m.Meshes[0].Material

		seen := map[int]bool{}
		for i := 0; i < n; i++ {
			m.ChangeMaterial()
			seen[m.Meshes[0].Material] = true
		}
		assert.Equal(t, start, m.Meshes[0].Material, "%d materials", n)
		assert.Len(t, seen, n)
	}
}

func TestChangeMaterialWithoutMeshes(t *testing.T) {
	m := New(&gputest.Device{}, "empty", nil, nil)
	assert.NotPanics(t, m.ChangeMaterial)
}

func TestDrawVisibleModel(t *testing.T) {
	dev := &gputest.Device{}
	m := upload(t, dev, 2)
	m.SetInstances(make([]Instance, 4))
	camera := &gputest.BindGroup{Label: "camera"}

	pass := &gputest.Pass{}
	Draw(pass, camera, m)

	draws := pass.Draws()
	require.Len(t, draws, 2, "one draw per mesh")
	for _, d := range draws {
		assert.Equal(t, 3, d.IndexCount)
		assert.Equal(t, 4, d.InstanceCount)
	}

	// Bottom mesh binds its own material and the shared camera.
	var binds []gputest.Call
	for _, c := range pass.Calls[6:] {
		if c.Op == gputest.OpBindGroup {
			binds = append(binds, c)
		}
	}
	require.Len(t, binds, 2)
	assert.Equal(t, m.Materials[1].BindGroup, binds[0].Group)
	assert.Equal(t, gpu.GroupCamera, binds[1].Slot)
	assert.Equal(t, gpu.BindGroup(camera), binds[1].Group)
}

func TestDrawSkipsInvisible(t *testing.T) {
	dev := &gputest.Device{}
	hidden := upload(t, dev, 1)
	hidden.Visible = false
	shown := upload(t, dev, 1)

	pass := &gputest.Pass{}
	Draw(pass, &gputest.BindGroup{}, hidden, shown)
	assert.Len(t, pass.Draws(), 2)

	shown.Visible = false
	pass = &gputest.Pass{}
	Draw(pass, &gputest.BindGroup{}, hidden, shown)
	assert.Empty(t, pass.Calls)
}

func TestUploadRejectsBadMaterialIndex(t *testing.T) {
	data := testData(1)
	data.Meshes[1].Material = 3

	dev := &gputest.Device{}
	_, err := Upload(dev, data)
	assert.Error(t, err)
	assert.Empty(t, dev.Buffers, "nothing allocated on failure")

	_, err = Upload(dev, &Data{Name: "bare"})
	assert.Error(t, err)
}

func TestUploadBuffers(t *testing.T) {
	dev := &gputest.Device{}
	m := upload(t, dev, 1)

	vb := m.Meshes[0].VertexBuffer.(*gputest.Buffer)
	assert.Equal(t, 3*VertexSize, vb.Size())
	assert.Equal(t, float32(-1), float32At(vb.Data, 0))
	assert.Equal(t, 12, m.Meshes[0].IndexBuffer.Size())

	m.Release()
	for _, b := range dev.Buffers {
		assert.True(t, b.Released, b.Label)
	}
	for _, g := range dev.Groups {
		assert.True(t, g.Released)
	}
}
