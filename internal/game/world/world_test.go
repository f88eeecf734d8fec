package world

import (
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gridview/internal/engine/gpu/gputest"
	"github.com/Faultbox/gridview/internal/engine/input"
	"github.com/Faultbox/gridview/internal/engine/mode"
	"github.com/Faultbox/gridview/internal/engine/model"
)

type rig struct {
	world *World
	disp  *input.Dispatcher
	modes *mode.Tracker
}

func newModel(t *testing.T, dev *gputest.Device, name string, materials int) *model.Model {
	t.Helper()
	data := &model.Data{
		Name:   name,
		Meshes: []model.MeshData{{Name: name, Vertices: make([]model.Vertex, 3), Indices: []uint32{0, 1, 2}}},
	}
	for i := 0; i < materials; i++ {
		data.Materials = append(data.Materials, model.MaterialData{Diffuse: image.NewRGBA(image.Rect(0, 0, 1, 1))})
	}
	m, err := model.Upload(dev, data)
	require.NoError(t, err)
	return m
}

func newRig(t *testing.T, start mode.Mode, gridSize int) *rig {
	t.Helper()
	dev := &gputest.Device{}
	models := []*model.Model{newModel(t, dev, "grid", 3), newModel(t, dev, "help", 1)}
	w, err := New(models, Settings{GridSize: gridSize, Spacing: 3})
	require.NoError(t, err)
	return &rig{
		world: w,
		disp:  input.NewDispatcher(input.DefaultKeymap()),
		modes: mode.NewTracker(start),
	}
}

func (r *rig) key(k input.Key, pressed bool) {
	if edge, ok := r.disp.Key(input.KeyEvent(k, pressed)); ok {
		r.world.HandleEdge(edge)
	}
}

func (r *rig) frame() {
	r.world.Update(r.disp.State(), r.modes)
}

func (r *rig) grid() *model.Model { return r.world.Models()[GridModel] }
func (r *rig) help() *model.Model { return r.world.Models()[HelpModel] }

func angleAboutZ(q mgl32.Quat) float32 {
	v := q.Rotate(mgl32.Vec3{1, 0, 0})
	deg := mgl32.RadToDeg(float32(math.Atan2(float64(v.Y()), float64(v.X()))))
	if deg < 0 {
		deg += 360
	}
	return deg
}

func TestNewNeedsTwoModels(t *testing.T) {
	_, err := New(nil, DefaultSettings())
	assert.Error(t, err)
}

func TestGenerateGridEmpty(t *testing.T) {
	assert.Empty(t, GenerateGrid(0, 3, 0, 1))
	assert.Empty(t, GenerateGrid(-2, 3, 0, 1))
}

func TestGenerateGridSingleInstanceAtOrigin(t *testing.T) {
	insts := GenerateGrid(1, 3, 30, 0.75)
	require.Len(t, insts, 1)

	assert.Equal(t, mgl32.Vec3{}, insts[0].Position)
	assert.InDelta(t, 75, angleAboutZ(insts[0].Rotation), 1e-3)
	assert.Equal(t, float32(0.75), insts[0].Scale)
}

func TestGenerateGridLayout(t *testing.T) {
	insts := GenerateGrid(3, 3, 10, 1)
	require.Len(t, insts, 9)

	assert.Equal(t, mgl32.Vec3{-3, 0, -3}, insts[0].Position)
	assert.Equal(t, mgl32.Vec3{3, 0, -3}, insts[2].Position)
	assert.Equal(t, mgl32.Vec3{3, 0, 3}, insts[8].Position)

	origins := 0
	for _, inst := range insts {
		if inst.Position == (mgl32.Vec3{}) {
			origins++
			assert.InDelta(t, 55, angleAboutZ(inst.Rotation), 1e-3)
		} else {
			assert.InDelta(t, 10, angleAboutZ(inst.Rotation), 1e-3)
		}
	}
	assert.Equal(t, 1, origins)
}

func TestSpinStep(t *testing.T) {
	assert.Equal(t, float32(0.5), SpinStep(5))
	assert.Equal(t, float32(1.5), SpinStep(200))
	assert.Equal(t, float32(6.5), SpinStep(1000))
}

func TestFirstNavigatingFrameBuildsGrid(t *testing.T) {
	r := newRig(t, mode.Navigating, 5)
	assert.Empty(t, r.grid().Instances())

	r.frame()
	assert.Len(t, r.grid().Instances(), 25)
}

func TestShrinkFloorsAtZero(t *testing.T) {
	r := newRig(t, mode.Navigating, 0)
	r.key(input.KeyK, true)
	r.frame()
	assert.Equal(t, 0, r.world.GridSize())
	assert.Empty(t, r.grid().Instances())
}

func TestCountIsLevelTriggered(t *testing.T) {
	r := newRig(t, mode.Navigating, 5)
	r.key(input.KeyJ, true)
	for i := 0; i < 3; i++ {
		r.frame()
	}
	assert.Equal(t, 8, r.world.GridSize())
	assert.Len(t, r.grid().Instances(), 64)

	r.key(input.KeyJ, false)
	r.key(input.KeyK, true)
	r.frame()
	assert.Equal(t, 7, r.world.GridSize())
	assert.Len(t, r.grid().Instances(), 49)
}

func TestSpinToggleDebounce(t *testing.T) {
	r := newRig(t, mode.Navigating, 5)
	start := r.world.Spinning()

	r.key(input.Key1, true)
	r.key(input.Key1, false)
	r.key(input.Key1, true)
	r.key(input.Key1, false)
	assert.Equal(t, start, r.world.Spinning())

	r.key(input.Key1, true)
	for i := 0; i < 5; i++ {
		r.frame()
		r.key(input.Key1, true)
	}
	assert.Equal(t, !start, r.world.Spinning(), "holding toggles once")
}

func TestSpinAdvancesAndWraps(t *testing.T) {
	r := newRig(t, mode.Navigating, 5)
	r.key(input.Key1, true)

	for i := 0; i < 4; i++ {
		r.frame()
	}
	assert.InDelta(t, 2, r.world.Angle(), 1e-5)

	r.world.curAngle = 359.75
	r.frame()
	assert.InDelta(t, 0.25, r.world.Angle(), 1e-4)
}

func TestResizePingPong(t *testing.T) {
	r := newRig(t, mode.Navigating, 2)
	r.key(input.Key3, true)

	minSeen, maxSeen := float32(1), float32(0)
	for i := 0; i < 250; i++ {
		r.frame()
		s := r.world.Scale()
		require.GreaterOrEqual(t, s, float32(0.5))
		require.LessOrEqual(t, s, float32(1.0))
		minSeen = min(minSeen, s)
		maxSeen = max(maxSeen, s)
	}
	assert.Equal(t, float32(0.5), minSeen)
	assert.Equal(t, float32(1.0), maxSeen)

	for _, inst := range r.grid().Instances() {
		assert.Equal(t, r.world.Scale(), inst.Scale)
	}
}

func TestRecolorOncePerPress(t *testing.T) {
	r := newRig(t, mode.Navigating, 1)
	r.frame()

	r.key(input.Key2, true)
	for i := 0; i < 4; i++ {
		r.frame()
	}
	assert.Equal(t, 1, r.grid().Meshes[0].Material)

	r.key(input.Key2, false)
	r.frame()
	r.key(input.Key2, true)
	r.frame()
	assert.Equal(t, 2, r.grid().Meshes[0].Material)
}

func TestNoRegenerationWhenIdle(t *testing.T) {
	dev := &gputest.Device{}
	models := []*model.Model{newModel(t, dev, "grid", 1), newModel(t, dev, "help", 1)}
	w, err := New(models, DefaultSettings())
	require.NoError(t, err)
	modes := mode.NewTracker(mode.Navigating)
	state := input.NewDispatcher(input.DefaultKeymap()).State()

	w.Update(state, modes)
	before := len(dev.Buffers)
	for i := 0; i < 10; i++ {
		w.Update(state, modes)
	}
	assert.Equal(t, before, len(dev.Buffers))
}

func TestHelpOverlaySwap(t *testing.T) {
	r := newRig(t, mode.Help, 5)
	r.key(input.KeyJ, true)

	for i := 0; i < 3; i++ {
		r.frame()
		assert.False(t, r.grid().Visible)
		assert.True(t, r.help().Visible)
	}
	assert.Equal(t, 5, r.world.GridSize(), "grid frozen in help")
	assert.Empty(t, r.grid().Instances())

	require.Len(t, r.help().Instances(), 1)
	panel := r.help().Instances()[0]
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, panel.Position)
	assert.InDelta(t, 270, angleAboutZ(panel.Rotation), 1e-3)
	assert.Equal(t, float32(1), panel.Scale)

	r.key(input.KeyJ, false)
	r.modes.Toggle()
	r.frame()
	assert.True(t, r.grid().Visible)
	assert.False(t, r.help().Visible)
	assert.Len(t, r.grid().Instances(), 25)

	// Visibility is only flipped once; later frames leave it alone.
	r.help().Visible = true
	r.frame()
	assert.True(t, r.help().Visible)
}
