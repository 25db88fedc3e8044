// Package projection turns a camera and a tile map into one wall slice per
// screen column.
package projection

import (
	"math"

	"raycaster/internal/raycast"
	"raycaster/internal/threading/core"
)

// Camera is the viewpoint for one frame. Angle and FOV are in radians,
// X and Y in world units.
type Camera struct {
	X     float64
	Y     float64
	Angle float64
	FOV   float64
}

// WallSlice is the projected wall for a single screen column.
type WallSlice struct {
	ScreenX    int
	Top        int // first wall row
	Bottom     int // one past the last wall row
	Height     float64
	TextureU   float64
	Brightness float64
	Symbol     rune
	Side       raycast.Side
	Distance   float64 // fisheye-corrected, world units
	Hit        bool
}

// Options control the projection and shading.
type Options struct {
	ScreenWidth    int
	ScreenHeight   int
	MaxHeightScale float64 // projected height limit as a multiple of ScreenHeight
	MinBrightness  float64 // shade floor for distant walls
	Falloff        float64 // shade falloff per cell of distance
	SideShade      float64 // extra factor for horizontal faces
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ScreenWidth:    640,
		ScreenHeight:   480,
		MaxHeightScale: 2,
		MinBrightness:  0.25,
		Falloff:        0.15,
		SideShade:      0.75,
	}
}

// Projector casts one ray per screen column. A Projector reuses its ray
// direction cache between calls and is not safe for concurrent use.
type Projector struct {
	opts   Options
	caster *raycast.Caster
	pool   *core.WorkerPool

	// Precomputed ray direction cache, rebuilt when the camera turns
	cacheAngle float64
	cacheFOV   float64
	rayDirX    []float64
	rayDirY    []float64
	rayCos     []float64
}

// NewProjector creates a projector. A nil caster uses raycast.DefaultCaster;
// a nil pool projects columns sequentially.
func NewProjector(opts Options, caster *raycast.Caster, pool *core.WorkerPool) *Projector {
	def := DefaultOptions()
	if opts.ScreenWidth <= 0 {
		opts.ScreenWidth = def.ScreenWidth
	}
	if opts.ScreenHeight <= 0 {
		opts.ScreenHeight = def.ScreenHeight
	}
	if opts.MaxHeightScale <= 0 {
		opts.MaxHeightScale = def.MaxHeightScale
	}
	if opts.SideShade <= 0 {
		opts.SideShade = 1
	}
	if caster == nil {
		caster = raycast.DefaultCaster()
	}
	return &Projector{opts: opts, caster: caster, pool: pool}
}

// Options returns the effective options.
func (p *Projector) Options() Options { return p.opts }

// Resize changes the output resolution.
func (p *Projector) Resize(width, height int) {
	if width > 0 {
		p.opts.ScreenWidth = width
	}
	if height > 0 {
		p.opts.ScreenHeight = height
	}
	p.rayDirX = nil
}

// Project returns ScreenWidth slices ordered by ScreenX.
func (p *Projector) Project(m raycast.TileMap, cam Camera) []WallSlice {
	return p.ProjectInto(nil, m, cam)
}

// ProjectInto is Project writing into dst, which is grown when too small.
func (p *Projector) ProjectInto(dst []WallSlice, m raycast.TileMap, cam Camera) []WallSlice {
	width := p.opts.ScreenWidth
	if cap(dst) < width {
		dst = make([]WallSlice, width)
	}
	dst = dst[:width]

	p.precomputeRayDirections(cam)

	if p.pool == nil {
		for x := 0; x < width; x++ {
			dst[x] = p.column(m, cam, x)
		}
		return dst
	}

	// Each column writes only its own slot; the map is read-only
	p.pool.ParallelFor(0, width, func(x int) {
		dst[x] = p.column(m, cam, x)
	})
	return dst
}

// precomputeRayDirections fills the per-column direction cache.
func (p *Projector) precomputeRayDirections(cam Camera) {
	width := p.opts.ScreenWidth
	if len(p.rayDirX) == width && p.cacheAngle == cam.Angle && p.cacheFOV == cam.FOV {
		return
	}
	if len(p.rayDirX) != width {
		p.rayDirX = make([]float64, width)
		p.rayDirY = make([]float64, width)
		p.rayCos = make([]float64, width)
	}

	for x := 0; x < width; x++ {
		cameraX := 2*float64(x)/float64(width) - 1
		offset := cameraX * cam.FOV / 2
		angle := cam.Angle + offset
		p.rayDirX[x] = math.Cos(angle)
		p.rayDirY[x] = math.Sin(angle)
		p.rayCos[x] = math.Cos(offset)
	}
	p.cacheAngle = cam.Angle
	p.cacheFOV = cam.FOV
}

func (p *Projector) column(m raycast.TileMap, cam Camera, x int) WallSlice {
	hit, ok := p.caster.CastDir(m, cam.X, cam.Y, p.rayDirX[x], p.rayDirY[x])
	if !ok {
		return WallSlice{ScreenX: x}
	}

	// The caster measures along the unit ray; project onto the view axis
	dist := math.Max(hit.Distance*p.rayCos[x], p.caster.MinDistance())

	tileSize := float64(m.TileSize())
	top, bottom, height := p.WallExtent(dist, tileSize)

	brightness := p.Shade(dist / tileSize)
	if hit.Side == raycast.SideHorizontal {
		brightness *= p.opts.SideShade
	}

	return WallSlice{
		ScreenX:    x,
		Top:        top,
		Bottom:     bottom,
		Height:     height,
		TextureU:   hit.TextureU,
		Brightness: brightness,
		Symbol:     hit.Symbol,
		Side:       hit.Side,
		Distance:   dist,
		Hit:        true,
	}
}

// WallExtent returns the visible rows [top, bottom) and the clamped projected
// height of a wall at the given distance (world units).
func (p *Projector) WallExtent(dist, tileSize float64) (top, bottom int, height float64) {
	screenH := float64(p.opts.ScreenHeight)
	maxHeight := p.opts.MaxHeightScale * screenH

	if dist <= 0 {
		height = maxHeight
	} else {
		height = math.Min(screenH*tileSize/dist, maxHeight)
	}

	top = max(0, int(math.Floor((screenH-height)/2)))
	bottom = min(p.opts.ScreenHeight, int(math.Ceil((screenH+height)/2)))
	if bottom < top {
		bottom = top
	}
	return top, bottom, height
}

// Shade returns the brightness factor for a wall distCells cells away. It
// falls from 1 at distance zero toward MinBrightness and never drops below it.
func (p *Projector) Shade(distCells float64) float64 {
	minB := p.opts.MinBrightness
	k := p.opts.Falloff
	if distCells < 0 {
		distCells = 0
	}
	return minB + (1-minB)/(1+k*distCells)
}
