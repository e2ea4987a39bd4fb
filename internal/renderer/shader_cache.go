package renderer

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultMaxShaders is the number of distinct shader variants a context keeps.
const DefaultMaxShaders = 16

// ShaderCache owns every generated program of a context. Entries are never
// evicted; the table fails loudly once it is full.
type ShaderCache struct {
	device    Device
	generator *ShaderGenerator
	log       *zap.Logger

	shaders []Shader
	max     int
	active  int

	// failed remembers fingerprints whose build failed so a broken variant
	// is not regenerated and recompiled every frame.
	failed map[uint32]error
}

func NewShaderCache(device Device, generator *ShaderGenerator, max int, log *zap.Logger) *ShaderCache {
	if max <= 0 {
		max = DefaultMaxShaders
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ShaderCache{
		device:    device,
		generator: generator,
		log:       log,
		shaders:   make([]Shader, 0, max),
		max:       max,
		active:    -1,
		failed:    make(map[uint32]error),
	}
}

// LoadOrCreate makes the program for dc's shape active and returns its
// index, building it on first sight of the fingerprint.
func (c *ShaderCache) LoadOrCreate(dc *DrawCall) (int, error) {
	shape := ShapeOf(dc)
	hash := shape.Fingerprint()

	for i := range c.shaders {
		if c.shaders[i].Fingerprint == hash {
			if c.active != i {
				c.log.Debug("Shader variant reused", zap.String("hash", fmt.Sprintf("%08x", hash)), zap.Int("index", i))
			}
			c.active = i
			return i, nil
		}
	}

	if err, ok := c.failed[hash]; ok {
		return -1, fmt.Errorf("shader %08x: %w (%v)", hash, ErrShaderFailedBefore, err)
	}

	if len(c.shaders) >= c.max {
		return -1, fmt.Errorf("shader %08x with %d cached: %w", hash, len(c.shaders), ErrShaderCacheFull)
	}

	source, err := c.generator.GenerateShape(shape)
	if err != nil {
		c.failed[hash] = err
		return -1, err
	}

	program, err := buildProgram(c.device, source.Vertex, source.Fragment)
	if err != nil {
		c.failed[hash] = err
		c.log.Error("Failed to build shader variant", zap.String("hash", fmt.Sprintf("%08x", hash)), zap.Error(err))
		return -1, fmt.Errorf("shader %08x: %w", hash, err)
	}

	shader := Shader{Program: program, Fingerprint: hash, Source: source}
	shader.resolveLocations(c.device)

	c.shaders = append(c.shaders, shader)
	c.active = len(c.shaders) - 1

	c.log.Info("Shader variant compiled",
		zap.String("hash", fmt.Sprintf("%08x", hash)),
		zap.Uint32("program", program),
		zap.Int("cached", len(c.shaders)))
	return c.active, nil
}

// Active returns the program selected by the last successful LoadOrCreate.
func (c *ShaderCache) Active() *Shader {
	if c.active < 0 {
		return nil
	}
	return &c.shaders[c.active]
}

func (c *ShaderCache) Len() int { return len(c.shaders) }

func (c *ShaderCache) Get(i int) *Shader {
	if i < 0 || i >= len(c.shaders) {
		return nil
	}
	return &c.shaders[i]
}

// Release deletes every program and forgets failures.
func (c *ShaderCache) Release() {
	for _, s := range c.shaders {
		c.device.DeleteProgram(s.Program)
	}
	c.shaders = c.shaders[:0]
	c.active = -1
	c.failed = make(map[uint32]error)
}
