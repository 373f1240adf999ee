package entity

import (
	"go.uber.org/zap"

	"github.com/Faultbox/grassland/internal/logger"
	"github.com/Faultbox/grassland/pkg/math"
)

// Matcher selects the entities a collector is interested in.
type Matcher func(*Entity) bool

// MatchGrassPos matches entities carrying a grass position.
func MatchGrassPos(e *Entity) bool {
	return e.HasGrassPos()
}

// Context owns all entities and notifies collectors when attributes change.
// It is not safe for concurrent use; the game loop drives it.
type Context struct {
	nextID     ID
	entities   map[ID]*Entity
	order      []ID
	collectors []*Collector
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		nextID:   1,
		entities: make(map[ID]*Entity),
	}
}

// Create adds a new entity without attributes.
func (c *Context) Create() *Entity {
	e := &Entity{ID: c.nextID}
	c.nextID++
	c.entities[e.ID] = e
	c.order = append(c.order, e.ID)
	return e
}

// Get returns a live entity by ID.
func (c *Context) Get(id ID) (*Entity, bool) {
	e, ok := c.entities[id]
	return e, ok
}

// Entities returns all live entities in creation order.
func (c *Context) Entities() []*Entity {
	out := make([]*Entity, 0, len(c.entities))
	for _, id := range c.order {
		if e, ok := c.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of live entities.
func (c *Context) Len() int {
	return len(c.entities)
}

// Destroy removes an entity. Pending collector entries for it are dropped.
func (c *Context) Destroy(id ID) {
	if _, ok := c.entities[id]; !ok {
		return
	}
	delete(c.entities, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	for _, col := range c.collectors {
		col.forget(id)
	}
}

// SetGrassPos adds or replaces the entity's grass position and notifies
// collectors.
func (c *Context) SetGrassPos(e *Entity, pos math.Vec3) {
	p := pos
	e.GrassPos = &p
	logger.Debug("grass position set", zap.Uint32("entity", uint32(e.ID)))
	c.notify(e)
}

// RemoveGrassPos clears the marker. Collectors are not notified.
func (c *Context) RemoveGrassPos(e *Entity) {
	e.GrassPos = nil
}

// CreateCollector returns a collector gathering entities that match m
// whenever one of their attributes is set.
func (c *Context) CreateCollector(m Matcher) *Collector {
	col := &Collector{ctx: c, match: m, seen: make(map[ID]bool)}
	c.collectors = append(c.collectors, col)
	return col
}

func (c *Context) notify(e *Entity) {
	for _, col := range c.collectors {
		col.add(e)
	}
}

// Collector queues entities between system runs.
type Collector struct {
	ctx     *Context
	match   Matcher
	pending []ID
	seen    map[ID]bool
}

func (col *Collector) add(e *Entity) {
	if !col.match(e) || col.seen[e.ID] {
		return
	}
	col.seen[e.ID] = true
	col.pending = append(col.pending, e.ID)
}

func (col *Collector) forget(id ID) {
	if !col.seen[id] {
		return
	}
	delete(col.seen, id)
	for i, pid := range col.pending {
		if pid == id {
			col.pending = append(col.pending[:i], col.pending[i+1:]...)
			return
		}
	}
}

// Len returns the number of queued entities.
func (col *Collector) Len() int {
	return len(col.pending)
}

// Drain returns every queued entity once, in notification order, and
// empties the queue.
func (col *Collector) Drain() []*Entity {
	out := make([]*Entity, 0, len(col.pending))
	for _, id := range col.pending {
		if e, ok := col.ctx.entities[id]; ok {
			out = append(out, e)
		}
	}
	col.pending = col.pending[:0]
	clear(col.seen)
	return out
}
