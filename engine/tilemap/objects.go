package tilemap

import (
	"fmt"

	"github.com/hubastard/cratepush/engine/geom"
)

type ObjectType uint8

const (
	ObjectUnknown ObjectType = iota
	ObjectBox
)

var objectTypes = map[string]ObjectType{
	"Box": ObjectBox,
}

// ParseObjectType maps an editor class name to an ObjectType.
func ParseObjectType(class string) ObjectType {
	if t, ok := objectTypes[class]; ok {
		return t
	}
	return ObjectUnknown
}

func (t ObjectType) String() string {
	switch t {
	case ObjectBox:
		return "Box"
	}
	return "Unknown"
}

func (t ObjectType) Pushable() bool { return t == ObjectBox }

// Object is a sprite standing on one grid cell. Offset is the pixel
// displacement of an in-flight move.
type Object struct {
	ID       uint32
	Pos      geom.Int2
	Size     geom.Int2
	Offset   geom.Vec2
	Type     ObjectType
	GID      uint32
	Rotation float32 // degrees, clockwise
	Visible  bool
}

// Pushable is the move state of something that slides one cell at a time.
type Pushable struct {
	Dir      geom.Int2
	Progress float32 // 0..1
	Moving   bool
}

type Box struct {
	ID   uint32
	Push Pushable
}

func (m *Map) Object(cell geom.Int2) (*Object, bool) {
	o, ok := m.objects[cell]
	return o, ok
}

func (m *Map) ObjectByID(id uint32) (*Object, bool) {
	o, ok := m.byID[id]
	return o, ok
}

func (m *Map) Box(cell geom.Int2) (*Box, bool) {
	b, ok := m.boxes[cell]
	return b, ok
}

// BoxCells appends the cell of every box to buf.
func (m *Map) BoxCells(buf []geom.Int2) []geom.Int2 {
	for cell := range m.boxes {
		buf = append(buf, cell)
	}
	return buf
}

// AddObject places o at o.Pos. A zero or taken ID is replaced by a fresh one.
// Pushable types also get a Box.
func (m *Map) AddObject(o Object) (*Object, error) {
	if _, taken := m.objects[o.Pos]; taken {
		return nil, fmt.Errorf("%w: %v", ErrObjectOverlap, o.Pos)
	}
	if _, taken := m.byID[o.ID]; taken || o.ID == 0 {
		o.ID = m.nextID + 1
		for m.byID[o.ID] != nil {
			o.ID++
		}
	}
	if o.ID > m.nextID {
		m.nextID = o.ID
	}
	if o.Size.IsZero() {
		o.Size = m.TileSize
	}

	obj := &o
	m.objects[o.Pos] = obj
	m.byID[o.ID] = obj
	if o.Type.Pushable() {
		m.boxes[o.Pos] = &Box{ID: o.ID}
	}
	return obj, nil
}

// MoveObject re-keys the object at from, and its box, to to. Either every
// index moves or none does.
func (m *Map) MoveObject(from, to geom.Int2) error {
	o, ok := m.objects[from]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNoObject, from)
	}
	if from == to {
		return nil
	}
	if _, taken := m.objects[to]; taken {
		return fmt.Errorf("%w: %v", ErrObjectOverlap, to)
	}

	delete(m.objects, from)
	o.Pos = to
	m.objects[to] = o
	if b, ok := m.boxes[from]; ok {
		delete(m.boxes, from)
		m.boxes[to] = b
	}
	return nil
}

// RemoveObject deletes the object at cell from every index.
func (m *Map) RemoveObject(cell geom.Int2) bool {
	o, ok := m.objects[cell]
	if !ok {
		return false
	}
	delete(m.objects, cell)
	delete(m.boxes, cell)
	delete(m.byID, o.ID)
	return true
}
