package scene

import "slices"

// Material is a named set of float shader properties. Only properties the
// material was created with can be set, mirroring uniforms a shader declares.
type Material struct {
	Name  string
	names []string
	props map[string]float32
}

// NewMaterial creates a material exposing the given properties, all zero.
func NewMaterial(name string, properties ...string) *Material {
	m := &Material{
		Name:  name,
		props: make(map[string]float32, len(properties)),
	}
	for _, p := range properties {
		if _, dup := m.props[p]; dup {
			continue
		}
		m.names = append(m.names, p)
		m.props[p] = 0
	}
	return m
}

// HasProperty reports whether the material exposes name.
func (m *Material) HasProperty(name string) bool {
	_, ok := m.props[name]
	return ok
}

// SetFloat sets an exposed property. Unknown names are ignored; the return
// value reports whether the property was set.
func (m *Material) SetFloat(name string, v float32) bool {
	if !m.HasProperty(name) {
		return false
	}
	m.props[name] = v
	return true
}

// Float returns a property value.
func (m *Material) Float(name string) (float32, bool) {
	v, ok := m.props[name]
	return v, ok
}

// Properties returns the exposed property names in declaration order.
func (m *Material) Properties() []string {
	return slices.Clone(m.names)
}

// Clone returns an independent copy, so per-instance values do not leak
// into the template.
func (m *Material) Clone() *Material {
	c := NewMaterial(m.Name, m.names...)
	for k, v := range m.props {
		c.props[k] = v
	}
	return c
}
