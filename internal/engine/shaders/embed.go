// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GrassVertexShader places blade roots in world space.
//
//go:embed grass.vert
var GrassVertexShader string

// GrassGeometryShader expands each root point into a tapered blade.
//
//go:embed grass.geom
var GrassGeometryShader string

// GrassFragmentShader shades blades from root to tip under a directional sun.
//
//go:embed grass.frag
var GrassFragmentShader string
