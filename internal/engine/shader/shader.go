// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Sources holds the GLSL stages of one program. Geometry is optional.
type Sources struct {
	Vertex   string
	Geometry string
	Fragment string
}

// CompileProgram compiles every present stage and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(src Sources) (uint32, error) {
	type stage struct {
		kind   uint32
		name   string
		source string
	}
	stages := []stage{
		{gl.VERTEX_SHADER, "vertex", src.Vertex},
		{gl.GEOMETRY_SHADER, "geometry", src.Geometry},
		{gl.FRAGMENT_SHADER, "fragment", src.Fragment},
	}

	program := gl.CreateProgram()
	for _, s := range stages {
		if s.source == "" {
			continue
		}
		sh, err := compileShader(s.source, s.kind, s.name)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, sh)
		// Flagged for deletion; freed once the program is deleted.
		defer gl.DeleteShader(sh)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// ActiveUniforms returns the names of every active uniform in program.
func ActiveUniforms(program uint32) []string {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if count == 0 || maxLen == 0 {
		return nil
	}

	names := make([]string, 0, count)
	buf := make([]uint8, maxLen)
	for i := range uint32(count) {
		var length, size int32
		var kind uint32
		gl.GetActiveUniform(program, i, maxLen, &length, &size, &kind, &buf[0])
		names = append(names, string(buf[:length]))
	}
	return names
}
