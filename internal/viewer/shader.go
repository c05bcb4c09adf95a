package viewer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;

void main() {
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProjection * uView * uModel * vec4(aPos, 1.0);
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec3 uLightDir;
uniform vec3 uColor;
uniform bool uWireframe;

out vec4 FragColor;

void main() {
	if (uWireframe) {
		FragColor = vec4(0.9, 0.9, 0.9, 1.0);
		return;
	}
	// Two-sided lighting: resolved meshes carry no backfaces.
	float diffuse = abs(dot(normalize(vNormal), normalize(-uLightDir)));
	FragColor = vec4(uColor * (0.25 + 0.75 * diffuse), 1.0);
}
`

// program is a linked shader program with its uniform locations.
type program struct {
	id         uint32
	model      int32
	view       int32
	projection int32
	lightDir   int32
	color      int32
	wireframe  int32
}

func newProgram() (*program, error) {
	id, err := compileProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}
	return &program{
		id:         id,
		model:      uniform(id, "uModel"),
		view:       uniform(id, "uView"),
		projection: uniform(id, "uProjection"),
		lightDir:   uniform(id, "uLightDir"),
		color:      uniform(id, "uColor"),
		wireframe:  uniform(id, "uWireframe"),
	}, nil
}

func (p *program) delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
	}
}

// compileProgram compiles vertex and fragment shaders and links them.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
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

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
