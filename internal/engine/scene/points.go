// Package scene renders the live morph buffer as a point cloud.
package scene

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/morphview/internal/engine/shader"
	"github.com/Faultbox/morphview/internal/logger"
	"github.com/Faultbox/morphview/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const vertexShaderSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uView;
uniform mat4 uProj;
uniform float uPointSize;

out vec3 vColor;

void main() {
	gl_Position = uProj * uView * vec4(aPos, 1.0);
	gl_PointSize = uPointSize;
	vColor = clamp(aPos * 0.4 + vec3(0.55, 0.6, 0.75), 0.2, 1.0);
}
`

const fragmentShaderSrc = `
#version 410 core

in vec3 vColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vColor, 1.0);
}
`

// PointCloud draws a fixed-size vertex set whose positions change every
// frame. The VBO is allocated once at the pool's shared vertex count
// and re-uploaded in place whenever the morph buffer is dirty.
type PointCloud struct {
	program   uint32
	vao       uint32
	vbo       uint32
	locView   int32
	locProj   int32
	locSize   int32
	count     int32
	pointSize float32
}

// NewPointCloud creates the point cloud renderer for vertexCount points.
// Must be called with a live OpenGL context.
func NewPointCloud(vertexCount int, pointSize float32) (*PointCloud, error) {
	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("point cloud shader: %w", err)
	}

	pc := &PointCloud{
		program:   program,
		locView:   shader.MustGetUniform(program, "uView"),
		locProj:   shader.MustGetUniform(program, "uProj"),
		locSize:   shader.MustGetUniform(program, "uPointSize"),
		count:     int32(vertexCount),
		pointSize: pointSize,
	}

	gl.GenVertexArrays(1, &pc.vao)
	gl.BindVertexArray(pc.vao)

	gl.GenBuffers(1, &pc.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, pc.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, vertexCount*3*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("point cloud created",
		zap.Int("vertices", vertexCount),
		zap.Uint32("vao", pc.vao),
		zap.Uint32("vbo", pc.vbo),
	)
	return pc, nil
}

// Upload replaces the VBO contents with the given positions. The slice
// length must match the vertex count the cloud was created with.
func (pc *PointCloud) Upload(positions []float32) {
	if len(positions) != int(pc.count)*3 {
		panic(fmt.Sprintf("point cloud: got %d floats, buffer holds %d", len(positions), pc.count*3))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, pc.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(positions)*4, unsafe.Pointer(&positions[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw renders the cloud with the given view and projection matrices.
func (pc *PointCloud) Draw(view, proj math.Mat4) {
	gl.UseProgram(pc.program)
	gl.UniformMatrix4fv(pc.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(pc.locProj, 1, false, proj.Ptr())
	gl.Uniform1f(pc.locSize, pc.pointSize)

	gl.BindVertexArray(pc.vao)
	gl.DrawArrays(gl.POINTS, 0, pc.count)
	gl.BindVertexArray(0)
}

// Close releases GL resources.
func (pc *PointCloud) Close() {
	if pc.vao != 0 {
		gl.DeleteVertexArrays(1, &pc.vao)
	}
	if pc.vbo != 0 {
		gl.DeleteBuffers(1, &pc.vbo)
	}
	if pc.program != 0 {
		gl.DeleteProgram(pc.program)
	}
}
