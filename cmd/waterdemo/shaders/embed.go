// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// WaterVertexShader is the vertex shader for the water surface.
//
//go:embed water.vert
var WaterVertexShader string

// WaterFragmentShader is the fragment shader for the water surface. Its
// variants are selected with FLOW_DISABLED and FLOW_DEBUG defines.
//
//go:embed water.frag
var WaterFragmentShader string

// SceneVertexShader is the vertex shader for opaque scene geometry. It writes
// gl_ClipDistance[0] from the ClipPlane uniform.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader is the fragment shader for opaque scene geometry.
//
//go:embed scene.frag
var SceneFragmentShader string
