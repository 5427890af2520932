// Package renderer defines the boundary to document output backends. The
// layout engine only produces the geometric plan; turning it into PDF or
// image bytes belongs to implementations of this interface, which live
// outside this module.
package renderer

import "github.com/lithotype/lithotype/layout"

// Renderer turns a computed plan into final document bytes.
type Renderer interface {
	Render(plan *layout.PlanResult) ([]byte, error)
}
