package viewer

import (
	"fmt"

	"github.com/quillon/prism/viewer/assets"
	"github.com/quillon/prism/viewer/scene"
)

// HierarchyNode is the read-only view model of one scene-graph node.
// The tree is rebuilt wholesale on every load, never patched.
type HierarchyNode struct {
	ID       uint32
	Name     string
	Kind     string
	Children []HierarchyNode
}

// MaterialSummary is the read-only view model of one material.
type MaterialSummary struct {
	ID   uint32
	Name string
	Kind string
}

// isHelperNode classifies the viewer's own scaffolding: the session
// camera, the two rig lights, the reference grid, the environment and
// skybox primitives, and the loader's internal root wrapper. The
// predicate is pure name matching, applied identically at every depth,
// and excludes the node together with its whole subtree.
func isHelperNode(name string) bool {
	switch name {
	case scene.CameraName,
		scene.KeyLightName,
		scene.FillLightName,
		scene.GridName,
		scene.EnvironmentName,
		scene.SkyboxName,
		assets.InternalRootName:
		return true
	}
	return false
}

// ExtractHierarchy walks the given roots depth-first and emits the
// filtered hierarchy view model.
func ExtractHierarchy(roots []*scene.Node) []HierarchyNode {
	out := make([]HierarchyNode, 0, len(roots))
	for _, root := range roots {
		if node, ok := extractNode(root); ok {
			out = append(out, node)
		}
	}
	return out
}

func extractNode(n *scene.Node) (HierarchyNode, bool) {
	if n == nil || isHelperNode(n.Name) {
		return HierarchyNode{}, false
	}
	name := n.Name
	if name == "" {
		name = fmt.Sprintf("Unnamed %s", n.Kind)
	}
	node := HierarchyNode{
		ID:   n.ID,
		Name: name,
		Kind: n.Kind.String(),
	}
	for _, child := range n.Children {
		if c, ok := extractNode(child); ok {
			node.Children = append(node.Children, c)
		}
	}
	return node, true
}

// ExtractMaterials emits the material inventory of a container in
// declaration order.
func ExtractMaterials(container *scene.Container) []MaterialSummary {
	if container == nil {
		return nil
	}
	out := make([]MaterialSummary, 0, len(container.Materials))
	for _, m := range container.Materials {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("Unnamed %s", m.Kind)
		}
		out = append(out, MaterialSummary{
			ID:   m.ID,
			Name: name,
			Kind: string(m.Kind),
		})
	}
	return out
}
