package viewer

import (
	"github.com/quillon/prism/viewer/scene"
)

// Visibility tracks which meshes the user has hidden, plus an optional
// solo override that shows exactly one mesh. The hidden set survives a
// solo round-trip untouched, so clearing solo restores the previous
// state exactly. Mesh identifiers are container-specific; the set is
// cleared on every new load request.
type Visibility struct {
	hidden map[uint32]bool

	soloActive bool
	soloID     uint32
}

func NewVisibility() *Visibility {
	return &Visibility{hidden: make(map[uint32]bool)}
}

func (v *Visibility) SetHidden(meshID uint32, hidden bool) {
	if hidden {
		v.hidden[meshID] = true
	} else {
		delete(v.hidden, meshID)
	}
}

func (v *Visibility) IsHidden(meshID uint32) bool {
	if v.soloActive {
		return meshID != v.soloID
	}
	return v.hidden[meshID]
}

// Solo hides every mesh except the given one.
func (v *Visibility) Solo(meshID uint32) {
	v.soloActive = true
	v.soloID = meshID
}

// ClearSolo drops the solo override, restoring the hidden set as it
// was before the solo.
func (v *Visibility) ClearSolo() {
	v.soloActive = false
	v.soloID = 0
}

// Clear forgets all visibility state.
func (v *Visibility) Clear() {
	v.hidden = make(map[uint32]bool)
	v.soloActive = false
	v.soloID = 0
}

// Apply pushes the visibility state onto the container's meshes.
func (v *Visibility) Apply(container *scene.Container) {
	if container == nil {
		return
	}
	for _, mesh := range container.Meshes {
		mesh.Visible = !v.IsHidden(mesh.ID)
	}
}
