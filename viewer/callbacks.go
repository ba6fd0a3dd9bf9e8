package viewer

// Callbacks is the event-out surface of the session. The embedding
// application supplies whichever handlers it cares about; nil handlers
// are skipped. All callbacks fire on the session's frame loop.
type Callbacks struct {
	// OnLoaded reports the outcome of a load request. On failure the
	// message is human-readable; on success it is empty.
	OnLoaded func(success bool, errorMessage string)

	// OnHierarchyReady delivers the filtered scene graph. It fires
	// with an empty slice at the start of every load so the UI never
	// shows a stale tree.
	OnHierarchyReady func(nodes []HierarchyNode)

	// OnMaterialsReady delivers the material inventory, rebuilt
	// wholesale alongside the hierarchy.
	OnMaterialsReady func(materials []MaterialSummary)

	OnAnimationsAvailable  func(available bool, durationSeconds float64)
	OnAnimationStateChange func(isPlaying bool)
	OnAnimationProgress    func(percent, currentSeconds, totalSeconds float64)

	// OnFpsSample fires roughly once per second while the frame loop
	// runs. Informational only.
	OnFpsSample func(fps float64)
}

func (c *Callbacks) emitLoaded(success bool, errorMessage string) {
	if c != nil && c.OnLoaded != nil {
		c.OnLoaded(success, errorMessage)
	}
}

func (c *Callbacks) emitHierarchy(nodes []HierarchyNode) {
	if c != nil && c.OnHierarchyReady != nil {
		c.OnHierarchyReady(nodes)
	}
}

func (c *Callbacks) emitMaterials(materials []MaterialSummary) {
	if c != nil && c.OnMaterialsReady != nil {
		c.OnMaterialsReady(materials)
	}
}

func (c *Callbacks) emitAnimationsAvailable(available bool, durationSeconds float64) {
	if c != nil && c.OnAnimationsAvailable != nil {
		c.OnAnimationsAvailable(available, durationSeconds)
	}
}

func (c *Callbacks) emitAnimationState(isPlaying bool) {
	if c != nil && c.OnAnimationStateChange != nil {
		c.OnAnimationStateChange(isPlaying)
	}
}

func (c *Callbacks) emitAnimationProgress(percent, currentSeconds, totalSeconds float64) {
	if c != nil && c.OnAnimationProgress != nil {
		c.OnAnimationProgress(percent, currentSeconds, totalSeconds)
	}
}

func (c *Callbacks) emitFpsSample(fps float64) {
	if c != nil && c.OnFpsSample != nil {
		c.OnFpsSample(fps)
	}
}
