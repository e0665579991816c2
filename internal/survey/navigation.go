package survey

// Navigation tracks which step of the catalog is displayed.
//
// TotalSteps is 0 until the catalog is loaded; that value means
// "uninitialized" rather than an empty survey to navigate.
type Navigation struct {
	CurrentStep int `json:"current_step"`
	TotalSteps  int `json:"total_steps"`
}

// SetTotalSteps records the catalog length. CurrentStep is left where it is,
// even when n is smaller than the current position.
func (n Navigation) SetTotalSteps(total int) Navigation {
	if total < 0 {
		total = 0
	}
	n.TotalSteps = total
	return n
}

// Next advances one step unless already at the last step.
func (n Navigation) Next() Navigation {
	if n.CurrentStep < n.TotalSteps-1 {
		n.CurrentStep++
	}
	return n
}

// Previous goes back one step unless already at the first step.
func (n Navigation) Previous() Navigation {
	if n.CurrentStep > 0 {
		n.CurrentStep--
	}
	return n
}

// Initialized reports whether a catalog length has been set.
func (n Navigation) Initialized() bool {
	return n.TotalSteps > 0
}

// AtFirst reports whether the first step is displayed.
func (n Navigation) AtFirst() bool {
	return n.CurrentStep <= 0
}

// AtLast reports whether the last step is displayed.
func (n Navigation) AtLast() bool {
	return n.Initialized() && n.CurrentStep >= n.TotalSteps-1
}
