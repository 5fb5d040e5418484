package controller

// ResolveCount returns how often ResolveActions ran.
func (d *Device) ResolveCount() uint64 { return d.resolveCount }

// UpdateCount returns how often the layout was updated.
func (d *Device) UpdateCount() uint64 { return d.updateCount }
