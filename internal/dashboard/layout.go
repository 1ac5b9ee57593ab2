package dashboard

// NextID returns one more than the largest panel id in the dashboard. Panels
// without an id count as 0. Panels folded inside collapsed rows are included
// because Grafana restores them into the same id space when the row expands.
func (d *Dashboard) NextID() (int, error) {
	if len(d.headers) == 0 {
		return 0, &ConfigurationError{Err: ErrNoPanels}
	}
	return maxID(d.headers) + 1, nil
}

func maxID(headers []PanelHeader) int {
	highest := 0
	for _, header := range headers {
		if header.ID != nil && *header.ID > highest {
			highest = *header.ID
		}
		if nested := maxID(header.Panels); nested > highest {
			highest = nested
		}
	}
	return highest
}

// NextY returns the first free row below every top-level panel. Panels
// without a gridPos do not occupy the grid.
func (d *Dashboard) NextY() (int, error) {
	if len(d.headers) == 0 {
		return 0, &ConfigurationError{Err: ErrNoPanels}
	}
	next := 0
	for _, header := range d.headers {
		if header.GridPos == nil {
			continue
		}
		if bottom := header.GridPos.Bottom(); bottom > next {
			next = bottom
		}
	}
	return next, nil
}
