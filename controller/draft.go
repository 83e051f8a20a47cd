package controller

import "strings"

// Draft holds the pending inputs of a create intent.
type Draft struct {
	Address string `json:"address" yaml:"address"`
	Label   string `json:"label" yaml:"label"`
}

// IsEmpty reports whether no address was entered.
func (d *Draft) IsEmpty() bool {
	return d == nil || strings.TrimSpace(d.Address) == ""
}

// Clear resets the draft.
func (d *Draft) Clear() {
	d.Address = ""
	d.Label = ""
}
