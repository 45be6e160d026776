package theme

import "slices"

// Target is the surface an icon is rendered into, as far as the style
// environment is concerned. Classes holds the class names of the target and
// of its ancestors; Style holds inline declarations such as
// "--color-icon-fill-primary: red".
type Target struct {
	ID      string
	Classes []string
	Style   string
}

// NewTarget returns a target carrying the given classes.
func NewTarget(id string, classes ...string) *Target {
	return &Target{ID: id, Classes: classes}
}

func (t *Target) hasClass(name string) bool {
	return slices.Contains(t.Classes, name)
}
