package types

import "fmt"

// Target identifies one of the derived artifacts.
type Target string

const (
	// TargetTemplate is the Velocity screen template (XImgView.vm).
	TargetTemplate Target = "template"
	// TargetPopup is the standalone popup page (popup.html).
	TargetPopup Target = "popup"
)

// AllTargets lists targets in the order they are written.
func AllTargets() []Target {
	return []Target{TargetTemplate, TargetPopup}
}

// ParseTarget converts a user supplied name into a Target.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetTemplate, TargetPopup:
		return Target(s), nil
	case "vm":
		return TargetTemplate, nil
	}
	return "", fmt.Errorf("unknown target %q (want %q or %q)", s, TargetTemplate, TargetPopup)
}
