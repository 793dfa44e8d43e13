package components

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"Plant", "Rabbit", "Fox"}
}

// KindCount returns the number of kinds.
func KindCount() int {
	return len(KindNames())
}

// ParseKind returns the kind with the given display name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range KindNames() {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}
