package scene

import "strconv"

// HighestNumericID scans node ids, parsing each as a decimal integer, and
// returns the maximum found. Non-numeric ids do not contribute; an empty or
// fully non-numeric set yields 0.
func HighestNumericID(nodes []SceneNode) int {
	highest := 0
	for _, node := range nodes {
		parsed, err := strconv.Atoi(node.ID)
		if err != nil {
			continue
		}
		if parsed > highest {
			highest = parsed
		}
	}
	return highest
}

// NextID returns the next unique numeric node id for the given node set.
// It must be recomputed from scratch whenever nodes are bulk-replaced so
// externally authored ids cannot collide with newly minted ones.
func NextID(nodes []SceneNode) int {
	return HighestNumericID(nodes) + 1
}
