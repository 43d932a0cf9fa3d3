package sched

// Category classifies a job by the subsystem that produced it. The set is
// closed and the order of the constants is the scheduling priority order:
// Transform drains before Visibility, Visibility before Physics, and so on.
type Category int

const (
	Transform Category = iota
	Visibility
	Physics
	LevelOfDetail
	AI

	// NumCategories sizes the per-category arrays in the scheduler and stats.
	NumCategories int = iota
)

// priorityOrder is the fixed drain order. Index 0 drains first.
// Reordering this array changes scheduling correctness, not just cosmetics.
var priorityOrder = [NumCategories]Category{
	Transform,
	Visibility,
	Physics,
	LevelOfDetail,
	AI,
}

// PriorityOrder returns the categories in drain order, highest priority first.
func PriorityOrder() [NumCategories]Category {
	return priorityOrder
}

// Priority returns the rank of the category. 0 is the highest priority.
func (c Category) Priority() int {
	return int(c)
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	return c >= Transform && c < Category(NumCategories)
}

func (c Category) String() string {
	switch c {
	case Transform:
		return "transform"
	case Visibility:
		return "visibility"
	case Physics:
		return "physics"
	case LevelOfDetail:
		return "lod"
	case AI:
		return "ai"
	default:
		return "unknown"
	}
}
