package parameter

// Built-in level geometry (tile units, x across, y down)
const (
	LevelWidth  = 22
	LevelHeight = 10

	// LevelSeed drives the back-tracker carving the passages
	LevelSeed = 42

	// Default start cell inside the safe area
	LevelStartX = 3
	LevelStartY = 4
)

// Carved areas, inclusive bounds
const (
	LevelSafeMinX, LevelSafeMaxX = 2, 4
	LevelSafeMinY, LevelSafeMaxY = 2, 7

	LevelGoalMinX, LevelGoalMaxX = 17, 19
	LevelGoalMinY, LevelGoalMaxY = 2, 7

	LevelCorridorMinX, LevelCorridorMaxX = 5, 15
	LevelCorridorMinY, LevelCorridorMaxY = 3, 7
)

// Patrol obstacles
const (
	// PatrolSpeed in cells per tick
	PatrolSpeed = 0.5

	// PatrolReach is the per-axis overlap distance: half a cell plus dot radius
	PatrolReach = 0.75
)
