package parameter

// Genetic Algorithm - Population Defaults
const (
	// GAPopulationSize is the number of agents in each generation
	GAPopulationSize = 500

	// GAMutationRate is the per-move resample probability (0.0-1.0)
	GAMutationRate = 0.01

	// GAInitialMoves is the genome length of the first generation
	GAInitialMoves = 10

	// GAGrowMovesBy is the move budget increment applied on the growth cadence
	GAGrowMovesBy = 5

	// GAGrowEvery is the growth cadence in generations
	GAGrowEvery = 5

	// GASelectionExponent biases the mating pool: weight = fitness^exponent
	GASelectionExponent = 2.0

	// GAEliteCount is preserved best genomes per generation (0 disables elitism)
	GAEliteCount = 0

	// GACrossoverMixProbability for uniform crossover
	GACrossoverMixProbability = 0.5
)

// Genetic Algorithm - Tuning Bounds
const (
	GAPopulationMin  = 100
	GAPopulationMax  = 10000
	GAPopulationStep = 100

	GAMutationRateMin = 0.0001
	GAMutationRateMax = 0.5

	GAGrowMovesByMin = 0
	GAGrowMovesByMax = 500

	GAGrowEveryMin = 1
	GAGrowEveryMax = 100

	GAEliteCountMax = 100
)

// Genetic Algorithm - Fitness
const (
	// GAGoalReward scales the reached-goal tier: 1 + GAGoalReward/steps^2
	GAGoalReward = 10000.0
)

// Simulation speed
const (
	// SimSpeedDefault is ticks per rendered frame
	SimSpeedDefault = 1
	SimSpeedMin     = 1
	SimSpeedMax     = 5

	// SimFrameMs is the interactive frame interval
	SimFrameMs = 16

	// SimReplayLingerFrames holds a finished replay agent on screen before the next one
	SimReplayLingerFrames = 30
)
