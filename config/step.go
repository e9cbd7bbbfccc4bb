package config

import "github.com/lixenwraith/maze-runner/parameter"

// Bounded adjusters for the tuning keys. dir is +1 or -1.

func StepPopulation(size, dir int) int {
	return clampInt(size+dir*parameter.GAPopulationStep, parameter.GAPopulationMin, parameter.GAPopulationMax)
}

// StepMutation doubles or halves the rate
func StepMutation(rate float64, dir int) float64 {
	if dir > 0 {
		rate *= 2
	} else {
		rate /= 2
	}
	return min(max(rate, parameter.GAMutationRateMin), parameter.GAMutationRateMax)
}

func StepSpeed(speed, dir int) int {
	return clampInt(speed+dir, parameter.SimSpeedMin, parameter.SimSpeedMax)
}

func StepGrowBy(by, dir int) int {
	return clampInt(by+dir, parameter.GAGrowMovesByMin, parameter.GAGrowMovesByMax)
}

func StepGrowEvery(every, dir int) int {
	return clampInt(every+dir, parameter.GAGrowEveryMin, parameter.GAGrowEveryMax)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
