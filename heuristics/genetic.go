package heuristics

import (
	"sort"

	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
	"github.com/sarchlab/dcsmapper/taskerr"
)

// CrossoverKind selects which gene-combination operator crossover uses.
type CrossoverKind int

// The six crossover operators.
const (
	SinglePoint CrossoverKind = iota
	TwoPoint
	Uniform
	Arithmetic
	Consensus
	Consensus2
)

// GeneticConfig parameterizes Genetic.
type GeneticConfig struct {
	Objective objective.Config

	PopulationSize int
	Elitism        int
	Discrimination int

	Crossover                      CrossoverKind
	CrossoverProbability           float64
	ChromosomeMutationProbability  float64
	GeneMutationProbability        float64

	MaxGenerations  int
	MaxEvaluations  int // 0 means unlimited
	StopGenerations int // generations without improvement; 0 means unlimited
	StopEvaluations int // evaluations without improvement; 0 means unlimited
}

type individual struct {
	m       *model.Mapping
	fitness float64
}

func fitnessOf(m *model.Mapping, cfg objective.Config) float64 {
	obj := eval(m, cfg)
	if m.Maximize {
		return obj
	}
	return 1.0 / obj
}

func fitnessToCost(maximize bool, fitness float64) float64 {
	if maximize {
		return fitness
	}
	return 1.0 / fitness
}

func forkIndividual(src *individual) *individual {
	return &individual{m: src.m.Fork(), fitness: src.fitness}
}

func pointMutation(m *model.Mapping, taskID int) {
	npes := m.NPEs()
	if npes == 1 {
		return
	}
	pe := model.Default().Int(0, npes-1)
	if pe >= m.Assignments[taskID] {
		pe++
	}
	m.SetMapping(taskID, pe)
}

func createPopulation(seed *model.Mapping, cfg GeneticConfig) []*individual {
	starter := &individual{m: seed.Fork()}
	starter.fitness = fitnessOf(starter.m, cfg.Objective)

	population := make([]*individual, cfg.PopulationSize)
	population[0] = forkIndividual(starter)

	taskID := 0
	for i := 1; i < cfg.PopulationSize; i++ {
		population[i] = forkIndividual(starter)
		pointMutation(population[i].m, taskID)
		population[i].fitness = fitnessOf(population[i].m, cfg.Objective)
		taskID = (taskID + 1) % seed.NTasks()
	}
	return population
}

func crossoverBits(kind CrossoverKind, child, p1, p2 *model.Mapping) {
	switch kind {
	case SinglePoint:
		singlePointCO(child, p1, p2)
	case TwoPoint:
		twoPointCO(child, p1, p2)
	case Uniform:
		uniformCO(child, p1, p2)
	case Arithmetic:
		arithmeticCO(child, p1, p2)
	case Consensus:
		consensusCO(child, p1, p2)
	case Consensus2:
		consensus2CO(child, p1, p2)
	default:
		panic(taskerr.New(taskerr.Configuration, "heuristics.Genetic: unknown crossover kind %d", kind))
	}
}

func singlePointCO(child, p1, p2 *model.Mapping) {
	n := p1.NTasks()
	cut := model.Default().Int(0, n+1)
	i := 0
	for ; i < cut; i++ {
		child.Assignments[i] = p1.Assignments[i]
	}
	for ; i < n; i++ {
		child.Assignments[i] = p2.Assignments[i]
	}
}

func twoPointCO(child, p1, p2 *model.Mapping) {
	n := p1.NTasks()
	a := model.Default().Int(0, n+1)
	b := model.Default().Int(0, n+1)
	if b < a {
		a, b = b, a
	}
	i := 0
	for ; i < a; i++ {
		child.Assignments[i] = p1.Assignments[i]
	}
	for ; i < b; i++ {
		child.Assignments[i] = p2.Assignments[i]
	}
	for ; i < n; i++ {
		child.Assignments[i] = p1.Assignments[i]
	}
}

func uniformCO(child, p1, p2 *model.Mapping) {
	for i := 0; i < p1.NTasks(); i++ {
		if model.Default().Int(0, 2) == 0 {
			child.Assignments[i] = p1.Assignments[i]
		} else {
			child.Assignments[i] = p2.Assignments[i]
		}
	}
}

func arithmeticCO(child, p1, p2 *model.Mapping) {
	npes := p1.NPEs()
	for i := 0; i < p1.NTasks(); i++ {
		newPE := (p1.Assignments[i] + p2.Assignments[i]) % npes
		child.SetMapping(i, newPE)
	}
}

func consensusCO(child, p1, p2 *model.Mapping) {
	npes := p1.NPEs()
	for i := 0; i < p1.NTasks(); i++ {
		if p1.Assignments[i] == p2.Assignments[i] {
			child.Assignments[i] = p1.Assignments[i]
		} else {
			child.SetMapping(i, model.Default().Int(0, npes))
		}
	}
}

func consensus2CO(child, p1, p2 *model.Mapping) {
	npes := p1.NPEs()
	for i := 0; i < p1.NTasks(); i++ {
		x, y := p1.Assignments[i], p2.Assignments[i]
		if x == y {
			child.Assignments[i] = x
		} else {
			child.SetMapping(i, (x+y)%npes)
		}
	}
}

func mutateChromosome(m *model.Mapping, cfg GeneticConfig) {
	if m.NPEs() == 1 {
		return
	}
	for t := 0; t < m.NTasks(); t++ {
		if model.Default().Float01() < cfg.GeneMutationProbability {
			pointMutation(m, t)
		}
	}
}

func crossover(p1, p2 *individual, cfg GeneticConfig) *individual {
	child := forkIndividual(p1)
	recompute := false

	if model.Default().Float01() < cfg.CrossoverProbability {
		a, b := p1, p2
		if model.Default().Float01() < 0.5 {
			a, b = b, a
		}
		crossoverBits(cfg.Crossover, child.m, a.m, b.m)
		recompute = true
	}

	if model.Default().Float01() < cfg.ChromosomeMutationProbability {
		mutateChromosome(child.m, cfg)
		recompute = true
	}

	if recompute {
		child.fitness = fitnessOf(child.m, cfg.Objective)
	}
	return child
}

// giniCoefficient measures how concentrated the selection probabilities
// are, for diagnostics: 0 means every individual is equally likely to
// be selected, approaching 1 means selection is dominated by a few.
func giniCoefficient(selectionProbability []float64) float64 {
	n := float64(len(selectionProbability))
	sorted := append([]float64(nil), selectionProbability...)
	sort.Float64s(sorted)

	var sum, psum float64
	for i := 1; i <= len(sorted); i++ {
		y := sorted[i-1]
		psum += y
		sum += (n + 1 - float64(i)) * y
	}
	if psum == 0 {
		return 0
	}
	return (n + 1 - 2*(sum/psum)) / n
}

func randomIndividual(selectionProbability []float64) int {
	x := model.Default().Float01()
	sum := 0.0
	i := 0
	for ; i < len(selectionProbability)-1; i++ {
		sum += selectionProbability[i]
		if x < sum {
			break
		}
	}
	return i
}

// Genetic runs a generational genetic algorithm over mapping
// individuals and returns the best objective found, leaving m set to
// the mapping that achieved it. The last generation's Gini coefficient
// of selection probability is returned alongside it for diagnostics.
func Genetic(m *model.Mapping, cfg GeneticConfig) (bestCost, gini float64) {
	best := m.Fork()
	bestCost = eval(best, cfg.Objective)

	population := createPopulation(m, cfg)
	selectionProbability := make([]float64, cfg.PopulationSize)

	generationsSinceImprovement := 0
	evalsAtLastImprovement := m.Result.Evals

	for generation := 0; generation < cfg.MaxGenerations; generation++ {
		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		if leaderCost := fitnessToCost(m.Maximize, population[0].fitness); m.CostDiff(bestCost, leaderCost) < 0 {
			bestCost = leaderCost
			population[0].m.CopyInto(best)
			generationsSinceImprovement = 0
			evalsAtLastImprovement = m.Result.Evals
		} else {
			generationsSinceImprovement++
		}

		fitnessSum := 0.0
		kept := cfg.PopulationSize - cfg.Discrimination
		for i := 0; i < kept; i++ {
			fitnessSum += population[i].fitness
		}
		for i := 0; i < kept; i++ {
			selectionProbability[i] = population[i].fitness / fitnessSum
		}
		for i := kept; i < cfg.PopulationSize; i++ {
			selectionProbability[i] = 0
		}
		gini = giniCoefficient(selectionProbability)

		if cfg.MaxEvaluations > 0 && m.Result.Evals >= cfg.MaxEvaluations {
			break
		}
		if cfg.StopGenerations > 0 && generationsSinceImprovement >= cfg.StopGenerations {
			break
		}
		if cfg.StopEvaluations > 0 && m.Result.Evals-evalsAtLastImprovement >= cfg.StopEvaluations {
			break
		}

		next := make([]*individual, cfg.PopulationSize)
		for i := 0; i < cfg.Elitism; i++ {
			next[i] = forkIndividual(population[i])
		}
		for i := cfg.Elitism; i < cfg.PopulationSize; i++ {
			p1 := population[randomIndividual(selectionProbability)]
			p2 := population[randomIndividual(selectionProbability)]
			next[i] = crossover(p1, p2, cfg)
		}
		population = next
	}

	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	if leaderCost := fitnessToCost(m.Maximize, population[0].fitness); m.CostDiff(bestCost, leaderCost) < 0 {
		bestCost = leaderCost
		population[0].m.CopyInto(best)
	}

	best.CopyInto(m)
	return bestCost, gini
}
