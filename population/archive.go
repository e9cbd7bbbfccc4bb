package population

import (
	"fmt"

	"github.com/lixenwraith/maze-runner/genome"
)

// Entry is the best genome of one completed generation
type Entry struct {
	Generation int
	Genome     genome.Genome
	Fitness    float64
	Reached    bool
	Steps      int // steps to goal when Reached, moves taken otherwise
}

// Archive is the append-only record of best-of-generation genomes.
// Only the owning Population appends; everyone else reads.
type Archive struct {
	entries []Entry
}

func (a *Archive) append(e Entry) {
	a.entries = append(a.entries, e)
}

// Count returns the number of completed generations recorded
func (a *Archive) Count() int { return len(a.entries) }

// GenomeAt returns the best genome of the generation at index
func (a *Archive) GenomeAt(index int) (genome.Genome, error) {
	e, err := a.EntryAt(index)
	if err != nil {
		return genome.Genome{}, err
	}
	return e.Genome, nil
}

// EntryAt returns the full record at index
func (a *Archive) EntryAt(index int) (Entry, error) {
	if index < 0 || index >= len(a.entries) {
		return Entry{}, fmt.Errorf("%w: %d not in [0, %d)", ErrArchiveIndex, index, len(a.entries))
	}
	return a.entries[index], nil
}
