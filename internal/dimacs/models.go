package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/rhartert/dimacs"
)

// modelBuilder implements dimacs.Builder for models files: one model per
// line, written as a clause whose i-th literal gives the value of variable i.
type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have problem lines")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil // ignore comments
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		if l != i+1 && l != -(i+1) {
			return fmt.Errorf("literal %d at position %d of model %v", l, i+1, tmpClause)
		}
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}

// ParseModels returns the models listed in filename.
func ParseModels(filename string) ([][]bool, error) {
	rc, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer rc.Close()

	return ReadModels(rc)
}

// ReadModels returns the models listed in r.
func ReadModels(r io.Reader) ([][]bool, error) {
	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

// WriteModels writes models in the format read by ReadModels.
func WriteModels(w io.Writer, models [][]bool) error {
	bw := bufio.NewWriter(w)
	for _, m := range models {
		for i, v := range m {
			l := i + 1
			if !v {
				l = -l
			}
			bw.WriteString(strconv.Itoa(l))
			bw.WriteByte(' ')
		}
		bw.WriteString("0\n")
	}
	return bw.Flush()
}
