// Package dimacs reads and writes CNF formulas and models in the DIMACS
// format.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rhartert/dimacs"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/sat"
)

type Instance struct {
	Variables int
	Clauses   [][]int
	Comments  []string

	// Names maps variable indices to the names declared by "c name=index"
	// comment lines, as written by Write.
	Names map[int]string
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if !gzipped {
		return file, nil
	}
	zr, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &gzipFile{Reader: zr, file: file}, nil
}

// gzipFile closes both the decompressor and the underlying file.
type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if ferr := g.file.Close(); err == nil {
		err = ferr
	}
	return err
}

// ParseDIMACS parses the CNF instance in filename, gzip compressed if gzipped
// is set.
func ParseDIMACS(filename string, gzipped bool) (*Instance, error) {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer rc.Close()

	return Read(rc)
}

// Read parses a CNF instance from r.
func Read(r io.Reader) (*Instance, error) {
	b := &instanceBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	if b.instance == nil {
		return nil, fmt.Errorf("missing problem line")
	}
	return b.instance, nil
}

// instanceBuilder implements dimacs.Builder.
type instanceBuilder struct {
	instance *Instance
	comments []string
}

func (b *instanceBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instance of type %q are not supported", problem)
	}
	if b.instance != nil {
		return fmt.Errorf("found a second problem line")
	}
	b.instance = &Instance{
		Variables: nVars,
		Clauses:   make([][]int, 0, nClauses),
		Comments:  b.comments,
	}
	for _, c := range b.comments {
		b.name(c)
	}
	return nil
}

func (b *instanceBuilder) Clause(tmpClause []int) error {
	if b.instance == nil {
		return fmt.Errorf("found clause %v before the problem line", tmpClause)
	}
	for _, l := range tmpClause {
		if l == 0 || l > b.instance.Variables || -l > b.instance.Variables {
			return fmt.Errorf("literal %d out of range in clause %v", l, tmpClause)
		}
	}
	clause := make([]int, len(tmpClause))
	copy(clause, tmpClause)
	b.instance.Clauses = append(b.instance.Clauses, clause)
	return nil
}

func (b *instanceBuilder) Comment(c string) error {
	if b.instance == nil {
		b.comments = append(b.comments, c)
		return nil
	}
	b.instance.Comments = append(b.instance.Comments, c)
	b.name(c)
	return nil
}

// name records comments of the form "name=index".
func (b *instanceBuilder) name(c string) {
	if b.instance == nil {
		return
	}
	c = strings.TrimSpace(c)
	c = strings.TrimSpace(strings.TrimPrefix(c, "c "))
	name, idx, ok := strings.Cut(c, "=")
	if !ok || strings.ContainsAny(name, " \t") {
		return
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 1 || i > b.instance.Variables {
		return
	}
	if b.instance.Names == nil {
		b.instance.Names = map[int]string{}
	}
	b.instance.Names[i] = name
}

// Instantiate adds the instance's variables and clauses to solver s.
func Instantiate(s *sat.Solver, instance *Instance) error {
	for i := 0; i < instance.Variables; i++ {
		s.AddVariable()
	}
	for _, c := range instance.Clauses {
		clause := make([]sat.Literal, len(c))
		for i, l := range c {
			clause[i] = sat.FromDIMACS(l)
		}
		if err := s.AddClause(clause); err != nil {
			return err
		}
	}
	return nil
}

// VariableNames returns the names of variables 1 to n in order. Variables
// without a declared name are called x1, x2, ...
func (instance *Instance) VariableNames() []string {
	names := make([]string, instance.Variables)
	for i := range names {
		names[i] = instance.varName(i + 1)
	}
	return names
}

func (instance *Instance) varName(v int) string {
	if n, ok := instance.Names[v]; ok {
		return n
	}
	return "x" + strconv.Itoa(v)
}

// Expr returns the conjunction of the instance's clauses.
func (instance *Instance) Expr() boolexpr.Expr {
	clauses := make([]boolexpr.Expr, len(instance.Clauses))
	for i, c := range instance.Clauses {
		lits := make([]boolexpr.Expr, len(c))
		for j, l := range c {
			if l < 0 {
				lits[j] = boolexpr.Not(boolexpr.Var(instance.varName(-l)))
			} else {
				lits[j] = boolexpr.Var(instance.varName(l))
			}
		}
		clauses[i] = boolexpr.Or(lits...)
	}
	return boolexpr.And(clauses...)
}
