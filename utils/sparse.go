package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/eulerflux/types"
)

// DOK is a sparse matrix assembled from NVARSxNVARS blocks, one block row/column per cell
type DOK struct {
	M        *sparse.DOK
	Nblock   int
	readOnly bool
	name     string
}

func NewBlockDOK(Nblock int) (R DOK) {
	nr := Nblock * types.NVARS
	R = DOK{
		M:      sparse.NewDOK(nr, nr),
		Nblock: Nblock,
		name:   "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m *DOK) SetReadOnly(name ...string) {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
}

// AddBlock accumulates scale*J into block (kr, kc)
func (m DOK) AddBlock(kr, kc int, scale float64, J *types.Jacobian) {
	m.checkWritable()
	if kr < 0 || kr >= m.Nblock || kc < 0 || kc >= m.Nblock {
		panic(fmt.Errorf("block index (%d,%d) out of range for %d blocks", kr, kc, m.Nblock))
	}
	var (
		i0, j0 = kr * types.NVARS, kc * types.NVARS
	)
	for i := 0; i < types.NVARS; i++ {
		for j := 0; j < types.NVARS; j++ {
			val := scale * J.At(i, j)
			if val == 0 {
				continue
			}
			m.M.Set(i0+i, j0+j, m.M.At(i0+i, j0+j)+val)
		}
	}
}

// Block extracts block (kr, kc)
func (m DOK) Block(kr, kc int) (J types.Jacobian) {
	var (
		i0, j0 = kr * types.NVARS, kc * types.NVARS
	)
	for i := 0; i < types.NVARS; i++ {
		for j := 0; j < types.NVARS; j++ {
			J.Set(i, j, m.M.At(i0+i, j0+j))
		}
	}
	return
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) Data() []float64 {
	return m.RawMatrix().Data
}

func (m CSR) NNZ() int {
	return len(m.Data())
}
