// Package decomposition provides dimensionality-reduction transforms for
// generating outliers in a low-dimensional latent space.
package decomposition

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transformer projects data into a latent space.
type Transformer interface {
	// FitTransform fits the transform on X and returns the projection.
	FitTransform(X [][]float64) ([][]float64, error)
}

// InverseTransformer is a Transformer that can project latent points back to
// the original feature space. Outlier generation through a decomposition
// requires this capability.
type InverseTransformer interface {
	Transformer

	// InverseTransform maps latent points back to feature space.
	InverseTransform(Z [][]float64) ([][]float64, error)
}

// PCA projects data onto its top principal components via a thin SVD of the
// mean-centered matrix. It satisfies InverseTransformer: the inverse
// projection reconstructs feature-space points from latent ones.
type PCA struct {
	components int

	mean  []float64
	basis *mat.Dense // nFeatures x components
}

// NewPCA returns a PCA keeping the given number of components.
func NewPCA(components int) *PCA {
	return &PCA{components: components}
}

// Components returns the configured latent dimensionality.
func (p *PCA) Components() int { return p.components }

// FitTransform fits the principal components on X and returns the latent
// projection with one row per input sample.
func (p *PCA) FitTransform(X [][]float64) ([][]float64, error) {
	n := len(X)
	if n == 0 || len(X[0]) == 0 {
		return nil, errors.New("cannot fit PCA on an empty matrix")
	}
	d := len(X[0])
	if p.components < 1 {
		return nil, fmt.Errorf("number of components must be >= 1, got %d", p.components)
	}
	if p.components > d || p.components > n {
		return nil, fmt.Errorf("cannot keep %d components for a %dx%d matrix", p.components, n, d)
	}

	// Mean-center.
	p.mean = make([]float64, d)
	for _, row := range X {
		if len(row) != d {
			return nil, errors.New("ragged matrix passed to PCA")
		}
		for j, v := range row {
			p.mean[j] += v
		}
	}
	for j := range p.mean {
		p.mean[j] /= float64(n)
	}
	centered := mat.NewDense(n, d, nil)
	for i, row := range X {
		for j, v := range row {
			centered.Set(i, j, v-p.mean[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, errors.New("SVD factorization failed")
	}
	var v mat.Dense
	svd.VTo(&v)
	p.basis = mat.DenseCopyOf(v.Slice(0, d, 0, p.components))

	var latent mat.Dense
	latent.Mul(centered, p.basis)
	return denseToRows(&latent), nil
}

// InverseTransform reconstructs feature-space points from latent points.
func (p *PCA) InverseTransform(Z [][]float64) ([][]float64, error) {
	if p.basis == nil {
		return nil, errors.New("PCA is not fitted")
	}
	if len(Z) == 0 {
		return [][]float64{}, nil
	}
	k := p.components
	for i, row := range Z {
		if len(row) != k {
			return nil, fmt.Errorf("latent row %d has %d values, want %d", i, len(row), k)
		}
	}
	latent := mat.NewDense(len(Z), k, nil)
	for i, row := range Z {
		latent.SetRow(i, row)
	}
	var back mat.Dense
	back.Mul(latent, p.basis.T())
	rows := denseToRows(&back)
	for _, row := range rows {
		for j := range row {
			row[j] += p.mean[j]
		}
	}
	return rows, nil
}

func denseToRows(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		mat.Row(row, i, m)
		rows[i] = row
	}
	return rows
}
