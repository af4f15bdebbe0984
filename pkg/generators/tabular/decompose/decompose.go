// Package decompose composes a dimensionality-reduction transform with any
// tabular outlier strategy: outliers are generated in the latent space and
// projected back, which lets the low-dimensional strategies work on
// high-dimensional data.
package decompose

import (
	"errors"
	"fmt"

	"github.com/hed1ad/badgers/pkg/decomposition"
	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/preprocessing"
)

// Generator chains standardization, a reduction transform, and a delegate
// strategy. Percentage and random source live on the delegate.
type Generator struct {
	transformer decomposition.InverseTransformer
	delegate    generators.TabularGenerator
}

// New creates a Generator. The transformer must support the inverse
// projection; construction fails when it does not, since latent outliers
// could never be mapped back to feature space.
func New(transformer decomposition.Transformer, delegate generators.TabularGenerator) (*Generator, error) {
	if transformer == nil {
		return nil, errors.New("decomposition transformer must not be nil")
	}
	if delegate == nil {
		return nil, errors.New("delegate outlier generator must not be nil")
	}
	inv, ok := transformer.(decomposition.InverseTransformer)
	if !ok {
		return nil, fmt.Errorf("decomposition transformer %T must implement InverseTransform", transformer)
	}
	return &Generator{transformer: inv, delegate: delegate}, nil
}

// Generate standardizes X, projects it through the reduction transform,
// delegates outlier generation in the latent space, then inverts the
// reduction and the standardization. An advisory *generators.ShortfallError
// from the delegate is passed through alongside the projected result.
func (g *Generator) Generate(X [][]float64, y []string) ([][]float64, []string, error) {
	if err := generators.CheckMatrix(X); err != nil {
		return nil, nil, err
	}
	scaler := preprocessing.NewStandardScaler()
	Xt, err := scaler.FitTransform(X)
	if err != nil {
		return nil, nil, err
	}
	latent, err := g.transformer.FitTransform(Xt)
	if err != nil {
		return nil, nil, err
	}

	points, labels, genErr := g.delegate.Generate(latent, y)
	if genErr != nil {
		var shortfall *generators.ShortfallError
		if !errors.As(genErr, &shortfall) {
			return nil, nil, genErr
		}
	}
	if len(points) == 0 {
		return points, labels, genErr
	}

	back, err := g.transformer.InverseTransform(points)
	if err != nil {
		return nil, nil, err
	}
	out, err := scaler.InverseTransform(back)
	if err != nil {
		return nil, nil, err
	}
	return out, labels, genErr
}
