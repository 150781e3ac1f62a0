package Euler2D

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/eulerflux/InviscidFlux"
	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// Edge is an interior interface between two cells, Normal points from Left to Right
type Edge struct {
	Left, Right int
	Normal      types.Normal
	Length      float64
}

// EdgeSweep evaluates a single flux scheme over every edge of a mesh
type EdgeSweep struct {
	Scheme     InviscidFlux.FluxScheme
	Edges      []Edge
	Kmax       int // Number of cells
	Partitions *utils.PartitionMap
	log        *utils.Logger
}

func NewEdgeSweep(scheme InviscidFlux.FluxScheme, edges []Edge, Kmax, parallelDegree int, log *utils.Logger) (es *EdgeSweep) {
	if log == nil {
		log = utils.NewNopLogger()
	}
	for i, e := range edges {
		if e.Left < 0 || e.Left >= Kmax || e.Right < 0 || e.Right >= Kmax {
			panic(fmt.Errorf("edge %d connects cells (%d,%d), outside of [0,%d)", i, e.Left, e.Right, Kmax))
		}
	}
	es = &EdgeSweep{
		Scheme:     scheme,
		Edges:      edges,
		Kmax:       Kmax,
		Partitions: utils.NewPartitionMap(parallelDegree, len(edges)),
		log:        log.With("scheme", scheme.FluxType().Print()),
	}
	return
}

// NewPeriodicRing connects K cells in a closed loop, edge i joins cell i to cell i+1
func NewPeriodicRing(K int) (edges []Edge) {
	edges = make([]Edge, K)
	for i := range edges {
		theta := 2 * math.Pi * float64(i) / float64(K)
		edges[i] = Edge{
			Left:   i,
			Right:  (i + 1) % K,
			Normal: types.Normal{math.Cos(theta), math.Sin(theta)},
			Length: 1 + 0.5*math.Sin(3*theta),
		}
	}
	return
}

// parallelEdges runs f over the edges, one goroutine per partition, stopping at the first error
func (es *EdgeSweep) parallelEdges(ctx context.Context, f func(e int) error) (err error) {
	g, ctx := errgroup.WithContext(ctx)
	for np := 0; np < es.Partitions.ParallelDegree; np++ {
		eMin, eMax := es.Partitions.GetBucketRange(np)
		g.Go(func() error {
			for e := eMin; e < eMax; e++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := f(e); err != nil {
					return es.partitionError(e, err)
				}
			}
			return nil
		})
	}
	err = g.Wait()
	return
}

// partitionError locates the failing edge within its partition
func (es *EdgeSweep) partitionError(e int, err error) error {
	bn, eMin, _ := es.Partitions.GetBucket(e)
	return fmt.Errorf("partition %d of %d edges starting at %d: %w",
		bn, es.Partitions.GetBucketDimension(bn), eMin, err)
}

func (es *EdgeSweep) checkState(Q []types.State) (err error) {
	if len(Q) != es.Kmax {
		err = fmt.Errorf("state has %d cells, the edge sweep needs %d", len(Q), es.Kmax)
	}
	return
}

func (es *EdgeSweep) EdgeFluxes(ctx context.Context, Q []types.State) (fluxes []types.Flux, err error) {
	if err = es.checkState(Q); err != nil {
		return
	}
	fluxes = make([]types.Flux, len(es.Edges))
	err = es.parallelEdges(ctx, func(e int) error {
		edge := es.Edges[e]
		fluxes[e] = es.Scheme.GetFlux(Q[edge.Left], Q[edge.Right], edge.Normal)
		return nil
	})
	if err != nil {
		fluxes = nil
	}
	return
}

// Residual is the net outflow of each cell, sum over edges of length * flux
func (es *EdgeSweep) Residual(ctx context.Context, Q []types.State) (R []types.State, err error) {
	R, _, err = es.ResidualFluxes(ctx, Q)
	return
}

// ResidualFluxes is Residual that also returns the edge fluxes it scattered
func (es *EdgeSweep) ResidualFluxes(ctx context.Context, Q []types.State) (R []types.State, fluxes []types.Flux, err error) {
	if fluxes, err = es.EdgeFluxes(ctx, Q); err != nil {
		return
	}
	if nf := NonFiniteCount(fluxes); nf != 0 {
		es.log.Warn("non finite edge fluxes", "count", nf, "edges", len(fluxes))
	}
	// Serial scatter, neighboring edges share cells
	R = make([]types.State, es.Kmax)
	for e, edge := range es.Edges {
		for n := 0; n < types.NVARS; n++ {
			f := edge.Length * fluxes[e][n]
			R[edge.Left][n] += f
			R[edge.Right][n] -= f
		}
	}
	return
}

// JacobianBlocks returns the per edge lower (dfdl) and upper (dfdr) blocks
func (es *EdgeSweep) JacobianBlocks(ctx context.Context, Q []types.State, jt InviscidFlux.JacobianType) (dfdl, dfdr []types.Jacobian, err error) {
	var (
		frozen InviscidFlux.FrozenJacobianScheme
		ok     bool
	)
	if err = es.checkState(Q); err != nil {
		return
	}
	if jt == InviscidFlux.JACOBIAN_Frozen {
		if frozen, ok = es.Scheme.(InviscidFlux.FrozenJacobianScheme); !ok {
			err = fmt.Errorf("%s has no %s Jacobian", es.Scheme.FluxType().Print(), jt.Print())
			return
		}
	}
	dfdl = make([]types.Jacobian, len(es.Edges))
	dfdr = make([]types.Jacobian, len(es.Edges))
	err = es.parallelEdges(ctx, func(e int) (err error) {
		edge := es.Edges[e]
		ul, ur := Q[edge.Left], Q[edge.Right]
		if frozen != nil {
			frozen.GetFrozenJacobian(ul, ur, edge.Normal, &dfdl[e], &dfdr[e])
			return
		}
		if err = es.Scheme.GetJacobian(ul, ur, edge.Normal, &dfdl[e], &dfdr[e]); err != nil {
			err = fmt.Errorf("edge %d: %w", e, err)
		}
		return
	})
	if err != nil {
		dfdl, dfdr = nil, nil
	}
	return
}

// AssembleJacobian builds dR/dQ from the edge blocks
func (es *EdgeSweep) AssembleJacobian(dfdl, dfdr []types.Jacobian) (J utils.DOK) {
	J = utils.NewBlockDOK(es.Kmax)
	for e, edge := range es.Edges {
		var (
			L, R = edge.Left, edge.Right
			ds   = edge.Length
		)
		J.AddBlock(L, L, -ds, &dfdl[e])
		J.AddBlock(L, R, ds, &dfdr[e])
		J.AddBlock(R, L, ds, &dfdl[e])
		J.AddBlock(R, R, -ds, &dfdr[e])
	}
	J.SetReadOnly("dRdQ")
	return
}

func NonFiniteCount(fluxes []types.Flux) (count int) {
	for _, f := range fluxes {
		if !utils.IsFinite(f) {
			count++
		}
	}
	return
}
