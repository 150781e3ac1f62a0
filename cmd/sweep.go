/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/eulerflux/InputParameters"
	"github.com/notargets/eulerflux/InviscidFlux"
	"github.com/notargets/eulerflux/model_problems/Euler2D"
	"github.com/notargets/eulerflux/physics"
	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// SweepCmd represents the sweep command
var SweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Time the flux and Jacobian evaluation over a ring of edges",
	Long: `
Builds a closed ring of cells around a randomly perturbed free stream and evaluates the residual,
the per edge Jacobian blocks and the assembled sparse Jacobian in parallel,

eulerflux sweep -I deck.yaml --profile /tmp`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sweep called")
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		profDir, _ := cmd.Flags().GetString("profile")
		fp := processInput(icFile)
		fp.Print()
		if len(profDir) != 0 {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(profDir)).Stop()
		}
		log := newLogger()
		defer log.Sync()
		ss, err := RunSweep(context.Background(), fp, log)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		ss.Print()
	},
}

func init() {
	rootCmd.AddCommand(SweepCmd)
	SweepCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- FluxType\n\t- NumEdges")
	SweepCmd.Flags().StringP("profile", "p", "", "directory for a CPU profile, none when empty")
}

type SweepStats struct {
	Scheme                     InviscidFlux.FluxType
	Edges, NonFinite, NNZ      int
	ResidualNorm               float64
	HasJacobian                bool
	ResidualTime, JacobianTime time.Duration
	AssemblyTime               time.Duration
}

func RunSweep(ctx context.Context, fp *InputParameters.FluxParameters, log *utils.Logger) (ss SweepStats, err error) {
	var (
		ig     = physics.NewIdealGas(fp.Gamma)
		fs     = ig.NewFreeStream(fp.Minf, fp.Alpha)
		scheme = InviscidFlux.NewInviscidFlux(fp.GetFluxType(), ig, log)
		K      = fp.NumEdges
		es     = Euler2D.NewEdgeSweep(scheme, Euler2D.NewPeriodicRing(K), K, fp.ParallelDegree, log)
		rng    = rand.New(rand.NewSource(fp.Seed))
		Q      = make([]types.State, K)
		R      []types.State
		fluxes []types.Flux
		dfdl   []types.Jacobian
		dfdr   []types.Jacobian
		start  time.Time
	)
	for k := range Q {
		for n := 0; n < types.NVARS; n++ {
			Q[k][n] = fs.Qinf[n] * (1 + fp.Perturbation*(2*rng.Float64()-1))
		}
	}
	ss.Scheme, ss.Edges = scheme.FluxType(), len(es.Edges)

	start = time.Now()
	if R, fluxes, err = es.ResidualFluxes(ctx, Q); err != nil {
		return
	}
	ss.ResidualTime = time.Since(start)
	ss.NonFinite = Euler2D.NonFiniteCount(fluxes)
	flat := make([]float64, 0, types.NVARS*K)
	for k := range R {
		flat = append(flat, R[k][:]...)
	}
	ss.ResidualNorm = floats.Norm(flat, 2)

	start = time.Now()
	dfdl, dfdr, err = es.JacobianBlocks(ctx, Q, fp.GetJacobianType())
	if errors.Is(err, InviscidFlux.ErrJacobianNotImplemented) {
		err = nil
		return
	}
	if err != nil {
		return
	}
	ss.JacobianTime = time.Since(start)
	ss.HasJacobian = true

	start = time.Now()
	J := es.AssembleJacobian(dfdl, dfdr)
	ss.NNZ = J.ToCSR().NNZ()
	ss.AssemblyTime = time.Since(start)
	log.Debug("sweep complete", "edges", ss.Edges, "nnz", ss.NNZ, "memory", utils.GetMemUsage())
	return
}

func (ss SweepStats) Print() {
	fmt.Printf("[%s]\t= Scheme\n", ss.Scheme.Print())
	fmt.Printf("[%d]\t\t= Edges\n", ss.Edges)
	fmt.Printf("[%d]\t\t= Non finite fluxes\n", ss.NonFinite)
	fmt.Printf("%12.5e\t= Residual L2 norm\n", ss.ResidualNorm)
	fmt.Printf("%v\t= Residual time\n", ss.ResidualTime)
	if !ss.HasJacobian {
		fmt.Printf("Jacobian not available\n")
		return
	}
	fmt.Printf("%v\t= Jacobian time\n", ss.JacobianTime)
	fmt.Printf("%v\t= Assembly time\n", ss.AssemblyTime)
	fmt.Printf("[%d]\t\t= Jacobian nonzeros\n", ss.NNZ)
}
