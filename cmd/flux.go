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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/eulerflux/InputParameters"
	"github.com/notargets/eulerflux/InviscidFlux"
	"github.com/notargets/eulerflux/physics"
	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// FluxCmd represents the flux command
var FluxCmd = &cobra.Command{
	Use:   "flux",
	Short: "Evaluate the flux and Jacobian at a single interface",
	Long: `
Evaluates the numerical flux between the left and right states of an input deck, along with the
Jacobian blocks when the chosen scheme provides them,

eulerflux flux -I deck.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("flux called")
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		fp := processInput(icFile)
		fp.Print()
		log := newLogger()
		defer log.Sync()
		fr, err := RunFlux(fp, log)
		fr.Print()
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(FluxCmd)
	FluxCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- FluxType\n\t- LeftState, RightState")
}

const exampleFile = `
########################################
Title: "Test Case"
FluxType: HLL # Lax, VanLeer, Roe, HLL, HLLC
JacobianType: Full # Can be "Frozen" for HLL
Minf: 0.5
Alpha: 2.
LeftState: [1.0, 0.1, 0.0, 2.5] # Free stream when omitted
RightState: [0.9, 0.1, 0.0, 2.2] # Left state when omitted
Normal: [1, 0]
NumEdges: 10000
########################################
`

func processInput(icFile string) (fp *InputParameters.FluxParameters) {
	var (
		err  error
		data []byte
	)
	if len(icFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	if data, err = os.ReadFile(icFile); err != nil {
		panic(err)
	}
	fp = &InputParameters.FluxParameters{}
	if err = fp.Parse(data); err != nil {
		panic(err)
	}
	if err = fp.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

type FluxResult struct {
	Scheme      InviscidFlux.FluxType
	Ul, Ur      types.State
	Normal      types.Normal
	Flux        types.Flux
	Dfdl, Dfdr  types.Jacobian
	HasJacobian bool
}

// RunFlux evaluates the deck's interface, a scheme without a Jacobian is reported but is not an error
func RunFlux(fp *InputParameters.FluxParameters, log *utils.Logger) (fr FluxResult, err error) {
	var (
		ig     = physics.NewIdealGas(fp.Gamma)
		fs     = ig.NewFreeStream(fp.Minf, fp.Alpha)
		scheme = InviscidFlux.NewInviscidFlux(fp.GetFluxType(), ig, log)
	)
	fr.Scheme = scheme.FluxType()
	fr.Ul, fr.Ur = fp.GetStates(fs.Qinf)
	fr.Normal = fp.GetNormal()
	fr.Flux = scheme.GetFlux(fr.Ul, fr.Ur, fr.Normal)
	if !utils.IsFinite(fr.Flux) {
		log.Warn("non finite flux", "left", fr.Ul, "right", fr.Ur)
	}
	switch jt := fp.GetJacobianType(); jt {
	case InviscidFlux.JACOBIAN_Frozen:
		frozen, ok := scheme.(InviscidFlux.FrozenJacobianScheme)
		if !ok {
			err = fmt.Errorf("%s has no %s Jacobian", fr.Scheme.Print(), jt.Print())
			return
		}
		frozen.GetFrozenJacobian(fr.Ul, fr.Ur, fr.Normal, &fr.Dfdl, &fr.Dfdr)
		fr.HasJacobian = true
	default:
		err = scheme.GetJacobian(fr.Ul, fr.Ur, fr.Normal, &fr.Dfdl, &fr.Dfdr)
		switch {
		case errors.Is(err, InviscidFlux.ErrJacobianNotImplemented):
			err = nil
		case err == nil:
			fr.HasJacobian = true
		}
	}
	return
}

func (fr FluxResult) Print() {
	fmt.Printf("[%s]\t= Scheme\n", fr.Scheme.Print())
	fmt.Printf("%v\t= Left State\n", fr.Ul)
	fmt.Printf("%v\t= Right State\n", fr.Ur)
	fmt.Printf("%v\t= Normal\n", fr.Normal)
	fmt.Printf("%v\t= Flux\n", fr.Flux)
	if !fr.HasJacobian {
		fmt.Printf("Jacobian not available\n")
		return
	}
	fmt.Printf("dF/dQ left (negated):\n%s", fr.Dfdl.String())
	fmt.Printf("dF/dQ right:\n%s", fr.Dfdr.String())
}
