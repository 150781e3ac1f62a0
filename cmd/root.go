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
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/eulerflux/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eulerflux",
	Short: "Numerical fluxes and flux Jacobians for the 2D Euler equations",
	Long: `
Evaluates the inviscid interface fluxes (Lax-Friedrichs, Van Leer, Roe, HLL, HLLC) and
their Jacobians used by implicit finite volume solvers of the 2D Euler equations.

eulerflux flux -I deck.yaml
eulerflux sweep -I deck.yaml --profile /tmp`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.eulerflux.yaml)")
	rootCmd.PersistentFlags().String("logMode", "development", "log encoding, development or production")
	if err := viper.BindPFlag("logMode", rootCmd.PersistentFlags().Lookup("logMode")); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".eulerflux" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".eulerflux")
	}
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() (log *utils.Logger) {
	var (
		err error
	)
	if log, err = utils.NewLogger(viper.GetString("logMode")); err != nil {
		panic(err)
	}
	return
}
