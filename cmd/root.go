/*
Copyright © 2025 Arjen Schwarz <developer@arjen.eu>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akileshthuniki/preapply/config"
)

var cfgFile string

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "preapply",
	Short: "A deterministic risk analyzer for Terraform plans",
	Long: `PreApply is a deterministic risk analyzer for infrastructure-change plans.

Given a machine-readable Terraform plan describing resource creations,
updates, reads, and deletions, it computes a structured risk assessment
(a numerical score, a categorical risk tier, a blast-radius measurement,
and a set of enumerated contributing factors) and evaluates that
assessment against a user-supplied policy document to produce a
pass/block/approval decision suitable for gating a continuous-deployment
pipeline.

Features:
  • Parse and normalize Terraform plan JSON
  • Compute blast radius, shared-resource, security, state-destructive and
    cost-alert signals
  • Score risk with a deterministic, reproducible formula
  • Evaluate the result against a policy document for CI/CD gating`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("preapply version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.preapply.yaml)")
}

// resolveConfig loads the configuration document, honoring the
// precedence: --config flag, then PREAPPLY_CONFIG, then $HOME/.preapply.yaml.
func resolveConfig() (*config.Config, error) {
	path := cfgFile
	if path != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", path)
	}
	return config.Load(path)
}
