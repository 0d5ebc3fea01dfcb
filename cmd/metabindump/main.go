// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command metabindump inspects a byte stream produced by metabin's
// optimistic binary codec, printing the reconstructed class-header list,
// presence bitmap, and flattened field values for a registered root record.
//
// A dump tool is only as useful as the schemas it knows about: this binary
// ships with the demo schemas in schemas.go registered at startup so the
// command is runnable standalone. A project embedding metabin would instead
// build its own dump binary importing package metabin alongside its own
// RegisterRecord calls and reusing (*metabin.Codec).Inspect.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metabin/metabin"
)

var rootCmd = &cobra.Command{
	Use:   "metabindump",
	Short: "Inspect a metabin optimistic-binary stream",
	Long: `metabindump reads a byte stream written by metabin's write_binary
and prints its class-header list, presence bitmap, and field values without
reconstructing the root record as a live Go value.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the record names this binary knows how to dump",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range demoRecordNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <record-name> <file>",
	Short: "Dump a stream's contents for the given root record",
	Args:  cobra.ExactArgs(2),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	root, err := metabin.LookupByName(name)
	if err != nil {
		return fmt.Errorf("metabindump: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("metabindump: %w", err)
	}
	defer f.Close()

	return metabin.NewCodec().Inspect(cmd.OutOrStdout(), f, root)
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
