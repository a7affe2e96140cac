// Command a2ldump is a thin front-end over the a2l library: it reads
// a root A2L file, parses it, and prints either a re-emitted dump or
// the nodes matching a given kind. All parsing logic lives in the
// library; this binary only wires flags to it.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	a2l "github.com/a2l-go/a2l"
)

var (
	includeDirs []string
	findKind    string
	doDump      bool
	indentSize  int
	lineEnding  string
	verbose     bool

	log = logrus.New()
)

func main() {
	root := &cobra.Command{
		Use:   "a2ldump <file.a2l>",
		Short: "parse an ASAM A2L file and dump its AST or find nodes by kind",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().StringArrayVarP(&includeDirs, "include", "I", nil, "search path for /include directives (repeatable)")
	root.Flags().StringVar(&findKind, "find", "", "print every node of this kind, one per line")
	root.Flags().BoolVar(&doDump, "dump", false, "print the re-emitted textual form of the AST")
	root.Flags().IntVar(&indentSize, "indent", 4, "indent width in --dump output")
	root.Flags().StringVar(&lineEnding, "line-ending", "\n", "line ending in --dump output")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log the root file being read and the include search paths")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	path := args[0]

	log.WithField("path", path).Debug("reading root file")
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	log.WithField("includeDirs", includeDirs).Debug("resolving includes")
	tree, err := a2l.Parse(string(data), includeDirs, nil)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	switch {
	case findKind != "":
		for _, n := range tree.FindByKind(findKind) {
			fmt.Printf("%s %s\n", n.Kind, n.Pos)
		}
	case doDump:
		fmt.Println(tree.Dump(indentSize, lineEnding, " "))
	default:
		fmt.Println(tree.DumpDefault())
	}
	return nil
}
