package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/mem"
)

var (
	classesConfig string
)

func init() {
	cmd := newClassesCmd()
	cmd.Flags().StringVar(&classesConfig, "config", "default", "Size thresholds (default or compact)")
	rootCmd.AddCommand(cmd)
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes <size>...",
		Short: "Show which allocator serves each request size",
		Long: `The classes command prints, for each request size, the allocator that
serves it, the buddy size class for medium requests and the bytes the block
occupies including its header and footer.

Example:
  memctl classes 24 200 4000 1048576
  memctl classes 100 --config compact --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses(args)
		},
	}
	return cmd
}

type classRow struct {
	Size      int    `json:"size"`
	Allocator string `json:"allocator"`
	Exponent  int    `json:"exponent,omitempty"`
	BlockSize int    `json:"block_size"`
	Waste     int    `json:"waste"`
}

func runClasses(args []string) error {
	cfg, err := configByName(classesConfig)
	if err != nil {
		return err
	}

	rows := make([]classRow, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid size %q: must be a positive integer", arg)
		}
		rt := cfg.Route(n)
		row := classRow{
			Size:      n,
			Allocator: rt.Kind.String(),
			BlockSize: rt.BlockSize,
			Waste:     rt.BlockSize - n,
		}
		if rt.Kind == mem.Medium {
			row.Exponent = rt.Exponent
		}
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}

	printVerbose("Config %s: small <= %d, large >= %d, first buddy block %d\n",
		cfg.Name, cfg.SmallMax, cfg.LargeMin, 1<<cfg.FirstMediumExponent)
	for _, r := range rows {
		class := "-"
		if r.Exponent > 0 {
			class = fmt.Sprintf("2^%d", r.Exponent)
		}
		printInfo("%12d  %-6s  %-5s  block %d  waste %d\n", r.Size, r.Allocator, class, r.BlockSize, r.Waste)
	}
	return nil
}
