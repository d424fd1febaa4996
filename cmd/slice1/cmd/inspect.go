package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sooomo/nonempty"
	"github.com/sooomo/nonempty/codec"
)

func newInspectCmd(a *app) *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Describe a non-empty array",
		Long:  `Print the cardinality, length, first and last element of the array in a file, and optionally its chunks.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInspect(cmd, args[0])
		},
	}

	inspectCmd.Flags().Int("chunk", 0, "also print chunks of this size")
	inspectCmd.Flags().Bool("reverse", false, "chunk from the back")
	_ = a.v.BindPFlag("chunk", inspectCmd.Flags().Lookup("chunk"))
	_ = a.v.BindPFlag("reverse", inspectCmd.Flags().Lookup("reverse"))
	return inspectCmd
}

func (a *app) runInspect(cmd *cobra.Command, path string) error {
	m, err := a.marshalerFor("format", path)
	if err != nil {
		return err
	}
	chunk := a.v.GetInt("chunk")
	if chunk < 0 {
		return fmt.Errorf("chunk size must not be negative, got %d", chunk)
	}

	items, err := readSlice1(m, path)
	if err != nil {
		return err
	}
	a.logger.Debug("decoded", "file", path, "format", m.Name(), "len", items.Len())

	card, _ := items.Cardinality()
	out := cmd.OutOrStdout()

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")
	_ = table.Append("cardinality", card.String())
	_ = table.Append("length", items.Len().String())
	_ = table.Append("first", fmt.Sprint(items.First()))
	_ = table.Append("last", fmt.Sprint(items.Last()))
	if err := table.Render(); err != nil {
		return err
	}
	if chunk == 0 {
		return nil
	}

	chunks := items.Chunks(chunk)
	if a.v.GetBool("reverse") {
		chunks = items.RChunks(chunk)
	}

	fmt.Fprintln(out)
	table = tablewriter.NewWriter(out)
	table.Header("Chunk", "Len", "Values")
	i := 0
	for c := range chunks.Seq() {
		_ = table.Append(strconv.Itoa(i), c.Len().String(), c.String())
		i++
	}
	return table.Render()
}

func readSlice1(m codec.PayloadMarshaler, path string) (nonempty.Slice1[any], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nonempty.Slice1[any]{}, err
	}
	items, err := codec.Decode[any](m, data)
	if err != nil {
		return nonempty.Slice1[any]{}, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
