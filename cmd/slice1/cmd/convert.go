package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sooomo/nonempty/codec"
)

func newConvertCmd(a *app) *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode a non-empty array in another format",
		Long:  `Decode the array in <in> and write it to <out> in the format given by --to or by the extension of <out>. Empty arrays are rejected.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args[0], args[1])
		},
	}

	convertCmd.Flags().String("to", "", "output format: json, msgpack or yaml (default from file extension)")
	_ = a.v.BindPFlag("to", convertCmd.Flags().Lookup("to"))
	return convertCmd
}

func (a *app) runConvert(cmd *cobra.Command, in, out string) error {
	from, err := a.marshalerFor("format", in)
	if err != nil {
		return err
	}
	to, err := a.marshalerFor("to", out)
	if err != nil {
		return err
	}

	items, err := readSlice1(from, in)
	if err != nil {
		return err
	}
	data, err := codec.Encode(to, items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	a.logger.Debug("converted", "in", in, "out", out, "from", from.Name(), "to", to.Name())
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s elements to %s\n", items.Len(), out)
	return nil
}
