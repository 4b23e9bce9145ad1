// Command mummyinspect decodes a mummy-encoded stream and prints its tag
// tree for debugging. It never projects a host type into a mummy.Value —
// it only walks and renders an already-decoded Value, so it stays inside
// the codec's own abstract model rather than becoming a host-type binding
// (which spec.md places out of scope for the codec itself).
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mummyfmt/mummy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "mummyinspect",
		Short: "Decode a mummy stream and print its tag tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("mummyinspect: building logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			return run(cmd.OutOrStdout(), logger, inputPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", `input file, or "-" for stdin`)
	return cmd
}

func run(out io.Writer, logger *zap.Logger, inputPath string) error {
	data, err := readInput(inputPath)
	if err != nil {
		logger.Error("failed to read input", zap.String("path", inputPath), zap.Error(err))
		return err
	}

	logger.Info("decoding stream", zap.Int("bytes", len(data)), zap.Bool("compressed", len(data) > 0 && data[0]&0x80 != 0))

	v, err := mummy.Loads(data)
	if err != nil {
		logger.Error("decode failed", zap.Error(err))
		return err
	}

	printValue(out, v, 0)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printValue(out io.Writer, v mummy.Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v.Kind {
	case mummy.KindList, mummy.KindTuple, mummy.KindSet:
		fmt.Fprintf(out, "%s%s(%d)\n", indent, v.Kind, len(v.Items))
		for _, item := range v.Items {
			printValue(out, item, depth+1)
		}
	case mummy.KindHash:
		fmt.Fprintf(out, "%sHash(%d)\n", indent, len(v.Hash))
		for _, entry := range v.Hash {
			fmt.Fprintf(out, "%s  key:\n", indent)
			printValue(out, entry.Key, depth+2)
			fmt.Fprintf(out, "%s  value:\n", indent)
			printValue(out, entry.Value, depth+2)
		}
	case mummy.KindUtf8:
		// Loads already rejects malformed UTF-8 with ErrBadUtf8, so
		// v.Utf8 is always well-formed here.
		fmt.Fprintf(out, "%sUtf8(%q)\n", indent, v.Utf8)
	default:
		fmt.Fprintf(out, "%s%s\n", indent, describeScalar(v))
	}
}

func describeScalar(v mummy.Value) string {
	switch v.Kind {
	case mummy.KindNull:
		return "Null"
	case mummy.KindBool:
		return fmt.Sprintf("Bool(%v)", v.Bool)
	case mummy.KindInt:
		return fmt.Sprintf("Int(%d)", v.Int)
	case mummy.KindHuge:
		return fmt.Sprintf("Huge(%s)", v.Huge.String())
	case mummy.KindFloat:
		return fmt.Sprintf("Float(%g)", v.Float)
	case mummy.KindBytes:
		return fmt.Sprintf("Bytes(%d bytes)", len(v.Bytes))
	case mummy.KindDate:
		return fmt.Sprintf("Date(%04d-%02d-%02d)", v.Date.Year, v.Date.Month, v.Date.Day)
	case mummy.KindTime:
		return fmt.Sprintf("Time(%02d:%02d:%02d.%06d)", v.Time.Hour, v.Time.Minute, v.Time.Second, v.Time.Microsecond)
	case mummy.KindDateTime:
		dt := v.DateTime
		return fmt.Sprintf("DateTime(%04d-%02d-%02d %02d:%02d:%02d.%06d)",
			dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Microsecond)
	case mummy.KindTimeDelta:
		td := v.TimeDelta
		return fmt.Sprintf("TimeDelta(days=%d, seconds=%d, microseconds=%d)", td.Days, td.Seconds, td.Microseconds)
	case mummy.KindDecimal:
		return fmt.Sprintf("Decimal(negative=%v, exponent=%d, digits=%v)", v.Decimal.Negative, v.Decimal.Exponent, v.Decimal.Digits)
	case mummy.KindSpecialNum:
		return fmt.Sprintf("SpecialNum(%v)", v.SpecialNum)
	default:
		return v.Kind.String()
	}
}
