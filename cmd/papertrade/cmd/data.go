package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"
)

func init() {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage feed data files",
	}

	var dest string
	unpackCmd := &cobra.Command{
		Use:   "unpack <archive>",
		Short: "Unpack a .zip feed archive or decompress a .xz feed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			switch {
			case strings.HasSuffix(src, ".zip"):
				if dest == "" {
					dest = "."
				}
				if err := unzip.Extract(src, dest); err != nil {
					return fmt.Errorf("unpack %s: %w", src, err)
				}
				fmt.Println("extracted", src, "to", dest)
				return nil

			case strings.HasSuffix(src, ".xz"):
				out := strings.TrimSuffix(src, ".xz")
				if dest != "" {
					out = dest
				}
				if err := decompressXZ(src, out); err != nil {
					return fmt.Errorf("unpack %s: %w", src, err)
				}
				fmt.Println("wrote", out)
				return nil

			default:
				return fmt.Errorf("unsupported archive %s (want .zip or .xz)", src)
			}
		},
	}
	unpackCmd.Flags().StringVar(&dest, "dest", "", "destination directory or file")

	dataCmd.AddCommand(unpackCmd)
	rootCmd.AddCommand(dataCmd)
}

func decompressXZ(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	r, err := xz.NewReader(in)
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
