package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/kinoart/internal/placeholder"
)

func newPlaceholderCmd() *cobra.Command {
	var (
		width   int
		height  int
		punch   int
		scale   int
		output  string
		inTerm  bool
		opacity float64
	)

	cmd := &cobra.Command{
		Use:   "placeholder <blurhash>",
		Short: "Decode a blurhash into a PNG or draw it in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}

			req := placeholder.Request{
				Hash:   args[0],
				Width:  cfg.Placeholder.Width,
				Height: cfg.Placeholder.Height,
				Punch:  cfg.Placeholder.Punch,
			}
			if width > 0 {
				req.Width = width
			}
			if height > 0 {
				req.Height = height
			}
			if punch > 0 {
				req.Punch = punch
			}

			px, err := placeholder.DecodePixels(req)
			if err != nil {
				return err
			}

			if inTerm {
				cols, rows := 64, 16
				if term.IsTerminal(int(os.Stdout.Fd())) {
					if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
						cols, rows = w, h-1
					}
				}
				fmt.Println(placeholder.RenderTerminal(px, cols, rows, opacity))
				return nil
			}

			if scale <= 0 {
				scale = 1
			}
			return writePNG(output, px, scale)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&width, "width", 0, "decoded width in pixels (default from config)")
	flags.IntVar(&height, "height", 0, "decoded height in pixels (default from config)")
	flags.IntVar(&punch, "punch", 0, "contrast factor (default from config)")
	flags.IntVar(&scale, "scale", 1, "upscale factor for the PNG")
	flags.StringVarP(&output, "output", "o", "", "PNG file to write; stdout when empty")
	flags.BoolVar(&inTerm, "term", false, "draw in the terminal instead of writing a PNG")
	flags.Float64Var(&opacity, "opacity", 1, "terminal rendering opacity")

	return cmd
}

func writePNG(path string, px placeholder.Pixels, scale int) error {
	if path == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("refusing to write PNG data to a terminal; use -o or --term")
		}
		return encodeTo(os.Stdout, px, scale)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := encodeTo(f, px, scale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, styleSuccess.Render("Wrote "+path))
	return nil
}

func encodeTo(w io.Writer, px placeholder.Pixels, scale int) error {
	bw := bufio.NewWriter(w)
	if err := placeholder.EncodePNG(bw, px, px.Width*scale, px.Height*scale); err != nil {
		return err
	}
	return bw.Flush()
}
