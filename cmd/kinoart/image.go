package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmcdole/kinoart/internal/artwork"
	"github.com/mmcdole/kinoart/internal/domain"
)

const requestTimeout = 30 * time.Second

type imageFlags struct {
	shape          string
	thumb          bool
	banner         bool
	logo           bool
	backdrop       bool
	noInheritThumb bool
	width          int
	ratio          float64
	quality        int
	tag            string
	explain        bool
	json           bool
}

func newImageCmd() *cobra.Command {
	var f imageFlags

	cmd := &cobra.Command{
		Use:   "image <item-id>",
		Short: "Resolve the image URL for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(cmd.Context(), args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.shape, "shape", "", "card shape (portrait, thumb, square, banner); derived from the item type when empty")
	flags.BoolVar(&f.thumb, "thumb", false, "prefer thumb images")
	flags.BoolVar(&f.banner, "banner", false, "prefer banner images")
	flags.BoolVar(&f.logo, "logo", false, "prefer logo images")
	flags.BoolVar(&f.backdrop, "backdrop", false, "prefer backdrop images")
	flags.BoolVar(&f.noInheritThumb, "no-inherit-thumb", false, "do not fall back to series or parent thumbs")
	flags.IntVar(&f.width, "width", -1, "maximum width in CSS pixels (default from config)")
	flags.Float64Var(&f.ratio, "ratio", 0, "device pixel ratio (default from config)")
	flags.IntVar(&f.quality, "quality", 0, "image quality (default from config)")
	flags.StringVar(&f.tag, "tag", "", "explicit image tag, bypasses the priority rules")
	flags.BoolVar(&f.explain, "explain", false, "show which rule picked the image")
	flags.BoolVar(&f.json, "json", false, "print JSON")

	return cmd
}

// options merges the flags over the configured defaults
func (f imageFlags) options(base artwork.Options) (artwork.Options, error) {
	opts := base
	if f.shape != "" {
		opts.Shape = artwork.ParseShape(f.shape)
		if opts.Shape == "" {
			return artwork.Options{}, fmt.Errorf("unknown shape %q (want portrait, thumb, square or banner)", f.shape)
		}
	}
	opts.PreferThumb = f.thumb
	opts.PreferBanner = f.banner
	opts.PreferLogo = f.logo
	opts.PreferBackdrop = f.backdrop
	opts.SkipInheritedThumb = f.noInheritThumb
	opts.Tag = f.tag
	if f.width >= 0 {
		opts.Width = f.width
	}
	if f.ratio > 0 {
		opts.Ratio = f.ratio
	}
	if f.quality > 0 {
		opts.Quality = f.quality
	}
	return opts, nil
}

type imageOutput struct {
	domain.ImageURLInfo
	Rule   string `json:"rule,omitempty"`
	Type   string `json:"type,omitempty"`
	ItemID string `json:"itemId,omitempty"`
	Height int    `json:"height,omitempty"`
}

func runImage(ctx context.Context, itemID string, f imageFlags) error {
	// Flags are checked before connecting to the server
	if _, err := f.options(artwork.Options{}); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	opts, err := f.options(a.imageDefaults())
	if err != nil {
		return err
	}
	info, sel, err := a.svc.ImageInfo(ctx, itemID, opts)
	if err != nil {
		return err
	}

	if f.json {
		out := imageOutput{ImageURLInfo: info}
		if f.explain {
			out.Rule = sel.Rule
			out.Type = string(sel.Type)
			out.ItemID = sel.ItemID
			out.Height = sel.Height
		}
		return printJSON(out)
	}

	if info.URL == "" {
		fmt.Println(styleDim.Render("no image"))
		return nil
	}
	if !f.explain {
		fmt.Println(info.URL)
		return nil
	}

	printField("URL", info.URL)
	printField("Rule", sel.Rule)
	printField("Type", string(sel.Type))
	printField("Owner", sel.ItemID)
	printField("Tag", sel.Tag)
	if sel.Height > 0 {
		printField("Height", strconv.Itoa(sel.Height))
	}
	printField("Blurhash", info.Blurhash)
	return nil
}

func newLogoCmd() *cobra.Command {
	var (
		width   int
		ratio   float64
		quality int
		tag     string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "logo <item-id>",
		Short: "Resolve the logo URL for an item or its parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			opts := artwork.LogoOptions{
				Quality: a.cfg.Images.Quality,
				Width:   a.cfg.Images.Width,
				Ratio:   a.cfg.Images.Ratio,
				Tag:     tag,
			}
			if width >= 0 {
				opts.Width = width
			}
			if ratio > 0 {
				opts.Ratio = ratio
			}
			if quality > 0 {
				opts.Quality = quality
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			info, err := a.svc.Logo(ctx, args[0], opts)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(info)
			}
			if info.URL == "" {
				fmt.Println(styleDim.Render("no logo"))
				return nil
			}
			fmt.Println(info.URL)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&width, "width", -1, "maximum width in CSS pixels (default from config)")
	flags.Float64Var(&ratio, "ratio", 0, "device pixel ratio (default from config)")
	flags.IntVar(&quality, "quality", 0, "image quality (default from config)")
	flags.StringVar(&tag, "tag", "", "explicit logo tag")
	flags.BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func printField(label, value string) {
	if value == "" {
		value = styleDim.Render("-")
	}
	fmt.Println(styleLabel.Render(label) + value)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
