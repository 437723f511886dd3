package main

import (
	"strings"
	"testing"

	"github.com/mmcdole/kinoart/internal/artwork"
	"github.com/mmcdole/kinoart/internal/domain"
)

func TestImageFlags_Options(t *testing.T) {
	base := artwork.Options{Quality: 90, Ratio: 1, Width: 300}

	tests := []struct {
		name    string
		flags   imageFlags
		want    artwork.Options
		wantErr string
	}{
		{
			name:  "defaults kept",
			flags: imageFlags{width: -1},
			want:  base,
		},
		{
			name:  "short shape",
			flags: imageFlags{shape: "thumb", width: -1},
			want:  artwork.Options{Shape: domain.ShapeThumb, Quality: 90, Ratio: 1, Width: 300},
		},
		{
			name:  "full shape name",
			flags: imageFlags{shape: "Banner-Card", width: -1},
			want:  artwork.Options{Shape: domain.ShapeBanner, Quality: 90, Ratio: 1, Width: 300},
		},
		{
			name:  "overrides",
			flags: imageFlags{thumb: true, noInheritThumb: true, width: 0, ratio: 2, quality: 70, tag: "t1"},
			want:  artwork.Options{PreferThumb: true, SkipInheritedThumb: true, Quality: 70, Ratio: 2, Tag: "t1"},
		},
		{
			name:    "unknown shape",
			flags:   imageFlags{shape: "hexagon", width: -1},
			wantErr: `unknown shape "hexagon"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.options(base)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("options = %+v, want %+v", got, tt.want)
			}
		})
	}
}
