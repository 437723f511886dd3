package domain

// ImageType names an image slot on a Jellyfin item
type ImageType string

const (
	ImagePrimary    ImageType = "Primary"
	ImageArt        ImageType = "Art"
	ImageBackdrop   ImageType = "Backdrop"
	ImageBanner     ImageType = "Banner"
	ImageLogo       ImageType = "Logo"
	ImageThumb      ImageType = "Thumb"
	ImageDisc       ImageType = "Disc"
	ImageBox        ImageType = "Box"
	ImageScreenshot ImageType = "Screenshot"
	ImageMenu       ImageType = "Menu"
	ImageChapter    ImageType = "Chapter"
	ImageBoxRear    ImageType = "BoxRear"
	ImageProfile    ImageType = "Profile"
)

// CardShape is the layout shape an image is displayed in
type CardShape string

const (
	ShapePortrait CardShape = "portrait-card"
	ShapeThumb    CardShape = "thumb-card"
	ShapeSquare   CardShape = "square-card"
	ShapeBanner   CardShape = "banner-card"
)

// ImageSelection is the outcome of running the image priority rules on an item.
// Type and Tag are either both set or both empty.
type ImageSelection struct {
	Type   ImageType // Image slot to request
	Tag    string    // Image tag (cache version) to request
	ItemID string    // Item that owns the image (the item itself or an ancestor)
	Height int       // Display height derived from the primary aspect ratio, 0 when not derived
	Rule   string    // Name of the rule that produced the selection
}

// IsZero reports whether no image was selected
func (s ImageSelection) IsZero() bool {
	return s.Type == "" || s.Tag == ""
}

// ImageURLInfo is what a caller needs to render an item image
type ImageURLInfo struct {
	URL      string `json:"url,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Blurhash string `json:"blurhash,omitempty"`
}
