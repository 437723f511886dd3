package jellyfin

// AuthResponse represents the response from Jellyfin's AuthenticateByName endpoint
type AuthResponse struct {
	User        User   `json:"User"`
	AccessToken string `json:"AccessToken"`
	ServerID    string `json:"ServerId"`
}

// User represents a Jellyfin user
type User struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	ServerID    string `json:"ServerId"`
	HasPassword bool   `json:"HasPassword"`
}

// SystemInfo represents the public system info from Jellyfin
type SystemInfo struct {
	LocalAddress          string `json:"LocalAddress"`
	ServerName            string `json:"ServerName"`
	Version               string `json:"Version"`
	ProductName           string `json:"ProductName"`
	OperatingSystem       string `json:"OperatingSystem"`
	ID                    string `json:"Id"`
	StartupWizardComplete bool   `json:"StartupWizardCompleted"`
}

// ItemsResponse represents a paginated list of items from Jellyfin
type ItemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
	StartIndex       int    `json:"StartIndex"`
}

// Item is a BaseItemDto restricted to the fields used for browsing and artwork
type Item struct {
	ID                string `json:"Id"`
	Name              string `json:"Name"`
	Overview          string `json:"Overview,omitempty"`
	Type              string `json:"Type"`
	MediaType         string `json:"MediaType,omitempty"`
	CollectionType    string `json:"CollectionType,omitempty"`
	ProductionYear    int    `json:"ProductionYear,omitempty"`
	RunTimeTicks      int64  `json:"RunTimeTicks,omitempty"` // Duration in 100-nanosecond units
	ParentIndexNumber int    `json:"ParentIndexNumber,omitempty"`
	IndexNumber       int    `json:"IndexNumber,omitempty"`
	ChildCount        *int   `json:"ChildCount,omitempty"` // absent unless requested through Fields

	ImageTags               map[string]string            `json:"ImageTags,omitempty"`
	BackdropImageTags       []string                     `json:"BackdropImageTags,omitempty"`
	PrimaryImageAspectRatio float64                      `json:"PrimaryImageAspectRatio,omitempty"`
	ImageBlurHashes         map[string]map[string]string `json:"ImageBlurHashes,omitempty"`

	ParentID   string `json:"ParentId,omitempty"`
	SeriesID   string `json:"SeriesId,omitempty"`
	SeriesName string `json:"SeriesName,omitempty"`
	SeasonID   string `json:"SeasonId,omitempty"`
	AlbumID    string `json:"AlbumId,omitempty"`
	Album      string `json:"Album,omitempty"`
	ChannelID  string `json:"ChannelId,omitempty"`

	SeriesPrimaryImageTag    string   `json:"SeriesPrimaryImageTag,omitempty"`
	SeriesThumbImageTag      string   `json:"SeriesThumbImageTag,omitempty"`
	AlbumPrimaryImageTag     string   `json:"AlbumPrimaryImageTag,omitempty"`
	ChannelPrimaryImageTag   string   `json:"ChannelPrimaryImageTag,omitempty"`
	ParentPrimaryImageTag    string   `json:"ParentPrimaryImageTag,omitempty"`
	ParentPrimaryImageItemID string   `json:"ParentPrimaryImageItemId,omitempty"`
	ParentArtImageTag        string   `json:"ParentArtImageTag,omitempty"`
	ParentArtItemID          string   `json:"ParentArtItemId,omitempty"`
	ParentThumbImageTag      string   `json:"ParentThumbImageTag,omitempty"`
	ParentThumbItemID        string   `json:"ParentThumbItemId,omitempty"`
	ParentLogoImageTag       string   `json:"ParentLogoImageTag,omitempty"`
	ParentLogoItemID         string   `json:"ParentLogoItemId,omitempty"`
	ParentBackdropImageTags  []string `json:"ParentBackdropImageTags,omitempty"`
	ParentBackdropItemID     string   `json:"ParentBackdropItemId,omitempty"`

	People []Person `json:"People,omitempty"`
}

// Person is a BaseItemPerson entry of an item's People list
type Person struct {
	ID              string                       `json:"Id"`
	Name            string                       `json:"Name"`
	Role            string                       `json:"Role,omitempty"`
	Type            string                       `json:"Type"`
	PrimaryImageTag string                       `json:"PrimaryImageTag,omitempty"`
	ImageBlurHashes map[string]map[string]string `json:"ImageBlurHashes,omitempty"`
}
