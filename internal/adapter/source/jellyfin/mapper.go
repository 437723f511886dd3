package jellyfin

import (
	"time"

	"github.com/mmcdole/kinoart/internal/domain"
)

// tick is the unit of Jellyfin durations
const tick = 100 * time.Nanosecond

// MapItem converts a Jellyfin item into a domain item
func MapItem(it Item) *domain.Item {
	item := &domain.Item{
		ID:                      it.ID,
		Name:                    it.Name,
		Type:                    domain.ItemKind(it.Type),
		MediaType:               it.MediaType,
		Overview:                it.Overview,
		ProductionYear:          it.ProductionYear,
		IndexNumber:             it.IndexNumber,
		ParentIndexNumber:       it.ParentIndexNumber,
		RunTime:                 time.Duration(it.RunTimeTicks) * tick,
		ChildCount:              it.ChildCount,
		ImageTags:               mapImageTags(it.ImageTags),
		BackdropImageTags:       it.BackdropImageTags,
		PrimaryImageAspectRatio: it.PrimaryImageAspectRatio,
		ImageBlurHashes:         mapBlurHashes(it.ImageBlurHashes),

		ParentID:   it.ParentID,
		SeriesID:   it.SeriesID,
		SeriesName: it.SeriesName,
		SeasonID:   it.SeasonID,
		AlbumID:    it.AlbumID,
		Album:      it.Album,
		ChannelID:  it.ChannelID,

		SeriesPrimaryImageTag:    it.SeriesPrimaryImageTag,
		SeriesThumbImageTag:      it.SeriesThumbImageTag,
		AlbumPrimaryImageTag:     it.AlbumPrimaryImageTag,
		ChannelPrimaryImageTag:   it.ChannelPrimaryImageTag,
		ParentPrimaryImageTag:    it.ParentPrimaryImageTag,
		ParentPrimaryImageItemID: it.ParentPrimaryImageItemID,
		ParentArtImageTag:        it.ParentArtImageTag,
		ParentArtItemID:          it.ParentArtItemID,
		ParentThumbImageTag:      it.ParentThumbImageTag,
		ParentThumbItemID:        it.ParentThumbItemID,
		ParentLogoImageTag:       it.ParentLogoImageTag,
		ParentLogoItemID:         it.ParentLogoItemID,
		ParentBackdropImageTags:  it.ParentBackdropImageTags,
		ParentBackdropItemID:     it.ParentBackdropItemID,

		People: mapPeople(it.People),
	}

	// A person fetched as a full item still carries its primary tag in ImageTags
	if item.Type == domain.KindPerson {
		item.PrimaryImageTag = item.OwnTag(domain.ImagePrimary)
	}

	return item
}

// MapItems converts a list of Jellyfin items
func MapItems(items []Item) []*domain.Item {
	out := make([]*domain.Item, 0, len(items))
	for _, it := range items {
		out = append(out, MapItem(it))
	}
	return out
}

func mapPeople(people []Person) []domain.Person {
	if len(people) == 0 {
		return nil
	}
	out := make([]domain.Person, 0, len(people))
	for _, p := range people {
		out = append(out, domain.Person{
			ID:              p.ID,
			Name:            p.Name,
			Role:            p.Role,
			Type:            p.Type,
			PrimaryImageTag: p.PrimaryImageTag,
			ImageBlurHashes: mapBlurHashes(p.ImageBlurHashes),
		})
	}
	return out
}

func mapImageTags(tags map[string]string) map[domain.ImageType]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[domain.ImageType]string, len(tags))
	for k, v := range tags {
		out[domain.ImageType(k)] = v
	}
	return out
}

func mapBlurHashes(hashes map[string]map[string]string) domain.BlurHashes {
	if len(hashes) == 0 {
		return nil
	}
	out := make(domain.BlurHashes, len(hashes))
	for k, v := range hashes {
		out[domain.ImageType(k)] = v
	}
	return out
}
