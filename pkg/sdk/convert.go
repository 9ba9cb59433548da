package omnisearch

import (
	domcatalog "github.com/kailas-cloud/omnisearch/internal/domain/catalog"
	domprofile "github.com/kailas-cloud/omnisearch/internal/domain/profile"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/result"
	"github.com/kailas-cloud/omnisearch/internal/domain/social"
	searchuc "github.com/kailas-cloud/omnisearch/internal/usecase/search"
)

func fromResponse(r *searchuc.Response, page query.Page) *SearchResponse {
	out := &SearchResponse{
		Results: make([]Result, 0, len(r.Results)),
		Total:   r.Total,
		Offset:  page.Offset,
		Size:    page.Size,
		Partial: r.Partial,
		Token:   r.Token,
	}
	for i := range r.Results {
		out.Results = append(out.Results, fromResult(&r.Results[i]))
	}
	for _, t := range r.Failed {
		out.Failed = append(out.Failed, EntityType(t))
	}
	return out
}

func fromResult(r *result.Result) Result {
	c := r.Candidate()
	out := Result{
		Type:        EntityType(r.Type()),
		ID:          r.ID(),
		Name:        c.Name,
		Username:    c.Username,
		ImageURL:    c.ImageURL,
		Description: c.Description,
		Score:       r.Score(),
		Rank:        r.Rank(),
		MatchKind:   string(r.MatchKind()),
	}

	if r.Type() != entity.Parent {
		out.Rating = c.Rating
		out.ReviewCount = c.ReviewCount
		return out
	}

	out.FollowStatus = string(c.FollowStatus)
	out.Visibility = string(c.Visibility)
	out.MutualCount = c.MutualCount
	if c.Visibility.ExposesPrivateFields() {
		out.Bio = c.Contact.Bio
		out.Phone = c.Contact.Phone
		out.Location = c.Contact.Location
	}
	return out
}

func toProfile(p *Profile) domprofile.Profile {
	privacy := social.Private
	if p.Public {
		privacy = social.Public
	}
	return domprofile.Profile{
		ID:              p.ID,
		Name:            p.Name,
		Username:        p.Username,
		ImageURL:        p.ImageURL,
		Bio:             p.Bio,
		Phone:           p.Phone,
		Location:        p.Location,
		Privacy:         privacy,
		PhoneSearchable: p.PhoneSearchable,
	}
}

func toItems(items []Item) []domcatalog.Item {
	out := make([]domcatalog.Item, len(items))
	for i, it := range items {
		out[i] = domcatalog.Item{
			ID:          it.ID,
			Name:        it.Name,
			Username:    it.Username,
			ImageURL:    it.ImageURL,
			Description: it.Description,
			Rating:      it.Rating,
			ReviewCount: it.ReviewCount,
		}
	}
	return out
}
