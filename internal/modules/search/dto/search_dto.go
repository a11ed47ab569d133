package dto

import search "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/service"

type SearchArtistsResponse struct {
	Success bool                    `json:"success"`
	Query   string                  `json:"query"`
	Results []search.ArtistDocument `json:"results"`
}
