package search

import (
	"context"
	"log"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	artistRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/repository"
	"github.com/meilisearch/meilisearch-go"
)

const artistIndexUID = "artists"

// ArtistDocument is the shape indexed into Meilisearch for one verified
// artist. The fid doubles as the document primary key.
type ArtistDocument struct {
	Fid         int64  `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	PfpURL      string `json:"pfpUrl"`
}

type SearchService interface {
	// IndexArtist adds or refreshes one artist document. A nil client makes
	// this a no-op so the service runs without a search backend.
	IndexArtist(ctx context.Context, user *entity.User) error
	Search(ctx context.Context, query string, limit int) ([]ArtistDocument, error)
}

type searchService struct {
	client     meilisearch.ServiceManager
	artistRepo artistRepo.ArtistRepository
}

func NewSearchService(client meilisearch.ServiceManager, repo artistRepo.ArtistRepository) SearchService {
	s := &searchService{client: client, artistRepo: repo}
	if client != nil {
		s.configureIndex()
	}
	return s
}

func (s *searchService) configureIndex() {
	searchable := []string{"username", "displayName", "bio"}
	if _, err := s.client.Index(artistIndexUID).UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("failed to update artist searchable attributes: %v", err)
	}

	sortable := []string{"fid"}
	if _, err := s.client.Index(artistIndexUID).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("failed to update artist sortable attributes: %v", err)
	}
}

func (s *searchService) IndexArtist(ctx context.Context, user *entity.User) error {
	if s.client == nil {
		return nil
	}

	doc := documentFromUser(user)
	primaryKey := "fid"
	_, err := s.client.Index(artistIndexUID).AddDocuments([]ArtistDocument{doc}, &primaryKey)
	return err
}

func (s *searchService) Search(ctx context.Context, query string, limit int) ([]ArtistDocument, error) {
	if s.client == nil {
		return s.searchDatabase(ctx, query, limit)
	}

	res, err := s.client.Index(artistIndexUID).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		log.Printf("meilisearch query failed, falling back to database: %v", err)
		return s.searchDatabase(ctx, query, limit)
	}

	docs := make([]ArtistDocument, 0, len(res.Hits))
	for _, hit := range res.Hits {
		var doc ArtistDocument
		if err := hit.Decode(&doc); err != nil {
			log.Printf("failed to decode artist search hit: %v", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *searchService) searchDatabase(ctx context.Context, query string, limit int) ([]ArtistDocument, error) {
	users, err := s.artistRepo.SearchVerified(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	docs := make([]ArtistDocument, 0, len(users))
	for i := range users {
		docs = append(docs, documentFromUser(&users[i]))
	}
	return docs, nil
}

func documentFromUser(user *entity.User) ArtistDocument {
	doc := ArtistDocument{
		Fid:         user.Fid,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
	if user.Bio != nil {
		doc.Bio = *user.Bio
	}
	if user.PfpURL != nil {
		doc.PfpURL = *user.PfpURL
	}
	return doc
}
