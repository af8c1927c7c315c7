// Package service implements the comic collection operations on top of the
// repository, including the ownership policy on mutations.
package service

import (
	"context"
	"errors"

	"github.com/rlcurrall/collection-example/internal/domains/comic"
)

type comicService struct {
	repo comic.Repository
}

// NewComicService wires the service to a repository.
func NewComicService(repo comic.Repository) comic.Service {
	return &comicService{repo: repo}
}

func (s *comicService) List(ctx context.Context, req comic.PageRequest) ([]comic.Comic, error) {
	return s.repo.List(ctx, req.Query())
}

// Create assigns ownership to the requester; there is no pre-existing record
// to authorize against.
func (s *comicService) Create(ctx context.Context, owner string, req comic.NewComicRequest) (*comic.Comic, error) {
	return s.repo.Insert(ctx, owner, req.Fields())
}

func (s *comicService) Get(ctx context.Context, id int64) (*comic.Comic, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *comicService) Replace(ctx context.Context, id int64, owner string, req comic.ReplaceComicRequest) (*comic.Comic, error) {
	updated, err := s.repo.ReplaceOwned(ctx, id, owner, req)
	if errors.Is(err, comic.ErrComicNotFound) {
		return nil, s.classifyMiss(ctx, id)
	}
	return updated, err
}

func (s *comicService) Update(ctx context.Context, id int64, owner string, req comic.UpdateComicRequest) (*comic.Comic, error) {
	updated, err := s.repo.UpdateOwned(ctx, id, owner, req)
	if errors.Is(err, comic.ErrComicNotFound) {
		return nil, s.classifyMiss(ctx, id)
	}
	return updated, err
}

func (s *comicService) Delete(ctx context.Context, id int64, owner string) error {
	err := s.repo.DeleteOwned(ctx, id, owner)
	if errors.Is(err, comic.ErrComicNotFound) {
		return s.classifyMiss(ctx, id)
	}
	return err
}

// classifyMiss decides why a conditional mutation matched no row: the record
// is gone (ErrComicNotFound) or it belongs to someone else (ErrNotOwner).
// The re-read happens after the conditional statement, so a record deleted
// concurrently still resolves to a clean not-found.
func (s *comicService) classifyMiss(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return comic.ErrNotOwner
}
