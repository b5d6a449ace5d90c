package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mswiatek/scholarfolio/internal/common"
	"github.com/mswiatek/scholarfolio/internal/server/models"
)

func strPtr(s string) *string { return &s }

func TestBlobPatchApply(t *testing.T) {
	current := strPtr("attachments/old")

	require.Equal(t, current, BlobPatch{Keep: true}.Apply(current))
	require.Nil(t, BlobPatch{Keep: true}.Apply(nil))

	require.Nil(t, BlobPatch{Remove: true}.Apply(current))

	got := BlobPatch{Key: "attachments/new"}.Apply(current)
	require.NotNil(t, got)
	require.Equal(t, "attachments/new", *got)

	require.Nil(t, BlobPatch{}.Apply(current))
}

func TestProfileAbsentThenSet(t *testing.T) {
	repo := &fakePortfolioRepo{}
	s := NewPortfolioService(repo, fakePresigner{})

	view, err := s.GetProfile(context.Background())
	require.NoError(t, err)
	require.Nil(t, view)

	require.NoError(t, s.SetProfile(context.Background(), "Dr. A", "bio", BlobPatch{Key: "attachments/photo"}))

	view, err = s.GetProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Dr. A", view.Name)
	require.NotNil(t, view.PhotoURL)
	require.Equal(t, "https://storage.example/attachments/photo?signed", *view.PhotoURL)
}

func TestSetProfileRequiresName(t *testing.T) {
	s := NewPortfolioService(&fakePortfolioRepo{}, fakePresigner{})
	err := s.SetProfile(context.Background(), "", "bio", BlobPatch{Keep: true})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestSetProfileKeepPreservesPhoto(t *testing.T) {
	repo := &fakePortfolioRepo{
		profile: &models.Profile{Name: "Dr. A", PhotoKey: strPtr("attachments/photo")},
	}
	s := NewPortfolioService(repo, fakePresigner{})

	require.NoError(t, s.SetProfile(context.Background(), "Dr. A", "new bio", BlobPatch{Keep: true}))
	require.NotNil(t, repo.profile.PhotoKey)
	require.Equal(t, "attachments/photo", *repo.profile.PhotoKey)

	require.NoError(t, s.SetProfile(context.Background(), "Dr. A", "new bio", BlobPatch{Remove: true}))
	require.Nil(t, repo.profile.PhotoKey)
}

func TestInterests(t *testing.T) {
	repo := &fakePortfolioRepo{}
	s := NewPortfolioService(repo, fakePresigner{})

	id, err := s.AddInterest(context.Background(), "NLP")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, err := s.ListInterests(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = s.AddInterest(context.Background(), "")
	require.ErrorIs(t, err, common.ErrValidation)

	// Unknown id is a no-op, not an error.
	require.NoError(t, s.DeleteInterest(context.Background(), "unknown"))

	require.NoError(t, s.DeleteInterest(context.Background(), id))
	list, err = s.ListInterests(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAddPublicationAssignsIDAndTimestamp(t *testing.T) {
	repo := &fakePortfolioRepo{}
	s := NewPortfolioService(repo, fakePresigner{})

	id, err := s.AddPublication(context.Background(), "Paper", "desc", strPtr("https://doi.example/1"), BlobPatch{Key: "attachments/pdf"})
	require.NoError(t, err)

	view, err := s.GetPublication(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Paper", view.Title)
	require.NotZero(t, view.Timestamp)
	require.NotNil(t, view.PDFURL)
}

func TestUpdatePublicationPreservesTimestampAndAppliesPatch(t *testing.T) {
	repo := &fakePortfolioRepo{
		publications: []models.Publication{{
			ID:            "p1",
			Title:         "Old",
			PDFKey:        strPtr("attachments/old"),
			CreatedAtUnix: 12345,
		}},
	}
	s := NewPortfolioService(repo, fakePresigner{})

	require.NoError(t, s.UpdatePublication(context.Background(), "p1", "New", "desc", nil, BlobPatch{Keep: true}))

	view, err := s.GetPublication(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "New", view.Title)
	require.EqualValues(t, 12345, view.Timestamp)
	require.NotNil(t, view.PDFURL)

	require.NoError(t, s.UpdatePublication(context.Background(), "p1", "New", "desc", nil, BlobPatch{Remove: true}))
	view, err = s.GetPublication(context.Background(), "p1")
	require.NoError(t, err)
	require.Nil(t, view.PDFURL)
}

func TestUpdatePublicationValidation(t *testing.T) {
	s := NewPortfolioService(&fakePortfolioRepo{}, fakePresigner{})

	err := s.UpdatePublication(context.Background(), "p1", "", "desc", nil, BlobPatch{Keep: true})
	require.ErrorIs(t, err, common.ErrValidation)

	err = s.UpdatePublication(context.Background(), "missing", "Title", "desc", nil, BlobPatch{Keep: true})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestClearWipesEverything(t *testing.T) {
	repo := &fakePortfolioRepo{
		profile:      &models.Profile{Name: "Dr. A"},
		contact:      &models.ContactInfo{Email: "a@example.org"},
		interests:    []models.ResearchInterest{{ID: "i1", Name: "NLP"}},
		publications: []models.Publication{{ID: "p1", Title: "Paper"}},
	}
	s := NewPortfolioService(repo, fakePresigner{})

	require.NoError(t, s.Clear(context.Background()))

	view, err := s.GetProfile(context.Background())
	require.NoError(t, err)
	require.Nil(t, view)

	pubs, err := s.ListPublications(context.Background())
	require.NoError(t, err)
	require.Empty(t, pubs)
}
