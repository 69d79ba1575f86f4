package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/internal/domain"
)

type fakeReviewAPI struct {
	domain.ReviewAPI
	list  []domain.Review
	calls int
}

func (f *fakeReviewAPI) ListServiceReviews(context.Context, domain.ServiceID, domain.Page) ([]domain.Review, error) {
	f.calls++
	return f.list, nil
}

func (f *fakeReviewAPI) CreateReview(_ context.Context, in domain.ReviewInput) (domain.Review, error) {
	f.calls++
	return domain.Review{ID: "r-new", Service: in.Service, Rating: in.Rating, Comment: in.Comment}, nil
}

func (f *fakeReviewAPI) RespondToReview(_ context.Context, id domain.ReviewID, resp domain.ReviewResponse) (domain.Review, error) {
	f.calls++
	return domain.Review{ID: id, Rating: 4, Response: &resp}, nil
}

func TestCreate_RatingBounds(t *testing.T) {
	api := &fakeReviewAPI{}
	svc := New(api)

	for _, rating := range []int{0, 6} {
		_, err := svc.Create(context.Background(), domain.ReviewInput{Service: "s1", Rating: rating, Comment: "fine"})
		assert.Error(t, err, "rating %d", rating)
	}
	assert.Equal(t, 0, api.calls)

	r, err := svc.Create(context.Background(), domain.ReviewInput{Service: "s1", Rating: 5, Comment: "great cut"})
	require.NoError(t, err)
	assert.Equal(t, 5, r.Rating)
	assert.Equal(t, domain.ReviewID("r-new"), svc.State().Data[0].ID)
}

func TestRespond_ReplacesListedReview(t *testing.T) {
	api := &fakeReviewAPI{list: []domain.Review{{ID: "r1", Rating: 4}, {ID: "r2", Rating: 2}}}
	svc := New(api)

	_, err := svc.ForService(context.Background(), "s1", domain.Page{})
	require.NoError(t, err)
	_, err = svc.Respond(context.Background(), "r1", domain.ReviewResponse{Text: "Thanks!"})
	require.NoError(t, err)

	got := svc.State().Data
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Response)
	assert.Equal(t, "Thanks!", got[0].Response.Text)
}
