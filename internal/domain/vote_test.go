package domain

import (
	"testing"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/testutil"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newVoteDomain() *voteDomain {
	return NewVoteDomain(
		repository.NewSubmissionRepository(),
		repository.NewChallengeRepository(),
		repository.NewVoteRepository(),
		&testutil.MockPublisher{},
	)
}

func Test_voteDomain_Vote(t *testing.T) {
	ctx := testutil.MockContext()
	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	submission, err := testutil.SampleSubmission(ctx, &entity.Submission{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)

	domain := newVoteDomain()
	voter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = domain.Vote(
		xcontext.WithRequestUserID(ctx, voter.ID),
		&model.VoteRequest{SubmissionID: submission.ID})
	require.NoError(t, err)

	got, err := domain.submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Votes)

	// The ledger has exactly one row for this voter.
	_, err = domain.voteRepo.Get(ctx, submission.ID, voter.ID)
	require.NoError(t, err)
}

func Test_voteDomain_Vote_Twice(t *testing.T) {
	ctx := testutil.MockContext()
	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	submission, err := testutil.SampleSubmission(ctx, &entity.Submission{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)

	voter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, voter.ID)

	domain := newVoteDomain()
	_, err = domain.Vote(ctx, &model.VoteRequest{SubmissionID: submission.ID})
	require.NoError(t, err)

	_, err = domain.Vote(ctx, &model.VoteRequest{SubmissionID: submission.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyVoted, errx.Code)

	// The duplicate must not bump the counter.
	got, err := domain.submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Votes)
}

func Test_voteDomain_Vote_ManyVoters(t *testing.T) {
	ctx := testutil.MockContext()
	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	submission, err := testutil.SampleSubmission(ctx, &entity.Submission{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)

	domain := newVoteDomain()
	for i := 0; i < 10; i++ {
		voter, err := testutil.SampleUser(ctx, nil)
		require.NoError(t, err)

		_, err = domain.Vote(
			xcontext.WithRequestUserID(ctx, voter.ID),
			&model.VoteRequest{SubmissionID: submission.ID})
		require.NoError(t, err)
	}

	got, err := domain.submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.EqualValues(t, 10, got.Votes)

	count, err := domain.voteRepo.Count(ctx, submission.ID)
	require.NoError(t, err)
	require.EqualValues(t, 10, count)
}

func Test_voteDomain_Vote_CompletedChallenge(t *testing.T) {
	ctx := testutil.MockContext()
	challenge, err := testutil.SampleChallenge(ctx, &entity.Challenge{
		Status: entity.ChallengeCompleted,
	})
	require.NoError(t, err)

	submission, err := testutil.SampleSubmission(ctx, &entity.Submission{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)

	voter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	domain := newVoteDomain()
	_, err = domain.Vote(
		xcontext.WithRequestUserID(ctx, voter.ID),
		&model.VoteRequest{SubmissionID: submission.ID})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.ChallengeCompleted, errx.Code)
}

func Test_voteDomain_Vote_NotFoundSubmission(t *testing.T) {
	ctx := testutil.MockContextWithUserID("voter")

	domain := newVoteDomain()
	_, err := domain.Vote(ctx, &model.VoteRequest{SubmissionID: "invalid-id"})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}
