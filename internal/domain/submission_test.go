package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/reflectutil"
	"github.com/athlonhq/backend/pkg/testutil"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newSubmissionDomain() *submissionDomain {
	return NewSubmissionDomain(
		repository.NewChallengeRepository(),
		repository.NewParticipantRepository(),
		repository.NewSubmissionRepository(),
		repository.NewUserRepository(),
		&testutil.MockPublisher{},
	)
}

func Test_submissionDomain_Submit(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	domain := newSubmissionDomain()
	resp, err := domain.Submit(ctx, &model.SubmitRequest{
		ChallengeID: challenge.ID,
		Content:     "my best freekick",
		MediaURL:    "https://example.com/video.mp4",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	// The submission snapshots the submitter's identity.
	submission, err := domain.submissionRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.True(t, reflectutil.PartialEqual(&entity.Submission{
		ChallengeID: challenge.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		UserAvatar:  user.AvatarURL,
		Content:     "my best freekick",
		MediaURL:    "https://example.com/video.mp4",
	}, submission))
	require.EqualValues(t, 0, submission.Votes)

	_, err = domain.participantRepo.Get(ctx, challenge.ID, user.ID)
	require.NoError(t, err)
}

func Test_submissionDomain_Submit_Twice(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	domain := newSubmissionDomain()
	_, err = domain.Submit(ctx, &model.SubmitRequest{ChallengeID: challenge.ID})
	require.NoError(t, err)

	_, err = domain.Submit(ctx, &model.SubmitRequest{ChallengeID: challenge.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyParticipated, errx.Code)
}

func Test_submissionDomain_Submit_NotActive(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	// Upcoming and the window has not opened yet.
	challenge, err := testutil.SampleChallenge(ctx, &entity.Challenge{
		Status:    entity.ChallengeUpcoming,
		StartDate: time.Now().Add(time.Hour),
		EndDate:   time.Now().AddDate(0, 0, 8),
	})
	require.NoError(t, err)

	domain := newSubmissionDomain()
	_, err = domain.Submit(ctx, &model.SubmitRequest{ChallengeID: challenge.ID})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.ChallengeNotActive, errx.Code)
}

func Test_submissionDomain_Submit_UpcomingInsideWindow(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	// Still marked upcoming but the window has opened. The entry is
	// accepted and the first participation flips the status.
	challenge, err := testutil.SampleChallenge(ctx, &entity.Challenge{
		Status: entity.ChallengeUpcoming,
	})
	require.NoError(t, err)

	domain := newSubmissionDomain()
	_, err = domain.Submit(ctx, &model.SubmitRequest{ChallengeID: challenge.ID})
	require.NoError(t, err)

	got, err := domain.challengeRepo.GetByID(ctx, challenge.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ChallengeActive, got.Status)
}

func Test_submissionDomain_Submit_Completed(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	// Completed early, the window itself is still open.
	challenge, err := testutil.SampleChallenge(ctx, &entity.Challenge{
		Status: entity.ChallengeCompleted,
	})
	require.NoError(t, err)

	domain := newSubmissionDomain()
	_, err = domain.Submit(ctx, &model.SubmitRequest{ChallengeID: challenge.ID})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.ChallengeCompleted, errx.Code)
}

func Test_submissionDomain_Submit_CapacityExceeded(t *testing.T) {
	ctx := testutil.MockContext()
	first, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	second, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	challenge, err := testutil.SampleChallenge(ctx, &entity.Challenge{
		MaxParticipants: sql.NullInt64{Valid: true, Int64: 1},
	})
	require.NoError(t, err)

	domain := newSubmissionDomain()
	_, err = domain.Participate(
		xcontext.WithRequestUserID(ctx, first.ID),
		&model.ParticipateRequest{ChallengeID: challenge.ID})
	require.NoError(t, err)

	_, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, second.ID),
		&model.SubmitRequest{ChallengeID: challenge.ID})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.CapacityExceeded, errx.Code)
}

func Test_submissionDomain_Participate_Twice(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	domain := newSubmissionDomain()
	_, err = domain.Participate(ctx, &model.ParticipateRequest{ChallengeID: challenge.ID})
	require.NoError(t, err)

	// Participation without content creates no submission row.
	submissions, err := domain.submissionRepo.GetByChallengeID(ctx, challenge.ID)
	require.NoError(t, err)
	require.Empty(t, submissions)

	_, err = domain.Participate(ctx, &model.ParticipateRequest{ChallengeID: challenge.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyParticipated, errx.Code)
}

func Test_submissionDomain_GetList_NewestFirst(t *testing.T) {
	ctx := testutil.MockContext()
	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	older, err := testutil.SampleSubmission(ctx, &entity.Submission{
		ChallengeID: challenge.ID,
		SubmittedAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	newer, err := testutil.SampleSubmission(ctx, &entity.Submission{
		ChallengeID: challenge.ID,
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)

	domain := newSubmissionDomain()
	resp, err := domain.GetList(ctx, &model.GetListSubmissionRequest{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Submissions, 2)
	require.Equal(t, newer.ID, resp.Submissions[0].ID)
	require.Equal(t, older.ID, resp.Submissions[1].ID)
}
