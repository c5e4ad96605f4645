package domain

import (
	"testing"
	"time"

	"github.com/athlonhq/backend/config"
	"github.com/athlonhq/backend/internal/domain/statistic"
	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/dateutil"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newChallengeDomain() *challengeDomain {
	participantRepo := repository.NewParticipantRepository()
	userRepo := repository.NewUserRepository()
	redisClient := &testutil.MockRedisClient{}

	return NewChallengeDomain(
		repository.NewChallengeRepository(),
		participantRepo,
		repository.NewSubmissionRepository(),
		repository.NewResultRepository(),
		repository.NewEventRepository(),
		config.DefaultChallengeTemplates(),
		statistic.New(participantRepo, userRepo, redisClient),
		redisClient,
		&testutil.MockPublisher{},
		&testutil.MockSearchCaller{},
	)
}

func Test_challengeDomain_Generate(t *testing.T) {
	ctx := testutil.MockContext()
	event, err := testutil.SampleEvent(ctx, &entity.Event{Sport: "football"})
	require.NoError(t, err)

	domain := newChallengeDomain()
	resp, err := domain.Generate(ctx, &model.GenerateChallengesRequest{EventID: event.ID})
	require.NoError(t, err)
	require.Len(t, resp.Challenges, 3)

	challenges, err := domain.challengeRepo.GetList(ctx, repository.ChallengeFilter{
		EventID: event.ID,
		Limit:   10,
	})
	require.NoError(t, err)
	require.Len(t, challenges, 3)

	base := dateutil.BeginningOfDay(time.Now().Add(24 * time.Hour))
	for i, challenge := range challenges {
		require.Equal(t, entity.ChallengeUpcoming, challenge.Status)
		require.Equal(t, event.ID, challenge.EventID)
		require.NotEmpty(t, challenge.Title)
		require.NotEmpty(t, challenge.Description)

		// Staggered by two days each, one week long.
		require.True(t, challenge.StartDate.Equal(base.AddDate(0, 0, i*2)))
		require.True(t, challenge.EndDate.Equal(challenge.StartDate.Add(7*24*time.Hour)))

		// Base points plus the type bonus.
		require.Len(t, challenge.Rewards, 2)
		require.Equal(t, entity.PointsReward, challenge.Rewards[0].Type)

		require.True(t, challenge.MaxParticipants.Valid)
		if challenge.Type == entity.ChallengeTeamCollaboration {
			require.EqualValues(t, 50, challenge.MaxParticipants.Int64)
		} else {
			require.EqualValues(t, 100, challenge.MaxParticipants.Int64)
		}
	}
}

func Test_challengeDomain_Generate_UnknownSportFallsBack(t *testing.T) {
	ctx := testutil.MockContext()
	event, err := testutil.SampleEvent(ctx, &entity.Event{Sport: "chessboxing"})
	require.NoError(t, err)

	domain := newChallengeDomain()
	resp, err := domain.Generate(ctx, &model.GenerateChallengesRequest{EventID: event.ID})
	require.NoError(t, err)
	require.Len(t, resp.Challenges, 3)

	gotTypes := []string{}
	for _, challenge := range resp.Challenges {
		gotTypes = append(gotTypes, challenge.Type)
	}

	require.ElementsMatch(t,
		[]string{"skill_showcase", "creativity", "photo_contest"}, gotTypes)
}

func Test_challengeDomain_Generate_NotFoundEvent(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newChallengeDomain()
	_, err := domain.Generate(ctx, &model.GenerateChallengesRequest{EventID: "invalid-id"})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_challengeDomain_Activate(t *testing.T) {
	ctx := testutil.MockContext()
	challenge, err := testutil.SampleChallenge(ctx, &entity.Challenge{
		Status: entity.ChallengeUpcoming,
	})
	require.NoError(t, err)

	domain := newChallengeDomain()
	_, err = domain.Activate(ctx, &model.ActivateChallengeRequest{ID: challenge.ID})
	require.NoError(t, err)

	got, err := domain.challengeRepo.GetByID(ctx, challenge.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ChallengeActive, got.Status)

	// A completed challenge never goes back to active.
	err = domain.challengeRepo.UpdateStatus(ctx, challenge.ID, entity.ChallengeCompleted)
	require.NoError(t, err)

	_, err = domain.Activate(ctx, &model.ActivateChallengeRequest{ID: challenge.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.ChallengeCompleted, errx.Code)
}

func Test_challengeDomain_End(t *testing.T) {
	ctx := testutil.MockContext()
	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	domain := newChallengeDomain()

	users := make([]entity.User, 3)
	votes := []uint64{10, 5, 1}
	for i := range users {
		users[i], err = testutil.SampleUser(ctx, nil)
		require.NoError(t, err)

		err = domain.participantRepo.Create(ctx, &entity.ChallengeParticipant{
			ChallengeID: challenge.ID,
			UserID:      users[i].ID,
		})
		require.NoError(t, err)

		_, err = testutil.SampleSubmission(ctx, &entity.Submission{
			ChallengeID: challenge.ID,
			UserID:      users[i].ID,
			UserName:    users[i].Name,
			Votes:       votes[i],
		})
		require.NoError(t, err)
	}

	resp, err := domain.End(ctx, &model.EndChallengeRequest{ID: challenge.ID})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	// Vote counts dominate the score here, so winners follow the vote
	// order.
	for i, result := range resp.Results {
		require.Equal(t, i+1, result.Rank)
		require.Equal(t, users[i].ID, result.UserID)
		require.Equal(t, 3, result.TotalParticipant)
	}

	got, err := domain.challengeRepo.GetByID(ctx, challenge.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ChallengeCompleted, got.Status)

	// Every submission carries its final rank and score.
	submissions, err := domain.submissionRepo.GetByChallengeID(ctx, challenge.ID)
	require.NoError(t, err)
	for _, submission := range submissions {
		require.True(t, submission.Rank.Valid)
		require.True(t, submission.Score.Valid)
	}

	// Winners got the base points reward credited.
	for _, user := range users {
		participant, err := domain.participantRepo.Get(ctx, challenge.ID, user.ID)
		require.NoError(t, err)
		require.EqualValues(t, 100, participant.Points)
	}

	results, err := domain.GetResults(ctx, &model.GetChallengeResultsRequest{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)
	require.Len(t, results.Results, 3)
	require.Equal(t, 1, results.Results[0].Rank)
}

func Test_challengeDomain_End_Twice(t *testing.T) {
	ctx := testutil.MockContext()
	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	_, err = testutil.SampleSubmission(ctx, &entity.Submission{ChallengeID: challenge.ID})
	require.NoError(t, err)

	domain := newChallengeDomain()
	_, err = domain.End(ctx, &model.EndChallengeRequest{ID: challenge.ID})
	require.NoError(t, err)

	_, err = domain.End(ctx, &model.EndChallengeRequest{ID: challenge.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.ChallengeCompleted, errx.Code)
}

func Test_challengeDomain_End_NoParticipants(t *testing.T) {
	ctx := testutil.MockContext()
	challenge, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	domain := newChallengeDomain()
	_, err = domain.End(ctx, &model.EndChallengeRequest{ID: challenge.ID})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NoParticipants, errx.Code)

	// The challenge must stay endable for when submissions arrive.
	got, err := domain.challengeRepo.GetByID(ctx, challenge.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ChallengeActive, got.Status)
}

func Test_challengeDomain_GetFeatured(t *testing.T) {
	ctx := testutil.MockContext()

	upcoming, err := testutil.SampleChallenge(ctx, &entity.Challenge{
		Status:    entity.ChallengeUpcoming,
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().AddDate(0, 0, 8),
	})
	require.NoError(t, err)

	quiet, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	popular, err := testutil.SampleChallenge(ctx, nil)
	require.NoError(t, err)

	_, err = testutil.SampleChallenge(ctx, &entity.Challenge{
		Status: entity.ChallengeCompleted,
	})
	require.NoError(t, err)

	domain := newChallengeDomain()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	err = domain.participantRepo.Create(ctx, &entity.ChallengeParticipant{
		ChallengeID: popular.ID,
		UserID:      user.ID,
	})
	require.NoError(t, err)

	resp, err := domain.GetFeatured(ctx, &model.GetFeaturedChallengesRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Challenges, 3)

	// Active before upcoming, then by participant count.
	require.Equal(t, popular.ID, resp.Challenges[0].ID)
	require.Equal(t, quiet.ID, resp.Challenges[1].ID)
	require.Equal(t, upcoming.ID, resp.Challenges[2].ID)

	resp, err = domain.GetFeatured(ctx, &model.GetFeaturedChallengesRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.Challenges, 1)
	require.Equal(t, popular.ID, resp.Challenges[0].ID)
}

func Test_challengeDomain_GetList_StatusFilter(t *testing.T) {
	ctx := testutil.MockContext()
	event, err := testutil.SampleEvent(ctx, nil)
	require.NoError(t, err)

	active, err := testutil.SampleChallenge(ctx, &entity.Challenge{EventID: event.ID})
	require.NoError(t, err)

	_, err = testutil.SampleChallenge(ctx, &entity.Challenge{
		EventID: event.ID,
		Status:  entity.ChallengeCompleted,
	})
	require.NoError(t, err)

	domain := newChallengeDomain()
	resp, err := domain.GetList(ctx, &model.GetListChallengeRequest{
		EventID: event.ID,
		Status:  "active",
	})
	require.NoError(t, err)
	require.Len(t, resp.Challenges, 1)
	require.Equal(t, active.ID, resp.Challenges[0].ID)

	_, err = domain.GetList(ctx, &model.GetListChallengeRequest{
		EventID: event.ID,
		Status:  "bogus",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.GetList(ctx, &model.GetListChallengeRequest{
		EventID: event.ID,
		Limit:   51,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
