package model

import (
	"time"

	"github.com/athlonhq/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertRewards(entityRewards []entity.Reward) []Reward {
	modelRewards := []Reward{}
	for _, r := range entityRewards {
		modelRewards = append(modelRewards, Reward{Type: string(r.Type), Data: r.Data})
	}
	return modelRewards
}

func ConvertChallenge(challenge *entity.Challenge, participantCount int64) Challenge {
	if challenge == nil {
		return Challenge{}
	}

	return Challenge{
		ID:               challenge.ID,
		EventID:          challenge.EventID,
		Type:             string(challenge.Type),
		Status:           string(challenge.Status),
		Title:            challenge.Title,
		Description:      challenge.Description,
		Sport:            challenge.Sport,
		StartDate:        challenge.StartDate.Format(DefaultTimeLayout),
		EndDate:          challenge.EndDate.Format(DefaultTimeLayout),
		MaxParticipants:  challenge.MaxParticipants.Int64,
		Rewards:          ConvertRewards(challenge.Rewards),
		ParticipantCount: participantCount,
		CreatedAt:        challenge.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertSubmission(submission *entity.Submission) Submission {
	if submission == nil {
		return Submission{}
	}

	return Submission{
		ID:          submission.ID,
		ChallengeID: submission.ChallengeID,
		UserID:      submission.UserID,
		UserName:    submission.UserName,
		UserAvatar:  submission.UserAvatar,
		Content:     submission.Content,
		MediaURL:    submission.MediaURL,
		SubmittedAt: submission.SubmittedAt.Format(DefaultTimeLayout),
		Votes:       submission.Votes,
		Rank:        submission.Rank.Int64,
		Score:       submission.Score.Int64,
	}
}

func ConvertChallengeResult(result *entity.ChallengeResult) ChallengeResult {
	if result == nil {
		return ChallengeResult{}
	}

	return ChallengeResult{
		ChallengeID:      result.ChallengeID,
		UserID:           result.UserID,
		UserName:         result.UserName,
		Rank:             result.Rank,
		Score:            result.Score,
		TotalParticipant: result.TotalParticipant,
		Rewards:          ConvertRewards(result.Rewards),
		CompletedAt:      result.CompletedAt.Format(DefaultTimeLayout),
	}
}

func ConvertEvent(event *entity.Event) Event {
	if event == nil {
		return Event{}
	}

	return Event{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		Sport:       event.Sport,
		StartTime:   event.StartTime.Format(DefaultTimeLayout),
		EndTime:     event.EndTime.Format(DefaultTimeLayout),
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Sport:     user.Sport,
		Role:      user.Role,
	}
}
