package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/athlonhq/backend/internal/domain/scoreboard"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/pubsub"
	"github.com/athlonhq/backend/pkg/ws"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WsProxyDomain pushes full result-set snapshots to websocket
// subscribers. Clients subscribe per event (the challenge list) or per
// challenge (submissions plus live leaderboard); every change event
// re-queries the store and broadcasts the complete current state.
type WsProxyDomain interface {
	ServeSubscriber(ctx context.Context) error
	OnChallengeChanged(ctx context.Context, pack *pubsub.Pack, t time.Time)
}

type wsProxyDomain struct {
	challengeRepo   repository.ChallengeRepository
	submissionRepo  repository.SubmissionRepository
	participantRepo repository.ParticipantRepository
	hub             *ws.Hub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func NewWsProxyDomain(
	challengeRepo repository.ChallengeRepository,
	submissionRepo repository.SubmissionRepository,
	participantRepo repository.ParticipantRepository,
	hub *ws.Hub,
) *wsProxyDomain {
	return &wsProxyDomain{
		challengeRepo:   challengeRepo,
		submissionRepo:  submissionRepo,
		participantRepo: participantRepo,
		hub:             hub,
	}
}

func (d *wsProxyDomain) ServeSubscriber(ctx context.Context) error {
	req := xcontext.HTTPRequest(ctx)

	var channel string
	eventID := req.URL.Query().Get("event_id")
	challengeID := req.URL.Query().Get("challenge_id")
	switch {
	case eventID != "":
		channel = eventChannel(eventID)
	case challengeID != "":
		channel = challengeChannel(challengeID)
	default:
		return errorx.New(errorx.BadRequest, "Require an event_id or challenge_id")
	}

	conn, err := upgrader.Upgrade(xcontext.HTTPWriter(ctx), req, nil)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot upgrade connection: %v", err)
		return errorx.Unknown
	}

	client := ws.NewClient(conn)
	defer conn.Close()

	// Each connection gets its own hub identity, so one user can hold
	// several subscriptions.
	clientID := uuid.NewString()
	hubChannel, err := d.hub.Register(channel, clientID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot register subscriber: %v", err)
		return errorx.Unknown
	}
	defer d.hub.Unregister(channel, clientID)

	// Send the initial snapshot so subscribers never wait for the first
	// change to see data.
	snapshot, err := d.snapshotOf(ctx, eventID, challengeID)
	if err == nil {
		if err := client.Write(snapshot); err != nil {
			return nil
		}
	}

	for {
		select {
		case msg, ok := <-hubChannel:
			if !ok {
				return nil
			}

			if err := client.Write(msg); err != nil {
				return nil
			}

		case _, ok := <-client.R:
			// Subscribers are not expected to send anything; a closed
			// read channel means the peer went away.
			if !ok {
				return nil
			}
		}
	}
}

// OnChallengeChanged is the handler behind the change-event topic. It is
// invoked by the kafka subscriber for every committed mutation.
func (d *wsProxyDomain) OnChallengeChanged(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var change model.ChallengeChanged
	if err := json.Unmarshal(pack.Msg, &change); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal change event: %v", err)
		return
	}

	if change.EventID != "" {
		if snapshot, err := d.snapshotOf(ctx, change.EventID, ""); err == nil {
			d.hub.Broadcast(eventChannel(change.EventID), snapshot)
		}
	}

	if change.ChallengeID != "" {
		if snapshot, err := d.snapshotOf(ctx, "", change.ChallengeID); err == nil {
			d.hub.Broadcast(challengeChannel(change.ChallengeID), snapshot)
		}
	}
}

func (d *wsProxyDomain) snapshotOf(ctx context.Context, eventID, challengeID string) ([]byte, error) {
	if eventID != "" {
		return d.eventSnapshot(ctx, eventID)
	}

	return d.challengeSnapshot(ctx, challengeID)
}

func (d *wsProxyDomain) eventSnapshot(ctx context.Context, eventID string) ([]byte, error) {
	challenges, err := d.challengeRepo.GetList(ctx, repository.ChallengeFilter{
		EventID: eventID,
		Limit:   xcontext.Configs(ctx).ApiServer.MaxLimit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenges of event: %v", err)
		return nil, err
	}

	ids := make([]string, 0, len(challenges))
	for i := range challenges {
		ids = append(ids, challenges[i].ID)
	}

	counts := map[string]int64{}
	if len(ids) > 0 {
		counts, err = d.participantRepo.CountByChallengeIDs(ctx, ids)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot count participants: %v", err)
			counts = map[string]int64{}
		}
	}

	snapshot := model.EventChallengesSnapshot{EventID: eventID}
	for i := range challenges {
		snapshot.Challenges = append(snapshot.Challenges,
			model.ConvertChallenge(&challenges[i], counts[challenges[i].ID]))
	}

	return json.Marshal(snapshot)
}

func (d *wsProxyDomain) challengeSnapshot(ctx context.Context, challengeID string) ([]byte, error) {
	challenge, err := d.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, err
	}

	submissions, err := d.submissionRepo.GetByChallengeID(ctx, challengeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, err
	}

	snapshot := model.ChallengeSnapshot{ChallengeID: challengeID}
	for i := range submissions {
		snapshot.Submissions = append(snapshot.Submissions, model.ConvertSubmission(&submissions[i]))
	}

	for _, entry := range scoreboard.Build(challenge, submissions) {
		snapshot.Leaderboard = append(snapshot.Leaderboard, model.LeaderboardEntry{
			Rank:         entry.Rank,
			SubmissionID: entry.SubmissionID,
			UserID:       entry.UserID,
			UserName:     entry.UserName,
			UserAvatar:   entry.UserAvatar,
			Votes:        entry.Votes,
			Score:        entry.Score,
			Change:       entry.Change,
		})
	}

	return json.Marshal(snapshot)
}

func eventChannel(eventID string) string {
	return fmt.Sprintf("event:%s", eventID)
}

func challengeChannel(challengeID string) string {
	return fmt.Sprintf("challenge:%s", challengeID)
}
