package common

import "fmt"

func RedisKeyEventLeaderboard(eventID string) string {
	return fmt.Sprintf("event_leaderboard:%s", eventID)
}

func RedisKeyFeaturedChallenges() string {
	return "featured_challenges"
}
