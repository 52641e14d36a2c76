package scorer

import (
	"glossrank/internal/core/ranking"

	"github.com/goccy/go-json"
)

// Scored is one id and optional score named by the scorer
type Scored = ranking.Scored

// TrendingPayload is the body of GET /recommendations/trending
// a missing trending key decodes to an empty list
type TrendingPayload struct {
	Trending []Scored `json:"trending"`
}

// PersonalPayload is the body of POST /recommendations/{user}
type PersonalPayload struct {
	Recommendations []Scored `json:"recommendations"`
}

// personalRequest is the body sent to POST /recommendations/{user}
type personalRequest struct {
	UserData any `json:"user_data"`
	Limit    int `json:"limit"`
}

// TrainResult is the raw acknowledgement returned by POST /update-training
type TrainResult = json.RawMessage

type healthBody struct {
	Status string `json:"status"`
}
