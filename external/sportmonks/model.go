package sportmonks

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

type fixturesResponse struct {
	Data       []fixture  `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Count       int  `json:"count"`
	PerPage     int  `json:"per_page"`
	CurrentPage int  `json:"current_page"`
	HasMore     bool `json:"has_more"`
}

type fixture struct {
	ID           flexID                  `json:"id"`
	LeagueID     flexID                  `json:"league_id"`
	Name         string                  `json:"name"`
	StartingAt   string                  `json:"starting_at"`
	Participants relation[[]participant] `json:"participants"`
	Venue        relation[venue]         `json:"venue"`
	League       relation[league]        `json:"league"`
}

type participant struct {
	ID   flexID          `json:"id"`
	Name string          `json:"name"`
	Meta participantMeta `json:"meta"`
}

type participantMeta struct {
	Location string `json:"location"`
}

type venue struct {
	Name     string `json:"name"`
	CityName string `json:"city_name"`
}

type league struct {
	Name string `json:"name"`
}

// relation decodes an included object either directly or wrapped in {"data": ...}.
type relation[T any] struct {
	Data T
	Set  bool
}

func (r *relation[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		r.Set = false
		return nil
	}

	var wrapped struct {
		Data *T `json:"data"`
	}
	if bytes.HasPrefix(trimmed, []byte("{")) {
		if err := sonic.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Data != nil {
			r.Data = *wrapped.Data
			r.Set = true
			return nil
		}
	}

	var direct T
	if err := sonic.Unmarshal(trimmed, &direct); err != nil {
		return err
	}
	r.Data = direct
	r.Set = true
	return nil
}

// flexID accepts ids sent either as numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*f = ""
		return nil
	}
	if unquoted, err := strconv.Unquote(trimmed); err == nil {
		*f = flexID(strings.TrimSpace(unquoted))
		return nil
	}
	*f = flexID(trimmed)
	return nil
}

func (f flexID) String() string {
	return string(f)
}

// sides resolves home and away from participant meta.location, falling back to list order.
func (fx fixture) sides() (home, away participant, ok bool) {
	var homeSet, awaySet bool
	for _, p := range fx.Participants.Data {
		switch strings.ToLower(strings.TrimSpace(p.Meta.Location)) {
		case "home":
			home, homeSet = p, true
		case "away":
			away, awaySet = p, true
		}
	}
	if homeSet && awaySet {
		return home, away, true
	}
	if len(fx.Participants.Data) == 2 {
		return fx.Participants.Data[0], fx.Participants.Data[1], true
	}
	return participant{}, participant{}, false
}
