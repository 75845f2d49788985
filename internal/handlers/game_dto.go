package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/store"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Size      int `schema:"size"`
	MineCount int `schema:"mine_count"`
}

// ParseNewGameDTO fills in fields present in src over defaults.
func ParseNewGameDTO(src map[string][]string, defaults NewGameDTO) (NewGameDTO, error) {
	dto := defaults
	err := decoder.Decode(&dto, src)
	return dto, err
}

func ParsePoint(src map[string][]string) (mines.Point, error) {
	var p mines.Point
	err := decoder.Decode(&p, src)
	return p, err
}

type GameSessionDTO struct {
	GameSessionId string     `json:"game_session_id"`
	Size          int        `json:"size"`
	MineCount     int        `json:"mine_count"`
	Revealed      int        `json:"revealed"`
	Grid          mines.Grid `json:"grid"`
	Exploded      bool       `json:"exploded"`
	Won           bool       `json:"won"`
	StartedAt     int64      `json:"started_at"`
	EndedAt       *int64     `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(s store.Snapshot) *GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(s.GameSessionId, 10),
		Size:          s.Size,
		MineCount:     s.MineCount,
		Revealed:      s.Revealed,
		Grid:          s.Grid,
		Exploded:      s.Exploded,
		Won:           s.Won,
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}

type NewGameResponse struct {
	Session *GameSessionDTO `json:"session"`
	Token   string          `json:"token"`
}
