package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/store"
)

var (
	ErrBadSessionId = errors.New("invalid game session id")
	ErrUnauthorized = errors.New("a valid token for this game session is required")
)

type GameHandler struct {
	log      logrus.FieldLogger
	store    *store.Store
	jwt      *config.JWT
	ws       *config.WebSocket
	defaults NewGameDTO
	maxSize  int
	now      func() time.Time

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewGameHandler(
	log logrus.FieldLogger,
	sessions *store.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
	game config.GameConfig,
	rnd *rand.Rand,
) *GameHandler {
	if rnd == nil {
		rnd = mines.NewRand()
	}
	return &GameHandler{
		log:      log,
		store:    sessions,
		jwt:      jwt,
		ws:       ws,
		defaults: NewGameDTO{Size: game.Size, MineCount: game.MineCount},
		maxSize:  game.MaxSize,
		now:      func() time.Time { return time.Now().UTC() },
		rnd:      rnd,
	}
}

func (g *GameHandler) newBoard(dto NewGameDTO) (*mines.Board, error) {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	return mines.NewBoard(dto.Size, dto.MineCount, g.rnd)
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query(), g.defaults)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	if dto.Size > g.maxSize {
		sendError(w, g.log, http.StatusBadRequest, fmt.Errorf(
			"%w: size %d exceeds %d", mines.ErrInvalidDimension, dto.Size, g.maxSize))
		return
	}

	board, err := g.newBoard(dto)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	now := g.now()
	session := g.store.Create(board, now)

	token, err := g.jwt.Sign(g.jwt.NewSessionClaims(session.GameSessionId, now))
	if err != nil {
		g.store.Delete(session.GameSessionId)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to sign session token")
		return
	}

	g.log.WithFields(logrus.Fields{
		"gameSessionId": session.GameSessionId,
		"size":          dto.Size,
		"mineCount":     dto.MineCount,
	}).Info("game created")

	sendJSONOrLog(w, g.log, NewGameResponse{
		Session: NewGameSessionDTO(session.Snapshot()),
		Token:   token,
	})
}

func (g *GameHandler) session(w http.ResponseWriter, r *http.Request) (*store.GameSession, bool) {
	gameSessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, ErrBadSessionId)
		return nil, false
	}
	session, err := g.store.Get(gameSessionId)
	if errors.Is(err, store.ErrNotFound) {
		sendError(w, g.log, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session")
		return nil, false
	}
	return session, true
}

// authorizedSession also requires the request to carry a token for the
// session.
func (g *GameHandler) authorizedSession(w http.ResponseWriter, r *http.Request) (*store.GameSession, bool) {
	session, ok := g.session(w, r)
	if !ok {
		return nil, false
	}
	claims, ok := middleware.SessionClaims(r)
	if !ok || claims.GameSessionId != session.GameSessionId {
		sendError(w, g.log, http.StatusUnauthorized, ErrUnauthorized)
		return nil, false
	}
	return session, true
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, ok := g.session(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, NewGameSessionDTO(session.Snapshot()))
}

func (g *GameHandler) Dig(w http.ResponseWriter, r *http.Request) {
	session, ok := g.authorizedSession(w, r)
	if !ok {
		return
	}

	p, err := ParsePoint(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	if err := g.dig(session, p); err != nil {
		sendError(w, g.log, digErrorStatus(err), err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session.Snapshot()))
}

func (g *GameHandler) dig(session *store.GameSession, p mines.Point) error {
	safe, err := session.Dig(p.Row, p.Col, g.now())
	if err != nil {
		return err
	}
	g.log.WithFields(logrus.Fields{
		"gameSessionId": session.GameSessionId,
		"point":         p,
		"safe":          safe,
	}).Debug("dig")
	return nil
}

func digErrorStatus(err error) int {
	switch {
	case errors.Is(err, mines.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (g *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, ok := g.authorizedSession(w, r)
	if !ok {
		return
	}
	session.Forfeit(g.now())
	sendJSONOrLog(w, g.log, NewGameSessionDTO(session.Snapshot()))
}
