package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/store"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get
	"d": 2, // dig row col
	"r": 0, // forfeit
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid number of arguments")
)

func parseRowCol(args []string) (p mines.Point, err error) {
	if p.Row, err = strconv.Atoi(args[0]); err != nil {
		return p, fmt.Errorf("%w: row must be an int", mines.ErrMalformedInput)
	}
	if p.Col, err = strconv.Atoi(args[1]); err != nil {
		return p, fmt.Errorf("%w: col must be an int", mines.ErrMalformedInput)
	}
	return p, nil
}

func (g *GameHandler) executeCommand(session *store.GameSession, c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return ErrBadArgs
	}
	switch parts[0] {
	case "d":
		p, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		return g.dig(session, p)
	case "r":
		session.Forfeit(g.now())
	}
	return nil
}

type wsError struct {
	Error string `json:"error"`
}

// ConnectWS runs a line-based command loop over a websocket. Every message
// is answered with the session state, or with an error for a rejected
// command.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, ok := g.authorizedSession(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.log.WithError(err).Warn("unable to upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.MessageLimit)

	log := g.log.WithField("gameSessionId", session.GameSessionId)
	log.Debug("established ws connection")

	if err := g.wsLoop(conn, session, log); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			log.WithError(err).Warn("error in ws loop")
		}
	}
}

func (g *GameHandler) wsLoop(conn *websocket.Conn, session *store.GameSession, log logrus.FieldLogger) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		text := strings.TrimSpace(string(buf))
		log.Debug("\t> ", text)

		var reply any
	LINES:
		for _, line := range strings.Split(text, "\n") {
			if err := g.executeCommand(session, line); err != nil {
				reply = wsError{err.Error()}
				break LINES
			}
		}
		if reply == nil {
			reply = NewGameSessionDTO(session.Snapshot())
		}

		if err := conn.WriteJSON(reply); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}
