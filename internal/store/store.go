package store

import (
	"errors"
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrNotFound = errors.New("game session not found")
	ErrGameOver = errors.New("game is over")
)

// GameSession is a running game. Its board must only be touched through Do.
type GameSession struct {
	GameSessionId int64
	StartedAt     time.Time
	EndedAt       *time.Time
	UpdatedAt     time.Time

	mu    sync.Mutex
	board *mines.Board
}

// Do runs f with exclusive access to the session's board.
func (s *GameSession) Do(f func(b *mines.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.board)
}

// Dig digs row, col and closes the session when the game is decided. A lost
// game is fully revealed for display.
func (s *GameSession) Dig(row, col int, now time.Time) (safe bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.EndedAt != nil {
		return false, ErrGameOver
	}
	safe, err = s.board.Dig(row, col)
	if err != nil {
		return false, err
	}
	s.UpdatedAt = now
	if !safe {
		s.board.RevealAll()
		s.end(now)
	} else if s.board.Won() {
		s.end(now)
	}
	return safe, nil
}

// Forfeit ends the game and reveals the board. Forfeiting an ended game
// only reveals it.
func (s *GameSession) Forfeit(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board.RevealAll()
	s.UpdatedAt = now
	if s.EndedAt == nil {
		s.end(now)
	}
}

// Snapshot is a consistent copy of a session's public state.
type Snapshot struct {
	GameSessionId int64
	Size          int
	MineCount     int
	Revealed      int
	Grid          mines.Grid
	Exploded      bool
	Won           bool
	StartedAt     time.Time
	EndedAt       *time.Time
}

func (s *GameSession) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		GameSessionId: s.GameSessionId,
		Size:          s.board.Size(),
		MineCount:     s.board.MineCount(),
		Revealed:      s.board.Revealed(),
		Grid:          s.board.Grid(),
		Exploded:      s.board.Exploded(),
		Won:           s.board.Won(),
		StartedAt:     s.StartedAt,
		EndedAt:       s.EndedAt,
	}
}

func (s *GameSession) end(now time.Time) {
	s.EndedAt = &now
}

func (s *GameSession) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.EndedAt != nil {
		return now.Sub(*s.EndedAt) > ttl
	}
	return now.Sub(s.UpdatedAt) > ttl
}

// Store keeps game sessions in memory.
type Store struct {
	mu       sync.Mutex
	nextId   int64
	sessions map[int64]*GameSession
}

func New() *Store {
	return &Store{sessions: make(map[int64]*GameSession)}
}

func (s *Store) Create(board *mines.Board, now time.Time) *GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextId++
	session := &GameSession{
		GameSessionId: s.nextId,
		StartedAt:     now,
		UpdatedAt:     now,
		board:         board,
	}
	if board.Won() {
		// nothing left to dig
		session.end(now)
	}
	s.sessions[session.GameSessionId] = session
	return session
}

func (s *Store) Get(gameSessionId int64) (*GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[gameSessionId]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Delete removes a session without checking if it existed.
func (s *Store) Delete(gameSessionId int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, gameSessionId)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Sweep drops sessions that ended, or went idle, more than ttl ago and
// reports how many were dropped.
func (s *Store) Sweep(now time.Time, ttl time.Duration) (removed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if session.expired(now, ttl) {
			delete(s.sessions, id)
			removed++
		}
	}
	return
}
