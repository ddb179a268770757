package lobby

import (
	"context"

	"github.com/DoyleJ11/hoops-draft-backend/internal/random"
	"github.com/DoyleJ11/hoops-draft-backend/internal/session"
	"go.uber.org/zap"
)

type Msg interface{ isLobbyMsg() }

type FromClient struct {
	ClientID string
	Cmd      session.Command
}

func (FromClient) isLobbyMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

// Snapshot is pushed to clients. A rejected command only goes back to its
// sender, with Rejection set and the unchanged state.
type Snapshot struct {
	Version   int
	State     session.State
	Events    []session.Event
	Rejection *session.Rejection
}

type View struct {
	Version    int
	NumClients int
	State      session.State
}

// Lobby owns one session. Its loop is the only writer, so every command is
// applied in arrival order.
type Lobby struct {
	inbox   chan Msg
	state   session.State
	version int
	clients map[string]chan Snapshot
	rng     random.Source
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewLobby(parent context.Context, initial session.State, rng random.Source, log *zap.Logger) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		inbox:   make(chan Msg, 64), // Small buffer
		state:   initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		rng:     rng,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go l.loop()
	return l
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				l.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: l.version, State: l.state}
				l.log.Debug("client joined", zap.String("client_id", msg.ClientID), zap.Int("clients", len(l.clients)))

			case Leave:
				// Closing the outbox lets the client's writer stop ranging.
				if ch, ok := l.clients[msg.ClientID]; ok {
					close(ch)
					delete(l.clients, msg.ClientID)
				}
				l.log.Debug("client left", zap.String("client_id", msg.ClientID), zap.Int("clients", len(l.clients)))

			case FromClient:
				events, newState, err := session.Apply(l.state, l.rng, msg.Cmd)
				if err != nil {
					l.log.Debug("command rejected",
						zap.String("client_id", msg.ClientID),
						zap.String("command", string(msg.Cmd.Type)),
						zap.Error(err))
					l.reject(msg.ClientID, session.Reject(err))
					break
				}
				l.state = newState
				l.version++
				l.log.Info("command applied",
					zap.String("command", string(msg.Cmd.Type)),
					zap.Int("version", l.version),
					zap.Int("events", len(events)))
				l.broadcast(Snapshot{Version: l.version, State: l.state, Events: events})

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.state,
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch) // Tell client no more snapshots
		delete(l.clients, id)
	}
	l.cancel()
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, ch := range l.clients {
		l.send(id, ch, snap)
	}
}

func (l *Lobby) reject(clientID string, rej session.Rejection) {
	ch, ok := l.clients[clientID]
	if !ok {
		return
	}
	l.send(clientID, ch, Snapshot{Version: l.version, State: l.state, Rejection: &rej})
}

func (l *Lobby) send(id string, ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		//ok
	default:
		// Client is slow/full - drop them.
		l.log.Warn("dropping slow client", zap.String("client_id", id))
		close(ch)
		delete(l.clients, id)
	}
}

// Expose the inbox so tests or WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Done is closed once the lobby has shut down.
func (l *Lobby) Done() <-chan struct{} { return l.ctx.Done() }
