package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DoyleJ11/hoops-draft-backend/internal/engine"
	"github.com/DoyleJ11/hoops-draft-backend/internal/hub"
	"github.com/DoyleJ11/hoops-draft-backend/internal/lobby"
	"github.com/DoyleJ11/hoops-draft-backend/internal/roster"
	"github.com/DoyleJ11/hoops-draft-backend/internal/session"
	"github.com/DoyleJ11/hoops-draft-backend/internal/types"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errUnknownType = errors.New("unknown type")

// Handler upgrades /ws?code=XXXXXX into a lobby client. allowedOrigins uses
// the same values as the CORS layer ("*" or full origins like
// "http://localhost:3000").
func Handler(h *hub.Hub, allowedOrigins []string, log *zap.Logger) http.HandlerFunc {
	patterns := originPatterns(allowedOrigins)
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		lb := h.Get(code)
		if lb == nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: patterns})
		if err != nil {
			log.Warn("websocket accept failed", zap.String("code", code), zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan lobby.Snapshot, 8)
		clientID := uuid.NewString()
		log := log.With(zap.String("code", code), zap.String("client_id", clientID))

		if !forward(lb, lobby.Join{ClientID: clientID, Outbox: out}) {
			conn.Close(websocket.StatusGoingAway, "lobby closed")
			return
		}
		defer forward(lb, lobby.Leave{ClientID: clientID})
		log.Info("client connected")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				payload, _ := json.Marshal(toServerMessage(snap))
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
			// The lobby closed our outbox: it shut down or dropped us.
			conn.Close(websocket.StatusGoingAway, "lobby closed")
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					log.Info("client disconnected")
				default:
					log.Debug("read failed", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "BAD_JSON", "bad json")
				continue
			}

			cmd, err := toSessionCommand(cm)
			if err != nil {
				rej := session.Reject(err)
				writeError(r.Context(), conn, rej.Code, rej.Message)
				continue
			}

			if !forward(lb, lobby.FromClient{ClientID: clientID, Cmd: cmd}) {
				log.Info("lobby closed")
				conn.Close(websocket.StatusGoingAway, "lobby closed")
				return
			}
		}
	}
}

// forward delivers msg unless the lobby has already shut down.
func forward(lb *lobby.Lobby, msg lobby.Msg) bool {
	select {
	case <-lb.Done():
		return false
	default:
	}
	select {
	case lb.Inbox() <- msg:
		return true
	case <-lb.Done():
		return false
	}
}

// originPatterns turns configured origins into the host patterns
// websocket.Accept matches against.
func originPatterns(origins []string) []string {
	var out []string
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" || !strings.Contains(o, "://") {
			out = append(out, o)
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}
		out = append(out, u.Host)
	}
	return out
}

func toServerMessage(snap lobby.Snapshot) types.ServerMessage {
	if snap.Rejection != nil {
		return types.ServerMessage{Type: "Error", Version: snap.Version, Error: snap.Rejection}
	}
	msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &snap.State, Events: snap.Events}
	if d := snap.State.Draft; d != nil && !d.Complete() {
		msg.LegalPicks = []string{}
		for _, p := range engine.LegalPicks(*d) {
			msg.LegalPicks = append(msg.LegalPicks, p.ID)
		}
	}
	return msg
}

func writeError(ctx context.Context, conn *websocket.Conn, code, message string) {
	payload, _ := json.Marshal(types.ServerMessage{
		Type:  "Error",
		Error: &session.Rejection{Code: code, Title: "Error", Message: message},
	})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toSessionCommand(m types.ClientMessage) (session.Command, error) {
	cmd := session.Command{Type: session.CommandType(m.Type), Name: m.Name, PlayerID: m.PlayerID}

	switch cmd.Type {
	case session.CmdSetPlayer, session.CmdSetCaptain, session.CmdRenameTeam, session.CmdDraftPlayer:
	case session.CmdShuffle, session.CmdCoinToss, session.CmdStartDraft, session.CmdResetDraft:
		return cmd, nil
	default:
		return session.Command{}, errUnknownType
	}

	if m.Team != "" || cmd.Type != session.CmdDraftPlayer {
		team, err := parseTeam(m.Team)
		if err != nil {
			return session.Command{}, err
		}
		cmd.Team = team
	}
	if cmd.Type == session.CmdSetPlayer || cmd.Type == session.CmdSetCaptain {
		pos, err := roster.ParsePosition(m.Position)
		if err != nil {
			return session.Command{}, err
		}
		cmd.Position = pos
	}
	return cmd, nil
}

func parseTeam(team string) (engine.Team, error) {
	switch t := engine.Team(team); t {
	case engine.TeamOne, engine.TeamTwo:
		return t, nil
	default:
		return "", engine.ErrUnknownTeam
	}
}
