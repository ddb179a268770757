package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/DoyleJ11/hoops-draft-backend/internal/discord"
	"github.com/DoyleJ11/hoops-draft-backend/internal/export"
	"github.com/DoyleJ11/hoops-draft-backend/internal/hub"
	"github.com/DoyleJ11/hoops-draft-backend/internal/lobby"
	"github.com/DoyleJ11/hoops-draft-backend/internal/session"
	"github.com/DoyleJ11/hoops-draft-backend/internal/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Hub            *hub.Hub
	Discord        *discord.Client
	Log            *zap.Logger
	Team1Name      string
	Team2Name      string
	AllowedOrigins []string
	Now            func() time.Time
}

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateLobby(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to generate code")
				return
			}
			if d.Hub.Get(c) == nil {
				code = c
				break
			}
			d.Log.Debug("collision on code, regenerating", zap.String("code", c))
		}

		reply := make(chan *lobby.Lobby, 1)
		d.Hub.Inbox() <- hub.EnsureLobby{Code: code, State: session.NewState(d.Team1Name, d.Team2Name), Reply: reply}
		if <-reply == nil {
			writeError(w, http.StatusInternalServerError, "failed to create lobby")
			return
		}

		writeJSON(w, http.StatusCreated, types.LobbyCreated{Code: code})
	}
}

func GetLobby(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := lobbyView(w, r, d)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, types.ServerMessage{Type: "StateSnapshot", Version: view.Version, State: &view.State})
	}
}

func DeleteLobby(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if d.Hub.Get(code) == nil {
			writeError(w, http.StatusNotFound, "lobby not found")
			return
		}
		d.Hub.Inbox() <- hub.RemoveLobby{Code: code}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportText serves the clipboard copy of the current rosters or draft.
func ExportText(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := lobbyView(w, r, d)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(export.Text(view.State)))
	}
}

func SendToDiscord(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Discord == nil || !d.Discord.Enabled() {
			writeError(w, http.StatusServiceUnavailable, discord.ErrNoWebhook.Error())
			return
		}
		view, ok := lobbyView(w, r, d)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		if err := d.Discord.SendEmbed(ctx, export.Embed(view.State, d.Now())); err != nil {
			d.Log.Error("discord send failed", zap.String("code", chi.URLParam(r, "code")), zap.Error(err))
			writeError(w, http.StatusBadGateway, "failed to send to discord")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

var errTimeout = errors.New("lobby did not answer")

func lobbyView(w http.ResponseWriter, r *http.Request, d Deps) (lobby.View, bool) {
	lb := d.Hub.Get(chi.URLParam(r, "code"))
	if lb == nil {
		writeError(w, http.StatusNotFound, "lobby not found")
		return lobby.View{}, false
	}

	reply := make(chan lobby.View, 1)
	lb.Inbox() <- lobby.GetState{Reply: reply}
	select {
	case v := <-reply:
		return v, true
	case <-lb.Done():
		writeError(w, http.StatusNotFound, "lobby not found")
	case <-time.After(2 * time.Second):
		writeError(w, http.StatusGatewayTimeout, errTimeout.Error())
	}
	return lobby.View{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}
