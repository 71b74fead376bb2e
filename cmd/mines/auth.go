package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper-server/internal/config"
)

type Player struct {
	PlayerId     int    `db:"player_id"`
	Username     string `db:"username"`
	PasswordHash []byte `db:"password_hash"`
}

type RegisterParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func refreshPlayerCookies(w http.ResponseWriter, claims config.PlayerClaims) error {
	token, err := jwtConfig.Sign(&claims)
	if err != nil {
		return err
	}
	return cookies.Refresh(w, token)
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	var params RegisterParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if params.Username == "" || params.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("hash password: ", err)
		return
	}

	player, err := pg.CreatePlayer(r.Context(), params.Username, hash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("create player: ", err)
		return
	}

	claims := config.NewPlayerClaims(int64(player.PlayerId), player.Username)
	if err := refreshPlayerCookies(w, *claims); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("sign token: ", err)
		return
	}

	if _, err := sendJSON(w, player); err != nil {
		log.Error("write response: ", err)
	}
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var params RegisterParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	player, err := pg.GetPlayer(r.Context(), params.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("get player: ", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		player.PasswordHash, []byte(params.Password),
	); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	claims := config.NewPlayerClaims(int64(player.PlayerId), player.Username)
	if err := refreshPlayerCookies(w, *claims); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("sign token: ", err)
		return
	}

	if _, err := sendJSON(w, player); err != nil {
		log.Error("write response: ", err)
	}
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(playerClaimsKey).(*config.PlayerClaims)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if _, err := sendJSON(w, claims); err != nil {
		log.Error("write response: ", err)
	}
}

func handleGetRecords(w http.ResponseWriter, r *http.Request) {
	records, err := getGameRecords(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("get records: ", err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error("write response: ", err)
	}
}

func handleGetOwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(playerClaimsKey).(*config.PlayerClaims)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	records, err := getGameRecords(r.Context(), GameRecordsForPlayer(claims.Username))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("get records: ", err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error("write response: ", err)
	}
}
