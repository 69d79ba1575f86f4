package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookit/internal/domain"
	"bookit/internal/logger"
	"bookit/internal/validate"
)

// Options configures a Server.
type Options struct {
	// Secret signs session tokens. Required.
	Secret   []byte
	TokenTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	Logger     *zap.Logger
}

// Server serves the REST API and the chat socket from memory.
type Server struct {
	opts   Options
	log    *zap.Logger
	mem    *memory
	hub    *hub
	router *mux.Router
	up     websocket.Upgrader
}

type ctxKey struct{}

// New builds a Server with no accounts.
func New(opts Options) (*Server, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("devserver: secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	s := &Server{
		opts: opts,
		log:  logger.OrNop(opts.Logger).Named("devserver"),
		mem:  newMemory(),
		hub:  newHub(),
		up: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.accessLog)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireAuth)
	authed.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/users/search", s.handleSearchUsers).Methods(http.MethodGet)
	authed.HandleFunc("/chats", s.handleListChats).Methods(http.MethodGet)
	authed.HandleFunc("/chats", s.handleCreateChat).Methods(http.MethodPost)
	authed.HandleFunc("/chats/{id}", s.handleGetChat).Methods(http.MethodGet)
	authed.HandleFunc("/chats/{id}/messages", s.handleAddMessage).Methods(http.MethodPost)
	authed.HandleFunc("/chats/{id}/read", s.handleMarkRead).Methods(http.MethodPut)

	r.HandleFunc("/ws", s.serveWS)
	s.router = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// AddUser creates an account directly, for seeding.
func (s *Server) AddUser(name, email, password string, role domain.Role) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return domain.User{}, err
	}
	u, ok := s.mem.addAccount(domain.User{Name: name, Email: email, Role: role}, hash)
	if !ok {
		return domain.User{}, fmt.Errorf("email %s already registered", email)
	}
	return u, nil
}

// Disconnect closes every socket of user with a close frame.
func (s *Server) Disconnect(user domain.UserID, reason string) int {
	return s.hub.kick(user, reason)
}

// ---------- tokens ----------

func (s *Server) issue(u domain.User) (domain.Session, error) {
	now := time.Now()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
	}).SignedString(s.opts.Secret)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: tok, User: u}, nil
}

func (s *Server) verify(token string) (domain.User, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.opts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.User{}, err
	}
	u, ok := s.mem.user(domain.UserID(claims.Subject))
	if !ok {
		return domain.User{}, errors.New("unknown user")
	}
	return u, nil
}

// ---------- middleware ----------

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			// The upgrade needs the raw writer's Hijacker.
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || tok == "" {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		u, err := s.verify(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
	})
}

func caller(r *http.Request) domain.User {
	u, _ := r.Context().Value(ctxKey{}).(domain.User)
	return u
}

// ---------- handlers ----------

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := s.AddUser(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	s.respondSession(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	a, ok := s.mem.accountByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(a.hash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.respondSession(w, http.StatusOK, a.user)
}

func (s *Server) respondSession(w http.ResponseWriter, status int, u domain.User) {
	sess, err := s.issue(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, status, sess)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, caller(r))
}

func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) < 2 {
		writeError(w, http.StatusBadRequest, "Query must be at least 2 characters")
		return
	}
	writeData(w, http.StatusOK, s.mem.searchUsers(q))
}

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.mem.chatsFor(caller(r).ID))
}

func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateChatRequest
	if !decode(w, r, &req) {
		return
	}
	me := caller(r).ID
	if req.Participant == me {
		writeError(w, http.StatusBadRequest, "Cannot chat with yourself")
		return
	}
	c, created, err := s.mem.openChat(me, req.Participant, req.Booking)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if created {
		for _, p := range c.Participants {
			view, err := s.mem.chatFor(c.ID, p.ID, false)
			if err == nil {
				s.hub.toUsers([]domain.UserID{p.ID}, domain.EventChatUpdate, domain.ChatUpdatePayload{Chat: view})
			}
		}
		writeData(w, http.StatusCreated, c)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	c, err := s.mem.chatFor(domain.ChatID(mux.Vars(r)["id"]), caller(r).ID, true)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (s *Server) handleAddMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.NewMessageRequest
	if !decode(w, r, &req) {
		return
	}
	msg, err := s.postMessage(domain.ChatID(mux.Vars(r)["id"]), caller(r).ID, req.Content, req.ClientID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, msg)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	chat := domain.ChatID(mux.Vars(r)["id"])
	me := caller(r).ID
	if err := s.mem.markRead(chat, me); err != nil {
		writeDomainError(w, err)
		return
	}
	s.hub.toRoom(chat, nil, domain.EventMessagesRead, domain.MessagesReadPayload{Chat: chat, User: me})
	writeData(w, http.StatusOK, map[string]bool{"ok": true})
}

// postMessage stores a message and fans it out the first time it is seen.
// Both the REST and socket paths land here.
func (s *Server) postMessage(chat domain.ChatID, sender domain.UserID, content string, id domain.MessageID) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if err := validate.Struct(domain.NewMessageRequest{Content: content}); err != nil {
		return domain.Message{}, err
	}
	msg, participants, created, err := s.mem.addMessage(chat, sender, content, id)
	if err != nil {
		return domain.Message{}, err
	}
	if created {
		s.hub.toUsers(participants, domain.EventNewMessage, domain.NewMessagePayload{Chat: chat, Message: msg})
	}
	return msg, nil
}

// ---------- encoding ----------

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDomainError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Chat not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not authorized to access this chat")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := validate.Struct(out); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
