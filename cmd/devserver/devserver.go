// Package devserver implements an in-memory HTTP stand-in for the Directory
// and Ledger collaborator services, serving the same contract the clients
// speak in production. It exists for local development and end-to-end tests.
package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-client/internal/memstore"
	"github.com/go-petr/bank-client/internal/middleware"
	"github.com/go-petr/bank-client/pkg/configpkg"
)

// Server holds the in-memory store, the handlers router and configuration.
type Server struct {
	Store  *memstore.Store
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates a Server with all collaborator routes instantiated.
func New(store *memstore.Store, logger zerolog.Logger, config configpkg.Config) *Server {
	h := handler{store: store}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", h.createUser)
	engine.POST("/login", h.login)

	engine.GET("/users/:userID/accounts", h.listAccounts)
	engine.GET("/users/:userID/accounts/:accountID", h.getAccount)
	engine.PUT("/users/:userID/accounts/:accountID", h.updateBalance)
	engine.POST("/users/:userID/transfer", h.transfer)

	engine.GET("/accounts/:accountID/transactions", h.listTransactions)
	engine.POST("/accounts/:accountID/transactions", h.appendTransaction)

	return &Server{
		Store:  store,
		Engine: engine,
		Config: config,
	}
}

type handler struct {
	store *memstore.Store
}
