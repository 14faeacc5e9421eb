package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-registry/internal/audit"
	"github.com/BruksfildServices01/client-registry/internal/cache"
	"github.com/BruksfildServices01/client-registry/internal/config"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/handlers"
	"github.com/BruksfildServices01/client-registry/internal/middleware"
	ucClient "github.com/BruksfildServices01/client-registry/internal/usecase/client"
	"github.com/BruksfildServices01/client-registry/internal/validators"
)

// Deps are the singletons the routes are built from.
type Deps struct {
	Config      *config.Config
	Clients     domain.Repository
	Cache       cache.ClientCache
	Dispatcher  *audit.Dispatcher
	AuditReader handlers.AuditReader
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	clientCache := deps.Cache
	if clientCache == nil {
		clientCache = cache.NoopCache{}
	}

	emails := validators.EmailPolicy{CheckDomain: deps.Config.EmailDomainCheck}

	// ======================================================
	// 🧠 USE CASES - CLIENTS
	// ======================================================
	createClientUC := ucClient.NewCreateClient(deps.Clients, deps.Dispatcher, clientCache, emails)
	getClientUC := ucClient.NewGetClient(deps.Clients, clientCache)
	findClientsUC := ucClient.NewFindClients(deps.Clients)
	updateClientUC := ucClient.NewUpdateClient(deps.Clients, deps.Dispatcher, clientCache, emails)
	deleteClientUC := ucClient.NewDeleteClient(deps.Clients, deps.Dispatcher, clientCache)
	addPhoneUC := ucClient.NewAddPhone(deps.Clients, deps.Dispatcher, clientCache)
	removePhoneUC := ucClient.NewRemovePhone(deps.Clients, deps.Dispatcher, clientCache)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	clientHandler := handlers.NewClientHandler(
		createClientUC,
		getClientUC,
		findClientsUC,
		updateClientUC,
		deleteClientUC,
		addPhoneUC,
		removePhoneUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditReader)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))
	{
		api.POST("/clients", clientHandler.Create)
		api.GET("/clients", clientHandler.Find)
		api.GET("/clients/:id", clientHandler.Get)
		api.PATCH("/clients/:id", clientHandler.Update)
		api.DELETE("/clients/:id", clientHandler.Delete)

		api.POST("/clients/:id/phones", clientHandler.AddPhone)
		api.DELETE("/clients/:id/phones/:phone", clientHandler.RemovePhone)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
