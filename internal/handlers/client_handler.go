package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/dto"
	"github.com/BruksfildServices01/client-registry/internal/httperr"
	"github.com/BruksfildServices01/client-registry/internal/httpresp"
	ucClient "github.com/BruksfildServices01/client-registry/internal/usecase/client"
)

type ClientHandler struct {
	create      *ucClient.CreateClient
	get         *ucClient.GetClient
	find        *ucClient.FindClients
	update      *ucClient.UpdateClient
	remove      *ucClient.DeleteClient
	addPhone    *ucClient.AddPhone
	removePhone *ucClient.RemovePhone
}

func NewClientHandler(
	create *ucClient.CreateClient,
	get *ucClient.GetClient,
	find *ucClient.FindClients,
	update *ucClient.UpdateClient,
	remove *ucClient.DeleteClient,
	addPhone *ucClient.AddPhone,
	removePhone *ucClient.RemovePhone,
) *ClientHandler {
	return &ClientHandler{
		create:      create,
		get:         get,
		find:        find,
		update:      update,
		remove:      remove,
		addPhone:    addPhone,
		removePhone: removePhone,
	}
}

// ======================================================
// CREATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_body", err.Error())
		return
	}

	client, err := h.create.Execute(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_client")
		return
	}

	httpresp.Created(c, client)
}

// ======================================================
// GET
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	client, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_client")
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// FIND
// ======================================================

// Find treats a query parameter as supplied when it is present, even
// when empty.
func (h *ClientHandler) Find(c *gin.Context) {
	filter := domain.Filter{
		FirstName: queryOptional(c, "first_name"),
		LastName:  queryOptional(c, "last_name"),
		Email:     queryOptional(c, "email"),
		Phone:     queryOptional(c, "phone"),
	}

	clients, err := h.find.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.FromError(c, err, "failed_to_find_clients")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// UPDATE
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var patch domain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_body", err.Error())
		return
	}

	if err := h.update.Execute(c.Request.Context(), id, patch); err != nil {
		httperr.FromError(c, err, "failed_to_update_client")
		return
	}

	h.Get(c)
}

// ======================================================
// DELETE
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_client")
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// PHONES
// ======================================================
func (h *ClientHandler) AddPhone(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var req dto.AddPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_body", err.Error())
		return
	}

	if err := h.addPhone.Execute(c.Request.Context(), id, req.Phone); err != nil {
		httperr.FromError(c, err, "failed_to_add_phone")
		return
	}

	h.Get(c)
}

func (h *ClientHandler) RemovePhone(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	if err := h.removePhone.Execute(c.Request.Context(), id, c.Param("phone")); err != nil {
		httperr.FromError(c, err, "failed_to_remove_phone")
		return
	}

	h.Get(c)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func clientID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_client_id", "client id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func queryOptional(c *gin.Context, key string) domain.Optional[string] {
	if v, ok := c.GetQuery(key); ok {
		return domain.Some(v)
	}
	return domain.None[string]()
}
