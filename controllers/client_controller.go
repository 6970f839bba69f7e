package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/blogem/clients-api/database"
	"github.com/blogem/clients-api/middleware"
	"github.com/blogem/clients-api/models"
	"github.com/blogem/clients-api/services"
	"github.com/blogem/clients-api/userctx"
)

const maxBodyBytes = 1 << 20

type clientData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createClientResponse struct {
	Message string     `json:"message"`
	Data    clientData `json:"data"`
}

type listClientsResponse struct {
	Data  database.RowSet `json:"data"`
	Count int             `json:"count"`
}

// decodeBody decodes exactly one JSON value from the request body
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// ClientController handles client requests
type ClientController struct {
	services *services.Services
}

// NewClientController creates a new client controller
func NewClientController(services *services.Services) *ClientController {
	return &ClientController{
		services: services,
	}
}

// Create handles POST /clients
func (c *ClientController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.GetUser(r.Context())
	if !ok {
		http.Error(w, middleware.UnauthorizedMessage, http.StatusUnauthorized)
		return
	}

	var form models.ClientForm
	if err := decodeBody(w, r, &form); err != nil {
		renderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	client, err := c.services.Clients.CreateClient(r.Context(), user, &form)
	if err != nil {
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) {
			renderError(w, http.StatusBadRequest, models.MissingClientFieldsMessage)
			return
		}
		renderError(w, http.StatusInternalServerError, err.Error())
		return
	}

	renderJSON(w, http.StatusCreated, createClientResponse{
		Message: "Client created successfully",
		Data:    clientData{Name: client.Name, Email: client.Email},
	})
}

// Index handles GET /clients
func (c *ClientController) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.GetUser(r.Context())
	if !ok {
		http.Error(w, middleware.UnauthorizedMessage, http.StatusUnauthorized)
		return
	}

	rows, err := c.services.Clients.ListClients(r.Context(), user)
	if err != nil {
		renderError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = database.RowSet{}
	}

	renderJSON(w, http.StatusOK, listClientsResponse{
		Data:  rows,
		Count: len(rows),
	})
}
