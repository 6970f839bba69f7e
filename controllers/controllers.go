package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/blogem/clients-api/logger"
	"github.com/blogem/clients-api/services"
)

// errorResponse is the JSON body of every 4xx/5xx response except 401
type errorResponse struct {
	Error string `json:"error"`
}

// renderJSON writes data as a JSON response with the given status code
func renderJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

// renderError writes message as {"error": message}
func renderError(w http.ResponseWriter, statusCode int, message string) {
	renderJSON(w, statusCode, errorResponse{Error: message})
}

// Controllers holds all controller instances
type Controllers struct {
	Clients *ClientController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Clients: NewClientController(services),
	}
}
