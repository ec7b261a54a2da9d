package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"urbancard/middleware"
	"urbancard/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// CardController обрабатывает запросы, связанные с картами
type CardController struct {
	cardService *services.CardService
	validate    *validator.Validate
}

type DeleteCardsRequest struct {
	Numbers []string `json:"numbers" validate:"required,min=1"`
}

// NewCardController создает новый экземпляр CardController
func NewCardController(cardService *services.CardService) *CardController {
	return &CardController{
		cardService: cardService,
		validate:    validator.New(),
	}
}

// GetCardsMe возвращает карты вызывающего. Владелец берется из токена.
func (c *CardController) GetCardsMe(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetClaimsFromContext(r)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	page, size := parsePagination(r)

	cards, err := c.cardService.FindAllByUserID(claims.UserID, page, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

// GetCardMe возвращает карту вызывающего по номеру. Запрос чужой карты
// отвечает 404, а не чужими данными.
func (c *CardController) GetCardMe(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetClaimsFromContext(r)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	number := mux.Vars(r)["number"]
	if !services.ValidateLuhn(number) {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}

	card, err := c.cardService.FindByNumberAndUserID(number, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// GetCards возвращает страницу активных карт, опционально одного пользователя
// (только для админов)
func (c *CardController) GetCards(w http.ResponseWriter, r *http.Request) {
	page, size := parsePagination(r)

	if userParam := r.URL.Query().Get("user"); userParam != "" {
		userID, err := strconv.ParseUint(userParam, 10, 64)
		if err != nil {
			http.Error(w, "Invalid user id", http.StatusBadRequest)
			return
		}

		cards, err := c.cardService.FindAllByUserID(uint(userID), page, size)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cards)
		return
	}

	cards, err := c.cardService.FindAll(page, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

// GetCard возвращает карту по номеру (только для админов)
func (c *CardController) GetCard(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	if !services.ValidateLuhn(number) {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}

	card, err := c.cardService.FindByNumber(number)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// CreateCard выпускает новую карту (только для админов)
func (c *CardController) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return
	}

	card, err := c.cardService.Create(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, card)
}

// UpdateCard изменяет название, статус или тип карты (только для админов)
func (c *CardController) UpdateCard(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	if !services.ValidateLuhn(number) {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}

	var req services.UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return
	}

	card, err := c.cardService.Update(number, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// DeleteCards помечает перечисленные карты удаленными (только для админов)
func (c *CardController) DeleteCards(w http.ResponseWriter, r *http.Request) {
	var req DeleteCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		http.Error(w, "numbers must not be empty", http.StatusBadRequest)
		return
	}

	if err := c.cardService.DeleteAllByNumbers(req.Numbers); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
