package services

import (
	"errors"

	"urbancard/models"
	"urbancard/utils"

	"gorm.io/gorm"
)

// SequenceAllocator выдает уникальные возрастающие значения последовательности.
// Реализуется хранилищем, потому что уникальность должна соблюдаться между
// экземплярами сервиса, а не внутри одного процесса.
type SequenceAllocator interface {
	NextCardSequence() (int64, error)
}

// UserLookup — узкий интерфейс пользовательского сервиса, нужный карточному
// сервису только для проверки владельца при создании карты
type UserLookup interface {
	ActiveUserByID(id uint) (*models.User, error)
}

// CardService предоставляет методы для работы с картами
type CardService struct {
	db       *gorm.DB
	sequence SequenceAllocator
	users    UserLookup
}

// CardDTO представляет данные карты для ответа
type CardDTO struct {
	Number string          `json:"number"`
	Title  string          `json:"title"`
	Status bool            `json:"status"`
	Type   models.CardType `json:"type"`
}

type CreateCardRequest struct {
	UserID uint            `json:"userId" validate:"required"`
	Title  string          `json:"title" validate:"required,min=1,max=100"`
	Type   models.CardType `json:"type" validate:"required,oneof=COMMON STUDENT WORKER"`
}

type UpdateCardRequest struct {
	Title  *string          `json:"title" validate:"omitempty,min=1,max=100"`
	Status *bool            `json:"status"`
	Type   *models.CardType `json:"type" validate:"omitempty,oneof=COMMON STUDENT WORKER"`
}

// NewCardService создает новый экземпляр CardService
func NewCardService(db *gorm.DB, sequence SequenceAllocator, users UserLookup) *CardService {
	return &CardService{
		db:       db,
		sequence: sequence,
		users:    users,
	}
}

// Create выпускает новую карту для пользователя. Номер карты выводится из
// значения последовательности, вызывающий не может выбрать его сам.
// Если сохранение не удалось, выделенное значение последовательности просто
// пропадает: пропуски допустимы, компенсации нет.
func (s *CardService) Create(req CreateCardRequest) (*CardDTO, error) {
	// Проверяем существование владельца
	user, err := s.users.ActiveUserByID(req.UserID)
	if err != nil {
		return nil, err
	}

	// Выделяем значение последовательности и выводим номер карты
	seq, err := s.sequence.NextCardSequence()
	if err != nil {
		return nil, err
	}
	number := GenerateCardNumber(seq)

	card := &models.Card{
		Number: number,
		Title:  req.Title,
		Status: true,
		Type:   req.Type,
		UserID: user.ID,
	}

	if err := s.db.Create(card).Error; err != nil {
		return nil, err
	}

	utils.GetMetrics().RecordCardOperation("create", nil)

	return cardToDTO(card), nil
}

// Update изменяет название, статус или тип карты. Пустые поля не трогаются.
func (s *CardService) Update(number string, req UpdateCardRequest) (*CardDTO, error) {
	card, err := s.findEntityByNumber(number)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		card.Title = *req.Title
	}
	if req.Status != nil {
		card.Status = *req.Status
		if *req.Status {
			utils.GetMetrics().RecordCardOperation("unblock", nil)
		} else {
			utils.GetMetrics().RecordCardOperation("block", nil)
		}
	}
	if req.Type != nil && req.Type.IsValid() {
		card.Type = *req.Type
	}

	if err := s.db.Save(card).Error; err != nil {
		return nil, err
	}

	return cardToDTO(card), nil
}

// DeleteAllByNumbers помечает перечисленные карты удаленными. Операция
// идемпотентна, несуществующие номера молча игнорируются.
func (s *CardService) DeleteAllByNumbers(numbers []string) error {
	if len(numbers) == 0 {
		return nil
	}

	// Обновляются только активные карты: повторное удаление и неизвестные
	// номера не трогают ни строки, ни метрики
	result := s.db.Model(&models.Card{}).
		Where("number IN ? AND is_deleted = FALSE", numbers).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}

	utils.GetMetrics().RecordCardsDeactivated(result.RowsAffected)
	return nil
}

// DeactivateAllByUserIDs помечает удаленными все карты перечисленных
// пользователей. Вызывается пользовательским сервисом внутри транзакции
// каскадного удаления.
func (s *CardService) DeactivateAllByUserIDs(tx *gorm.DB, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}

	return tx.Model(&models.Card{}).
		Where("user_id IN ?", userIDs).
		Update("is_deleted", true).Error
}

// FindAll возвращает страницу активных карт в порядке выпуска
func (s *CardService) FindAll(page, size int) ([]CardDTO, error) {
	offset, limit := paginate(page, size)

	var cards []models.Card
	err := s.db.Where("is_deleted = FALSE").
		Order("record ASC").
		Offset(offset).
		Limit(limit).
		Find(&cards).Error
	if err != nil {
		return nil, err
	}

	return cardsToDTOs(cards), nil
}

// FindAllByUserID возвращает страницу активных карт пользователя
func (s *CardService) FindAllByUserID(userID uint, page, size int) ([]CardDTO, error) {
	offset, limit := paginate(page, size)

	var cards []models.Card
	err := s.db.Where("user_id = ? AND is_deleted = FALSE", userID).
		Order("record ASC").
		Offset(offset).
		Limit(limit).
		Find(&cards).Error
	if err != nil {
		return nil, err
	}

	return cardsToDTOs(cards), nil
}

// FindByNumber возвращает активную карту по номеру
func (s *CardService) FindByNumber(number string) (*CardDTO, error) {
	card, err := s.findEntityByNumber(number)
	if err != nil {
		return nil, err
	}
	return cardToDTO(card), nil
}

// FindByNumberAndUserID возвращает активную карту по номеру, если она
// принадлежит пользователю. Чужая карта неотличима от несуществующей.
func (s *CardService) FindByNumberAndUserID(number string, userID uint) (*CardDTO, error) {
	var card models.Card
	err := s.db.Where("number = ? AND user_id = ? AND is_deleted = FALSE", number, userID).
		First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return cardToDTO(&card), nil
}

func (s *CardService) findEntityByNumber(number string) (*models.Card, error) {
	var card models.Card
	err := s.db.Where("number = ? AND is_deleted = FALSE", number).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func cardToDTO(card *models.Card) *CardDTO {
	return &CardDTO{
		Number: card.Number,
		Title:  card.Title,
		Status: card.Status,
		Type:   card.Type,
	}
}

func cardsToDTOs(cards []models.Card) []CardDTO {
	response := make([]CardDTO, 0, len(cards))
	for i := range cards {
		response = append(response, *cardToDTO(&cards[i]))
	}
	return response
}
