package services

import (
	"errors"

	"urbancard/models"
	"urbancard/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CardCascadeDeactivator — узкий интерфейс карточного сервиса, нужный
// пользовательскому сервису только для каскадного удаления. Разрывает
// циклическую зависимость между сервисами.
type CardCascadeDeactivator interface {
	DeactivateAllByUserIDs(tx *gorm.DB, userIDs []uint) error
}

type UserService struct {
	db    *gorm.DB
	cards CardCascadeDeactivator
	email *EmailService
}

// UserDTO представляет данные пользователя для ответа
type UserDTO struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	Cards []string    `json:"cards"`
}

type RegisterUserRequest struct {
	Name     string      `json:"name" validate:"required,min=2,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,password"`
	Role     models.Role `json:"role" validate:"required,oneof=ADMIN USER"`
}

type UpdateUserRequest struct {
	Name  *string      `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string      `json:"email" validate:"omitempty,email"`
	Role  *models.Role `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

func NewUserService(db *gorm.DB, email *EmailService) *UserService {
	return &UserService{db: db, email: email}
}

// SetCardDeactivator подключает карточный сервис для каскадного удаления
func (h *UserService) SetCardDeactivator(cards CardCascadeDeactivator) {
	h.cards = cards
}

// Register создает нового пользователя
func (h *UserService) Register(req RegisterUserRequest) (*models.User, error) {
	// Проверяем, существует ли активный пользователь с таким email.
	// Email удаленных пользователей можно использовать повторно.
	var existingUser models.User
	err := h.db.Where("LOWER(email) = LOWER(?) AND is_deleted = FALSE", req.Email).
		First(&existingUser).Error
	if err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Создаем нового пользователя
	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}

	if err := h.db.Create(user).Error; err != nil {
		return nil, err
	}

	// Приветственное письмо отправляется в фоне, ошибка не влияет на регистрацию
	if h.email != nil {
		go func(name, email string) {
			if err := h.email.SendWelcome(email, name); err != nil {
				utils.LogError("Не удалось отправить приветственное письмо %s: %v", email, err)
			}
		}(user.Name, user.Email)
	}

	return user, nil
}

// FindByEmail ищет активного пользователя по email (игнорируя регистр и пробелы)
func (h *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := h.db.Where("LOWER(TRIM(email)) = LOWER(TRIM(?)) AND is_deleted = FALSE", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID возвращает активного пользователя с номерами его активных карт
func (h *UserService) FindByID(id uint) (*UserDTO, error) {
	user, err := h.findEntityByID(id)
	if err != nil {
		return nil, err
	}
	return h.userToDTO(user), nil
}

// FindAll возвращает страницу активных пользователей.
// Поиск фильтрует по имени или email без учета регистра.
func (h *UserService) FindAll(search string, page, size int) ([]UserDTO, error) {
	offset, limit := paginate(page, size)

	query := h.db.Where("is_deleted = FALSE")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}

	var users []models.User
	err := query.
		Preload("Cards", "is_deleted = FALSE").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	response := make([]UserDTO, 0, len(users))
	for i := range users {
		response = append(response, *h.userToDTO(&users[i]))
	}
	return response, nil
}

// Update изменяет имя, email или роль пользователя. Пустые поля не трогаются.
func (h *UserService) Update(id uint, req UpdateUserRequest) (*UserDTO, error) {
	user, err := h.findEntityByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		// Новый email не должен принадлежать другому активному пользователю
		var other models.User
		err := h.db.Where("LOWER(email) = LOWER(?) AND is_deleted = FALSE AND id <> ?", *req.Email, id).
			First(&other).Error
		if err == nil {
			return nil, ErrUserAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Role != nil && req.Role.IsValid() {
		user.Role = *req.Role
	}

	if err := h.db.Save(user).Error; err != nil {
		return nil, err
	}

	return h.userToDTO(user), nil
}

// Delete помечает пользователей удаленными и каскадно деактивирует их карты.
// Обе операции выполняются в одной транзакции: либо применяются вместе,
// либо не применяются вовсе.
func (h *UserService) Delete(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	// Email затронутых пользователей собираем до удаления, для уведомлений
	var emails []string
	if h.email != nil {
		if err := h.db.Model(&models.User{}).
			Where("id IN ? AND is_deleted = FALSE", ids).
			Pluck("email", &emails).Error; err != nil {
			utils.LogError("Не удалось получить email для уведомлений: %v", err)
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id IN ?", ids).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return h.cards.DeactivateAllByUserIDs(tx, ids)
	})
	if err != nil {
		return err
	}

	if h.email != nil {
		go func(emails []string) {
			for _, email := range emails {
				if err := h.email.SendAccountDeactivated(email); err != nil {
					utils.LogError("Не удалось отправить уведомление о деактивации %s: %v", email, err)
				}
			}
		}(emails)
	}

	return nil
}

// ActiveUserByID реализует интерфейс UserLookup для карточного сервиса
func (h *UserService) ActiveUserByID(id uint) (*models.User, error) {
	var user models.User
	err := h.db.Where("id = ? AND is_deleted = FALSE", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// findEntityByID ищет активного пользователя с активными картами
func (h *UserService) findEntityByID(id uint) (*models.User, error) {
	var user models.User
	err := h.db.Where("id = ? AND is_deleted = FALSE", id).
		Preload("Cards", "is_deleted = FALSE").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (h *UserService) userToDTO(user *models.User) *UserDTO {
	cardNumbers := make([]string, 0, len(user.Cards))
	for _, card := range user.Cards {
		cardNumbers = append(cardNumbers, card.Number)
	}

	return &UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Cards: cardNumbers,
	}
}
