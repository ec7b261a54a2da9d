package services

import "errors"

// Ошибки уровня сервисов. Контроллеры отображают их в HTTP статусы,
// все остальное считается внутренней ошибкой сервера.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCardNotFound       = errors.New("card not found")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken возвращается на любую проблему с токеном: подпись,
	// издатель, срок действия, структура. Причина не раскрывается вызывающему.
	ErrInvalidToken = errors.New("invalid token")
)
