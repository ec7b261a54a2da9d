package services

import (
	"fmt"
	"strconv"
)

const (
	// Префикс всех номеров карт
	cardNumberPrefix = "7777"
	// Множитель обфускации. Взаимно прост с модулем, поэтому отображение
	// последовательности в 11-значное пространство инъективно. Менять его
	// нельзя без пересмотра этого свойства.
	cardNumberMultiplier = 7919
	// Модуль обфускации. 10^11, а не 10^12: обфусцированное значение
	// обязано помещаться в 11 цифр, иначе номер перестает быть 16-значным.
	cardNumberModulus = 100_000_000_000
)

// GenerateCardNumber генерирует номер карты из значения последовательности.
// Номер скрывает порядок выдачи и содержит контрольную цифру по алгоритму Луна.
// Результат всегда ровно 16 цифр.
func GenerateCardNumber(sequence int64) string {
	obfuscated := (sequence * cardNumberMultiplier) % cardNumberModulus

	base := cardNumberPrefix + fmt.Sprintf("%011d", obfuscated)

	checkDigit := luhnCheckDigit(base)

	return base + strconv.Itoa(checkDigit)
}

// luhnCheckDigit вычисляет контрольную цифру по алгоритму Луна.
// Каждая вторая цифра, начиная с правой, удваивается.
func luhnCheckDigit(number string) int {
	sum := 0
	alternate := true

	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if alternate {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alternate = !alternate
	}

	return (10 - (sum % 10)) % 10
}

// ValidateLuhn проверяет номер карты по алгоритму Луна. Проверка отсеивает
// опечатки, но не доказывает, что номер был выдан системой: для этого нужен
// поиск в базе.
func ValidateLuhn(number string) bool {
	if len(number) != 16 {
		return false
	}

	sum := 0
	alternate := false

	for i := len(number) - 1; i >= 0; i-- {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
		digit := int(number[i] - '0')
		if alternate {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alternate = !alternate
	}

	return sum%10 == 0
}
