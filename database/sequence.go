package database

import "fmt"

// NextCardSequence возвращает следующее значение последовательности номеров карт.
// Инкремент атомарный на стороне Postgres, поэтому значения уникальны при любом
// числе одновременных вызовов и любом числе экземпляров сервиса. Пропуски в
// последовательности допустимы, локальная генерация взамен — нет.
func (d *Database) NextCardSequence() (int64, error) {
	var seq int64
	if err := d.DB.Raw("SELECT nextval('card_number_seq')").Scan(&seq).Error; err != nil {
		return 0, fmt.Errorf("ошибка получения значения последовательности: %v", err)
	}
	return seq, nil
}
