package services

import (
	"strings"
	"testing"
)

func TestGenerateCardNumberKnownValue(t *testing.T) {
	// 12345 * 7919 = 97760055, база "777700097760055", контрольная цифра 6
	number := GenerateCardNumber(12345)

	if number != "7777000977600556" {
		t.Errorf("GenerateCardNumber(12345) = %s, want 7777000977600556", number)
	}
}

func TestGenerateCardNumberFormat(t *testing.T) {
	number := GenerateCardNumber(12345)

	if len(number) != 16 {
		t.Errorf("card number length = %d, want 16", len(number))
	}
	if !strings.HasPrefix(number, "7777") {
		t.Errorf("card number %s must start with 7777", number)
	}
}

func TestGenerateCardNumberPassesLuhn(t *testing.T) {
	// Каждый сгенерированный номер обязан проходить проверку Луна
	for _, seq := range []int64{0, 1, 2, 42, 999, 12345, 1000000, 999999999} {
		number := GenerateCardNumber(seq)
		if !ValidateLuhn(number) {
			t.Errorf("GenerateCardNumber(%d) = %s does not pass Luhn", seq, number)
		}
	}
}

func TestGenerateCardNumberFixedWidthLargeSequences(t *testing.T) {
	// Номер остается 16-значным и для больших значений последовательности,
	// когда произведение переваливает за 10^11
	cases := []int64{
		12627416,
		12627417, // первое значение, на котором произведение достигает 10^11
		12627418,
		999999999,
		100000000000,
		1 << 40,
	}

	for _, seq := range cases {
		number := GenerateCardNumber(seq)
		if len(number) != 16 {
			t.Errorf("GenerateCardNumber(%d) = %s, length %d, want 16", seq, number, len(number))
		}
		if !strings.HasPrefix(number, "7777") {
			t.Errorf("GenerateCardNumber(%d) = %s must start with 7777", seq, number)
		}
		if !ValidateLuhn(number) {
			t.Errorf("GenerateCardNumber(%d) = %s does not pass Luhn", seq, number)
		}
	}
}

func TestGenerateCardNumberDistinct(t *testing.T) {
	// Разные значения последовательности дают разные номера
	seen := make(map[string]int64)
	for seq := int64(1); seq <= 5000; seq++ {
		number := GenerateCardNumber(seq)
		if prev, ok := seen[number]; ok {
			t.Fatalf("collision: sequences %d and %d both map to %s", prev, seq, number)
		}
		seen[number] = seq
	}
}

func TestValidateLuhnRejectsCorruptedNumber(t *testing.T) {
	number := GenerateCardNumber(12345)

	// Портим одну цифру
	corrupted := []byte(number)
	if corrupted[5] == '9' {
		corrupted[5] = '0'
	} else {
		corrupted[5]++
	}

	if ValidateLuhn(string(corrupted)) {
		t.Errorf("corrupted number %s must not pass Luhn", corrupted)
	}
}

func TestValidateLuhnRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"7777",
		"77770009776005567", // 17 цифр
		"7777o00977600556",  // не цифра
	}

	for _, number := range cases {
		if ValidateLuhn(number) {
			t.Errorf("ValidateLuhn(%q) = true, want false", number)
		}
	}
}
