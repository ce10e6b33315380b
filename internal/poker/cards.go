package poker

import (
	"sort"
	"strconv"
)

// Канонический набор карт
var fibonacciCards = []int{0, 1, 2, 3, 5, 8, 13, 21, 34}

// IsValidCard проверяет принадлежность значения набору карт
func IsValidCard(v int) bool {
	for _, card := range fibonacciCards {
		if v == card {
			return true
		}
	}
	return false
}

// ParseCard разбирает строковое значение голоса.
// Невалидные карты и нечисловые значения дают ошибку.
func ParseCard(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidCard
	}
	if !IsValidCard(n) {
		return 0, ErrInvalidCard
	}
	return n, nil
}

// NumericValues извлекает числовые значения голосов в порядке подачи,
// пропуская нечисловые
func NumericValues(votes []Vote) []int {
	nums := make([]int, 0, len(votes))
	for _, v := range votes {
		if n, err := strconv.Atoi(v.Value); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

// AllValid проверяет, что каждый голос является валидной картой
func AllValid(votes []Vote) bool {
	for _, v := range votes {
		if _, err := ParseCard(v.Value); err != nil {
			return false
		}
	}
	return true
}

func Average(nums []int) float64 {
	if len(nums) == 0 {
		return 0
	}
	sum := 0
	for _, n := range nums {
		sum += n
	}
	return float64(sum) / float64(len(nums))
}

// Median возвращает нижнюю медиану: элемент с индексом n/2
// в отсортированном по возрастанию наборе
func Median(nums []int) int {
	if len(nums) == 0 {
		return 0
	}
	sorted := make([]int, len(nums))
	copy(sorted, nums)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}

// Mode возвращает самое частое значение. При равной частоте
// побеждает то, что встретилось первым при проходе слева направо.
func Mode(nums []int) int {
	if len(nums) == 0 {
		return 0
	}

	frequency := make(map[int]int, len(nums))
	for _, n := range nums {
		frequency[n]++
	}

	mode := nums[0]
	best := frequency[mode]
	for _, n := range nums {
		if frequency[n] > best {
			mode = n
			best = frequency[n]
		}
	}
	return mode
}

// HasConsensus проверяет, что все числовые значения совпадают.
// Пустой набор не считается консенсусом.
func HasConsensus(nums []int) bool {
	if len(nums) == 0 {
		return false
	}
	first := nums[0]
	for _, n := range nums[1:] {
		if n != first {
			return false
		}
	}
	return true
}
