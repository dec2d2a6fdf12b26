package service

import "math"

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
