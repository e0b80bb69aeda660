package dto

import "testing"

func TestGetPagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valores válidos", 2, 25, 2, 25},
		{"página zero vira um", 0, 10, 1, 10},
		{"página negativa vira um", -3, 10, 1, 10},
		{"tamanho zero vira padrão", 1, 0, 1, 10},
		{"tamanho acima do limite é cortado", 1, 500, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetPagination(tt.page, tt.pageSize)
			if got.Page != tt.wantPage || got.PageSize != tt.wantPageSize {
				t.Errorf("GetPagination(%d, %d) = (%d, %d), esperado (%d, %d)",
					tt.page, tt.pageSize, got.Page, got.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{"divisão exata", 100, 10, 10},
		{"resto arredonda para cima", 101, 10, 11},
		{"menos que uma página", 3, 10, 1},
		{"lista vazia ainda tem uma página", 0, 10, 1},
		{"um item", 1, 10, 1},
		{"tamanho inválido", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTotalPages(tt.total, tt.pageSize); got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, esperado %d",
					tt.total, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"dentro do intervalo", 3, 5, 3},
		{"além da última volta para a última", 9, 5, 5},
		{"última página exata", 5, 5, 5},
		{"página menor que um", 0, 5, 1},
		{"sem páginas conhecidas", 4, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPage(tt.page, tt.totalPages); got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, esperado %d",
					tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}
