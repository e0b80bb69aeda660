package image

import (
	"context"
)

// Repository define a interface para operações de repositório de imagens
type Repository interface {
	// Upsert cria ou substitui a imagem do código de item
	Upsert(ctx context.Context, img *ItemImage) error

	// FindByCodigo busca a imagem de um código de item
	FindByCodigo(ctx context.Context, codigoItem string) (*ItemImage, error)

	// ListByCodigos retorna as imagens existentes para os códigos
	// informados, indexadas por código (consulta de presença em lote)
	ListByCodigos(ctx context.Context, codigos []string) (map[string]*ItemImage, error)

	// Delete remove a imagem de um código de item
	Delete(ctx context.Context, codigoItem string) error
}
