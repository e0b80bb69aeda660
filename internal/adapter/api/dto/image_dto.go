package dto

import (
	"time"

	"github.com/rafaelduarte/gestor-compras/internal/domain/image"
)

// ImagensPresencaRequest consulta em lote quais códigos de item têm imagem
type ImagensPresencaRequest struct {
	Codigos []string `json:"codigos" binding:"required,min=1"`
}

// ItemImageResponse representa a resposta de imagem de item
type ItemImageResponse struct {
	CodigoItem  string    `json:"codigo_item"`
	ArquivoNome string    `json:"arquivo_nome"`
	URL         string    `json:"url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ImagensPresencaResponse mapeia código de item para presença de imagem
type ImagensPresencaResponse struct {
	Presenca map[string]bool `json:"presenca"`
}

// ToItemImageResponse converte uma imagem do domínio para DTO
func ToItemImageResponse(img *image.ItemImage, url string) *ItemImageResponse {
	return &ItemImageResponse{
		CodigoItem:  img.CodigoItem,
		ArquivoNome: img.ArquivoNome,
		URL:         url,
		UpdatedAt:   img.UpdatedAt,
	}
}
