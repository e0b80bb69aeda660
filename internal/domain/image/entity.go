package image

import (
	"errors"
	"time"
)

var ErrEmptyCodigoItem = errors.New("código do item não pode ser vazio")

// ItemImage é a imagem de um produto, compartilhada por todas as
// ocorrências do mesmo código de item em qualquer pedido
type ItemImage struct {
	CodigoItem  string    `json:"codigo_item"`
	ArquivoNome string    `json:"arquivo_nome"`
	ArquivoPath string    `json:"-"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewItemImage cria o registro de imagem de um código de item
func NewItemImage(codigoItem, arquivoNome, arquivoPath string) (*ItemImage, error) {
	if codigoItem == "" {
		return nil, ErrEmptyCodigoItem
	}
	return &ItemImage{
		CodigoItem:  codigoItem,
		ArquivoNome: arquivoNome,
		ArquivoPath: arquivoPath,
		UpdatedAt:   time.Now(),
	}, nil
}
