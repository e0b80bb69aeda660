package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelduarte/gestor-compras/internal/domain/image"
)

// ErrImageNotFound é retornado quando a imagem não existe
var ErrImageNotFound = errors.New("imagem não encontrada")

// ImageRepository implementa a interface image.Repository
type ImageRepository struct {
	db *pgxpool.Pool
}

// NewImageRepository cria uma nova instância de ImageRepository
func NewImageRepository(db *pgxpool.Pool) image.Repository {
	return &ImageRepository{
		db: db,
	}
}

// Upsert implementa image.Repository.Upsert
func (r *ImageRepository) Upsert(ctx context.Context, img *image.ItemImage) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO item_images (codigo_item, arquivo_nome, arquivo_path, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (codigo_item) DO UPDATE SET
			arquivo_nome = EXCLUDED.arquivo_nome,
			arquivo_path = EXCLUDED.arquivo_path,
			updated_at = EXCLUDED.updated_at`,
		img.CodigoItem, img.ArquivoNome, img.ArquivoPath, img.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao salvar imagem: %w", err)
	}

	return nil
}

// FindByCodigo implementa image.Repository.FindByCodigo
func (r *ImageRepository) FindByCodigo(ctx context.Context, codigoItem string) (*image.ItemImage, error) {
	var img image.ItemImage

	err := r.db.QueryRow(ctx,
		`SELECT codigo_item, arquivo_nome, arquivo_path, updated_at
		FROM item_images WHERE codigo_item = $1`,
		codigoItem).Scan(&img.CodigoItem, &img.ArquivoNome, &img.ArquivoPath, &img.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("erro ao buscar imagem: %w", err)
	}

	return &img, nil
}

// ListByCodigos implementa image.Repository.ListByCodigos
func (r *ImageRepository) ListByCodigos(ctx context.Context, codigos []string) (map[string]*image.ItemImage, error) {
	result := make(map[string]*image.ItemImage)
	if len(codigos) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT codigo_item, arquivo_nome, arquivo_path, updated_at
		FROM item_images WHERE codigo_item = ANY($1)`,
		codigos)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar imagens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img image.ItemImage
		if err := rows.Scan(&img.CodigoItem, &img.ArquivoNome, &img.ArquivoPath, &img.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler imagem: %w", err)
		}
		result[img.CodigoItem] = &img
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return result, nil
}

// Delete implementa image.Repository.Delete
func (r *ImageRepository) Delete(ctx context.Context, codigoItem string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM item_images WHERE codigo_item = $1", codigoItem)
	if err != nil {
		return fmt.Errorf("erro ao excluir imagem: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrImageNotFound
	}

	return nil
}
