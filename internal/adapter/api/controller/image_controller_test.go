package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/image"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
	"github.com/rafaelduarte/gestor-compras/pkg/storage"
)

// fakeImageRepo implementa image.Repository em memória
type fakeImageRepo struct {
	porCodigo map[string]*image.ItemImage
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{porCodigo: make(map[string]*image.ItemImage)}
}

func (r *fakeImageRepo) Upsert(_ context.Context, img *image.ItemImage) error {
	clone := *img
	r.porCodigo[img.CodigoItem] = &clone
	return nil
}

func (r *fakeImageRepo) FindByCodigo(_ context.Context, codigoItem string) (*image.ItemImage, error) {
	img, ok := r.porCodigo[codigoItem]
	if !ok {
		return nil, repository.ErrImageNotFound
	}
	clone := *img
	return &clone, nil
}

func (r *fakeImageRepo) ListByCodigos(_ context.Context, codigos []string) (map[string]*image.ItemImage, error) {
	result := make(map[string]*image.ItemImage)
	for _, codigo := range codigos {
		if img, ok := r.porCodigo[codigo]; ok {
			clone := *img
			result[codigo] = &clone
		}
	}
	return result, nil
}

func (r *fakeImageRepo) Delete(_ context.Context, codigoItem string) error {
	if _, ok := r.porCodigo[codigoItem]; !ok {
		return repository.ErrImageNotFound
	}
	delete(r.porCodigo, codigoItem)
	return nil
}

func newImageTestRouter(t *testing.T, repo *fakeImageRepo, dir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	files, err := storage.NewFileStorage(dir)
	if err != nil {
		t.Fatalf("criar storage: %v", err)
	}
	c := NewImageController(repo, files, logger.NewLogger())

	r := gin.New()
	r.POST("/imagens/presenca", c.Presenca)
	r.DELETE("/imagens/:codigo", c.Delete)
	return r
}

func TestImagensPresenca(t *testing.T) {
	repo := newFakeImageRepo()
	r := newImageTestRouter(t, repo, t.TempDir())

	img, err := image.NewItemImage("COD-A", "foto.png", "/tmp/foto.png")
	if err != nil {
		t.Fatalf("criar imagem: %v", err)
	}
	if err := repo.Upsert(context.Background(), img); err != nil {
		t.Fatalf("seed imagem: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/imagens/presenca", map[string]interface{}{
		"codigos": []string{"COD-A", "COD-B"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.ImagensPresencaResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Presenca["COD-A"] {
		t.Error("COD-A tem imagem cadastrada e deveria constar como presente")
	}
	if resp.Presenca["COD-B"] {
		t.Error("COD-B não tem imagem e deveria constar como ausente")
	}
}

func TestImagensPresencaSemCodigos(t *testing.T) {
	repo := newFakeImageRepo()
	r := newImageTestRouter(t, repo, t.TempDir())

	rec := doJSON(t, r, http.MethodPost, "/imagens/presenca", map[string]interface{}{
		"codigos": []string{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, veio %d", rec.Code)
	}
}

func TestImagensDeleteInexistente(t *testing.T) {
	repo := newFakeImageRepo()
	r := newImageTestRouter(t, repo, t.TempDir())

	rec := doJSON(t, r, http.MethodDelete, "/imagens/COD-X", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("esperava 404, veio %d", rec.Code)
	}
}
