package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/domain/backup"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/cache"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

type fakeBackupRepo struct {
	snapshot *backup.Snapshot
	restored *backup.Snapshot
}

func (r *fakeBackupRepo) Export(_ context.Context) (*backup.Snapshot, error) {
	if r.snapshot == nil {
		return &backup.Snapshot{}, nil
	}
	return r.snapshot, nil
}

func (r *fakeBackupRepo) Restore(_ context.Context, snap *backup.Snapshot) error {
	r.restored = snap
	return nil
}

func newBackupTestRouter(repo *fakeBackupRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := NewBackupController(repo, cache.NoopEstoqueCache{}, logger.NewLogger())

	r := gin.New()
	r.GET("/backup", c.Export)
	r.POST("/backup/restaurar", c.Restore)
	return r
}

func backupComPedido(t *testing.T) *dto.BackupDocument {
	t.Helper()
	po, err := order.NewPurchaseOrder("OC-1", "ACME", "", nil)
	if err != nil {
		t.Fatalf("criar pedido: %v", err)
	}
	po.AddItem(*order.NewOrderItem("A1", "Parafuso", "UN", decFromTest(10)))
	return &dto.BackupDocument{
		Versao:  1,
		Pedidos: []*order.PurchaseOrder{po},
	}
}

func TestBackupExport(t *testing.T) {
	r := newBackupTestRouter(&fakeBackupRepo{})

	rec := doJSON(t, r, http.MethodGet, "/backup", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d", rec.Code)
	}

	var doc dto.BackupDocument
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Versao != 1 {
		t.Errorf("versao = %d, esperava 1", doc.Versao)
	}
	if doc.GeradoEm.IsZero() {
		t.Errorf("gerado_em não deveria ser zero")
	}
}

func TestBackupRestoreExigeFraseDeConfirmacao(t *testing.T) {
	repo := &fakeBackupRepo{}
	r := newBackupTestRouter(repo)

	rec := doJSON(t, r, http.MethodPost, "/backup/restaurar", dto.RestoreRequest{
		Confirmacao: "restaurar tudo",
		Dados:       backupComPedido(t),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("frase errada deveria dar 400, veio %d", rec.Code)
	}
	if repo.restored != nil {
		t.Errorf("restauração não deveria ter acontecido")
	}
}

func TestBackupRestore(t *testing.T) {
	repo := &fakeBackupRepo{}
	r := newBackupTestRouter(repo)

	rec := doJSON(t, r, http.MethodPost, "/backup/restaurar", dto.RestoreRequest{
		Confirmacao: dto.FraseConfirmacaoRestore,
		Dados:       backupComPedido(t),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.RestoreResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pedidos != 1 {
		t.Errorf("pedidos = %d, esperava 1", resp.Pedidos)
	}
	if repo.restored == nil || len(repo.restored.Pedidos) != 1 {
		t.Errorf("snapshot restaurado = %+v", repo.restored)
	}
}

func TestBackupRestoreDocumentoInvalido(t *testing.T) {
	repo := &fakeBackupRepo{}
	r := newBackupTestRouter(repo)

	doc := backupComPedido(t)
	doc.Pedidos[0].Items[0].Status = "finalizado"

	rec := doJSON(t, r, http.MethodPost, "/backup/restaurar", dto.RestoreRequest{
		Confirmacao: dto.FraseConfirmacaoRestore,
		Dados:       doc,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status desconhecido deveria dar 400, veio %d", rec.Code)
	}
	if repo.restored != nil {
		t.Errorf("nada deveria ter sido escrito")
	}
}

func TestBackupRestoreSemDados(t *testing.T) {
	r := newBackupTestRouter(&fakeBackupRepo{})

	rec := doJSON(t, r, http.MethodPost, "/backup/restaurar", map[string]string{
		"confirmacao": dto.FraseConfirmacaoRestore,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("corpo sem dados deveria dar 400, veio %d", rec.Code)
	}
}
