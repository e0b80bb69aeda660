package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/domain/backup"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/cache"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

// backupVersao identifica o formato do documento de backup
const backupVersao = 1

// BackupController gerencia a exportação e a restauração de backup
type BackupController struct {
	backupRepo   backup.Repository
	estoqueCache cache.EstoqueCache
	logger       logger.Logger
}

// NewBackupController cria uma nova instância de BackupController
func NewBackupController(backupRepo backup.Repository, estoqueCache cache.EstoqueCache, logger logger.Logger) *BackupController {
	return &BackupController{
		backupRepo:   backupRepo,
		estoqueCache: estoqueCache,
		logger:       logger,
	}
}

// Export exporta todos os dados em um único documento JSON
// @Summary Exportar backup
// @Description Exporta pedidos, pagamentos, custos, fechamentos, estoque manual, consumos e metadados das notas em um único documento
// @Tags backup
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.BackupDocument
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /backup [get]
func (c *BackupController) Export(ctx *gin.Context) {
	snap, err := c.backupRepo.Export(ctx)
	if err != nil {
		c.logger.Error("erro ao exportar backup", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao exportar backup", err.Error()))
		return
	}

	doc := dto.BackupDocument{
		Versao:        backupVersao,
		GeradoEm:      time.Now(),
		Pedidos:       snap.Pedidos,
		Pagamentos:    snap.Pagamentos,
		Custos:        snap.Custos,
		Fechamentos:   snap.Fechamentos,
		EstoqueManual: snap.EstoqueManual,
		Consumos:      snap.Consumos,
		Notas:         snap.Notas,
	}

	ctx.Header("Content-Disposition", `attachment; filename="backup-gestor-compras.json"`)
	ctx.JSON(http.StatusOK, doc)
}

// Restore substitui todos os dados pelos do documento enviado
// @Summary Restaurar backup
// @Description Valida o formato do documento e a frase de confirmação antes de qualquer escrita; a substituição acontece em uma única transação
// @Tags backup
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param backup body dto.RestoreRequest true "Documento de backup com confirmação"
// @Success 200 {object} dto.RestoreResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /backup/restaurar [post]
func (c *BackupController) Restore(ctx *gin.Context) {
	var req dto.RestoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "documento de backup malformado", err.Error()))
		return
	}

	if req.Confirmacao != dto.FraseConfirmacaoRestore {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "confirmação incorreta", "envie a frase de confirmação exata para restaurar"))
		return
	}

	// valida o formato completo antes de qualquer escrita
	if err := validarBackup(req.Dados); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "documento de backup inválido", err.Error()))
		return
	}

	snap := &backup.Snapshot{
		Pedidos:       req.Dados.Pedidos,
		Pagamentos:    req.Dados.Pagamentos,
		Custos:        req.Dados.Custos,
		Fechamentos:   req.Dados.Fechamentos,
		EstoqueManual: req.Dados.EstoqueManual,
		Consumos:      req.Dados.Consumos,
		Notas:         req.Dados.Notas,
	}

	if err := c.backupRepo.Restore(ctx, snap); err != nil {
		c.logger.Error("erro ao restaurar backup", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao restaurar backup", err.Error()))
		return
	}

	if err := c.estoqueCache.Invalidate(ctx); err != nil {
		c.logger.Warn("erro ao invalidar cache de estoque", "error", err)
	}

	c.logger.Info("backup restaurado",
		"pedidos", len(snap.Pedidos),
		"pagamentos", len(snap.Pagamentos),
		"notas", len(snap.Notas))

	ctx.JSON(http.StatusOK, dto.RestoreResponse{
		Pedidos:       len(snap.Pedidos),
		Pagamentos:    len(snap.Pagamentos),
		Custos:        len(snap.Custos),
		Fechamentos:   len(snap.Fechamentos),
		EstoqueManual: len(snap.EstoqueManual),
		Consumos:      len(snap.Consumos),
		Notas:         len(snap.Notas),
	})
}

// validarBackup verifica o documento inteiro antes de qualquer escrita
func validarBackup(doc *dto.BackupDocument) error {
	for i, po := range doc.Pedidos {
		if po == nil {
			return fmt.Errorf("pedido %d é nulo", i)
		}
		if po.ID == "" || po.NumeroOC == "" {
			return fmt.Errorf("pedido %d sem id ou número de OC", i)
		}
		for j, item := range po.Items {
			if item.Status != "" && !item.Status.IsValid() {
				return fmt.Errorf("pedido %s, item %d: status %q inválido", po.NumeroOC, j, item.Status)
			}
		}
	}
	for i, p := range doc.Pagamentos {
		if p == nil || p.ID == "" {
			return fmt.Errorf("pagamento %d é nulo ou sem id", i)
		}
	}
	for i, c := range doc.Custos {
		if c == nil || c.ID == "" {
			return fmt.Errorf("custo %d é nulo ou sem id", i)
		}
	}
	for i, f := range doc.Fechamentos {
		if f == nil || f.ID == "" {
			return fmt.Errorf("fechamento %d é nulo ou sem id", i)
		}
	}
	for i, e := range doc.EstoqueManual {
		if e == nil || e.ID == "" || e.CodigoItem == "" {
			return fmt.Errorf("entrada manual %d é nula ou incompleta", i)
		}
	}
	for i, cs := range doc.Consumos {
		if cs == nil || cs.ID == "" || cs.CodigoItem == "" {
			return fmt.Errorf("consumo %d é nulo ou incompleto", i)
		}
	}
	for i, n := range doc.Notas {
		if n == nil || n.ID == "" || n.OrderID == "" {
			return fmt.Errorf("nota fiscal %d é nula ou incompleta", i)
		}
		if !n.Tipo.IsValid() {
			return fmt.Errorf("nota fiscal %d: tipo %q inválido", i, n.Tipo)
		}
	}
	return nil
}
