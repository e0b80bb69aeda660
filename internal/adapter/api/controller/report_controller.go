package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

// ReportController gera relatórios em planilha a partir dos pedidos
type ReportController struct {
	orderRepo order.Repository
	logger    logger.Logger
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(orderRepo order.Repository, logger logger.Logger) *ReportController {
	return &ReportController{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

var relatorioCabecalho = []string{
	"Número OC", "Cliente", "Índice", "Código", "Descrição", "Unidade",
	"Qtd Pedida", "Status", "Qtd Comprada", "Qtd Restante", "Excedente",
	"Custo Total", "Frete Compra", "Preço Venda", "Total Venda",
	"Imposto", "Frete Envio", "Lucro Líquido", "Pago", "Responsável",
}

// ExportPedidos gera uma planilha XLSX com todos os itens de todos os pedidos
// @Summary Exportar relatório de pedidos
// @Description Gera uma planilha com uma linha por item de pedido, incluindo quantidades, custos e lucro. Aceita os mesmos filtros da listagem de pedidos.
// @Tags relatorios
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param Authorization header string true "Bearer token"
// @Param cliente query string false "Filtrar por cliente"
// @Param responsavel query string false "Filtrar por responsável"
// @Param status query string false "Filtrar por status de item"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /relatorios/pedidos [get]
func (c *ReportController) ExportPedidos(ctx *gin.Context) {
	filter := order.Filter{
		Cliente:     ctx.Query("cliente"),
		Responsavel: ctx.Query("responsavel"),
	}
	if status := ctx.Query("status"); status != "" {
		st := order.ItemStatus(status)
		if !st.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", fmt.Sprintf("status %q não existe", status)))
			return
		}
		filter.Status = st
	}

	pedidos, err := c.orderRepo.List(ctx, filter, 1_000_000, 0)
	if err != nil {
		c.logger.Error("erro ao listar pedidos para relatório", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar relatório", err.Error()))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Pedidos"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", colunaCelula(len(relatorioCabecalho)-1, 1), headerStyle)
	}

	for col, titulo := range relatorioCabecalho {
		f.SetCellValue(sheet, colunaCelula(col, 1), titulo)
	}

	linha := 2
	for _, po := range pedidos {
		for idx := range po.Items {
			item := &po.Items[idx]
			pago := "Não"
			if item.Pago {
				pago = "Sim"
			}
			valores := []interface{}{
				po.NumeroOC,
				po.Cliente,
				idx,
				item.CodigoItem,
				item.Descricao,
				item.Unidade,
				decCell(item.Quantidade),
				item.Status.Label(),
				decCell(item.QuantidadeComprada()),
				decCell(item.QtdRestante()),
				decCell(item.Excedente()),
				decCell(item.TotalCusto()),
				decCell(item.TotalFrete()),
				decCell(item.PrecoVenda),
				decCell(item.TotalVenda()),
				decCell(item.Imposto),
				decCell(item.FreteEnvio),
				decCell(item.LucroLiquido()),
				pago,
				item.Responsavel,
			}
			for col, v := range valores {
				f.SetCellValue(sheet, colunaCelula(col, linha), v)
			}
			linha++
		}
	}

	f.SetColWidth(sheet, "A", "B", 16)
	f.SetColWidth(sheet, "E", "E", 40)

	nomeArquivo := fmt.Sprintf("pedidos-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Description", "File Transfer")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nomeArquivo))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(ctx.Writer); err != nil {
		c.logger.Error("erro ao gravar planilha na resposta", "error", err)
	}
}

// decCell converte um decimal em valor numérico de célula com duas casas
func decCell(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// colunaCelula converte índice de coluna baseado em zero e linha em referência A1
func colunaCelula(col, row int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		name = "A"
	}
	return fmt.Sprintf("%s%d", name, row)
}
