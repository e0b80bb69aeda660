package dto

import (
	"time"

	"github.com/rafaelduarte/gestor-compras/internal/domain/commission"
	"github.com/rafaelduarte/gestor-compras/internal/domain/finance"
	"github.com/rafaelduarte/gestor-compras/internal/domain/fiscal"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/internal/domain/stock"
)

// FraseConfirmacaoRestore é a frase literal exigida para restaurar um backup
const FraseConfirmacaoRestore = "RESTAURAR TUDO"

// BackupDocument é o documento único exportado e aceito na restauração.
// As notas fiscais entram apenas como metadados; os arquivos em disco não
// fazem parte do backup.
type BackupDocument struct {
	Versao        int                        `json:"versao"`
	GeradoEm      time.Time                  `json:"gerado_em"`
	Pedidos       []*order.PurchaseOrder     `json:"pedidos"`
	Pagamentos    []*commission.Pagamento    `json:"pagamentos"`
	Custos        []*finance.CustoDiverso    `json:"custos"`
	Fechamentos   []*finance.FechamentoLucro `json:"fechamentos"`
	EstoqueManual []*stock.EntradaManual     `json:"estoque_manual"`
	Consumos      []*stock.Consumo           `json:"consumos"`
	Notas         []*fiscal.NotaFiscal       `json:"notas"`
}

// RestoreRequest representa a requisição de restauração de backup
type RestoreRequest struct {
	Confirmacao string          `json:"confirmacao" binding:"required"`
	Dados       *BackupDocument `json:"dados" binding:"required"`
}

// RestoreResponse resume o que foi restaurado
type RestoreResponse struct {
	Pedidos       int `json:"pedidos"`
	Pagamentos    int `json:"pagamentos"`
	Custos        int `json:"custos"`
	Fechamentos   int `json:"fechamentos"`
	EstoqueManual int `json:"estoque_manual"`
	Consumos      int `json:"consumos"`
	Notas         int `json:"notas"`
}
