package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
)

// FonteCompraRequest representa a requisição de fonte de compra de um item
type FonteCompraRequest struct {
	Quantidade    float64 `json:"quantidade" binding:"required,gt=0"`
	PrecoUnitario float64 `json:"preco_unitario"`
	Frete         float64 `json:"frete"`
	Fornecedor    string  `json:"fornecedor"`
	Link          string  `json:"link"`
}

// OrderItemRequest representa a requisição de item de pedido
type OrderItemRequest struct {
	CodigoItem  string  `json:"codigo_item" binding:"required"`
	Descricao   string  `json:"descricao"`
	Unidade     string  `json:"unidade"`
	Quantidade  float64 `json:"quantidade" binding:"required,gt=0"`
	Lote        string  `json:"lote"`
	Regiao      string  `json:"regiao"`
	Responsavel string  `json:"responsavel"`
	MarcaModelo string  `json:"marca_modelo"`
	NCM         string  `json:"ncm"`
	Status      string  `json:"status"`
	PrecoVenda  float64 `json:"preco_venda"`
	Imposto     float64 `json:"imposto"`
	FreteEnvio  float64 `json:"frete_envio"`
}

// OrderRequest representa a requisição de criação de pedido de compra
type OrderRequest struct {
	NumeroOC        string             `json:"numero_oc" binding:"required"`
	Cliente         string             `json:"cliente" binding:"required"`
	EnderecoEntrega string             `json:"endereco_entrega"`
	DataEntrega     *time.Time         `json:"data_entrega"`
	Items           []OrderItemRequest `json:"items"`
}

// OrderUpdateRequest representa a requisição de atualização dos dados do
// pedido. Os itens são atualizados pelas rotas de item.
type OrderUpdateRequest struct {
	NumeroOC        string     `json:"numero_oc" binding:"required"`
	Cliente         string     `json:"cliente" binding:"required"`
	EnderecoEntrega string     `json:"endereco_entrega"`
	DataEntrega     *time.Time `json:"data_entrega"`
}

// OrderItemsReplaceRequest substitui a lista completa de itens do pedido
type OrderItemsReplaceRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
}

// OrderItemPatchRequest representa a atualização parcial de um item pelo
// índice. Apenas os campos presentes no corpo são aplicados.
type OrderItemPatchRequest struct {
	CodigoItem               *string  `json:"codigo_item"`
	Descricao                *string  `json:"descricao"`
	Unidade                  *string  `json:"unidade"`
	Quantidade               *float64 `json:"quantidade"`
	Lote                     *string  `json:"lote"`
	Regiao                   *string  `json:"regiao"`
	Responsavel              *string  `json:"responsavel"`
	MarcaModelo              *string  `json:"marca_modelo"`
	NCM                      *string  `json:"ncm"`
	PrecoVenda               *float64 `json:"preco_venda"`
	Imposto                  *float64 `json:"imposto"`
	FreteEnvio               *float64 `json:"frete_envio"`
	QuantidadeCompradaManual *float64 `json:"quantidade_comprada_manual"`
}

// ItemStatusRequest representa a troca de status de um item
type ItemStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BulkDeleteRequest representa a exclusão de vários pedidos de uma vez
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// FonteCompraResponse representa a resposta de fonte de compra
type FonteCompraResponse struct {
	ID            string  `json:"id"`
	Quantidade    float64 `json:"quantidade"`
	PrecoUnitario float64 `json:"preco_unitario"`
	Frete         float64 `json:"frete"`
	Fornecedor    string  `json:"fornecedor"`
	Link          string  `json:"link,omitempty"`
}

// OrderItemResponse representa a resposta de item de pedido com os
// agregados de compra e lucro já calculados
type OrderItemResponse struct {
	CodigoItem  string  `json:"codigo_item"`
	Descricao   string  `json:"descricao"`
	Unidade     string  `json:"unidade"`
	Quantidade  float64 `json:"quantidade"`
	Lote        string  `json:"lote,omitempty"`
	Regiao      string  `json:"regiao,omitempty"`
	Responsavel string  `json:"responsavel,omitempty"`
	MarcaModelo string  `json:"marca_modelo,omitempty"`
	NCM         string  `json:"ncm,omitempty"`

	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	StatusCor   string `json:"status_cor"`
	Pago        bool   `json:"pago"`

	FontesCompra []FonteCompraResponse `json:"fontes_compra"`

	PrecoVenda float64 `json:"preco_venda"`
	Imposto    float64 `json:"imposto"`
	FreteEnvio float64 `json:"frete_envio"`
	ImagemURL  string  `json:"imagem_url,omitempty"`

	TotalQtd           float64 `json:"total_qtd"`
	TotalCusto         float64 `json:"total_custo"`
	TotalFrete         float64 `json:"total_frete"`
	QuantidadeComprada float64 `json:"quantidade_comprada"`
	QtdRestante        float64 `json:"qtd_restante"`
	Excedente          float64 `json:"excedente"`
	Faltante           float64 `json:"faltante"`
	TotalVenda         float64 `json:"total_venda"`
	LucroLiquido       float64 `json:"lucro_liquido"`
}

// OrderResponse representa a resposta de pedido de compra
type OrderResponse struct {
	ID                string              `json:"id"`
	NumeroOC          string              `json:"numero_oc"`
	Cliente           string              `json:"cliente"`
	EnderecoEntrega   string              `json:"endereco_entrega,omitempty"`
	DataEntrega       *time.Time          `json:"data_entrega,omitempty"`
	Items             []OrderItemResponse `json:"items"`
	LucroLiquidoTotal float64             `json:"lucro_liquido_total"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// OrderListResponse representa a resposta de lista de pedidos
type OrderListResponse struct {
	Items      []OrderResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Size       int             `json:"size"`
	TotalPages int             `json:"total_pages"`
}

// ItemOcorrenciaResponse aponta uma ocorrência de um código de item em um
// pedido específico
type ItemOcorrenciaResponse struct {
	OrderID    string  `json:"order_id"`
	NumeroOC   string  `json:"numero_oc"`
	ItemIndex  int     `json:"item_index"`
	Quantidade float64 `json:"quantidade"`
	Status     string  `json:"status"`
}

// ItemAgrupadoResponse agrupa ocorrências do mesmo código de item para
// apresentação; as linhas originais nunca são mescladas
type ItemAgrupadoResponse struct {
	CodigoItem      string                   `json:"codigo_item"`
	Descricao       string                   `json:"descricao"`
	Unidade         string                   `json:"unidade"`
	QuantidadeTotal float64                  `json:"quantidade_total"`
	Ocorrencias     []ItemOcorrenciaResponse `json:"ocorrencias"`
}

// decFromFloat converte um valor da borda HTTP para decimal
func decFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// round2 arredonda para duas casas apenas na apresentação
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// ToOrderItem converte a requisição de item para a entidade de domínio
func (r *OrderItemRequest) ToOrderItem() (*order.OrderItem, error) {
	item := order.NewOrderItem(r.CodigoItem, r.Descricao, r.Unidade, decFromFloat(r.Quantidade))
	item.Lote = r.Lote
	item.Regiao = r.Regiao
	item.Responsavel = r.Responsavel
	item.MarcaModelo = r.MarcaModelo
	item.NCM = r.NCM
	item.PrecoVenda = decFromFloat(r.PrecoVenda)
	item.Imposto = decFromFloat(r.Imposto)
	item.FreteEnvio = decFromFloat(r.FreteEnvio)

	if r.Status != "" {
		status := order.ItemStatus(r.Status)
		if !status.IsValid() {
			return nil, order.ErrInvalidStatus
		}
		item.Status = status
	}

	return item, nil
}

// ToFonteCompra converte a requisição de fonte para a entidade de domínio
func (r *FonteCompraRequest) ToFonteCompra() (*order.FonteCompra, error) {
	return order.NewFonteCompra(
		decFromFloat(r.Quantidade),
		decFromFloat(r.PrecoUnitario),
		decFromFloat(r.Frete),
		r.Fornecedor,
		r.Link)
}

// ApplyTo aplica os campos presentes da atualização parcial sobre o item
func (r *OrderItemPatchRequest) ApplyTo(item *order.OrderItem) {
	if r.CodigoItem != nil {
		item.CodigoItem = *r.CodigoItem
	}
	if r.Descricao != nil {
		item.Descricao = *r.Descricao
	}
	if r.Unidade != nil {
		item.Unidade = *r.Unidade
	}
	if r.Quantidade != nil {
		item.Quantidade = decFromFloat(*r.Quantidade)
	}
	if r.Lote != nil {
		item.Lote = *r.Lote
	}
	if r.Regiao != nil {
		item.Regiao = *r.Regiao
	}
	if r.Responsavel != nil {
		item.Responsavel = *r.Responsavel
	}
	if r.MarcaModelo != nil {
		item.MarcaModelo = *r.MarcaModelo
	}
	if r.NCM != nil {
		item.NCM = *r.NCM
	}
	if r.PrecoVenda != nil {
		item.PrecoVenda = decFromFloat(*r.PrecoVenda)
	}
	if r.Imposto != nil {
		item.Imposto = decFromFloat(*r.Imposto)
	}
	if r.FreteEnvio != nil {
		item.FreteEnvio = decFromFloat(*r.FreteEnvio)
	}
	if r.QuantidadeCompradaManual != nil {
		manual := decFromFloat(*r.QuantidadeCompradaManual)
		item.QuantidadeCompradaManual = &manual
	}
}

// ToFonteCompraResponse converte uma fonte de compra do domínio para DTO
func ToFonteCompraResponse(f *order.FonteCompra) FonteCompraResponse {
	return FonteCompraResponse{
		ID:            f.ID,
		Quantidade:    round2(f.Quantidade),
		PrecoUnitario: round2(f.PrecoUnitario),
		Frete:         round2(f.Frete),
		Fornecedor:    f.Fornecedor,
		Link:          f.Link,
	}
}

// ToOrderItemResponse converte um item do domínio para DTO, calculando os
// agregados de compra e lucro
func ToOrderItemResponse(it *order.OrderItem) OrderItemResponse {
	fontes := make([]FonteCompraResponse, len(it.FontesCompra))
	for i := range it.FontesCompra {
		fontes[i] = ToFonteCompraResponse(&it.FontesCompra[i])
	}

	return OrderItemResponse{
		CodigoItem:  it.CodigoItem,
		Descricao:   it.Descricao,
		Unidade:     it.Unidade,
		Quantidade:  round2(it.Quantidade),
		Lote:        it.Lote,
		Regiao:      it.Regiao,
		Responsavel: it.Responsavel,
		MarcaModelo: it.MarcaModelo,
		NCM:         it.NCM,

		Status:      string(it.Status),
		StatusLabel: it.Status.Label(),
		StatusCor:   it.Status.Cor(),
		Pago:        it.Pago,

		FontesCompra: fontes,

		PrecoVenda: round2(it.PrecoVenda),
		Imposto:    round2(it.Imposto),
		FreteEnvio: round2(it.FreteEnvio),
		ImagemURL:  it.ImagemURL,

		TotalQtd:           round2(it.TotalQtd()),
		TotalCusto:         round2(it.TotalCusto()),
		TotalFrete:         round2(it.TotalFrete()),
		QuantidadeComprada: round2(it.QuantidadeComprada()),
		QtdRestante:        round2(it.QtdRestante()),
		Excedente:          round2(it.Excedente()),
		Faltante:           round2(it.Faltante()),
		TotalVenda:         round2(it.TotalVenda()),
		LucroLiquido:       round2(it.LucroLiquido()),
	}
}

// ToOrderResponse converte um pedido do domínio para DTO
func ToOrderResponse(po *order.PurchaseOrder) *OrderResponse {
	items := make([]OrderItemResponse, len(po.Items))
	for i := range po.Items {
		items[i] = ToOrderItemResponse(&po.Items[i])
	}

	return &OrderResponse{
		ID:                po.ID,
		NumeroOC:          po.NumeroOC,
		Cliente:           po.Cliente,
		EnderecoEntrega:   po.EnderecoEntrega,
		DataEntrega:       po.DataEntrega,
		Items:             items,
		LucroLiquidoTotal: round2(po.LucroLiquidoTotal()),
		CreatedAt:         po.CreatedAt,
		UpdatedAt:         po.UpdatedAt,
	}
}

// ToOrderListResponse converte uma lista de pedidos do domínio para DTO
func ToOrderListResponse(orders []*order.PurchaseOrder, total, page, size int) *OrderListResponse {
	items := make([]OrderResponse, len(orders))
	for i, po := range orders {
		items[i] = *ToOrderResponse(po)
	}

	return &OrderListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: CalculateTotalPages(total, size),
	}
}

// ToItensAgrupados agrupa as ocorrências de cada código de item em todos os
// pedidos informados, na ordem de primeira aparição
func ToItensAgrupados(orders []*order.PurchaseOrder) []ItemAgrupadoResponse {
	grupos := make([]ItemAgrupadoResponse, 0)
	porCodigo := make(map[string]int)

	for _, po := range orders {
		for idx := range po.Items {
			it := &po.Items[idx]

			pos, ok := porCodigo[it.CodigoItem]
			if !ok {
				pos = len(grupos)
				porCodigo[it.CodigoItem] = pos
				grupos = append(grupos, ItemAgrupadoResponse{
					CodigoItem:  it.CodigoItem,
					Descricao:   it.Descricao,
					Unidade:     it.Unidade,
					Ocorrencias: []ItemOcorrenciaResponse{},
				})
			}

			grupos[pos].QuantidadeTotal = round2(
				decimal.NewFromFloat(grupos[pos].QuantidadeTotal).Add(it.Quantidade))
			grupos[pos].Ocorrencias = append(grupos[pos].Ocorrencias, ItemOcorrenciaResponse{
				OrderID:    po.ID,
				NumeroOC:   po.NumeroOC,
				ItemIndex:  idx,
				Quantidade: round2(it.Quantidade),
				Status:     string(it.Status),
			})
		}
	}

	return grupos
}
