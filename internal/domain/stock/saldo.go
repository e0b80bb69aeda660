package stock

import (
	"sort"
)

// Balanco acumula excedentes de pedidos, entradas manuais e consumos por
// código de item e reconcilia o saldo disponível na leitura
type Balanco struct {
	porCodigo map[string]*ItemEstoque
}

// NewBalanco cria um balanço de estoque vazio
func NewBalanco() *Balanco {
	return &Balanco{porCodigo: make(map[string]*ItemEstoque)}
}

func (b *Balanco) item(codigo, descricao, unidade string) *ItemEstoque {
	it, ok := b.porCodigo[codigo]
	if !ok {
		it = &ItemEstoque{
			CodigoItem: codigo,
			Descricao:  descricao,
			Unidade:    unidade,
			OCsOrigem:  []OrigemOC{},
		}
		b.porCodigo[codigo] = it
	}
	if it.Descricao == "" {
		it.Descricao = descricao
	}
	if it.Unidade == "" {
		it.Unidade = unidade
	}
	return it
}

// AddExcedente registra o excedente derivado de um item de pedido
func (b *Balanco) AddExcedente(codigo, descricao, unidade string, origem OrigemOC) {
	it := b.item(codigo, descricao, unidade)
	it.QuantidadeEstoque = it.QuantidadeEstoque.Add(origem.Excedente)
	it.OCsOrigem = append(it.OCsOrigem, origem)
}

// AddEntradaManual soma uma entrada manual ao código
func (b *Balanco) AddEntradaManual(e *EntradaManual) {
	it := b.item(e.CodigoItem, e.Descricao, e.Unidade)
	it.QuantidadeManual = it.QuantidadeManual.Add(e.Quantidade)
}

// AddConsumo registra o consumo. Um código consumido até zerar continua
// presente na listagem, com saldo zero ou negativo.
func (b *Balanco) AddConsumo(c *Consumo) {
	it := b.item(c.CodigoItem, "", "")
	it.Consumido = it.Consumido.Add(c.Quantidade)
}

// Itens fecha o balanço: calcula o disponível de cada código e devolve os
// itens ordenados por código
func (b *Balanco) Itens() []*ItemEstoque {
	itens := make([]*ItemEstoque, 0, len(b.porCodigo))
	for _, it := range b.porCodigo {
		it.Disponivel = it.QuantidadeEstoque.
			Add(it.QuantidadeManual).
			Sub(it.Consumido)
		itens = append(itens, it)
	}

	sort.Slice(itens, func(i, j int) bool {
		return itens[i].CodigoItem < itens[j].CodigoItem
	})

	return itens
}
